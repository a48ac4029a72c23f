package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"MachiMap-App/internal/application"
	"MachiMap-App/internal/database"
	"MachiMap-App/internal/domain/model"
	domainrepo "MachiMap-App/internal/domain/repository"
	"MachiMap-App/internal/handler"
	"MachiMap-App/internal/infrastructure/cache"
	infradb "MachiMap-App/internal/infrastructure/database"
	"MachiMap-App/internal/infrastructure/firestore"
	repoimpl "MachiMap-App/internal/repository"
	"MachiMap-App/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseAnonKey := os.Getenv("SUPABASE_ANON_KEY")

	if supabaseURL == "" || supabaseAnonKey == "" {
		fmt.Println("⚠️  環境変数が設定されていません:")
		fmt.Println("必要な環境変数: SUPABASE_URL, SUPABASE_ANON_KEY")
		fmt.Println("\n.envファイルを作成するか、環境変数を設定してください")
		log.Fatal("Environment variables not set")
	}

	ctx := context.Background()

	fmt.Println("Initializing Supabase client...")
	supabaseClient, err := database.NewSupabaseClient()
	if err != nil {
		log.Fatalf("Supabaseクライアント初期化失敗: %v", err)
	}

	fmt.Println("Performing Supabase health check...")
	if err := supabaseClient.HealthCheck(); err != nil {
		log.Fatalf("Supabaseヘルスチェック失敗: %v", err)
	}
	fmt.Println("✅ Supabase connection successful!")

	// 投稿リポジトリの構築。SUPABASE_DB_PASSWORDがあればPostGIS直接接続、
	// なければPostgREST経由。REDIS_HOSTがあればリードスルーキャッシュを挟む
	var postsRepo domainrepo.PostsRepository
	if os.Getenv("SUPABASE_DB_PASSWORD") != "" {
		postgresClient, err := infradb.NewPostgreSQLClientWithRetry(3, 2*time.Second)
		if err != nil {
			log.Fatalf("PostgreSQLクライアント初期化失敗: %v", err)
		}
		defer postgresClient.Close()
		postsRepo = repoimpl.NewPostgresPostsRepository(postgresClient)
		fmt.Println("✅ PostgreSQL (PostGIS) connection successful!")
	} else {
		postsRepo = repoimpl.NewSupabasePostsRepository(supabaseClient)
	}
	if os.Getenv("REDIS_HOST") != "" {
		redisClient, err := cache.NewRedisClientFromEnv(ctx)
		if err != nil {
			log.Fatalf("Redisクライアント初期化失敗: %v", err)
		}
		defer redisClient.Close()
		postsRepo = repoimpl.NewCachedPostsRepository(postsRepo, redisClient, 30*time.Second)
		fmt.Println("✅ Redis cache enabled!")
	}

	postsService := application.NewPostsService(postsRepo)
	mapViewUseCase := usecase.NewMapViewUseCase(model.DefaultVisualizationConfig(), postsRepo)

	// FirestoreのプロジェクトIDがあれば投稿ストリームの購読を開始する
	if projectID := os.Getenv("FIRESTORE_PROJECT_ID"); projectID != "" {
		firestoreClient, err := firestore.NewFirestoreClient(ctx, projectID)
		if err != nil {
			log.Fatalf("Firestoreクライアント初期化失敗: %v", err)
		}
		defer firestoreClient.Close()

		watcher := repoimpl.NewFirestorePostsWatcher(firestoreClient.GetClient())
		go func() {
			if err := watcher.Watch(ctx, mapViewUseCase.BroadcastPosts); err != nil {
				log.Printf("⚠️ 投稿ストリームの購読が終了: %v", err)
			}
		}()
	}

	postsHandler := handler.NewPostsHandler(postsService)
	mapViewHandler := handler.NewMapViewHandler(mapViewUseCase)
	streamHandler := handler.NewStreamHandler(mapViewUseCase)

	router := gin.Default()

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "MachiMap-App"})
	})

	router.POST("/posts", postsHandler.CreatePost)
	router.GET("/posts", postsHandler.GetPostsByBoundingBox)
	router.GET("/posts/:id", postsHandler.GetPostDetail)

	router.POST("/map/sessions", mapViewHandler.CreateSession)
	router.PUT("/map/sessions/:id/viewport", mapViewHandler.UpdateViewport)
	router.GET("/map/sessions/:id/snapshot", mapViewHandler.GetSnapshot)
	router.DELETE("/map/sessions/:id", mapViewHandler.CloseSession)
	router.GET("/map/sessions/:id/stream", streamHandler.ServeStream)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("MachiMap-App server starting on :%s...\n", port)
	log.Fatal(router.Run(":" + port))
}
