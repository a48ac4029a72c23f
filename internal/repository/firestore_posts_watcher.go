package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"

	"MachiMap-App/internal/domain/model"
	"MachiMap-App/internal/domain/repository"
)

// firestorePost Firestoreの投稿ドキュメント
type firestorePost struct {
	Text         string    `firestore:"text"`
	Latitude     float64   `firestore:"latitude"`
	Longitude    float64   `firestore:"longitude"`
	LikeCount    int       `firestore:"like_count"`
	CommentCount int       `firestore:"comment_count"`
	IsAnonymous  bool      `firestore:"is_anonymous"`
	CreatedAt    time.Time `firestore:"created_at"`
}

// FirestorePostsWatcher 投稿コレクションのスナップショットを購読し、
// 更新のたびに投稿セット全体をストリームハンドラーへ渡すリアクティブなコラボレーター
type FirestorePostsWatcher struct {
	client     *firestore.Client
	collection string
}

// NewFirestorePostsWatcher 新しいFirestorePostsWatcherを作成
func NewFirestorePostsWatcher(client *firestore.Client) *FirestorePostsWatcher {
	return &FirestorePostsWatcher{
		client:     client,
		collection: "posts",
	}
}

// Watch コレクションのスナップショット購読を開始する
// コンテキストがキャンセルされるまでブロックするため、通常はゴルーチンで呼び出す
func (w *FirestorePostsWatcher) Watch(ctx context.Context, handler repository.PostStreamHandler) error {
	iter := w.client.Collection(w.collection).Snapshots(ctx)
	defer iter.Stop()

	log.Printf("👀 投稿コレクションの購読を開始: %s", w.collection)

	for {
		snapshot, err := iter.Next()
		if err != nil {
			if ctx.Err() != nil {
				return nil // キャンセルによる正常終了
			}
			return fmt.Errorf("投稿スナップショットの取得に失敗: %w", err)
		}

		docs, err := snapshot.Documents.GetAll()
		if err != nil {
			log.Printf("⚠️ 投稿ドキュメントの読み取りに失敗（このスナップショットは無視）: %v", err)
			continue
		}

		posts := make([]*model.Post, 0, len(docs))
		for _, doc := range docs {
			var data firestorePost
			if err := doc.DataTo(&data); err != nil {
				log.Printf("⚠️ 投稿ドキュメント %s の変換に失敗（スキップ）: %v", doc.Ref.ID, err)
				continue
			}
			post := model.NewPostAt(doc.Ref.ID, data.Latitude, data.Longitude, data.CreatedAt)
			post.Text = data.Text
			post.LikeCount = data.LikeCount
			post.CommentCount = data.CommentCount
			post.IsAnonymous = data.IsAnonymous
			posts = append(posts, post)
		}

		log.Printf("📡 投稿セット更新を受信: %d件", len(posts))
		handler(posts)
	}
}
