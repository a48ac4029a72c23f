package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"MachiMap-App/internal/domain/model"
	"MachiMap-App/internal/domain/repository"
	"MachiMap-App/internal/domain/service"
)

// MapViewUseCase 地図セッションごとの可視化エンジンを管理するユースケース
type MapViewUseCase interface {
	// CreateSession 新しい地図セッションを開始し、セッションIDを返す
	CreateSession() string

	// UpdateViewport ビューポート変更イベントをエンジンへ渡し、最新のスナップショットを返す
	// デバウンス後のフェッチはセッションの寿命で動くため、リクエストのコンテキストは受け取らない
	UpdateViewport(sessionID string, region model.Region) (*service.RenderSnapshot, error)

	// GetSnapshot 現在の派生出力スナップショットを取得する
	GetSnapshot(sessionID string) (*service.RenderSnapshot, error)

	// GetEngine セッションのエンジンを取得する（ストリーム配信用）
	GetEngine(sessionID string) (*service.MapVisualizationEngine, error)

	// CloseSession セッションを終了し、保留中のフェッチを破棄する
	CloseSession(sessionID string)

	// BroadcastPosts 投稿ストリームの更新を全セッションへ取り込む
	BroadcastPosts(posts []*model.Post)
}

// mapViewUseCaseImpl MapViewUseCaseの実装
type mapViewUseCaseImpl struct {
	cfg       model.VisualizationConfig
	postsRepo repository.PostsRepository

	mu       sync.Mutex
	sessions map[string]*service.MapVisualizationEngine
}

// NewMapViewUseCase 投稿リポジトリを注入してMapViewUseCaseを作成
func NewMapViewUseCase(cfg model.VisualizationConfig, postsRepo repository.PostsRepository) MapViewUseCase {
	return &mapViewUseCaseImpl{
		cfg:       cfg,
		postsRepo: postsRepo,
		sessions:  make(map[string]*service.MapVisualizationEngine),
	}
}

// CreateSession 新しいセッション用のエンジンを作成する
func (u *mapViewUseCaseImpl) CreateSession() string {
	sessionID := uuid.New().String()

	// エンジンにはリポジトリのバウンディングボックス問い合わせを注入する
	engine := service.NewMapVisualizationEngine(u.cfg, func(ctx context.Context, box model.BoundingBox, zoomLevel float64) ([]*model.Post, error) {
		return u.postsRepo.FindInBoundingBox(ctx, box, zoomLevel)
	})

	u.mu.Lock()
	u.sessions[sessionID] = engine
	u.mu.Unlock()

	log.Printf("🆕 地図セッション開始: %s", sessionID)
	return sessionID
}

// UpdateViewport ビューポート変更を処理して最新スナップショットを返す
func (u *mapViewUseCaseImpl) UpdateViewport(sessionID string, region model.Region) (*service.RenderSnapshot, error) {
	engine, err := u.GetEngine(sessionID)
	if err != nil {
		return nil, err
	}

	engine.SetRegion(region)
	return engine.Snapshot(), nil
}

// GetSnapshot 現在のスナップショットを取得する
func (u *mapViewUseCaseImpl) GetSnapshot(sessionID string) (*service.RenderSnapshot, error) {
	engine, err := u.GetEngine(sessionID)
	if err != nil {
		return nil, err
	}
	return engine.Snapshot(), nil
}

// GetEngine セッションのエンジンを取得する
func (u *mapViewUseCaseImpl) GetEngine(sessionID string) (*service.MapVisualizationEngine, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	engine, ok := u.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("地図セッション %s が見つかりません", sessionID)
	}
	return engine, nil
}

// CloseSession セッションを破棄する
func (u *mapViewUseCaseImpl) CloseSession(sessionID string) {
	u.mu.Lock()
	engine, ok := u.sessions[sessionID]
	if ok {
		delete(u.sessions, sessionID)
	}
	u.mu.Unlock()

	if ok {
		engine.Close()
		log.Printf("👋 地図セッション終了: %s", sessionID)
	}
}

// BroadcastPosts 投稿ストリームの更新を全セッションのエンジンへ取り込む
func (u *mapViewUseCaseImpl) BroadcastPosts(posts []*model.Post) {
	u.mu.Lock()
	engines := make([]*service.MapVisualizationEngine, 0, len(u.sessions))
	for _, engine := range u.sessions {
		engines = append(engines, engine)
	}
	u.mu.Unlock()

	for _, engine := range engines {
		engine.OnPostsUpdated(posts)
	}
}
