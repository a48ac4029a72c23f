package repository

import (
	"context"

	"MachiMap-App/internal/domain/model"
)

// PostsRepository 投稿の永続化を担う薄いCRUDコラボレーター
type PostsRepository interface {
	// FindByID 投稿をIDで取得する
	FindByID(ctx context.Context, id string) (*model.Post, error)

	// FindInBoundingBox 指定範囲内の投稿を取得する
	// zoomLevelはバックエンド側の間引きヒント（ページネーション契約はなし）
	FindInBoundingBox(ctx context.Context, box model.BoundingBox, zoomLevel float64) ([]*model.Post, error)

	// Create 投稿を新規作成する
	Create(ctx context.Context, post *model.Post) error
}

// PostStreamHandler 投稿セットの更新を受け取るコールバック
// エンジンのOnPostsUpdatedを接続する
type PostStreamHandler func(posts []*model.Post)
