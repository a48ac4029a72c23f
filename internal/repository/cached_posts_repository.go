package repository

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"MachiMap-App/internal/domain/model"
	"MachiMap-App/internal/domain/repository"
	"MachiMap-App/internal/infrastructure/cache"
)

// CachedPostsRepository Redisのリードスルーキャッシュを挟む投稿リポジトリのデコレーター
// 同じ範囲への連続したパン操作で、バックエンドへの問い合わせを抑える
type CachedPostsRepository struct {
	inner repository.PostsRepository
	redis *cache.RedisClient
	ttl   time.Duration
}

// NewCachedPostsRepository キャッシュ付きリポジトリを作成（TTLの目安は数十秒）
func NewCachedPostsRepository(inner repository.PostsRepository, redis *cache.RedisClient, ttl time.Duration) repository.PostsRepository {
	return &CachedPostsRepository{
		inner: inner,
		redis: redis,
		ttl:   ttl,
	}
}

func (r *CachedPostsRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	// 単体取得はキャッシュせず委譲する
	return r.inner.FindByID(ctx, id)
}

func (r *CachedPostsRepository) FindInBoundingBox(ctx context.Context, box model.BoundingBox, zoomLevel float64) ([]*model.Post, error) {
	key := BoundingBoxCacheKey(box, zoomLevel)

	if cached, err := r.redis.Client.Get(ctx, key).Result(); err == nil && cached != "" {
		var posts []*model.Post
		if err := json.Unmarshal([]byte(cached), &posts); err == nil {
			log.Printf("⚡ キャッシュヒット: %s (%d件)", key, len(posts))
			return posts, nil
		}
		// 壊れたエントリーは無視してバックエンドに問い合わせる
	}

	posts, err := r.inner.FindInBoundingBox(ctx, box, zoomLevel)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(posts); err == nil {
		if err := r.redis.Client.Set(ctx, key, string(data), r.ttl).Err(); err != nil {
			log.Printf("⚠️ キャッシュ書き込みに失敗（処理は継続）: %v", err)
		}
	}

	return posts, nil
}

func (r *CachedPostsRepository) Create(ctx context.Context, post *model.Post) error {
	return r.inner.Create(ctx, post)
}
