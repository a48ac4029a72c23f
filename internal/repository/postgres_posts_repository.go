package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"MachiMap-App/internal/domain/model"
	"MachiMap-App/internal/domain/repository"
	"MachiMap-App/internal/infrastructure/database"
)

// PostgresPostsRepository PostgreSQL直接接続の投稿リポジトリ
type PostgresPostsRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresPostsRepository(client *database.PostgreSQLClient) repository.PostsRepository {
	return &PostgresPostsRepository{
		client: client,
	}
}

// postResult SQLの結果行を受け取るための構造体
type postResult struct {
	ID           string
	Text         string
	Location     string
	LikeCount    int
	CommentCount int
	IsAnonymous  bool
	CreatedAt    time.Time
}

// ToPost postResultをmodel.Postに変換
func (pr *postResult) ToPost() (*model.Post, error) {
	var location model.Geometry
	if err := json.Unmarshal([]byte(pr.Location), &location); err != nil {
		return nil, fmt.Errorf("location JSONBパースエラー: %w", err)
	}

	return &model.Post{
		ID:           pr.ID,
		Text:         pr.Text,
		Location:     &location,
		LikeCount:    pr.LikeCount,
		CommentCount: pr.CommentCount,
		IsAnonymous:  pr.IsAnonymous,
		CreatedAt:    pr.CreatedAt,
	}, nil
}

func (r *PostgresPostsRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	query := `SELECT id, text, ST_AsGeoJSON(location), like_count, comment_count, is_anonymous, created_at
		FROM posts WHERE id = $1`

	row := r.client.DB.QueryRowContext(ctx, query, id)

	var result postResult
	err := row.Scan(&result.ID, &result.Text, &result.Location,
		&result.LikeCount, &result.CommentCount, &result.IsAnonymous, &result.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("投稿 ID %s が見つかりません", id)
		}
		return nil, fmt.Errorf("投稿データの取得失敗: %w", err)
	}

	return result.ToPost()
}

func (r *PostgresPostsRepository) FindInBoundingBox(ctx context.Context, box model.BoundingBox, zoomLevel float64) ([]*model.Post, error) {
	// ST_MakeEnvelope(minLng, minLat, maxLng, maxLat, SRID) で範囲を指定する
	// 入力はorb.Bound経由で正規化し、Min/Maxが逆転した範囲でも正しく問い合わせる
	query := `SELECT id, text, ST_AsGeoJSON(location), like_count, comment_count, is_anonymous, created_at
		FROM posts
		WHERE location && ST_MakeEnvelope($1, $2, $3, $4, 4326)
		ORDER BY created_at`

	bound := BoundingBoxToBound(box)
	rows, err := r.client.DB.QueryContext(ctx, query,
		bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat())
	if err != nil {
		return nil, fmt.Errorf("範囲内の投稿データ取得失敗: %w", err)
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		var result postResult
		if err := rows.Scan(&result.ID, &result.Text, &result.Location,
			&result.LikeCount, &result.CommentCount, &result.IsAnonymous, &result.CreatedAt); err != nil {
			return nil, fmt.Errorf("投稿データのスキャン失敗: %w", err)
		}
		post, err := result.ToPost()
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("投稿データの読み取り失敗: %w", err)
	}

	return posts, nil
}

func (r *PostgresPostsRepository) Create(ctx context.Context, post *model.Post) error {
	if post.Location == nil || len(post.Location.Coordinates) < 2 {
		return fmt.Errorf("投稿に位置情報が設定されていません")
	}

	query := `INSERT INTO posts (id, text, location, like_count, comment_count, is_anonymous, created_at)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326), $5, $6, $7, $8)`

	_, err := r.client.DB.ExecContext(ctx, query,
		post.ID, post.Text,
		post.Location.Coordinates[0], post.Location.Coordinates[1],
		post.LikeCount, post.CommentCount, post.IsAnonymous, post.CreatedAt)
	if err != nil {
		return fmt.Errorf("投稿の作成失敗: %w", err)
	}

	return nil
}
