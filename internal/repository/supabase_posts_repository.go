package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"MachiMap-App/internal/database"
	"MachiMap-App/internal/domain/model"
	"MachiMap-App/internal/domain/repository"
)

// SupabasePostsRepository Supabase（PostgREST）経由の投稿リポジトリ
// postsテーブルはフラットなlatitude/longitudeカラムを持つ前提で、
// 読み書きの両方を同じ行形式で行う（PostGISのlocationカラムは直接接続のPostgres側のみ）
type SupabasePostsRepository struct {
	client *database.SupabaseClient
}

func NewSupabasePostsRepository(client *database.SupabaseClient) repository.PostsRepository {
	return &SupabasePostsRepository{
		client: client,
	}
}

// supabasePostRow postsテーブルの行。書き込みと読み取りで同じ形を使う
type supabasePostRow struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	IsAnonymous  bool      `json:"is_anonymous"`
	CreatedAt    time.Time `json:"created_at"`
}

// toPost 行をドメインモデルに変換
func (row *supabasePostRow) toPost() *model.Post {
	post := model.NewPostAt(row.ID, row.Latitude, row.Longitude, row.CreatedAt)
	post.Text = row.Text
	post.LikeCount = row.LikeCount
	post.CommentCount = row.CommentCount
	post.IsAnonymous = row.IsAnonymous
	return post
}

// newSupabasePostRow ドメインモデルを行に変換
func newSupabasePostRow(post *model.Post) supabasePostRow {
	loc := post.ToLatLng()
	return supabasePostRow{
		ID:           post.ID,
		Text:         post.Text,
		Latitude:     loc.Lat,
		Longitude:    loc.Lng,
		LikeCount:    post.LikeCount,
		CommentCount: post.CommentCount,
		IsAnonymous:  post.IsAnonymous,
		CreatedAt:    post.CreatedAt,
	}
}

func (r *SupabasePostsRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	data, count, err := r.client.GetClient().From("posts").Select("*", "exact", false).Eq("id", id).Execute()
	if err != nil {
		return nil, fmt.Errorf("投稿データの取得失敗: %w", err)
	}
	_ = count

	var rows []supabasePostRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, fmt.Errorf("投稿データのJSONアンマーシャル失敗: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("投稿 ID %s が見つかりません", id)
	}

	return rows[0].toPost(), nil
}

func (r *SupabasePostsRepository) FindInBoundingBox(ctx context.Context, box model.BoundingBox, zoomLevel float64) ([]*model.Post, error) {
	data, count, err := r.client.GetClient().From("posts").
		Select("*", "exact", false).
		Gte("latitude", fmt.Sprintf("%f", box.MinLat)).
		Lte("latitude", fmt.Sprintf("%f", box.MaxLat)).
		Gte("longitude", fmt.Sprintf("%f", box.MinLng)).
		Lte("longitude", fmt.Sprintf("%f", box.MaxLng)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("範囲内の投稿データ取得失敗: %w", err)
	}
	_ = count

	var rows []supabasePostRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, fmt.Errorf("投稿データのJSONアンマーシャル失敗: %w", err)
	}

	posts := make([]*model.Post, 0, len(rows))
	for i := range rows {
		posts = append(posts, rows[i].toPost())
	}
	return posts, nil
}

func (r *SupabasePostsRepository) Create(ctx context.Context, post *model.Post) error {
	data, err := json.Marshal(newSupabasePostRow(post))
	if err != nil {
		return fmt.Errorf("投稿データのJSONマーシャル失敗: %w", err)
	}

	_, _, err = r.client.GetClient().From("posts").Insert(string(data), false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("投稿の作成失敗: %w", err)
	}

	return nil
}
