package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "MachiMap-App/internal/domain/model"
	"MachiMap-App/internal/domain/repository"
	"MachiMap-App/model"
)

// PostsService 投稿に関する薄いCRUDを提供するサービス
type PostsService interface {
	// CreatePost 投稿を新規作成
	CreatePost(ctx context.Context, req *model.CreatePostRequest) (*model.CreatePostResponse, error)

	// GetPostsByBoundingBox 境界ボックス内の投稿一覧を取得
	GetPostsByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]model.PostSummary, error)

	// GetPostDetail 投稿の詳細を取得
	GetPostDetail(ctx context.Context, id string) (*model.PostSummary, error)
}

// postsServiceImpl PostsServiceの実装
type postsServiceImpl struct {
	postsRepo repository.PostsRepository
}

// NewPostsService PostsServiceの新しいインスタンスを作成
func NewPostsService(postsRepo repository.PostsRepository) PostsService {
	return &postsServiceImpl{
		postsRepo: postsRepo,
	}
}

// CreatePost 投稿を作成
func (s *postsServiceImpl) CreatePost(ctx context.Context, req *model.CreatePostRequest) (*model.CreatePostResponse, error) {
	if err := s.validateCreatePostRequest(req); err != nil {
		return nil, fmt.Errorf("リクエストの検証失敗: %w", err)
	}

	postID := uuid.New().String()

	post := domain.NewPostAt(postID, req.Location.Latitude, req.Location.Longitude, time.Now())
	post.Text = req.Text
	post.IsAnonymous = req.IsAnonymous

	if err := s.postsRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("投稿の保存失敗: %w", err)
	}

	return &model.CreatePostResponse{
		Status:  "created",
		Message: "投稿を作成しました",
		PostID:  postID,
	}, nil
}

// GetPostsByBoundingBox 境界ボックス内の投稿一覧を取得
func (s *postsServiceImpl) GetPostsByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]model.PostSummary, error) {
	box := domain.BoundingBox{
		MinLat: minLat,
		MaxLat: maxLat,
		MinLng: minLng,
		MaxLng: maxLng,
	}

	posts, err := s.postsRepo.FindInBoundingBox(ctx, box, 0)
	if err != nil {
		return nil, fmt.Errorf("範囲内の投稿取得失敗: %w", err)
	}

	summaries := make([]model.PostSummary, 0, len(posts))
	for _, post := range posts {
		summaries = append(summaries, toPostSummary(post))
	}
	return summaries, nil
}

// GetPostDetail 投稿の詳細を取得
func (s *postsServiceImpl) GetPostDetail(ctx context.Context, id string) (*model.PostSummary, error) {
	post, err := s.postsRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("投稿詳細の取得失敗: %w", err)
	}

	summary := toPostSummary(post)
	return &summary, nil
}

// validateCreatePostRequest 入力バリデーション
func (s *postsServiceImpl) validateCreatePostRequest(req *model.CreatePostRequest) error {
	if req.Text == "" {
		return fmt.Errorf("本文が空です")
	}
	if req.Location == nil {
		return fmt.Errorf("位置情報が指定されていません")
	}
	if req.Location.Latitude < -90 || req.Location.Latitude > 90 {
		return fmt.Errorf("緯度が範囲外です: %f", req.Location.Latitude)
	}
	if req.Location.Longitude < -180 || req.Location.Longitude > 180 {
		return fmt.Errorf("経度が範囲外です: %f", req.Location.Longitude)
	}
	return nil
}

// toPostSummary ドメインモデルをDTOに変換
func toPostSummary(post *domain.Post) model.PostSummary {
	loc := post.ToLatLng()
	return model.PostSummary{
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
