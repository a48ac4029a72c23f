package strategy

import (
	"MachiMap-App/internal/domain/model"
)

// NearVisibilityStrategy 近景モードの戦略
// フィルタリングは行わず全投稿をそのまま表示対象にする（重なりは衝突回避とフェードで解決する）
type NearVisibilityStrategy struct{}

func NewNearVisibilityStrategy() *NearVisibilityStrategy {
	return &NearVisibilityStrategy{}
}

func (s *NearVisibilityStrategy) Mode() model.DisplayMode {
	return model.DisplayModeNear
}

func (s *NearVisibilityStrategy) SelectVisible(posts []*model.Post) []*model.Post {
	return posts
}
