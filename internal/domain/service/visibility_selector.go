package service

import (
	"MachiMap-App/internal/domain/model"
	"MachiMap-App/internal/domain/strategy"
)

// VisibilitySelector 表示モードに応じて表示対象の投稿を選択するドメインサービス
// モードごとの選択ロジックはVisibilityStrategyに委譲する
type VisibilitySelector struct {
	strategies map[model.DisplayMode]strategy.VisibilityStrategy
}

// NewVisibilitySelector 全モードの戦略を備えたVisibilitySelectorを作成
func NewVisibilitySelector() *VisibilitySelector {
	return &VisibilitySelector{
		strategies: strategy.NewVisibilityStrategies(),
	}
}

// SelectVisible モードに対応する戦略で表示対象を選択する
func (s *VisibilitySelector) SelectVisible(mode model.DisplayMode, posts []*model.Post) []*model.Post {
	st, ok := s.strategies[mode]
	if !ok {
		// 未知のモードは安全側に倒して何も表示しない
		return []*model.Post{}
	}
	return st.SelectVisible(posts)
}
