package strategy

import (
	"MachiMap-App/internal/domain/model"
)

// FarVisibilityStrategy 遠景モードの戦略
// 個別の投稿は表示せず、クラスタ表示に置き換えるため常に空を返す
type FarVisibilityStrategy struct{}

func NewFarVisibilityStrategy() *FarVisibilityStrategy {
	return &FarVisibilityStrategy{}
}

func (s *FarVisibilityStrategy) Mode() model.DisplayMode {
	return model.DisplayModeFar
}

func (s *FarVisibilityStrategy) SelectVisible(posts []*model.Post) []*model.Post {
	return []*model.Post{}
}
