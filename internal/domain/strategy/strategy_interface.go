package strategy

import (
	"MachiMap-App/internal/domain/model"
)

// VisibilityStrategy は、投稿スナップショットから表示モードに合った投稿リストを選び出す戦略のインターフェース
type VisibilityStrategy interface {
	// 対応する表示モードを返す
	Mode() model.DisplayMode

	// 表示対象の投稿を選択する
	// 入力スライスは不変スナップショットとして扱い、変更してはならない
	SelectVisible(posts []*model.Post) []*model.Post
}

// NewVisibilityStrategies は全表示モードの戦略マップを作成する
func NewVisibilityStrategies() map[model.DisplayMode]VisibilityStrategy {
	return map[model.DisplayMode]VisibilityStrategy{
		model.DisplayModeNear: NewNearVisibilityStrategy(),
		model.DisplayModeMid:  NewMidVisibilityStrategy(),
		model.DisplayModeFar:  NewFarVisibilityStrategy(),
	}
}
