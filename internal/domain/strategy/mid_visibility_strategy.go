package strategy

import (
	"sort"

	"MachiMap-App/internal/domain/model"
)

// MidVisibilityStrategy 中景モードの戦略
// 高エンゲージメント投稿（匿名でなく、いいね1件以上）をいいね降順で上位30件、
// 残りの通常投稿を受信順のまま先頭30件取り、高エンゲージメント→通常の順に連結する（最大60件）
type MidVisibilityStrategy struct{}

func NewMidVisibilityStrategy() *MidVisibilityStrategy {
	return &MidVisibilityStrategy{}
}

func (s *MidVisibilityStrategy) Mode() model.DisplayMode {
	return model.DisplayModeMid
}

func (s *MidVisibilityStrategy) SelectVisible(posts []*model.Post) []*model.Post {
	var highEngagement []*model.Post
	var regular []*model.Post

	for _, post := range posts {
		if post.IsHighEngagement() {
			highEngagement = append(highEngagement, post)
		} else {
			regular = append(regular, post)
		}
	}

	// いいね数降順。同数は受信順を保つ
	sort.SliceStable(highEngagement, func(i, j int) bool {
		return highEngagement[i].LikeCount > highEngagement[j].LikeCount
	})

	if len(highEngagement) > model.MidModeHighEngagementLimit {
		highEngagement = highEngagement[:model.MidModeHighEngagementLimit]
	}
	// 通常投稿はソートせず受信順の先頭から取る
	if len(regular) > model.MidModeRegularLimit {
		regular = regular[:model.MidModeRegularLimit]
	}

	selected := make([]*model.Post, 0, len(highEngagement)+len(regular))
	selected = append(selected, highEngagement...)
	selected = append(selected, regular...)
	return selected
}
