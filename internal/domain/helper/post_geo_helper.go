package helper

import (
	"sort"

	"MachiMap-App/internal/domain/geo"
	"MachiMap-App/internal/domain/model"
)

// SortPostsByCreatedAt 投稿を作成日時の昇順に並べたコピーを返す
// 同時刻はIDで安定的にタイブレークし、再計算のたびに同じ順序になることを保証する
func SortPostsByCreatedAt(posts []*model.Post) []*model.Post {
	sorted := make([]*model.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}

// CountNeighborsWithin 対象投稿から半径radiusMeters以内にある他の投稿数を数える
func CountNeighborsWithin(target *model.Post, posts []*model.Post, radiusMeters float64) int {
	origin := target.ToLatLng()
	count := 0
	for _, post := range posts {
		if post.ID == target.ID {
			continue
		}
		if geo.Distance(origin, post.ToLatLng()) <= radiusMeters {
			count++
		}
	}
	return count
}
