package service

import (
	"math"
	"sort"

	"MachiMap-App/internal/domain/model"
)

// gridKey グリッドセルの識別子（floor(lat/cell), floor(lng/cell)）
type gridKey struct {
	Row int
	Col int
}

// Clusterer 遠景モード専用。投稿をグリッドセルに分割してクラスタへ集約する
// セルをまたぐマージは行わない。境界での分断はDBSCAN等を使わない近似として許容する
type Clusterer struct {
	minCellSize float64
	cellFactor  float64
}

// NewClusterer 新しいClustererを作成
func NewClusterer(cfg model.VisualizationConfig) *Clusterer {
	return &Clusterer{
		minCellSize: cfg.ClusterMinCellSize,
		cellFactor:  cfg.ClusterCellFactor,
	}
}

// CellSize スパンからグリッドセルの一辺（度数）を求める
func (c *Clusterer) CellSize(span model.Span) float64 {
	return math.Max(c.minCellSize, span.LatDelta*c.cellFactor)
}

// BuildClusters 投稿をグリッドに分割し、セルごとに1つのクラスタを作る
// サイクルごとに丸ごと再構築される。全クラスタのメンバーの和集合は入力と厳密に一致する
func (c *Clusterer) BuildClusters(posts []*model.Post, span model.Span) []model.Cluster {
	cellSize := c.CellSize(span)

	buckets := make(map[gridKey][]*model.Post)
	for _, post := range posts {
		loc := post.ToLatLng()
		key := gridKey{
			Row: int(math.Floor(loc.Lat / cellSize)),
			Col: int(math.Floor(loc.Lng / cellSize)),
		}
		buckets[key] = append(buckets[key], post)
	}

	// セルキー順に整列して決定的な出力にする
	keys := make([]gridKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Row != keys[j].Row {
			return keys[i].Row < keys[j].Row
		}
		return keys[i].Col < keys[j].Col
	})

	clusters := make([]model.Cluster, 0, len(keys))
	for _, key := range keys {
		members := buckets[key]
		clusters = append(clusters, buildCluster(members))
	}
	return clusters
}

// buildCluster メンバー座標の算術平均を重心とするクラスタを作成する
func buildCluster(members []*model.Post) model.Cluster {
	var sumLat, sumLng float64
	memberIDs := make([]string, 0, len(members))
	for _, post := range members {
		loc := post.ToLatLng()
		sumLat += loc.Lat
		sumLng += loc.Lng
		memberIDs = append(memberIDs, post.ID)
	}
	n := float64(len(members))
	return model.Cluster{
		Centroid: model.LatLng{
			Lat: sumLat / n,
			Lng: sumLng / n,
		},
		Count:     len(members),
		MemberIDs: memberIDs,
	}
}
