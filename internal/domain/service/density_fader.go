package service

import (
	"MachiMap-App/internal/domain/helper"
	"MachiMap-App/internal/domain/model"
)

// DensityFader 近景モード専用。局所的な密集度から投稿ごとの不透明度を計算する
// ステートレスで、サイクルごとに全件再計算される。不透明度0の投稿は描画対象外
type DensityFader struct {
	radius float64
}

// NewDensityFader 新しいDensityFaderを作成
func NewDensityFader(cfg model.VisualizationConfig) *DensityFader {
	return &DensityFader{radius: cfg.DensityRadius}
}

// ComputeOpacities 投稿IDから不透明度[0,1]へのマップを全件再計算する
// 近傍数0〜4は1.0、5〜9は線形フェード、10以上は0.0
func (f *DensityFader) ComputeOpacities(posts []*model.Post) map[string]float64 {
	opacities := make(map[string]float64, len(posts))
	for _, post := range posts {
		neighbors := helper.CountNeighborsWithin(post, posts, f.radius)
		opacities[post.ID] = opacityForNeighborCount(neighbors)
	}
	return opacities
}

// opacityForNeighborCount 近傍数から不透明度を求める
func opacityForNeighborCount(count int) float64 {
	if count <= model.DensityFadeStart {
		return 1.0
	}
	if count >= model.DensityOpaqueFloor {
		return 0.0
	}
	opacity := 1.0 - float64(count-model.DensityFadeStart)/model.DensityFadeRange
	if opacity < 0 {
		return 0.0
	}
	if opacity > 1 {
		return 1.0
	}
	return opacity
}
