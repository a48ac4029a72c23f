package service

import (
	"math"

	"MachiMap-App/internal/domain/geo"
	"MachiMap-App/internal/domain/helper"
	"MachiMap-App/internal/domain/model"
)

// CollisionResult 衝突回避の計算結果
// AdjustedPositionsは投稿IDから表示座標へのマップで、投稿やモードが変わるたびに丸ごと再生成される
type CollisionResult struct {
	AdjustedPositions map[string]model.LatLng
	FallbackIDs       map[string]bool // 8方向すべて失敗し、無条件配置になった投稿
}

// CollisionResolver 近景モード専用。重なり合う投稿に最小距離以上離れた表示座標を割り当てる
// 元の座標からできるだけ近い位置に置く。計算量はO(n²)だが近景モードの投稿数は少ないため許容する
type CollisionResolver struct {
	minDistance float64
	probeRadius float64
}

// NewCollisionResolver 新しいCollisionResolverを作成
func NewCollisionResolver(cfg model.VisualizationConfig) *CollisionResolver {
	return &CollisionResolver{
		minDistance: cfg.CollisionMinDistance,
		probeRadius: cfg.CollisionMinDistance * 1.1,
	}
}

// Resolve 全投稿の表示座標を決定する。常に全件を再計算し、差分更新は行わない
func (r *CollisionResolver) Resolve(posts []*model.Post) *CollisionResult {
	result := &CollisionResult{
		AdjustedPositions: make(map[string]model.LatLng, len(posts)),
		FallbackIDs:       make(map[string]bool),
	}

	// 作成日時の昇順（同時刻はID）で配置し、決定的な結果にする
	ordered := helper.SortPostsByCreatedAt(posts)

	var placed []model.LatLng
	for _, post := range ordered {
		origin := post.ToLatLng()
		position, fallback := r.placeAvoidingOverlap(origin, placed)
		result.AdjustedPositions[post.ID] = position
		if fallback {
			result.FallbackIDs[post.ID] = true
		}
		placed = append(placed, position)
	}

	return result
}

// placeAvoidingOverlap 配置済み座標と重ならない位置を探す
func (r *CollisionResolver) placeAvoidingOverlap(origin model.LatLng, placed []model.LatLng) (model.LatLng, bool) {
	if r.clearOf(origin, placed) {
		return origin, false
	}

	// 真の座標と衝突する場合は45度刻みの8方向を探索する
	for i := 0; i < model.CollisionProbeCount; i++ {
		bearing := float64(i) * (math.Pi / 4)
		candidate := geo.Offset(origin, r.probeRadius, bearing)
		if r.clearOf(candidate, placed) {
			return candidate, false
		}
	}

	// 8方向すべて失敗: 方位0へ2倍半径の位置に無条件で配置する
	// 重なりが残る可能性はあるがベストエフォートとして許容（レンダリングは止めない）
	return geo.Offset(origin, r.probeRadius*2, 0), true
}

// clearOf 候補座標が配置済みのすべての座標から最小距離以上離れているか
func (r *CollisionResolver) clearOf(candidate model.LatLng, placed []model.LatLng) bool {
	for _, p := range placed {
		if geo.Distance(candidate, p) < r.minDistance {
			return false
		}
	}
	return true
}
