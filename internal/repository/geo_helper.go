package repository

import (
	"fmt"

	"github.com/paulmach/orb"

	"MachiMap-App/internal/domain/model"
)

// BoundingBoxToBound model.BoundingBox を orb.Bound に変換
func BoundingBoxToBound(box model.BoundingBox) orb.Bound {
	bound := orb.Bound{
		Min: orb.Point{box.MinLng, box.MinLat},
		Max: orb.Point{box.MaxLng, box.MaxLat},
	}
	// Min/Maxの逆転した入力でも正しい範囲になるよう拡張で正規化する
	return bound.Extend(orb.Point{box.MaxLng, box.MaxLat}).Extend(orb.Point{box.MinLng, box.MinLat})
}

// BoundingBoxCacheKey バウンディングボックスからキャッシュキーを作成
// 座標を小数4桁（約11m）に丸め、わずかに異なる範囲を同じエントリーに集約する
func BoundingBoxCacheKey(box model.BoundingBox, zoomLevel float64) string {
	return fmt.Sprintf("posts:bbox:%.4f:%.4f:%.4f:%.4f:z%.3f",
		box.MinLat, box.MaxLat, box.MinLng, box.MaxLng, zoomLevel)
}
