package repository

import (
	"testing"

	"MachiMap-App/internal/domain/model"
)

// TestBoundingBoxToBound Min/Maxが逆転した入力でも正しい範囲に正規化されること
func TestBoundingBoxToBound(t *testing.T) {
	t.Run("正しい順序の入力はそのまま", func(t *testing.T) {
		box := model.BoundingBox{MinLat: 34.9, MaxLat: 35.1, MinLng: 135.6, MaxLng: 135.9}
		bound := BoundingBoxToBound(box)

		if bound.Min.Lat() != 34.9 || bound.Max.Lat() != 35.1 {
			t.Errorf("緯度範囲が一致しません: %+v", bound)
		}
		if bound.Min.Lon() != 135.6 || bound.Max.Lon() != 135.9 {
			t.Errorf("経度範囲が一致しません: %+v", bound)
		}
	})

	t.Run("逆転した入力は正規化される", func(t *testing.T) {
		box := model.BoundingBox{MinLat: 35.1, MaxLat: 34.9, MinLng: 135.9, MaxLng: 135.6}
		bound := BoundingBoxToBound(box)

		if bound.Min.Lat() > bound.Max.Lat() || bound.Min.Lon() > bound.Max.Lon() {
			t.Errorf("Min/Maxが正規化されていません: %+v", bound)
		}
		if bound.Min.Lat() != 34.9 || bound.Max.Lon() != 135.9 {
			t.Errorf("正規化後の範囲が期待と異なります: %+v", bound)
		}
	})
}

// TestBoundingBoxCacheKey 近い範囲は同じキーに集約され、ズームが違えばキーも変わること
func TestBoundingBoxCacheKey(t *testing.T) {
	base := model.BoundingBox{MinLat: 34.90001, MaxLat: 35.10002, MinLng: 135.60001, MaxLng: 135.90002}
	nearby := model.BoundingBox{MinLat: 34.90003, MaxLat: 35.10004, MinLng: 135.60003, MaxLng: 135.90004}

	if BoundingBoxCacheKey(base, 0.1) != BoundingBoxCacheKey(nearby, 0.1) {
		t.Error("小数4桁に丸めた同一範囲は同じキーになるべき")
	}
	if BoundingBoxCacheKey(base, 0.1) == BoundingBoxCacheKey(base, 0.5) {
		t.Error("ズームレベルが異なればキーも異なるべき")
	}
}
