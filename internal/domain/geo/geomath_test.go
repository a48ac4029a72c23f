package geo

import (
	"math"
	"testing"

	"MachiMap-App/internal/domain/model"
)

// TestDistance 既知の2点間距離の検証
func TestDistance(t *testing.T) {
	t.Run("同一点の距離は0", func(t *testing.T) {
		p := model.LatLng{Lat: 35.0116, Lng: 135.7681} // 京都
		if d := Distance(p, p); d != 0 {
			t.Errorf("同一点の距離 = %f, want 0", d)
		}
	})

	t.Run("緯度1度はおよそ111km", func(t *testing.T) {
		a := model.LatLng{Lat: 35.0, Lng: 135.0}
		b := model.LatLng{Lat: 36.0, Lng: 135.0}
		d := Distance(a, b)
		if d < 110000 || d > 112000 {
			t.Errorf("緯度1度の距離 = %fm, want およそ111km", d)
		}
	})

	t.Run("距離は対称", func(t *testing.T) {
		a := model.LatLng{Lat: 34.9853, Lng: 135.7581}
		b := model.LatLng{Lat: 35.0116, Lng: 135.7681}
		if math.Abs(Distance(a, b)-Distance(b, a)) > 1e-9 {
			t.Error("Distance(a,b) != Distance(b,a)")
		}
	})
}

// TestOffset 球面順算の検証
func TestOffset(t *testing.T) {
	origin := model.LatLng{Lat: 35.0116, Lng: 135.7681}

	t.Run("オフセット先までの距離が指定値と一致する", func(t *testing.T) {
		for _, meters := range []float64{5, 20, 100, 1000} {
			moved := Offset(origin, meters, math.Pi/4)
			d := Distance(origin, moved)
			if math.Abs(d-meters) > meters*0.001 {
				t.Errorf("Offset %fm -> 実距離 %fm", meters, d)
			}
		}
	})

	t.Run("方位0は北へ進む", func(t *testing.T) {
		moved := Offset(origin, 100, 0)
		if moved.Lat <= origin.Lat {
			t.Errorf("北へのオフセットで緯度が増えていません: %f -> %f", origin.Lat, moved.Lat)
		}
		if math.Abs(moved.Lng-origin.Lng) > 1e-6 {
			t.Errorf("北へのオフセットで経度が変化しました: %f -> %f", origin.Lng, moved.Lng)
		}
	})
}

// TestBoundingBox パディング付き問い合わせ範囲の検証
func TestBoundingBox(t *testing.T) {
	region := model.Region{
		Center: model.LatLng{Lat: 35.0, Lng: 135.0},
		Span:   model.Span{LatDelta: 0.1, LngDelta: 0.1},
	}

	box := BoundingBox(region, 0.2)

	// スパン0.1の20%パディングで半幅は 0.05 + 0.02 = 0.07
	wantHalf := 0.07
	if math.Abs(box.MaxLat-35.0-wantHalf) > 1e-9 || math.Abs(35.0-box.MinLat-wantHalf) > 1e-9 {
		t.Errorf("緯度範囲 = [%f, %f], want 中心±%f", box.MinLat, box.MaxLat, wantHalf)
	}
	if math.Abs(box.MaxLng-135.0-wantHalf) > 1e-9 || math.Abs(135.0-box.MinLng-wantHalf) > 1e-9 {
		t.Errorf("経度範囲 = [%f, %f], want 中心±%f", box.MinLng, box.MaxLng, wantHalf)
	}
}

// TestContains 矩形の包含判定
func TestContains(t *testing.T) {
	region := model.Region{
		Center: model.LatLng{Lat: 35.0, Lng: 135.0},
		Span:   model.Span{LatDelta: 0.2, LngDelta: 0.2},
	}

	if !Contains(model.LatLng{Lat: 35.05, Lng: 135.05}, region) {
		t.Error("領域内の座標がfalseになりました")
	}
	if Contains(model.LatLng{Lat: 35.5, Lng: 135.0}, region) {
		t.Error("領域外の座標がtrueになりました")
	}
}

// TestClampSpan 退化したスパンのクランプ
func TestClampSpan(t *testing.T) {
	cases := []model.Span{
		{LatDelta: 0, LngDelta: 0},
		{LatDelta: -1, LngDelta: -1},
		{LatDelta: math.NaN(), LngDelta: math.NaN()},
	}
	for _, span := range cases {
		clamped := ClampSpan(span)
		if !(clamped.LatDelta > 0) || !(clamped.LngDelta > 0) {
			t.Errorf("クランプ後のスパンが正になっていません: %+v -> %+v", span, clamped)
		}
	}
}
