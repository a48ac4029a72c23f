package model

import (
	"testing"
	"time"
)

// TestPostLocationConversion LocationとGeometryの相互変換
func TestPostLocationConversion(t *testing.T) {
	t.Run("NewPostAtはGeoJSONの[経度, 緯度]順で位置を持つ", func(t *testing.T) {
		post := NewPostAt("post-1", 35.0116, 135.7681, time.Now())

		if post.Location == nil || post.Location.Type != "Point" {
			t.Fatalf("位置情報がPoint型ではありません: %+v", post.Location)
		}
		if post.Location.Coordinates[0] != 135.7681 || post.Location.Coordinates[1] != 35.0116 {
			t.Errorf("座標の順序が[lng, lat]ではありません: %v", post.Location.Coordinates)
		}

		loc := post.ToLatLng()
		if loc.Lat != 35.0116 || loc.Lng != 135.7681 {
			t.Errorf("ToLatLngの結果が元の座標と一致しません: %+v", loc)
		}
	})

	t.Run("位置情報がない投稿はゼロ値のLatLngを返す", func(t *testing.T) {
		post := &Post{ID: "no-location"}
		loc := post.ToLatLng()
		if loc.Lat != 0 || loc.Lng != 0 {
			t.Errorf("位置情報なしの投稿はゼロ値を返すべき: %+v", loc)
		}
	})

	t.Run("不完全なGeometryはFromGeometryで無視される", func(t *testing.T) {
		var loc Location
		loc.FromGeometry(&Geometry{Type: "Point", Coordinates: []float64{135.0}})
		if loc.Latitude != 0 || loc.Longitude != 0 {
			t.Errorf("座標が2要素未満のGeometryは無視されるべき: %+v", loc)
		}
	})
}

// TestIsHighEngagement 高エンゲージメント判定
func TestIsHighEngagement(t *testing.T) {
	cases := []struct {
		name      string
		likes     int
		anonymous bool
		want      bool
	}{
		{"いいねあり・記名", 5, false, true},
		{"いいねあり・匿名", 5, true, false},
		{"いいねなし・記名", 0, false, false},
		{"いいねなし・匿名", 0, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			post := NewPostAt("p", 35.0, 135.0, time.Now())
			post.LikeCount = tc.likes
			post.IsAnonymous = tc.anonymous
			if got := post.IsHighEngagement(); got != tc.want {
				t.Errorf("IsHighEngagement() = %v, want %v", got, tc.want)
			}
		})
	}
}
