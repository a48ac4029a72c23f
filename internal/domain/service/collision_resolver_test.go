package service

import (
	"fmt"
	"math"
	"testing"
	"time"

	"MachiMap-App/internal/domain/geo"
	"MachiMap-App/internal/domain/model"
)

func collisionTestConfig() model.VisualizationConfig {
	return model.DefaultVisualizationConfig()
}

// TestCollisionResolver_SeparatesNearbyPosts 5m以内に密集した3投稿が20m以上に分離されること
func TestCollisionResolver_SeparatesNearbyPosts(t *testing.T) {
	resolver := NewCollisionResolver(collisionTestConfig())

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	origin := model.LatLng{Lat: 35.0116, Lng: 135.7681}
	p2 := geo.Offset(origin, 3, math.Pi/2)
	p3 := geo.Offset(origin, 4, math.Pi)

	posts := []*model.Post{
		model.NewPostAt("post-1", origin.Lat, origin.Lng, base),
		model.NewPostAt("post-2", p2.Lat, p2.Lng, base.Add(time.Minute)),
		model.NewPostAt("post-3", p3.Lat, p3.Lng, base.Add(2*time.Minute)),
	}

	result := resolver.Resolve(posts)

	if len(result.AdjustedPositions) != 3 {
		t.Fatalf("表示座標の数 = %d, want 3", len(result.AdjustedPositions))
	}
	if len(result.FallbackIDs) != 0 {
		t.Errorf("3件の分離でフォールバック配置は発生しないはず: %v", result.FallbackIDs)
	}

	ids := []string{"post-1", "post-2", "post-3"}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			d := geo.Distance(result.AdjustedPositions[ids[i]], result.AdjustedPositions[ids[j]])
			if d < model.CollisionMinDistanceMeters {
				t.Errorf("%s と %s の距離 = %fm, want >= %fm", ids[i], ids[j], d, model.CollisionMinDistanceMeters)
			}
		}
	}
}

// TestCollisionResolver_Deterministic 同一入力に対して常に同一の出力になること
func TestCollisionResolver_Deterministic(t *testing.T) {
	resolver := NewCollisionResolver(collisionTestConfig())

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	origin := model.LatLng{Lat: 35.0116, Lng: 135.7681}

	var posts []*model.Post
	for i := 0; i < 12; i++ {
		p := geo.Offset(origin, float64(i), float64(i)*0.7)
		// 同時刻の投稿を混ぜてIDタイブレークも検証する
		posts = append(posts, model.NewPostAt(fmt.Sprintf("post-%02d", i), p.Lat, p.Lng, base.Add(time.Duration(i/3)*time.Minute)))
	}

	first := resolver.Resolve(posts)
	second := resolver.Resolve(posts)

	for id, pos := range first.AdjustedPositions {
		if second.AdjustedPositions[id] != pos {
			t.Errorf("投稿 %s の表示座標が再計算で変化しました: %+v -> %+v", id, pos, second.AdjustedPositions[id])
		}
	}
	if len(first.FallbackIDs) != len(second.FallbackIDs) {
		t.Errorf("フォールバック集合が再計算で変化しました: %v -> %v", first.FallbackIDs, second.FallbackIDs)
	}
}

// TestCollisionResolver_FallbackIdentifiable 8方向すべて失敗した投稿が識別できること
func TestCollisionResolver_FallbackIdentifiable(t *testing.T) {
	resolver := NewCollisionResolver(collisionTestConfig())

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// 完全に同一の座標に大量の投稿を置くと、原点＋8方向の9箇所では足りなくなる
	var posts []*model.Post
	for i := 0; i < 15; i++ {
		posts = append(posts, model.NewPostAt(fmt.Sprintf("post-%02d", i), 35.0116, 135.7681, base.Add(time.Duration(i)*time.Second)))
	}

	result := resolver.Resolve(posts)

	if len(result.FallbackIDs) == 0 {
		t.Fatal("15件の同一座標でフォールバック配置が発生するはず")
	}

	// フォールバック以外の投稿同士は最小距離が保証される
	for idA, posA := range result.AdjustedPositions {
		if result.FallbackIDs[idA] {
			continue
		}
		for idB, posB := range result.AdjustedPositions {
			if idA >= idB || result.FallbackIDs[idB] {
				continue
			}
			if d := geo.Distance(posA, posB); d < model.CollisionMinDistanceMeters {
				t.Errorf("非フォールバックの %s と %s の距離 = %fm", idA, idB, d)
			}
		}
	}
}

// TestCollisionResolver_KeepsIsolatedPostsInPlace 孤立した投稿は元の座標のまま
func TestCollisionResolver_KeepsIsolatedPostsInPlace(t *testing.T) {
	resolver := NewCollisionResolver(collisionTestConfig())

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	posts := []*model.Post{
		model.NewPostAt("kyoto", 35.0116, 135.7681, base),
		model.NewPostAt("osaka", 34.6937, 135.5023, base.Add(time.Minute)),
	}

	result := resolver.Resolve(posts)

	for _, post := range posts {
		original := post.ToLatLng()
		if result.AdjustedPositions[post.ID] != original {
			t.Errorf("孤立した投稿 %s の座標が動かされました", post.ID)
		}
	}
}
