package geo

import (
	"math"

	"github.com/paulmach/orb"

	"MachiMap-App/internal/domain/model"
)

// Distance 2点間の大円距離をメートルで計算する
func Distance(a, b model.LatLng) float64 {
	lat1Rad := a.Lat * math.Pi / 180
	lng1Rad := a.Lng * math.Pi / 180
	lat2Rad := b.Lat * math.Pi / 180
	lng2Rad := b.Lng * math.Pi / 180

	dLat := lat2Rad - lat1Rad
	dLng := lng2Rad - lng1Rad

	// Haversine公式
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return model.EarthRadiusMeters * c
}

// Offset 起点から指定方位（ラジアン）へ指定距離だけ進んだ座標を球面順算で求める
func Offset(origin model.LatLng, meters float64, bearingRad float64) model.LatLng {
	latRad := origin.Lat * math.Pi / 180
	lngRad := origin.Lng * math.Pi / 180
	angular := meters / model.EarthRadiusMeters

	newLat := math.Asin(math.Sin(latRad)*math.Cos(angular) +
		math.Cos(latRad)*math.Sin(angular)*math.Cos(bearingRad))
	newLng := lngRad + math.Atan2(
		math.Sin(bearingRad)*math.Sin(angular)*math.Cos(latRad),
		math.Cos(angular)-math.Sin(latRad)*math.Sin(newLat))

	return model.LatLng{
		Lat: newLat * 180 / math.Pi,
		Lng: newLng * 180 / math.Pi,
	}
}

// BoundingBox 中心とスパンからパディング付きの問い合わせ範囲を作成する
// 極や経度±180度の折り返しは未対応（既知のギャップ）
func BoundingBox(region model.Region, paddingFactor float64) model.BoundingBox {
	span := ClampSpan(region.Span)

	halfLat := span.LatDelta / 2
	halfLng := span.LngDelta / 2

	// orb.Bound を使用して範囲を構築し、スパンに比例したパディングを加える
	bound := orb.Bound{
		Min: orb.Point{region.Center.Lng - halfLng, region.Center.Lat - halfLat},
		Max: orb.Point{region.Center.Lng + halfLng, region.Center.Lat + halfLat},
	}
	bound = bound.Pad(math.Max(span.LatDelta, span.LngDelta) * paddingFactor)

	return model.BoundingBox{
		MinLat: bound.Min.Lat(),
		MaxLat: bound.Max.Lat(),
		MinLng: bound.Min.Lon(),
		MaxLng: bound.Max.Lon(),
	}
}

// Contains 座標が表示領域の矩形内にあるかを判定する
func Contains(coord model.LatLng, region model.Region) bool {
	span := ClampSpan(region.Span)
	bound := orb.Bound{
		Min: orb.Point{region.Center.Lng - span.LngDelta/2, region.Center.Lat - span.LatDelta/2},
		Max: orb.Point{region.Center.Lng + span.LngDelta/2, region.Center.Lat + span.LatDelta/2},
	}
	return bound.Contains(orb.Point{coord.Lng, coord.Lat})
}

// ClampSpan 退化したスパン（0以下・NaN）を最小イプシロンに切り上げる
// 以降のスケール計算でのゼロ除算を防ぐ
func ClampSpan(span model.Span) model.Span {
	if !(span.LatDelta > model.SpanEpsilon) {
		span.LatDelta = model.SpanEpsilon
	}
	if !(span.LngDelta > model.SpanEpsilon) {
		span.LngDelta = model.SpanEpsilon
	}
	return span
}
