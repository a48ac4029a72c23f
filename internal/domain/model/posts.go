package model

import "time"

// LatLng 緯度経度を表す基本的な型（可視化計算などで使用）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Post 位置情報付き投稿を表すモデル
// バックエンドが所有する不変スナップショットであり、再取得時に丸ごと置き換えられる
type Post struct {
	ID           string    `json:"id" db:"id"`                       // ユニークな投稿ID
	Text         string    `json:"text" db:"text"`                   // 投稿本文
	Location     *Geometry `json:"location" db:"location"`           // 位置情報（PostGIS GEOMETRY型）
	LikeCount    int       `json:"like_count" db:"like_count"`       // いいね数
	CommentCount int       `json:"comment_count" db:"comment_count"` // コメント数
	IsAnonymous  bool      `json:"is_anonymous" db:"is_anonymous"`   // 匿名投稿フラグ
	CreatedAt    time.Time `json:"created_at" db:"created_at"`       // 投稿日時
}

// ToLatLng Postの位置情報をLatLng型に変換
func (p *Post) ToLatLng() LatLng {
	var loc Location
	loc.FromGeometry(p.Location)
	return LatLng{
		Lat: loc.Latitude,
		Lng: loc.Longitude,
	}
}

// IsHighEngagement 匿名でなく、いいねが1件以上ある投稿かどうか
func (p *Post) IsHighEngagement() bool {
	return !p.IsAnonymous && p.LikeCount > 0
}

// Geometry PostGIS GEOMETRY型に対応する構造体
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [longitude, latitude]
}

type Location struct {
	Latitude  float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

// ToGeometry Location を PostGIS GEOMETRY 型に変換
func (l *Location) ToGeometry() *Geometry {
	return &Geometry{
		Type:        "Point",
		Coordinates: []float64{l.Longitude, l.Latitude},
	}
}

// FromGeometry PostGIS GEOMETRY 型から Location に変換
func (l *Location) FromGeometry(g *Geometry) {
	if g != nil && len(g.Coordinates) >= 2 {
		l.Longitude = g.Coordinates[0]
		l.Latitude = g.Coordinates[1]
	}
}

// NewPostAt 座標を指定して投稿モデルを作成する（ウォッチャーやテストで使用）
func NewPostAt(id string, lat, lng float64, createdAt time.Time) *Post {
	loc := Location{Latitude: lat, Longitude: lng}
	return &Post{
		ID:        id,
		Location:  loc.ToGeometry(),
		CreatedAt: createdAt,
	}
}
