package model

import "time"

// ViewportRequest PUT /map/sessions/:id/viewport のリクエストボディ
type ViewportRequest struct {
	CenterLatitude  float64 `json:"center_latitude" validate:"required,min=-90,max=90"`
	CenterLongitude float64 `json:"center_longitude" validate:"required,min=-180,max=180"`
	LatitudeDelta   float64 `json:"latitude_delta" validate:"required,gt=0"`
	LongitudeDelta  float64 `json:"longitude_delta" validate:"required,gt=0"`
}

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

// VisiblePostView 描画用の投稿表現。座標は衝突回避後の表示座標
type VisiblePostView struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Opacity      float64   `json:"opacity"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	IsAnonymous  bool      `json:"is_anonymous"`
	CreatedAt    time.Time `json:"created_at"`
}

// ClusterView 描画用のクラスタ表現
type ClusterView struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Count     int      `json:"count"`
	MemberIDs []string `json:"member_ids"`
}

// MapSnapshotResponse 描画レイヤーへ返す派生出力一式
type MapSnapshotResponse struct {
	Mode     string            `json:"mode"`
	Posts    []VisiblePostView `json:"posts"`
	Clusters []ClusterView     `json:"clusters"`
}
