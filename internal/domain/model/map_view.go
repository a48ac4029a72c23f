package model

// Span ビューポートの角度幅（値が小さいほどズームイン）
type Span struct {
	LatDelta float64 `json:"lat_delta"`
	LngDelta float64 `json:"lng_delta"`
}

// Region 地図の表示領域（中心座標＋スパン）
type Region struct {
	Center LatLng `json:"center"`
	Span   Span   `json:"span"`
}

// DisplayMode スパンに応じた表示戦略の種別
type DisplayMode string

const (
	DisplayModeNear DisplayMode = "near" // 個別ピン＋衝突回避＋密度フェード
	DisplayModeMid  DisplayMode = "mid"  // エンゲージメント優先の絞り込み表示
	DisplayModeFar  DisplayMode = "far"  // グリッドクラスタ表示
)

// DisplayModeForSpan 既定のしきい値でスパンから表示モードを導出する純粋関数
// エンジンは設定経由のVisualizationConfig.DisplayModeForSpanに委譲しており、導出ロジックはそちらの一箇所に置く
func DisplayModeForSpan(span Span) DisplayMode {
	return DefaultVisualizationConfig().DisplayModeForSpan(span)
}

// Cluster 遠景モードで1つのグリッドセルに集約された投稿群
type Cluster struct {
	Centroid  LatLng   `json:"centroid"`   // メンバー座標の算術平均
	Count     int      `json:"count"`      // メンバー数
	MemberIDs []string `json:"member_ids"` // 集約された投稿のID
}

// BoundingBox バックエンド問い合わせに使う緯度経度の範囲
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}
