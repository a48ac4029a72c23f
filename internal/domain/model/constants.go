package model

import "time"

// 表示モードのしきい値（スパンの緯度幅・度数）
const (
	SpanThresholdNear = 0.01 // これ以下はNear（約1km）
	SpanThresholdMid  = 0.1  // これ以下はMid（約5〜20km）、超えるとFar
)

// Midモードの表示上限
const (
	MidModeHighEngagementLimit = 30 // いいね降順で上位30件
	MidModeRegularLimit        = 30 // 受信順で先頭30件
)

// 衝突回避の定数
const (
	CollisionMinDistanceMeters = 20.0                             // 表示座標間の最小距離
	CollisionProbeCount        = 8                                // 45度刻みの探索方向数
	CollisionProbeRadiusMeters = CollisionMinDistanceMeters * 1.1 // 探索半径
)

// 密度フェードの定数
const (
	DensityRadiusMeters = 50.0 // 近傍判定の半径（衝突回避のminDistanceとは独立）
	DensityFadeStart    = 4    // この近傍数までは不透明度1.0
	DensityFadeRange    = 6.0  // フェード区間の幅（5〜9件で線形に減衰）
	DensityOpaqueFloor  = 10   // この近傍数以上は不透明度0.0
)

// クラスタリングの定数
const (
	ClusterMinCellSizeDegrees = 0.05 // グリッドセルの最小サイズ
	ClusterCellSpanFactor     = 0.3  // セルサイズ = max(最小値, スパン×係数)
)

// フェッチ制御の定数
const (
	FetchPaddingFactor   = 0.2                    // バウンディングボックスの拡張率（20%）
	FetchSkipCenterRatio = 0.3                    // 中心移動量が新スパンのこの割合未満ならスキップ
	FetchSkipZoomRatio   = 0.3                    // スパン変化率がこの割合未満ならスキップ
	FetchDebounceWait    = 500 * time.Millisecond // 静止期間のデバウンス時間
)

// 幾何計算の定数
const (
	EarthRadiusMeters = 6378137.0 // 赤道半径（WGS84）
	SpanEpsilon       = 1e-9      // 退化したスパンのクランプ下限（ゼロ除算防止）
)

// VisualizationConfig 可視化エンジンの調整可能な定数一式
// チューニング値はここに集約し、各サービスにリテラルを散らさない
type VisualizationConfig struct {
	SpanThresholdNear    float64
	SpanThresholdMid     float64
	CollisionMinDistance float64
	DensityRadius        float64
	ClusterMinCellSize   float64
	ClusterCellFactor    float64
	FetchPadding         float64
	FetchSkipCenterRatio float64
	FetchSkipZoomRatio   float64
	FetchDebounceWait    time.Duration
}

// DisplayModeForSpan 設定されたしきい値でスパンから表示モードを導出する
// 下側のしきい値を含む（latDelta == SpanThresholdNear は Near）
func (c VisualizationConfig) DisplayModeForSpan(span Span) DisplayMode {
	switch {
	case span.LatDelta <= c.SpanThresholdNear:
		return DisplayModeNear
	case span.LatDelta <= c.SpanThresholdMid:
		return DisplayModeMid
	default:
		return DisplayModeFar
	}
}

// DefaultVisualizationConfig 既定の可視化設定を返す
func DefaultVisualizationConfig() VisualizationConfig {
	return VisualizationConfig{
		SpanThresholdNear:    SpanThresholdNear,
		SpanThresholdMid:     SpanThresholdMid,
		CollisionMinDistance: CollisionMinDistanceMeters,
		DensityRadius:        DensityRadiusMeters,
		ClusterMinCellSize:   ClusterMinCellSizeDegrees,
		ClusterCellFactor:    ClusterCellSpanFactor,
		FetchPadding:         FetchPaddingFactor,
		FetchSkipCenterRatio: FetchSkipCenterRatio,
		FetchSkipZoomRatio:   FetchSkipZoomRatio,
		FetchDebounceWait:    FetchDebounceWait,
	}
}
