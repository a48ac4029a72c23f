package service

import (
	"MachiMap-App/internal/domain/geo"
	"MachiMap-App/internal/domain/model"
)

// FetchMemo 最後にフェッチが成功した領域の記録
// フェッチ成功時にのみ書き込まれ、スキップ判定でのみ読まれる
type FetchMemo struct {
	Region model.Region
}

// ViewportStore 現在の表示領域と最終フェッチ領域のメモを保持する
// フィールドの書き換えはビューポート変更ハンドラーとフェッチ成功時に限定される
type ViewportStore struct {
	current   model.Region
	hasRegion bool
	memo      *FetchMemo
}

// NewViewportStore 新しいViewportStoreを作成
func NewViewportStore() *ViewportStore {
	return &ViewportStore{}
}

// SetRegion 現在の表示領域を更新する（スパンは最小値にクランプされる）
func (vs *ViewportStore) SetRegion(region model.Region) {
	region.Span = geo.ClampSpan(region.Span)
	vs.current = region
	vs.hasRegion = true
}

// Region 現在の表示領域を返す
func (vs *ViewportStore) Region() (model.Region, bool) {
	return vs.current, vs.hasRegion
}

// RecordFetch フェッチ成功時に最終フェッチ領域を記録する
func (vs *ViewportStore) RecordFetch(region model.Region) {
	vs.memo = &FetchMemo{Region: region}
}

// LastFetch 最終フェッチ領域のメモを返す（未フェッチならnil）
func (vs *ViewportStore) LastFetch() *FetchMemo {
	return vs.memo
}
