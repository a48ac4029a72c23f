package service

import (
	"context"
	"log"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"MachiMap-App/internal/domain/geo"
	"MachiMap-App/internal/domain/model"
)

// FetchFunc バックエンドへのバウンディングボックス問い合わせ
// 唯一のサスペンドする操作であり、失敗しうる
type FetchFunc func(ctx context.Context, box model.BoundingBox, zoomLevel float64) ([]*model.Post, error)

// FetchSuccessHandler フェッチ成功時にリクエスト番号・領域・投稿スナップショットを受け取る
// 受け取り側はスナップショットを適用する直前に、番号がLatest()と一致するか自身のロックの中で確認すること
type FetchSuccessHandler func(seq uint64, region model.Region, posts []*model.Post)

// FetchCoordinator ビューポート変更時にバックエンドへ問い合わせるかどうかを判断する
// スキップヒューリスティクスとデバウンスを備え、古い応答はシーケンス番号で破棄する
type FetchCoordinator struct {
	cfg       model.VisualizationConfig
	fetch     FetchFunc
	onSuccess FetchSuccessHandler

	mu    sync.Mutex
	timer *time.Timer
	seq   atomic.Uint64 // 単調増加のリクエスト番号（最新の結果のみ採用）
}

// NewFetchCoordinator 新しいFetchCoordinatorを作成
func NewFetchCoordinator(cfg model.VisualizationConfig, fetch FetchFunc, onSuccess FetchSuccessHandler) *FetchCoordinator {
	return &FetchCoordinator{
		cfg:       cfg,
		fetch:     fetch,
		onSuccess: onSuccess,
	}
}

// RequestFetch ビューポート変更を受けてフェッチの要否を判断する
// スキップ条件を満たさなければ、保留中の予約を取り消して静止期間後のフェッチを予約し直す
func (c *FetchCoordinator) RequestFetch(ctx context.Context, region model.Region, memo *FetchMemo) {
	if c.ShouldSkip(region, memo) {
		log.Printf("⏭️ フェッチをスキップ（移動・ズームともにしきい値未満）")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// 新しいビューポート変更は保留中の予約を置き換える
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.cfg.FetchDebounceWait, func() {
		c.issueFetch(ctx, region)
	})
}

// ShouldSkip 前回フェッチ済みの領域から十分に動いていなければtrue
// 中心移動が新スパンの30%未満、かつスパン変化率が30%未満のときにスキップする
func (c *FetchCoordinator) ShouldSkip(region model.Region, memo *FetchMemo) bool {
	if memo == nil {
		return false
	}

	newSpan := geo.ClampSpan(region.Span)
	lastSpan := geo.ClampSpan(memo.Region.Span)

	centerMovedLat := math.Abs(region.Center.Lat - memo.Region.Center.Lat)
	centerMovedLng := math.Abs(region.Center.Lng - memo.Region.Center.Lng)
	centerSmall := centerMovedLat < newSpan.LatDelta*c.cfg.FetchSkipCenterRatio &&
		centerMovedLng < newSpan.LngDelta*c.cfg.FetchSkipCenterRatio

	zoomDelta := math.Abs(newSpan.LatDelta-lastSpan.LatDelta) / lastSpan.LatDelta
	zoomSmall := zoomDelta < c.cfg.FetchSkipZoomRatio

	return centerSmall && zoomSmall
}

// Cancel 保留中のフェッチ予約を取り消す
func (c *FetchCoordinator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// issueFetch パディング付きのバウンディングボックスでバックエンドに問い合わせる
// 失敗時はメモを更新せず表示中の投稿も維持する（次のビューポート変更で自然に再試行）
func (c *FetchCoordinator) issueFetch(ctx context.Context, region model.Region) {
	seq := c.seq.Add(1)

	box := geo.BoundingBox(region, c.cfg.FetchPadding)
	zoomLevel := region.Span.LatDelta

	posts, err := c.fetch(ctx, box, zoomLevel)
	if err != nil {
		log.Printf("⚠️ 投稿フェッチに失敗（表示は維持し、次回の変更で再試行）: %v", err)
		return
	}

	// 応答が返る前に新しいリクエストが始まっていたら、この結果は破棄する
	// ここでの判定は早期の足切りにすぎず、確定判定は受け取り側がロックの中で行う
	if seq != c.seq.Load() {
		log.Printf("🗑️ 古いフェッチ結果を破棄 (seq=%d, latest=%d)", seq, c.seq.Load())
		return
	}

	log.Printf("📥 投稿フェッチ成功: %d件", len(posts))
	c.onSuccess(seq, region, posts)
}

// Latest 採用されるべき最新のリクエスト番号を返す
func (c *FetchCoordinator) Latest() uint64 {
	return c.seq.Load()
}
