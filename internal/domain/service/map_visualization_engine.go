package service

import (
	"context"
	"log"
	"sync"

	"MachiMap-App/internal/domain/model"
)

// RenderSnapshot 描画レイヤーへ公開する派生出力の不変スナップショット
// サイクルの合間に消費側が読み取り専用で扱う
type RenderSnapshot struct {
	Mode              model.DisplayMode       `json:"mode"`
	VisiblePosts      []*model.Post           `json:"visible_posts"`
	AdjustedPositions map[string]model.LatLng `json:"adjusted_positions"`
	Opacities         map[string]float64      `json:"opacities"`
	Clusters          []model.Cluster         `json:"clusters"`
}

// MapVisualizationEngine 地図可視化のオーケストレーター
// 投稿ストリームとビューポートイベントを取り込み、表示モードに応じた派生出力を計算する
// すべての状態遷移はミューテックスで直列化される（並列ワーカーは持たない。
// ボトルネックはネットワークI/OとO(n²)の幾何計算であり、生の計算量ではない）
type MapVisualizationEngine struct {
	mu sync.Mutex

	cfg         model.VisualizationConfig
	viewport    *ViewportStore
	selector    *VisibilitySelector
	resolver    *CollisionResolver
	fader       *DensityFader
	clusterer   *Clusterer
	coordinator *FetchCoordinator

	// セッションと同じ寿命のコンテキスト。デバウンス後のフェッチはハンドラーの
	// リクエストが終了した後に実行されるため、リクエストのコンテキストは使えない
	ctx    context.Context
	cancel context.CancelFunc

	// 投稿スナップショット。取り込みハンドラーだけが書き換える
	posts []*model.Post

	// 派生出力。部分的に古くなることはなく、投稿やモードの変化で一括再生成される
	mode      model.DisplayMode
	visible   []*model.Post
	collision *CollisionResult
	opacities map[string]float64
	clusters  []model.Cluster

	// 再計算のたびに通知するシグナル（容量1、非ブロッキング送信）
	updates chan struct{}
}

// NewMapVisualizationEngine バックエンド問い合わせを注入してエンジンを作成する
// フェイクのFetchFuncを渡すことでテスト可能になる
func NewMapVisualizationEngine(cfg model.VisualizationConfig, fetch FetchFunc) *MapVisualizationEngine {
	ctx, cancel := context.WithCancel(context.Background())
	e := &MapVisualizationEngine{
		cfg:       cfg,
		viewport:  NewViewportStore(),
		selector:  NewVisibilitySelector(),
		resolver:  NewCollisionResolver(cfg),
		fader:     NewDensityFader(cfg),
		clusterer: NewClusterer(cfg),
		ctx:       ctx,
		cancel:    cancel,
		mode:      model.DisplayModeNear,
		opacities: map[string]float64{},
		updates:   make(chan struct{}, 1),
	}
	e.coordinator = NewFetchCoordinator(cfg, fetch, e.handleFetchSuccess)
	return e
}

// SetRegion ビューポート変更イベントを処理する
// 表示領域を更新して派生出力を再計算し、フェッチの要否判断をコーディネーターへ渡す
func (e *MapVisualizationEngine) SetRegion(region model.Region) {
	e.mu.Lock()
	e.viewport.SetRegion(region)
	e.recompute()
	memo := e.viewport.LastFetch()
	current, _ := e.viewport.Region()
	e.mu.Unlock()

	e.coordinator.RequestFetch(e.ctx, current, memo)
}

// OnPostsUpdated 投稿セットストリームからの更新を取り込む
// スナップショットは丸ごと置き換えられ、以前の投稿とのマージは行わない（後勝ち）
func (e *MapVisualizationEngine) OnPostsUpdated(posts []*model.Post) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.posts = posts
	e.recompute()
}

// handleFetchSuccess フェッチ成功時にメモを記録してスナップショットを置き換える
// 採用判定はミューテックスの中で行う。ロック待ちの間に新しいフェッチが始まって
// いた場合、この結果は古いスナップショットなので破棄する（最新の結果のみ採用）
func (e *MapVisualizationEngine) handleFetchSuccess(seq uint64, region model.Region, posts []*model.Post) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if seq != e.coordinator.Latest() {
		log.Printf("🗑️ 古いフェッチ結果を破棄 (seq=%d, latest=%d)", seq, e.coordinator.Latest())
		return
	}
	e.viewport.RecordFetch(region)
	e.posts = posts
	e.recompute()
}

// Close セッションのコンテキストを取り消し、保留中のフェッチ予約を破棄する
func (e *MapVisualizationEngine) Close() {
	e.cancel()
	e.coordinator.Cancel()
}

// recompute 最新のスナップショットと表示モードから派生出力を一括再生成する
// 呼び出し元はミューテックスを保持していること
func (e *MapVisualizationEngine) recompute() {
	region, ok := e.viewport.Region()
	if ok {
		e.mode = e.cfg.DisplayModeForSpan(region.Span)
	}

	e.visible = e.selector.SelectVisible(e.mode, e.posts)
	e.collision = nil
	e.opacities = map[string]float64{}
	e.clusters = nil

	switch e.mode {
	case model.DisplayModeNear:
		e.collision = e.resolver.Resolve(e.visible)
		e.opacities = e.fader.ComputeOpacities(e.visible)
	case model.DisplayModeFar:
		e.clusters = e.clusterer.BuildClusters(e.posts, region.Span)
	}

	log.Printf("🗺️ 可視化再計算完了 (モード: %s, 表示: %d件, クラスタ: %d件)",
		e.mode, len(e.visible), len(e.clusters))

	// 購読者がいなくてもブロックしない
	select {
	case e.updates <- struct{}{}:
	default:
	}
}

// Updates 派生出力が再生成されたことを通知するシグナルチャネルを返す
func (e *MapVisualizationEngine) Updates() <-chan struct{} {
	return e.updates
}

// CurrentDisplayMode 現在の表示モードを返す
func (e *MapVisualizationEngine) CurrentDisplayMode() model.DisplayMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// VisiblePosts 表示対象の投稿リストを返す
func (e *MapVisualizationEngine) VisiblePosts() []*model.Post {
	e.mu.Lock()
	defer e.mu.Unlock()
	visible := make([]*model.Post, len(e.visible))
	copy(visible, e.visible)
	return visible
}

// AdjustedPosition 衝突回避後の表示座標を返す。マップにない場合は元の座標にフォールバック
func (e *MapVisualizationEngine) AdjustedPosition(id string, original model.LatLng) model.LatLng {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.collision != nil {
		if pos, ok := e.collision.AdjustedPositions[id]; ok {
			return pos
		}
	}
	return original
}

// Opacity 投稿の不透明度を返す。未計算の投稿は既定の1.0
func (e *MapVisualizationEngine) Opacity(id string) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if opacity, ok := e.opacities[id]; ok {
		return opacity
	}
	return 1.0
}

// IsFallbackPlacement 8方向探索がすべて失敗して無条件配置になった投稿か（診断用）
func (e *MapVisualizationEngine) IsFallbackPlacement(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.collision != nil && e.collision.FallbackIDs[id]
}

// Clusters 遠景モードのクラスタ一覧を返す
func (e *MapVisualizationEngine) Clusters() []model.Cluster {
	e.mu.Lock()
	defer e.mu.Unlock()
	clusters := make([]model.Cluster, len(e.clusters))
	copy(clusters, e.clusters)
	return clusters
}

// Snapshot 描画レイヤー向けの派生出力一式を返す
func (e *MapVisualizationEngine) Snapshot() *RenderSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	visible := make([]*model.Post, len(e.visible))
	copy(visible, e.visible)

	adjusted := make(map[string]model.LatLng)
	if e.collision != nil {
		for id, pos := range e.collision.AdjustedPositions {
			adjusted[id] = pos
		}
	}

	opacities := make(map[string]float64, len(e.opacities))
	for id, opacity := range e.opacities {
		opacities[id] = opacity
	}

	clusters := make([]model.Cluster, len(e.clusters))
	copy(clusters, e.clusters)

	return &RenderSnapshot{
		Mode:              e.mode,
		VisiblePosts:      visible,
		AdjustedPositions: adjusted,
		Opacities:         opacities,
		Clusters:          clusters,
	}
}
