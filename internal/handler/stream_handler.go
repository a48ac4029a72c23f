package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	domain "MachiMap-App/internal/domain/model"
	"MachiMap-App/internal/usecase"
	"MachiMap-App/model"
)

const (
	// クライアントへの書き込み許容時間
	writeWait = 10 * time.Second

	// pongを待つ時間。pingの間隔はこれより短くする
	pongWait   = 60 * time.Second
	pingPeriod = 15 * time.Second

	// クライアントから受け付ける最大メッセージサイズ
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamHandler 地図セッションのスナップショットをWebSocketで配信するハンドラー
// クライアントはビューポート変更をJSONで送り、再計算のたびにスナップショットを受け取る
type StreamHandler struct {
	mapViewUseCase usecase.MapViewUseCase
}

// NewStreamHandler StreamHandlerの新しいインスタンスを作成
func NewStreamHandler(mapViewUseCase usecase.MapViewUseCase) *StreamHandler {
	return &StreamHandler{
		mapViewUseCase: mapViewUseCase,
	}
}

// ServeStream GET /map/sessions/:id/stream - スナップショットのWebSocket配信
func (h *StreamHandler) ServeStream(c *gin.Context) {
	sessionID := c.Param("id")

	engine, err := h.mapViewUseCase.GetEngine(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "session_not_found",
			"message": err.Error(),
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("⚠️ WebSocketへのアップグレード失敗: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("🔌 ストリーム接続開始: %s", sessionID)

	done := make(chan struct{})

	// 読み取りループ: ビューポート変更を受け付ける
	go func() {
		defer close(done)
		conn.SetReadLimit(maxMessageSize)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})
		for {
			var req model.ViewportRequest
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			region := domain.Region{
				Center: domain.LatLng{Lat: req.CenterLatitude, Lng: req.CenterLongitude},
				Span:   domain.Span{LatDelta: req.LatitudeDelta, LngDelta: req.LongitudeDelta},
			}
			if _, err := h.mapViewUseCase.UpdateViewport(sessionID, region); err != nil {
				return
			}
		}
	}()

	// 書き込みループ: 再計算シグナルのたびに最新スナップショットを配信する
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-engine.Updates():
			snapshot, err := h.mapViewUseCase.GetSnapshot(sessionID)
			if err != nil {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(toMapSnapshotResponse(snapshot)); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			log.Printf("🔌 ストリーム接続終了: %s", sessionID)
			return
		}
	}
}
