package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "MachiMap-App/internal/domain/model"
	"MachiMap-App/internal/usecase"
	"MachiMap-App/model"
)

// MapViewHandler 地図セッションと可視化スナップショットのHTTPハンドラー
type MapViewHandler struct {
	mapViewUseCase usecase.MapViewUseCase
}

// NewMapViewHandler MapViewHandlerの新しいインスタンスを作成
func NewMapViewHandler(mapViewUseCase usecase.MapViewUseCase) *MapViewHandler {
	return &MapViewHandler{
		mapViewUseCase: mapViewUseCase,
	}
}

// CreateSession POST /map/sessions - 地図セッションの開始
func (h *MapViewHandler) CreateSession(c *gin.Context) {
	sessionID := h.mapViewUseCase.CreateSession()
	c.JSON(http.StatusCreated, model.CreateSessionResponse{
		SessionID: sessionID,
	})
}

// UpdateViewport PUT /map/sessions/:id/viewport - ビューポート変更の通知
// 変更を取り込んだ直後の派生出力スナップショットを返す
func (h *MapViewHandler) UpdateViewport(c *gin.Context) {
	sessionID := c.Param("id")

	var req model.ViewportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	region := domain.Region{
		Center: domain.LatLng{Lat: req.CenterLatitude, Lng: req.CenterLongitude},
		Span:   domain.Span{LatDelta: req.LatitudeDelta, LngDelta: req.LongitudeDelta},
	}

	snapshot, err := h.mapViewUseCase.UpdateViewport(sessionID, region)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "session_not_found",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, toMapSnapshotResponse(snapshot))
}

// GetSnapshot GET /map/sessions/:id/snapshot - 現在の派生出力を取得
func (h *MapViewHandler) GetSnapshot(c *gin.Context) {
	sessionID := c.Param("id")

	snapshot, err := h.mapViewUseCase.GetSnapshot(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "session_not_found",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, toMapSnapshotResponse(snapshot))
}

// CloseSession DELETE /map/sessions/:id - 地図セッションの終了
func (h *MapViewHandler) CloseSession(c *gin.Context) {
	sessionID := c.Param("id")
	h.mapViewUseCase.CloseSession(sessionID)
	c.Status(http.StatusNoContent)
}
