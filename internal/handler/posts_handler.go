package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"MachiMap-App/internal/application"
	"MachiMap-App/model"
)

// PostsHandler 位置情報付き投稿に関するHTTPハンドラー
type PostsHandler struct {
	postsService application.PostsService
}

// NewPostsHandler PostsHandlerの新しいインスタンスを作成
func NewPostsHandler(postsService application.PostsService) *PostsHandler {
	return &PostsHandler{
		postsService: postsService,
	}
}

// CreatePost POST /posts - 投稿の作成
func (h *PostsHandler) CreatePost(c *gin.Context) {
	var req model.CreatePostRequest

	// リクエストボディの解析（Ginが自動でContent-Type確認）
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	// サービス層で処理
	response, err := h.postsService.CreatePost(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to create post: " + err.Error(),
		})
		return
	}

	// 成功レスポンス
	c.JSON(http.StatusCreated, response)
}

// GetPostsByBoundingBox GET /posts - 境界ボックス内の投稿一覧を取得
func (h *PostsHandler) GetPostsByBoundingBox(c *gin.Context) {
	// クエリパラメータの解析
	bbox := c.Query("bbox")
	if bbox == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "bbox parameter is required (format: min_lng,min_lat,max_lng,max_lat)",
		})
		return
	}

	// bbox の解析
	coords := strings.Split(bbox, ",")
	if len(coords) != 4 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": "bbox must contain 4 coordinates: min_lng,min_lat,max_lng,max_lat",
		})
		return
	}

	values := make([]float64, 4)
	names := []string{"min_lng", "min_lat", "max_lng", "max_lat"}
	for i, coord := range coords {
		value, err := strconv.ParseFloat(coord, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_parameter",
				"message": "Invalid " + names[i] + " value",
			})
			return
		}
		values[i] = value
	}

	// サービス層で処理
	posts, err := h.postsService.GetPostsByBoundingBox(c.Request.Context(), values[0], values[1], values[2], values[3])
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get posts: " + err.Error(),
		})
		return
	}

	// レスポンスの作成
	response := model.GetPostsResponse{
		Posts: posts,
	}

	c.JSON(http.StatusOK, response)
}

// GetPostDetail GET /posts/:id - 投稿の詳細を取得
func (h *PostsHandler) GetPostDetail(c *gin.Context) {
	// パスパラメータから ID を取得
	postID := c.Param("id")
	if postID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "Post ID is required",
		})
		return
	}

	// サービス層で処理
	postDetail, err := h.postsService.GetPostDetail(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get post detail: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, postDetail)
}
