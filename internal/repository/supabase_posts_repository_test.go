package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MachiMap-App/internal/domain/model"
)

// TestSupabasePostRowConversion 書き込んだ行形式をそのまま読み戻せること
func TestSupabasePostRowConversion(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	post := model.NewPostAt("post-1", 35.0116, 135.7681, base)
	post.Text = "鴨川なう"
	post.LikeCount = 3
	post.CommentCount = 1
	post.IsAnonymous = false

	// Createで書き込む形式
	row := newSupabasePostRow(post)
	assert.Equal(t, 35.0116, row.Latitude)
	assert.Equal(t, 135.7681, row.Longitude)

	// PostgRESTの応答と同じ経路（JSON経由）で読み戻す
	data, err := json.Marshal([]supabasePostRow{row})
	require.NoError(t, err)

	var rows []supabasePostRow
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 1)

	got := rows[0].toPost()
	assert.Equal(t, post.ID, got.ID)
	assert.Equal(t, post.Text, got.Text)
	assert.Equal(t, post.LikeCount, got.LikeCount)
	assert.Equal(t, post.CommentCount, got.CommentCount)
	assert.Equal(t, post.IsAnonymous, got.IsAnonymous)
	assert.True(t, post.CreatedAt.Equal(got.CreatedAt))

	loc := got.ToLatLng()
	assert.Equal(t, 35.0116, loc.Lat, "緯度が行形式の往復で失われてはいけない")
	assert.Equal(t, 135.7681, loc.Lng, "経度が行形式の往復で失われてはいけない")
}
