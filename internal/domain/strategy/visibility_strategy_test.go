package strategy

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"MachiMap-App/internal/domain/model"
)

func makePost(id string, likes int, anonymous bool) *model.Post {
	post := model.NewPostAt(id, 35.0, 135.0, time.Now())
	post.LikeCount = likes
	post.IsAnonymous = anonymous
	return post
}

// TestNearVisibilityStrategy 近景モードは全投稿をそのまま返す
func TestNearVisibilityStrategy(t *testing.T) {
	strategy := NewNearVisibilityStrategy()

	posts := make([]*model.Post, 100)
	for i := range posts {
		posts[i] = makePost(fmt.Sprintf("post-%03d", i), i, false)
	}

	selected := strategy.SelectVisible(posts)
	assert.Equal(t, len(posts), len(selected), "近景モードでフィルタリングされてはいけない")
	assert.Equal(t, posts[0], selected[0])
}

// TestFarVisibilityStrategy 遠景モードは常に空を返す
func TestFarVisibilityStrategy(t *testing.T) {
	strategy := NewFarVisibilityStrategy()

	posts := []*model.Post{makePost("a", 10, false), makePost("b", 0, true)}
	selected := strategy.SelectVisible(posts)
	assert.Empty(t, selected, "遠景モードでは個別の投稿を表示しない")
}

// TestMidVisibilityStrategy 中景モードの絞り込み仕様
func TestMidVisibilityStrategy(t *testing.T) {
	strategy := NewMidVisibilityStrategy()

	t.Run("最大60件に制限される", func(t *testing.T) {
		posts := make([]*model.Post, 200)
		for i := range posts {
			// 半分を高エンゲージメント、半分を通常投稿にする
			posts[i] = makePost(fmt.Sprintf("post-%03d", i), i%2*(i+1), false)
		}

		selected := strategy.SelectVisible(posts)
		assert.LessOrEqual(t, len(selected), 60, "中景モードの出力は60件を超えてはいけない")
	})

	t.Run("先頭30件はいいね降順の高エンゲージメント投稿", func(t *testing.T) {
		var posts []*model.Post
		for i := 0; i < 50; i++ {
			posts = append(posts, makePost(fmt.Sprintf("high-%02d", i), i+1, false))
		}
		for i := 0; i < 50; i++ {
			posts = append(posts, makePost(fmt.Sprintf("regular-%02d", i), 0, false))
		}

		selected := strategy.SelectVisible(posts)
		assert.Equal(t, 60, len(selected))

		// 先頭30件はいいね降順
		for i := 0; i < 29; i++ {
			assert.GreaterOrEqual(t, selected[i].LikeCount, selected[i+1].LikeCount,
				"先頭30件はいいね数の降順であるべき")
		}
		assert.Equal(t, 50, selected[0].LikeCount, "最多いいねの投稿が先頭に来るべき")
	})

	t.Run("匿名投稿はいいねがあっても通常扱い", func(t *testing.T) {
		posts := []*model.Post{
			makePost("anon", 100, true),
			makePost("named", 1, false),
		}

		selected := strategy.SelectVisible(posts)
		assert.Equal(t, "named", selected[0].ID, "高エンゲージメントは匿名でない投稿のみ")
		assert.Equal(t, "anon", selected[1].ID)
	})

	t.Run("通常投稿は受信順のまま先頭から取られる", func(t *testing.T) {
		var posts []*model.Post
		for i := 0; i < 40; i++ {
			posts = append(posts, makePost(fmt.Sprintf("regular-%02d", i), 0, false))
		}

		selected := strategy.SelectVisible(posts)
		assert.Equal(t, 30, len(selected))
		for i := 0; i < 30; i++ {
			assert.Equal(t, fmt.Sprintf("regular-%02d", i), selected[i].ID,
				"通常投稿はソートせず受信順を保つべき")
		}
	})
}
