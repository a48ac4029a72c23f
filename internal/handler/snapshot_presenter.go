package handler

import (
	"MachiMap-App/internal/domain/service"
	"MachiMap-App/model"
)

// toMapSnapshotResponse エンジンのスナップショットを描画用DTOに変換する
// 投稿の座標は衝突回避後の表示座標に差し替え、不透明度0の投稿は描画対象から外す
func toMapSnapshotResponse(snapshot *service.RenderSnapshot) *model.MapSnapshotResponse {
	posts := make([]model.VisiblePostView, 0, len(snapshot.VisiblePosts))
	for _, post := range snapshot.VisiblePosts {
		position := post.ToLatLng()
		if adjusted, ok := snapshot.AdjustedPositions[post.ID]; ok {
			position = adjusted
		}

		opacity := 1.0
		if o, ok := snapshot.Opacities[post.ID]; ok {
			opacity = o
		}
		if opacity <= 0 {
			continue
		}

		posts = append(posts, model.VisiblePostView{
			ID:           post.ID,
			Text:         post.Text,
			Latitude:     position.Lat,
			Longitude:    position.Lng,
			Opacity:      opacity,
			LikeCount:    post.LikeCount,
			CommentCount: post.CommentCount,
			IsAnonymous:  post.IsAnonymous,
			CreatedAt:    post.CreatedAt,
		})
	}

	clusters := make([]model.ClusterView, 0, len(snapshot.Clusters))
	for _, cluster := range snapshot.Clusters {
		clusters = append(clusters, model.ClusterView{
			Latitude:  cluster.Centroid.Lat,
			Longitude: cluster.Centroid.Lng,
			Count:     cluster.Count,
			MemberIDs: cluster.MemberIDs,
		})
	}

	return &model.MapSnapshotResponse{
		Mode:     string(snapshot.Mode),
		Posts:    posts,
		Clusters: clusters,
	}
}
