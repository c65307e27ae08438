package media

import "context"

// Repository exposes the news and video feeds.
type Repository interface {
	ListArticles(ctx context.Context) ([]Article, error)
	ListVideos(ctx context.Context) ([]Video, error)
}
