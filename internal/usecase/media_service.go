package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/matchcentre/internal/domain/media"
)

const maxMediaQueryLength = 64

type MediaService struct {
	mediaRepo media.Repository
}

func NewMediaService(mediaRepo media.Repository) *MediaService {
	return &MediaService{mediaRepo: mediaRepo}
}

// News returns the headlines mentioning query. An empty query returns all.
func (s *MediaService) News(ctx context.Context, query string) ([]media.Article, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MediaService.News")
	defer span.End()

	query, err := normalizeMediaQuery(query)
	if err != nil {
		return nil, err
	}

	items, err := s.mediaRepo.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	return media.FilterArticles(items, query), nil
}

// Videos returns the highlights involving teamName. An empty name returns all.
func (s *MediaService) Videos(ctx context.Context, teamName string) ([]media.Video, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MediaService.Videos")
	defer span.End()

	teamName, err := normalizeMediaQuery(teamName)
	if err != nil {
		return nil, err
	}

	items, err := s.mediaRepo.ListVideos(ctx)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	return media.FilterVideos(items, teamName), nil
}

// RelatedArticles returns the articles that mention any of the clubs. No
// names means nothing is related.
func (s *MediaService) RelatedArticles(ctx context.Context, teamNames ...string) ([]media.Article, error) {
	terms := nonEmpty(teamNames)
	if len(terms) == 0 {
		return []media.Article{}, nil
	}
	items, err := s.mediaRepo.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return media.FilterArticles(items, terms...), nil
}

func (s *MediaService) RelatedVideos(ctx context.Context, teamNames ...string) ([]media.Video, error) {
	terms := nonEmpty(teamNames)
	if len(terms) == 0 {
		return []media.Video{}, nil
	}
	items, err := s.mediaRepo.ListVideos(ctx)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return media.FilterVideos(items, terms...), nil
}

func normalizeMediaQuery(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if len(value) > maxMediaQueryLength {
		return "", fmt.Errorf("%w: query must be at most %d characters", ErrInvalidInput, maxMediaQueryLength)
	}
	return value, nil
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			out = append(out, value)
		}
	}
	return out
}
