package media

import "strings"

// Article is a headline scraped from the news source.
type Article struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Summary     string `json:"summary,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
	Source      string `json:"source,omitempty"`
}

// Video is a highlight entry from the video feed.
type Video struct {
	Title       string   `json:"title"`
	Competition string   `json:"competition"`
	MatchURL    string   `json:"matchUrl"`
	Thumbnail   string   `json:"thumbnail"`
	Date        string   `json:"date"`
	Clips       []Clip   `json:"clips"`
	Teams       []string `json:"-"`
}

type Clip struct {
	Title string `json:"title"`
	Embed string `json:"embed"`
}

// MatchesAny reports whether text contains any of the terms, ignoring case.
// An empty term list matches everything.
func MatchesAny(text string, terms ...string) bool {
	hasTerm := false
	lower := strings.ToLower(text)
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		hasTerm = true
		if strings.Contains(lower, term) {
			return true
		}
	}
	return !hasTerm
}

// FilterArticles keeps the articles whose title or summary mention a term.
func FilterArticles(items []Article, terms ...string) []Article {
	out := make([]Article, 0, len(items))
	for _, item := range items {
		if MatchesAny(item.Title+" "+item.Summary, terms...) {
			out = append(out, item)
		}
	}
	return out
}

// FilterVideos keeps the videos whose title mentions a term.
func FilterVideos(items []Video, terms ...string) []Video {
	out := make([]Video, 0, len(items))
	for _, item := range items {
		if MatchesAny(item.Title, terms...) {
			out = append(out, item)
		}
	}
	return out
}
