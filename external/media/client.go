package media

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchcentre/internal/domain/media"
	"github.com/riskibarqy/matchcentre/internal/platform/logging"
	"github.com/riskibarqy/matchcentre/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultItemSelector  = "article"
	defaultTitleSelector = "h1, h2, h3"
	maxBodyBytes         = 4 << 20
	userAgent            = "matchcentre/1.0 (+https://github.com/riskibarqy/matchcentre)"
)

type ClientConfig struct {
	NewsSourceURL   string
	NewsItemSel     string
	NewsTitleSel    string
	VideosFeedURL   string
	VideosToken     string
	Timeout         time.Duration
	Logger          *logging.Logger
	HTTPClient      *fasthttp.Client
	NewsSourceLabel string
}

// Client scrapes headlines from an HTML news page and reads highlight clips
// from a JSON video feed.
type Client struct {
	http        *fasthttp.Client
	newsURL     *url.URL
	itemSel     string
	titleSel    string
	sourceLabel string
	videosURL   string
	videosToken string
	timeout     time.Duration
	logger      *logging.Logger
}

func NewClient(cfg ClientConfig) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                userAgent,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxBodyBytes,
		}
	}

	c := &Client{
		http:        httpClient,
		itemSel:     firstNonEmpty(cfg.NewsItemSel, defaultItemSelector),
		titleSel:    firstNonEmpty(cfg.NewsTitleSel, defaultTitleSelector),
		sourceLabel: strings.TrimSpace(cfg.NewsSourceLabel),
		videosToken: strings.TrimSpace(cfg.VideosToken),
		timeout:     timeout,
		logger:      logger.With("component", "media"),
	}

	if raw := strings.TrimSpace(cfg.NewsSourceURL); raw != "" {
		parsed, err := parseHTTPURL(raw)
		if err != nil {
			return nil, crerr.Wrap(err, "invalid NEWS_SOURCE_URL")
		}
		c.newsURL = parsed
		if c.sourceLabel == "" {
			c.sourceLabel = parsed.Hostname()
		}
	}
	if raw := strings.TrimSpace(cfg.VideosFeedURL); raw != "" {
		parsed, err := parseHTTPURL(raw)
		if err != nil {
			return nil, crerr.Wrap(err, "invalid VIDEOS_FEED_URL")
		}
		c.videosURL = parsed.String()
	}
	return c, nil
}

// ListArticles scrapes the configured news page. An unconfigured source
// yields an empty list.
func (c *Client) ListArticles(ctx context.Context) ([]media.Article, error) {
	if c.newsURL == nil {
		return []media.Article{}, nil
	}

	body, err := c.get(ctx, c.newsURL.String(), "text/html")
	if err != nil {
		return nil, fmt.Errorf("fetch news page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: parse news page: %v", usecase.ErrDependencyUnavailable, err)
	}

	items := parseArticles(doc, c.newsURL, c.itemSel, c.titleSel, c.sourceLabel)
	c.logger.DebugContext(ctx, "news page scraped", "articles", len(items))
	return items, nil
}

// ListVideos reads the highlight feed. An unconfigured feed yields an empty list.
func (c *Client) ListVideos(ctx context.Context) ([]media.Video, error) {
	if c.videosURL == "" {
		return []media.Video{}, nil
	}

	target := c.videosURL
	if c.videosToken != "" {
		parsed, _ := url.Parse(target)
		query := parsed.Query()
		query.Set("token", c.videosToken)
		parsed.RawQuery = query.Encode()
		target = parsed.String()
	}

	body, err := c.get(ctx, target, "application/json")
	if err != nil {
		return nil, fmt.Errorf("fetch video feed: %w", err)
	}
	var payload videoFeed
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode video feed: %w", err)
	}
	return payload.toDomain(), nil
}

func (c *Client) get(ctx context.Context, target, accept string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(target)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", accept)

	if err := c.http.DoTimeout(req, resp, timeout); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", usecase.ErrDependencyUnavailable, redactToken(target, c.videosToken), err)
	}
	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: %s returned status=%d", usecase.ErrDependencyUnavailable, redactToken(target, c.videosToken), status)
	}
	return append([]byte(nil), resp.Body()...), nil
}

func parseArticles(doc *goquery.Document, base *url.URL, itemSel, titleSel, source string) []media.Article {
	out := make([]media.Article, 0)
	seen := make(map[string]struct{})
	doc.Find(itemSel).Each(func(_ int, s *goquery.Selection) {
		title := collapseSpace(s.Find(titleSel).First().Text())
		link, _ := s.Find("a[href]").First().Attr("href")
		if title == "" || strings.TrimSpace(link) == "" {
			return
		}
		resolved := resolveURL(base, link)
		if _, dup := seen[resolved]; dup {
			return
		}
		seen[resolved] = struct{}{}

		article := media.Article{
			Title:   title,
			URL:     resolved,
			Summary: collapseSpace(s.Find("p").First().Text()),
			Source:  source,
		}
		if img, ok := s.Find("img").First().Attr("src"); ok {
			article.ImageURL = resolveURL(base, img)
		}
		if published, ok := s.Find("time").First().Attr("datetime"); ok {
			article.PublishedAt = strings.TrimSpace(published)
		}
		out = append(out, article)
	})
	return out
}

type videoFeed struct {
	Response []videoItem `json:"response"`
}

type videoItem struct {
	Title        string      `json:"title"`
	Competition  string      `json:"competition"`
	MatchviewURL string      `json:"matchviewUrl"`
	Thumbnail    string      `json:"thumbnail"`
	Date         string      `json:"date"`
	Videos       []videoClip `json:"videos"`
}

type videoClip struct {
	Title string `json:"title"`
	Embed string `json:"embed"`
}

func (f videoFeed) toDomain() []media.Video {
	out := make([]media.Video, 0, len(f.Response))
	for _, item := range f.Response {
		clips := make([]media.Clip, 0, len(item.Videos))
		for _, clip := range item.Videos {
			clips = append(clips, media.Clip{Title: clip.Title, Embed: clip.Embed})
		}
		out = append(out, media.Video{
			Title:       strings.TrimSpace(item.Title),
			Competition: strings.TrimSpace(item.Competition),
			MatchURL:    item.MatchviewURL,
			Thumbnail:   item.Thumbnail,
			Date:        item.Date,
			Clips:       clips,
			Teams:       splitTeams(item.Title),
		})
	}
	return out
}

func splitTeams(title string) []string {
	parts := strings.Split(title, " - ")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseHTTPURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, crerr.Wrapf(err, "parse %q", raw)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, crerr.Newf("%q uses unsupported scheme=%q; expected http or https", raw, parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, crerr.Newf("%q has empty host", raw)
	}
	return parsed, nil
}

func resolveURL(base *url.URL, ref string) string {
	parsed, err := url.Parse(strings.TrimSpace(ref))
	if err != nil || base == nil {
		return strings.TrimSpace(ref)
	}
	return base.ResolveReference(parsed).String()
}

func redactToken(value, token string) string {
	if token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}

func collapseSpace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if v := strings.TrimSpace(value); v != "" {
			return v
		}
	}
	return ""
}

var _ media.Repository = (*Client)(nil)
