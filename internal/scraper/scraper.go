// Package scraper holds the best-effort partner-site automation session. It
// covers the capabilities the formal API lacks: generator-issued deeplinks
// and high-resolution product media. Every operation may fail; callers treat
// failures as "capability unavailable", never as fatal.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"productpraat/internal/catalog"
	"productpraat/internal/pkg/config"
	"productpraat/internal/pkg/errs"

	"github.com/gocolly/colly/v2"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// SessionState is a snapshot of the automation session for diagnostics.
type SessionState struct {
	LoggedIn bool   `json:"logged_in"`
	BaseURL  string `json:"base_url"`
	Visits   int    `json:"visits"`
}

// Session drives a single authenticated browser-like session against the
// partner site. The session is exclusive state: operations are expected to
// be awaited to completion before the next one is issued.
type Session struct {
	cfg       config.ScraperConfig
	logger    *slog.Logger
	collector *colly.Collector

	mu       sync.Mutex
	loggedIn bool
	visits   int
}

func NewSession(cfg config.ScraperConfig, logger *slog.Logger) *Session {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
	)
	return &Session{cfg: cfg, logger: logger, collector: c}
}

// Login authenticates against the partner site with the configured
// credentials. The collector keeps the session cookies afterwards.
func (s *Session) Login(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.cfg.Email == "" || s.cfg.Password == "" {
		return errs.New("scraper credentials are not configured")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var csrfToken string
	login := s.collector.Clone()
	login.OnHTML(`input[name="_csrf"]`, func(e *colly.HTMLElement) {
		csrfToken = e.Attr("value")
	})
	if err := login.Visit(s.cfg.BaseURL + "/login"); err != nil {
		return errs.Wrap(err, "failed to load login page")
	}
	s.visits++

	form := map[string]string{
		"username": s.cfg.Email,
		"password": s.cfg.Password,
	}
	if csrfToken != "" {
		form["_csrf"] = csrfToken
	}

	var authenticated bool
	login.OnResponse(func(r *colly.Response) {
		// A successful login redirects away from the login form.
		authenticated = !strings.Contains(r.Request.URL.Path, "/login")
	})
	if err := login.Post(s.cfg.BaseURL+"/login", form); err != nil {
		return errs.Wrap(err, "login request failed")
	}
	s.visits++

	if !authenticated {
		return errs.New("partner site rejected the credentials")
	}
	s.loggedIn = true
	s.logger.Info("partner session established")
	return nil
}

// IsLoggedIn reports whether a login succeeded earlier in this session.
func (s *Session) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

// GenerateDeeplink asks the partner deeplink generator for a tracked link to
// productURL. Requires a logged-in session.
func (s *Session) GenerateDeeplink(ctx context.Context, productURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loggedIn {
		return "", errs.New("deeplink generation requires a logged-in session")
	}

	var deeplink string
	page := s.collector.Clone()
	page.OnHTML(`input[data-role="deeplink-result"], input#deeplink-output`, func(e *colly.HTMLElement) {
		if deeplink == "" {
			deeplink = e.Attr("value")
		}
	})
	generatorURL := fmt.Sprintf("%s/tools/deeplink-generator?url=%s", s.cfg.BaseURL, url.QueryEscape(productURL))
	if err := page.Visit(generatorURL); err != nil {
		return "", errs.Wrap(err, "deeplink generator unreachable")
	}
	s.visits++

	if deeplink == "" {
		return "", errs.New("deeplink generator returned no link")
	}
	return deeplink, nil
}

// GetProductMedia scrapes the public product page for gallery images,
// including the high-resolution variants the formal API does not expose.
func (s *Session) GetProductMedia(ctx context.Context, productURL string) ([]catalog.MediaItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var items []catalog.MediaItem
	seen := map[string]bool{}
	page := s.collector.Clone()
	page.OnHTML(`img[data-zoom-src], .product-media img`, func(e *colly.HTMLElement) {
		src := e.Attr("src")
		if src == "" || seen[src] {
			return
		}
		seen[src] = true
		items = append(items, catalog.MediaItem{
			URL:        src,
			HighResURL: e.Attr("data-zoom-src"),
		})
	})
	if err := page.Visit(productURL); err != nil {
		return nil, errs.Wrap(err, "product page unreachable")
	}
	s.visits++
	return items, nil
}

// DownloadMedia stores the media payloads under dir and returns how many
// succeeded. Individual failures are logged, not fatal.
func (s *Session) DownloadMedia(ctx context.Context, items []catalog.MediaItem, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, errs.Wrap(err, "failed to create media directory")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	downloaded := 0
	for i, item := range items {
		// A caller-provided abort stops before the next download, never
		// mid-transfer.
		if err := ctx.Err(); err != nil {
			return downloaded, err
		}
		target := item.HighResURL
		if target == "" {
			target = item.URL
		}

		fetch := s.collector.Clone()
		name := filepath.Join(dir, fmt.Sprintf("media-%03d%s", i, extensionOf(target)))
		var saveErr error
		fetch.OnResponse(func(r *colly.Response) {
			saveErr = r.Save(name)
		})
		if err := fetch.Visit(target); err != nil {
			s.logger.Warn("media download failed", slog.String("url", target), slog.String("error", err.Error()))
			continue
		}
		s.visits++
		if saveErr != nil {
			s.logger.Warn("media save failed", slog.String("file", name), slog.String("error", saveErr.Error()))
			continue
		}
		downloaded++
	}
	return downloaded, nil
}

// PageTitle fetches a public page and returns its title. Used by the
// diagnostic harness to verify plain scraping works at all.
func (s *Session) PageTitle(ctx context.Context, pageURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var title string
	page := s.collector.Clone()
	page.OnHTML("title", func(e *colly.HTMLElement) {
		if title == "" {
			title = strings.TrimSpace(e.Text)
		}
	})
	if err := page.Visit(pageURL); err != nil {
		return "", errs.Wrap(err, "page unreachable")
	}
	s.visits++

	if title == "" {
		return "", errs.New("page has no title")
	}
	return title, nil
}

// SessionState snapshots the session for diagnostics.
func (s *Session) SessionState() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionState{LoggedIn: s.loggedIn, BaseURL: s.cfg.BaseURL, Visits: s.visits}
}

// Close drops the session state. The collector holds no connections of its
// own, so this only forgets the login.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = false
	return nil
}

func extensionOf(rawURL string) string {
	ext := filepath.Ext(rawURL)
	if ext == "" || len(ext) > 5 || strings.ContainsAny(ext, "?&") {
		return ".jpg"
	}
	return ext
}
