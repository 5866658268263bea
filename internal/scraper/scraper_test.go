//go:build unit

package scraper_test

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productpraat/internal/pkg/config"
	"productpraat/internal/scraper"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// partnerSite fakes the login and deeplink-generator pages.
func partnerSite(t *testing.T) (*httptest.Server, *string) {
	t.Helper()
	var generatorQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /login", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><form><input name="_csrf" value="token-123"></form></body></html>`)
	})
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "token-123", r.PostFormValue("_csrf"))
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	})
	mux.HandleFunc("GET /dashboard", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>welcome</body></html>`)
	})
	mux.HandleFunc("GET /tools/deeplink-generator", func(w http.ResponseWriter, r *http.Request) {
		generatorQuery = r.URL.RawQuery
		fmt.Fprint(w, `<html><body><input id="deeplink-output" value="https://partner.example/click?id=42"></body></html>`)
	})
	return httptest.NewServer(mux), &generatorQuery
}

func TestGenerateDeeplink_EscapesProductURL(t *testing.T) {
	site, generatorQuery := partnerSite(t)
	defer site.Close()

	session := scraper.NewSession(config.ScraperConfig{
		Enabled:  true,
		Email:    "partner@example.com",
		Password: "secret",
		BaseURL:  site.URL,
	}, testLogger())

	require.NoError(t, session.Login(context.Background()))
	assert.True(t, session.IsLoggedIn())

	productURL := "https://www.bol.com/nl/p/123?utm_source=x&ref=y"
	link, err := session.GenerateDeeplink(context.Background(), productURL)
	require.NoError(t, err)
	assert.Equal(t, "https://partner.example/click?id=42", link)

	// the product URL's own query must not leak into the generator request
	assert.Equal(t, "url="+url.QueryEscape(productURL), *generatorQuery)
}

func TestGenerateDeeplink_RequiresLogin(t *testing.T) {
	session := scraper.NewSession(config.ScraperConfig{BaseURL: "http://unused.invalid"}, testLogger())

	_, err := session.GenerateDeeplink(context.Background(), "https://www.bol.com/nl/p/123")
	assert.Error(t, err)
}
