package bol

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"productpraat/internal/pkg/clock"
)

// tokenExpiryMargin refreshes the token slightly before the upstream expiry
// so an in-flight request never carries a token that lapses mid-call.
const tokenExpiryMargin = 30 * time.Second

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// tokenSource exchanges the client credentials for a bearer token and caches
// it until shortly before expiry.
type tokenSource struct {
	httpClient   *http.Client
	authURL      string
	clientID     string
	clientSecret string
	clock        clock.Clock

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func newTokenSource(httpClient *http.Client, authURL, clientID, clientSecret string, clk clock.Clock) *tokenSource {
	return &tokenSource{
		httpClient:   httpClient,
		authURL:      authURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		clock:        clk,
	}
}

// Token returns a valid bearer token, fetching a fresh one when the cached
// token is absent or about to expire.
func (ts *tokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.token != "" && ts.clock.Now().Before(ts.expiresAt.Add(-tokenExpiryMargin)) {
		return ts.token, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.authURL+"?grant_type=client_credentials", nil)
	if err != nil {
		return "", newTransportError(err)
	}
	credentials := base64.StdEncoding.EncodeToString([]byte(ts.clientID + ":" + ts.clientSecret))
	req.Header.Set("Authorization", "Basic "+credentials)
	req.Header.Set("Accept", "application/json")

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newTransportError(err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", newStatusError(resp.StatusCode, parseProblem(body))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", newTransportError(err)
	}

	ts.token = tr.AccessToken
	ts.expiresAt = ts.clock.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	return ts.token, nil
}

func parseProblem(body []byte) *Problem {
	if len(body) == 0 {
		return nil
	}
	var p Problem
	if err := json.Unmarshal(body, &p); err != nil {
		return nil
	}
	if p.Type == "" && p.Title == "" && p.Status == 0 {
		return nil
	}
	return &p
}
