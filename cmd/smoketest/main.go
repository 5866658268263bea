// Command smoketest exercises the partner-site automation path end to end
// against the live site: configuration, anonymous page access, orchestrator
// wiring, product media scraping and download and, when credentials are
// present, login and deeplink generation.
// Each step prints PASS or FAIL; the exit code is non-zero when any step
// failed.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"productpraat/internal/catalog"
	"productpraat/internal/pkg/clock"
	"productpraat/internal/pkg/config"
	"productpraat/internal/scraper"
	"productpraat/internal/sourcing"
)

const (
	publicPage  = "https://partnerprogramma.bol.com/"
	sampleURL   = "https://www.bol.com/nl/nl/p/-/9300000220329544/"
	stepTimeout = 30 * time.Second
)

type report struct {
	failed int
}

func (r *report) step(name string, err error) {
	if err != nil {
		r.failed++
		fmt.Printf("FAIL  %-28s %v\n", name, err)
		return
	}
	fmt.Printf("PASS  %-28s\n", name)
}

func (r *report) skip(name, reason string) {
	fmt.Printf("SKIP  %-28s %s\n", name, reason)
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	r := &report{}

	cfg, err := config.LoadConfig()
	r.step("load configuration", err)
	if err != nil {
		os.Exit(1)
	}

	if !cfg.Scraper.Enabled {
		fmt.Println("scraper is disabled (SCRAPER_ENABLED=false); enabling for this run")
		cfg.Scraper.Enabled = true
	}

	session := scraper.NewSession(cfg.Scraper, logger)

	ctx, cancel := context.WithTimeout(context.Background(), stepTimeout)
	title, err := session.PageTitle(ctx, publicPage)
	cancel()
	if err == nil && title == "" {
		err = fmt.Errorf("page loaded but no title found")
	}
	r.step("scrape public page", err)
	if err == nil {
		fmt.Printf("      title: %q\n", title)
	}

	links := catalog.NewLinkBuilder(cfg.Affiliate, clock.NewRealClock())
	orchestrator := sourcing.NewOrchestrator(nil, links, session, cfg.Scraper, logger)
	status := orchestrator.Status()
	fmt.Printf("      secondary=%s configured=%t logged_in=%t\n",
		status.SecondaryState, status.SecondaryConfigured, status.LoggedIn)
	r.step("orchestrator status", nil)

	if cfg.Scraper.Email == "" || cfg.Scraper.Password == "" {
		r.skip("partner login", "no credentials configured")
		r.skip("deeplink generation", "no credentials configured")
	} else {
		ctx, cancel = context.WithTimeout(context.Background(), stepTimeout)
		err = session.Login(ctx)
		cancel()
		r.step("partner login", err)

		if err == nil {
			ctx, cancel = context.WithTimeout(context.Background(), stepTimeout)
			deeplink, dlErr := session.GenerateDeeplink(ctx, sampleURL)
			cancel()
			if dlErr == nil && deeplink == "" {
				dlErr = fmt.Errorf("empty deeplink returned")
			}
			r.step("deeplink generation", dlErr)
			if dlErr == nil {
				fmt.Printf("      deeplink: %s\n", deeplink)
			}
		} else {
			r.skip("deeplink generation", "login failed")
		}
	}

	ctx, cancel = context.WithTimeout(context.Background(), stepTimeout)
	media, err := session.GetProductMedia(ctx, sampleURL)
	cancel()
	r.step("scrape product media", err)
	if err != nil || len(media) == 0 {
		r.skip("download media", "no media scraped")
	} else {
		dir, dirErr := os.MkdirTemp("", "smoketest-media-")
		if dirErr != nil {
			r.step("download media", dirErr)
		} else {
			ctx, cancel = context.WithTimeout(context.Background(), stepTimeout)
			downloaded, dlErr := session.DownloadMedia(ctx, media, dir)
			cancel()
			if dlErr == nil && downloaded == 0 {
				dlErr = fmt.Errorf("no media downloaded")
			}
			r.step("download media", dlErr)
			if dlErr == nil {
				fmt.Printf("      downloaded %d file(s) to %s\n", downloaded, dir)
			}
		}
	}

	r.step("close session", session.Close())

	if r.failed > 0 {
		fmt.Printf("\n%d step(s) failed\n", r.failed)
		os.Exit(1)
	}
	fmt.Println("\nall steps passed")
}
