// Package review turns catalog products into editorial review content with
// the help of a text completion collaborator.
package review

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"productpraat/internal/catalog"
	"productpraat/internal/pkg/errs"
)

// TextCompleter produces a free-form completion for a prompt. Implementations
// wrap a chat-completion API; tests use a canned fake.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Review is the structured editorial content for one product.
type Review struct {
	EAN     string   `json:"ean"`
	Summary string   `json:"summary"`
	Pros    []string `json:"pros"`
	Cons    []string `json:"cons"`
	Verdict string   `json:"verdict"`
	// Generated is false when the review is a placeholder built from
	// catalog data because the collaborator reply was unusable.
	Generated bool `json:"generated"`
}

type Generator struct {
	completer TextCompleter
	logger    *slog.Logger
}

func NewGenerator(completer TextCompleter, logger *slog.Logger) *Generator {
	return &Generator{
		completer: completer,
		logger:    logger.With(slog.String("component", "review")),
	}
}

// ProductReview asks the collaborator for a structured Dutch review of the
// product. Replies wrapped in markdown code fences are unwrapped before
// parsing. A reply that cannot be parsed as the expected JSON shape degrades
// to a placeholder review assembled from the catalog data itself.
func (g *Generator) ProductReview(ctx context.Context, product catalog.Product) (Review, error) {
	reply, err := g.completer.Complete(ctx, buildPrompt(product))
	if err != nil {
		return Review{}, errs.Wrap(err, "review completion failed")
	}

	var parsed struct {
		Summary string   `json:"summary"`
		Pros    []string `json:"pros"`
		Cons    []string `json:"cons"`
		Verdict string   `json:"verdict"`
	}
	if err := json.Unmarshal([]byte(StripFences(reply)), &parsed); err != nil || parsed.Summary == "" {
		g.logger.WarnContext(ctx, "unusable review reply, using placeholder",
			slog.String("ean", product.EAN))
		return placeholder(product), nil
	}

	return Review{
		EAN:       product.EAN,
		Summary:   parsed.Summary,
		Pros:      parsed.Pros,
		Cons:      parsed.Cons,
		Verdict:   parsed.Verdict,
		Generated: true,
	}, nil
}

// StripFences removes a surrounding markdown code fence (with or without a
// language tag) from a completion reply.
func StripFences(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// drop the language tag line ("json", "markdown", ...)
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func buildPrompt(product catalog.Product) string {
	var b strings.Builder
	b.WriteString("Schrijf een productreview in het Nederlands voor het volgende product.\n")
	fmt.Fprintf(&b, "Titel: %s\n", product.Title)
	if product.Brand != "" {
		fmt.Fprintf(&b, "Merk: %s\n", product.Brand)
	}
	fmt.Fprintf(&b, "Prijs: €%.2f\n", product.Price)
	if product.Rating != nil && product.Rating.Count > 0 {
		fmt.Fprintf(&b, "Klantbeoordeling: %.1f/5 (%d reviews)\n", product.Rating.Average, product.Rating.Count)
	}
	if product.Description != "" {
		fmt.Fprintf(&b, "Omschrijving: %s\n", product.Description)
	}
	for _, group := range product.Specs {
		for _, entry := range group.Entries {
			fmt.Fprintf(&b, "- %s: %s\n", entry.Name, strings.Join(entry.Values, ", "))
		}
	}
	b.WriteString("\nAntwoord uitsluitend met JSON in dit formaat: ")
	b.WriteString(`{"summary": "...", "pros": ["..."], "cons": ["..."], "verdict": "..."}`)
	return b.String()
}

func placeholder(product catalog.Product) Review {
	summary := product.Description
	if summary == "" {
		summary = "Geen beschrijving beschikbaar."
	}
	return Review{
		EAN:     product.EAN,
		Summary: summary,
		Verdict: product.Title,
	}
}
