//go:build unit

package review_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productpraat/internal/catalog"
	"productpraat/internal/review"
)

type cannedCompleter struct {
	reply string
	err   error
}

func (c *cannedCompleter) Complete(_ context.Context, _ string) (string, error) {
	return c.reply, c.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testProduct() catalog.Product {
	return catalog.Product{
		EAN:         "8806091234567",
		Title:       "Samsung 55QN90A",
		Description: "Neo QLED televisie",
		Price:       1299,
	}
}

func TestProductReview_ParsesFencedJSON(t *testing.T) {
	completer := &cannedCompleter{reply: "```json\n" +
		`{"summary": "Uitstekende tv", "pros": ["beeld"], "cons": ["prijs"], "verdict": "Kopen"}` +
		"\n```"}
	g := review.NewGenerator(completer, testLogger())

	rev, err := g.ProductReview(context.Background(), testProduct())

	require.NoError(t, err)
	assert.True(t, rev.Generated)
	assert.Equal(t, "8806091234567", rev.EAN)
	assert.Equal(t, "Uitstekende tv", rev.Summary)
	assert.Equal(t, []string{"beeld"}, rev.Pros)
	assert.Equal(t, []string{"prijs"}, rev.Cons)
	assert.Equal(t, "Kopen", rev.Verdict)
}

func TestProductReview_MalformedJSONFallsBackToPlaceholder(t *testing.T) {
	completer := &cannedCompleter{reply: "Hier is de review die je vroeg: het is een mooie tv."}
	g := review.NewGenerator(completer, testLogger())

	rev, err := g.ProductReview(context.Background(), testProduct())

	require.NoError(t, err)
	assert.False(t, rev.Generated)
	assert.Equal(t, "Neo QLED televisie", rev.Summary)
}

func TestProductReview_CompleterErrorPropagates(t *testing.T) {
	completer := &cannedCompleter{err: assert.AnError}
	g := review.NewGenerator(completer, testLogger())

	_, err := g.ProductReview(context.Background(), testProduct())

	require.Error(t, err)
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, review.StripFences(tt.reply))
		})
	}
}
