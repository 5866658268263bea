package catalog

import (
	"net/url"
	"strings"

	"productpraat/internal/pkg/clock"
	"productpraat/internal/pkg/config"
)

const partnerClickBase = "https://partner.bol.com/click/click"

// LinkBuilder derives affiliate links. Links are pure derived values with no
// lifecycle of their own.
type LinkBuilder struct {
	siteCode  string
	partnerID string
	clock     clock.Clock
}

func NewLinkBuilder(cfg config.AffiliateConfig, clk clock.Clock) *LinkBuilder {
	return &LinkBuilder{siteCode: cfg.SiteCode, partnerID: cfg.PartnerID, clock: clk}
}

// PartnerLink builds the partner-network click URL for a product. Requires a
// configured site code; returns empty when there is none.
func (b *LinkBuilder) PartnerLink(productURL, productName string) string {
	if b.siteCode == "" {
		return ""
	}
	if productName == "" {
		productName = "Product"
	}
	params := url.Values{}
	params.Set("p", "2")
	params.Set("t", "url")
	params.Set("s", b.siteCode)
	params.Set("f", "TXL")
	params.Set("url", productURL)
	params.Set("name", productName)
	return partnerClickBase + "?" + params.Encode()
}

// FallbackLink appends the local tracking parameter to the original URL. It
// is the link of last resort when the partner network is unreachable.
func (b *LinkBuilder) FallbackLink(productURL string) string {
	separator := "?"
	if strings.Contains(productURL, "?") {
		separator = "&"
	}
	return productURL + separator + "Referrer=productpraat_" + b.partnerID
}

// Generate produces the affiliate link record for a product URL, preferring
// the partner-network link when a site code is configured.
func (b *LinkBuilder) Generate(productURL, productName string) AffiliateLink {
	link := b.PartnerLink(productURL, productName)
	if link == "" {
		link = b.FallbackLink(productURL)
	}
	return AffiliateLink{
		OriginalURL: productURL,
		URL:         link,
		PartnerID:   b.partnerID,
		GeneratedAt: b.clock.Now(),
	}
}
