package response

import "productpraat/internal/sourcing"

type AffiliateLinkResponse struct {
	URL         string   `json:"url"`
	OriginalURL string   `json:"original_url"`
	Source      string   `json:"source"`
	Errors      []string `json:"errors,omitempty"`
}

func FromDeeplink(result *sourcing.DeeplinkResult) *AffiliateLinkResponse {
	return &AffiliateLinkResponse{
		URL:         result.URL,
		OriginalURL: result.OriginalURL,
		Source:      result.Source,
		Errors:      result.Errors,
	}
}
