package response

import "productpraat/internal/review"

type ReviewResponse struct {
	EAN       string   `json:"ean"`
	Summary   string   `json:"summary"`
	Pros      []string `json:"pros,omitempty"`
	Cons      []string `json:"cons,omitempty"`
	Verdict   string   `json:"verdict,omitempty"`
	Generated bool     `json:"generated"`
}

func FromReview(r review.Review) *ReviewResponse {
	return &ReviewResponse{
		EAN:       r.EAN,
		Summary:   r.Summary,
		Pros:      r.Pros,
		Cons:      r.Cons,
		Verdict:   r.Verdict,
		Generated: r.Generated,
	}
}
