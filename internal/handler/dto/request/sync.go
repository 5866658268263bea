package request

type TriggerSyncRequest struct {
	// Term seeds a search-sync run; CategoryID scopes popular-products.
	Term       string `json:"term" binding:"omitempty,max=200"`
	CategoryID string `json:"category_id" binding:"omitempty,max=50"`
}
