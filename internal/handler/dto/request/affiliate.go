package request

type AffiliateLinkRequest struct {
	URL  string `form:"url" binding:"required,url"`
	Name string `form:"name"`
}

type ClickRequest struct {
	EAN       string `json:"ean" binding:"required,len=13,numeric"`
	ArticleID string `json:"article_id"`
	Referrer  string `json:"referrer" binding:"omitempty,max=500"`
}
