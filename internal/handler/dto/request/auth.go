package request

type TokenRequest struct {
	AdminSecret string `json:"admin_secret" binding:"required"`
}
