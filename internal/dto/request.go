package dto

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ShareRequest struct {
	Emails []string `json:"emails"`
}

type CreateShareLinkRequest struct {
	// Nil means the link never expires.
	ExpiresInMinutes *float64 `json:"expires_in_minutes"`
}
