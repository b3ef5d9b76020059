package dto

// AuthRequest describes login/password payload.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// IdentityResponse describes the signed-in user.
type IdentityResponse struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	Staff  bool   `json:"staff"`
}
