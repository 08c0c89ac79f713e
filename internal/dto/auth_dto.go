package dto

// AuthResponse carries the signed token plus the authenticated user's profile.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
