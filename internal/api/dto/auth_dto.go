package dto

// LoginRequest carries the identity key for login. The rest of the payload is
// free-form and becomes the user record on first login.
type LoginRequest struct {
	Email string `json:"email" validate:"required"`
	Role  string `json:"role"`
}

// LoginData is the payload of a successful login envelope.
type LoginData struct {
	AccessToken string `json:"accessToken"`
}
