package auth

// LoginRequest for POST /auth/admin/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}

// RefreshRequest for POST /auth/admin/refresh
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// GoogleSignInRequest for POST /auth/google
type GoogleSignInRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// UserSummary is the admin identity echoed back on login.
type UserSummary struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

// TokenResponse carries issued tokens. Refresh responses omit RefreshToken and User.
type TokenResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	User         *UserSummary `json:"user,omitempty"`
}

// GoogleUser represents the key information extracted from a verified ID token
type GoogleUser struct {
	UID           string
	Email         string
	Name          string
	Picture       string
	EmailVerified bool
}
