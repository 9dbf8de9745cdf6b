package model

// LoginRequest is the POST /login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResponse carries the access token returned by the backend.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// User is the authenticated account as reported by the backend.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
