package request

// RegisterRequest is the request body for creating an account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for opening a session
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
