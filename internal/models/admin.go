package models

// Admin represents a privileged user permitted to mutate course records.
// Admins are created by the seed command and never mutated by the running
// service; the record is used only for login verification.
type Admin struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// AdminSession is the decoded identity attached to the request context by
// the auth middleware. The client is responsible for persisting the token;
// the server holds no session state.
type AdminSession struct {
	AdminID   int    `json:"adminId"`
	Username  string `json:"username"`
	IssuedAt  int64  `json:"issuedAt"`
	ExpiresAt int64  `json:"expiresAt"`
}

// LoginRequest is the credential payload for POST /admin/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Token    string `json:"token"`
}
