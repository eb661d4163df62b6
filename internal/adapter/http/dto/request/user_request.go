package request

// RegisterRequest creates an account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Mail     string `json:"mail" binding:"required,email"`
	Role     string `json:"role" binding:"required"`
}

// LoginRequest starts the two-step sign-in; a one-time code is mailed on
// success.
type LoginRequest struct {
	Mail     string `json:"mail" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyOTPRequest redeems the mailed code for a session cookie.
type VerifyOTPRequest struct {
	Mail string `json:"mail" binding:"required,email"`
	OTP  string `json:"otp" binding:"required"`
}
