package dto

// LoginRequest is the staff/admin login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StudentLoginRequest is the passwordless student login payload.
type StudentLoginRequest struct {
	IDNumber  string `json:"idNumber" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
}

// TokenResponse carries an issued claims token.
type TokenResponse struct {
	Token string `json:"token"`
}

// ChangePasswordRequest changes the acting user's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ForgotPasswordRequest starts the password-reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResetPasswordRequest completes the password-reset flow.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// IdentityResponse echoes the verified token's identity and scope.
type IdentityResponse struct {
	UserID   int64   `json:"userId"`
	RoleID   int64   `json:"roleId"`
	BatchIDs []int64 `json:"batchIds"`
	StreamID *int64  `json:"streamId,omitempty"`
}
