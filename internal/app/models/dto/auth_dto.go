package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// RegisterRequest represents an account registration request. The optional
// teacherId/studentId link the account to an existing domain record.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	RoleType  string `json:"roleType" binding:"required,oneof=ADMIN TEACHER STUDENT"`
	TeacherID *int64 `json:"teacherId,omitempty" binding:"omitempty,gt=0"`
	StudentID *int64 `json:"studentId,omitempty" binding:"omitempty,gt=0"`
}

// UserResponse represents basic account information
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	RoleType  string `json:"roleType"`
	TeacherID *int64 `json:"teacherId,omitempty"`
	StudentID *int64 `json:"studentId,omitempty"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}
