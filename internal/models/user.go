package models

import "time"

// User is an account of the contact book. The username is the identity and
// never changes after registration.
type User struct {
	Username       string    `json:"username" gorm:"primaryKey;type:varchar(100)"`
	Password       string    `json:"-" gorm:"type:varchar(100);not null"` // bcrypt digest
	Name           string    `json:"name" gorm:"type:varchar(100);not null"`
	Token          *string   `json:"-" gorm:"uniqueIndex;type:varchar(100)"`
	TokenExpiredAt int64     `json:"-" gorm:"not null;default:0"` // epoch milliseconds, 0 when logged out
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// HasSession reports whether u holds a token that has not expired at now.
func (u *User) HasSession(now time.Time) bool {
	return u.Token != nil && *u.Token != "" && u.TokenExpiredAt >= now.UnixMilli()
}

// RegisterUserRequest is the body of POST /api/users.
type RegisterUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// UpdateUserRequest is the body of PATCH /api/users/current. Nil fields are left unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// LoginUserRequest is the body of POST /api/auth/login.
type LoginUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiredAt int64  `json:"expiredAt"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// ToResponse converts u to its public view.
func (u *User) ToResponse() UserResponse {
	return UserResponse{Username: u.Username, Name: u.Name}
}
