package auth

import "panduankota/backend/internal/constants"

// Common interface over the two credential kinds (JWT access token,
// server-side session).
type UserClaims interface {
	UserID() string
	Username() string
	Role() string
	Source() string
	IsAdmin() bool
}

type JWTClaims struct {
	UserUUID      string
	UsernameValue string
	RoleValue     constants.Role
}

func (c *JWTClaims) UserID() string   { return c.UserUUID }
func (c *JWTClaims) Username() string { return c.UsernameValue }
func (c *JWTClaims) Role() string { // implements UserClaims
	return string(c.RoleValue)
}
func (c *JWTClaims) Source() string { return "JWT" }
func (c *JWTClaims) IsAdmin() bool  { return c.RoleValue == constants.RoleAdmin }

type SessionClaims struct {
	UserUUID      string
	UsernameValue string
	RoleValue     constants.Role
	SessionIDVal  string
}

func (c *SessionClaims) UserID() string   { return c.UserUUID }
func (c *SessionClaims) Username() string { return c.UsernameValue }
func (c *SessionClaims) Role() string { // implements UserClaims
	return string(c.RoleValue)
}
func (c *SessionClaims) Source() string    { return "SESSION" }
func (c *SessionClaims) IsAdmin() bool     { return c.RoleValue == constants.RoleAdmin }
func (c *SessionClaims) SessionID() string { return c.SessionIDVal }
