package model

import "github.com/golang-jwt/jwt/v5"

// AccessClaims is the payload signed into an access token. The user ID
// travels in the registered "sub" claim.
type AccessClaims struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims carries only "sub" and the token's unique "jti"; the jti is
// half of the Redis key the refresh record lives under.
type RefreshClaims struct {
	jwt.RegisteredClaims
}
