package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/talx-hub/points-ledger/internal/serviceerrs"
)

const (
	TokenExpire = 8 * time.Hour
	CookieName  = "jwt-token"
	bearer      = "Bearer "
)

type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

func BuildJWTString(id string, secret []byte) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   id,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpire)),
			},
			UserID: id,
		},
	)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("JWT signing: %w", err)
	}
	return tokenString, nil
}

// Authenticate issues a token for id and wraps it into the session cookie.
func Authenticate(id string, secret []byte) (string, http.Cookie, error) {
	jwtString, err := BuildJWTString(id, secret)
	if err != nil {
		return "", http.Cookie{}, fmt.Errorf("authentication failed: %w", err)
	}
	return jwtString, http.Cookie{
		Name:     CookieName,
		Value:    jwtString,
		Path:     "/",
		MaxAge:   int(TokenExpire.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

func CheckToken(tokenString string, secret []byte) (Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return secret, nil
		})
	if errors.Is(err, jwt.ErrTokenExpired) {
		return Claims{}, serviceerrs.ErrTokenExpired
	}
	if err != nil {
		return Claims{}, fmt.Errorf("failed to parse token %w", err)
	}
	if claims.UserID == "" {
		return Claims{}, errors.New("token carries no user id")
	}

	return *claims, nil
}

// TokenFromRequest prefers the Authorization header over the cookie.
func TokenFromRequest(r *http.Request) (string, bool) {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, bearer) {
		token := strings.TrimSpace(strings.TrimPrefix(h, bearer))
		return token, token != ""
	}
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
