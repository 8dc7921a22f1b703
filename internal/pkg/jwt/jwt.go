package jwt

import (
	"context"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

type Service interface {
	GenerateAccessToken(userID string, email string, isAdmin bool, permissions []string) (token string, expiresAt int64, err error)
	// VerifyToken decodes and validates an access token.
	VerifyToken(tokenString string) (auth.Principal, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	now                   func() time.Time
}

func NewJWTService(secretKey string, accessTokenExpiration time.Duration) *JWTService {
	return &JWTService{
		accessTokenExpiration: accessTokenExpiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                   time.Now,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, email string, isAdmin bool, permissions []string) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id":  userID,
		"sub":      userID,
		"email":    email,
		"is_admin": isAdmin,
		"type":     tokenTypeAccess,
		"exp":      expiresAt,
	}
	if len(permissions) > 0 {
		claims["permissions"] = permissions
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) VerifyToken(tokenString string) (auth.Principal, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return auth.Principal{}, auth.ErrInvalidToken
	}
	claims, err := token.AsMap(context.Background())
	if err != nil {
		return auth.Principal{}, auth.ErrInvalidToken
	}
	return PrincipalFromClaims(claims)
}

// PrincipalFromClaims builds the principal carried by an access token.
func PrincipalFromClaims(claims map[string]interface{}) (auth.Principal, error) {
	if tokenType, _ := claims["type"].(string); tokenType != tokenTypeAccess {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	p := auth.Principal{UserID: userID}
	p.Email, _ = claims["email"].(string)
	p.IsAdmin, _ = claims["is_admin"].(bool)

	switch perms := claims["permissions"].(type) {
	case []string:
		p.Permissions = perms
	case []interface{}:
		for _, v := range perms {
			if s, ok := v.(string); ok {
				p.Permissions = append(p.Permissions, s)
			}
		}
	}
	return p, nil
}
