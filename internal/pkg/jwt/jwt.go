package jwt

import (
	"time"

	"github.com/cmlabs-hris/hris-duty-report/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies access tokens issued by the HRIS. Tokens carry the caller's
// role and, when the caller is staff, employee_id and department_id.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	GenerateAccessToken(principal user.Principal, ttl time.Duration) (token string, expiresAt int64, err error)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// GenerateAccessToken signs a token with the same claims the HRIS issues.
// Used by tests and local tooling.
func (j *JWTService) GenerateAccessToken(principal user.Principal, ttl time.Duration) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(ttl).Unix()

	claims := map[string]interface{}{
		"user_id":       principal.UserID,
		"employee_id":   valueOrNil(principal.EmployeeID),
		"department_id": valueOrNil(principal.DepartmentID),
		"role":          string(principal.Role),
		"type":          "access",
		"exp":           expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func valueOrNil(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
