package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// EmployeeClaims carries the register operator's identity in issued
// tokens.
type EmployeeClaims struct {
	EmployeeID int32  `json:"employee_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	GenerateAccessToken(employeeID int32, username, role string) (string, error)
	ValidateToken(tokenString string) (*EmployeeClaims, error)
}

type tokenManager struct {
	secret   []byte
	duration time.Duration
}

func NewTokenManager(secret string, duration time.Duration) TokenManager {
	return &tokenManager{
		secret:   []byte(secret),
		duration: duration,
	}
}

func (m *tokenManager) GenerateAccessToken(employeeID int32, username, role string) (string, error) {
	claims := EmployeeClaims{
		EmployeeID: employeeID,
		Username:   username,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(employeeID)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "rentalpos",
			ID:        generateJTI(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*EmployeeClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &EmployeeClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*EmployeeClaims); ok && token.Valid {
		if claims.EmployeeID == 0 && claims.Subject != "" {
			id, _ := strconv.Atoi(claims.Subject)
			claims.EmployeeID = int32(id)
		}
		return claims, nil
	}

	return nil, ErrInvalidToken
}

func generateJTI() string {
	return strconv.FormatInt(time.Now().UnixNano(), 16)
}
