package auth

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/whatsforlunch/server/models"
)

var ErrInvalidToken = errors.New("invalid token")

const bcryptCost = 12

// HashPassword returns the bcrypt hash of a password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword compares a plaintext password against a stored hash
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// ValidatePassword enforces the registration password policy. Rules run
// in a fixed order and the first failure wins: length bounds, then
// surrounding whitespace, then character-class complexity.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("Password must be longer than 8 characters")
	}
	if len(password) > 72 {
		return errors.New("Password must be less than 72 characters")
	}
	if strings.TrimSpace(password) != password {
		return errors.New("Password must not start or end with empty space")
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return errors.New("Password must contain at least 1 upper case letter, lower case letter, number, and special character")
	}
	return nil
}

// CreateToken issues a signed HS256 bearer token for a user. The token
// carries the user id and the username as subject.
func CreateToken(user models.User, secret string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"sub":     user.UserName,
		"exp":     time.Now().Add(expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies a bearer token and returns the embedded user id.
// Whether that id still resolves to a known user is the caller's check.
func ParseToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}
