package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/formdesk/server/internal/models"
)

// Claims carry the user's public profile. No secret material is ever
// encoded into a token.
type Claims struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Institute string `json:"institute"`
	Position  string `json:"position"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, ttl time.Duration, user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    user.ID.Hex(),
		Email:     user.Email,
		FirstName: user.PersonalInformation.FirstName,
		LastName:  user.PersonalInformation.LastName,
		Institute: user.PersonalInformation.Institute,
		Position:  user.PersonalInformation.Position,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}
