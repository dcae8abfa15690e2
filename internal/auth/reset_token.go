package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/todoit/accounts/common"
)

// resetClaim is the claim carrying the subject user id. The name matches
// the tokens already issued by the previous implementation, so links
// generated before a deployment keep verifying after it.
const resetClaim = "reset_password"

// GenerateResetToken signs a password-reset token for userID, valid for
// validityDuration. The token is an HS256 JWT with the payload
// {"reset_password": <id>, "exp": <unix seconds>} and is URL-safe.
func GenerateResetToken(userID int64, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		resetClaim: userID,
		"exp":      jwt.NewNumericDate(time.Now().Add(validityDuration)),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromResetToken validates signature and expiry and returns the
// embedded user id. Expired tokens yield common.ErrTokenExpired; every
// other failure (bad signature, malformed payload, wrong algorithm)
// yields common.ErrInvalidToken.
func GetUserIDFromResetToken(tokenString string, secretKey []byte) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, common.ErrTokenExpired
		}
		return 0, common.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, common.ErrInvalidToken
	}

	// JSON numbers arrive as float64.
	id, ok := claims[resetClaim].(float64)
	if !ok {
		return 0, common.ErrInvalidToken
	}

	return int64(id), nil
}
