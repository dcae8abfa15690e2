package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/todoit/accounts/common"
)

func signedTokenWithoutResetClaim(t *testing.T, secret []byte) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, err := tok.SignedString(secret)
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}
	return s
}

func TestGenerateAndParseResetToken_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateResetToken(42, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateResetToken error: %v", err)
	}

	gotID, err := GetUserIDFromResetToken(tok, secret)
	if err != nil {
		t.Fatalf("GetUserIDFromResetToken error: %v", err)
	}
	if gotID != 42 {
		t.Fatalf("user id mismatch: got %d want 42", gotID)
	}
}

func TestGetUserIDFromResetToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateResetToken(7, secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateResetToken error: %v", err)
	}

	_, err = GetUserIDFromResetToken(tok, secret)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestGetUserIDFromResetToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateResetToken(7, []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateResetToken error: %v", err)
	}

	_, err = GetUserIDFromResetToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestGetUserIDFromResetToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := GetUserIDFromResetToken("not.a.jwt", []byte("k"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestGetUserIDFromResetToken_MissingClaim(t *testing.T) {
	t.Parallel()

	// Valid HS256 JWT signed with the same secret but without the
	// reset_password claim.
	secret := []byte("k")
	tok := signedTokenWithoutResetClaim(t, secret)

	_, err := GetUserIDFromResetToken(tok, secret)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

// Token payloads must stay readable by the token consumers already in the
// wild: claim names "reset_password" and "exp", numeric values.
func TestResetToken_PayloadFormat(t *testing.T) {
	t.Parallel()

	tok, err := GenerateResetToken(42, []byte("k"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateResetToken error: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("expected compact JWT with 3 segments, got %d", len(parts))
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("payload is not base64url: %v", err)
	}

	claims := map[string]any{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}

	id, ok := claims["reset_password"].(float64)
	if !ok || int64(id) != 42 {
		t.Fatalf("reset_password claim missing or wrong: %v", claims["reset_password"])
	}
	if _, ok := claims["exp"].(float64); !ok {
		t.Fatalf("exp claim missing or non-numeric: %v", claims["exp"])
	}
}
