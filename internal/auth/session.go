// internal/auth/session.go
package auth

import (
	"crypto/ed25519"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session tokens carry nothing but the opaque player id; there are no
// accounts or passwords. Keys are generated fresh per process, so tokens do
// not survive a restart; players recover their seat through rejoin-by-name.
var (
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey

	// tokenTTL is how long issued tokens stay valid; zero means no expiry.
	tokenTTL time.Duration
)

// Init generates the signing key pair and reads WIZARD_TOKEN_TTL (a Go
// duration, empty or "0" for no expiry).
func Init() {
	var err error
	publicKey, privateKey, err = ed25519.GenerateKey(nil)
	if err != nil {
		fmt.Printf("failed to generate ed25519 key pair: %v\n", err)
		os.Exit(1)
	}

	ttl := os.Getenv("WIZARD_TOKEN_TTL")
	if ttl == "" || ttl == "0" {
		tokenTTL = 0
		return
	}
	d, err := time.ParseDuration(ttl)
	if err != nil {
		fmt.Printf("failed to parse WIZARD_TOKEN_TTL: %v\n", err)
		os.Exit(1)
	}
	tokenTTL = d
}

// IssueToken signs a session token for a player id.
func IssueToken(playerID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": playerID,
	}
	if tokenTTL > 0 {
		claims["exp"] = time.Now().Add(tokenTTL).Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	return token.SignedString(privateKey)
}

// PlayerIDFromToken verifies a session token and returns the player id.
func PlayerIDFromToken(tokenString string) (string, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return publicKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("jwt parse error: %w", err)
	}
	if !t.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid jwt claims")
	}
	playerID, ok := claims["sub"].(string)
	if !ok {
		return "", fmt.Errorf("missing sub in jwt")
	}
	return playerID, nil
}
