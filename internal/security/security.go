// Package security produces the per-request script nonce, the content
// security policy that carries it, and the shared-secret admin flag.
package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// NonceBytes is the entropy of every script nonce.
const NonceBytes = 16

// TokenSource yields a fresh token on every call.
type TokenSource interface {
	NextToken() (string, error)
}

// RandomTokens draws tokens from crypto/rand.
type RandomTokens struct{}

func (RandomTokens) NextToken() (string, error) {
	b := make([]byte, NonceBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// AdminGate compares a request-supplied value with the configured secret.
// The secret is either plaintext or a bcrypt hash; with neither set nobody is
// ever admin.
type AdminGate struct {
	secret []byte
	hash   []byte
}

func NewAdminGate(secret, bcryptHash string) AdminGate {
	g := AdminGate{}
	if secret != "" {
		g.secret = []byte(secret)
	}
	if bcryptHash != "" {
		g.hash = []byte(bcryptHash)
	}
	return g
}

// Configured reports whether any secret was supplied.
func (g AdminGate) Configured() bool {
	return len(g.secret) > 0 || len(g.hash) > 0
}

func (g AdminGate) IsAdmin(supplied string) bool {
	if supplied == "" {
		return false
	}
	if len(g.hash) > 0 {
		return bcrypt.CompareHashAndPassword(g.hash, []byte(supplied)) == nil
	}
	if len(g.secret) > 0 {
		return subtle.ConstantTimeCompare(g.secret, []byte(supplied)) == 1
	}
	return false
}

// HashSecret returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashSecret(secret string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Policy renders the Content-Security-Policy header value.
type Policy struct {
	// Production disables 'unsafe-eval' for scripts.
	Production bool
}

func (p Policy) Header(nonce string) string {
	scriptSrc := []string{"'self'", "'nonce-" + nonce + "'"}
	if !p.Production {
		scriptSrc = append(scriptSrc, "'unsafe-eval'")
	}

	directives := []struct {
		name   string
		values []string
	}{
		{"default-src", []string{"'self'"}},
		{"script-src", scriptSrc},
		{"connect-src", []string{"'self'"}},
		{"style-src", []string{"'self'"}},
		{"img-src", []string{"'self'", "data:", "https:", "https://covers.openlibrary.org"}},
		{"font-src", []string{"'self'"}},
		{"object-src", []string{"'none'"}},
		{"frame-ancestors", []string{"'self'"}},
		{"base-uri", []string{"'self'"}},
		{"form-action", []string{"'self'"}},
	}

	parts := make([]string, 0, len(directives))
	for _, d := range directives {
		parts = append(parts, d.name+" "+strings.Join(d.values, " "))
	}
	return strings.Join(parts, "; ")
}
