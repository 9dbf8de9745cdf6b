package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// Identity errors. Both mean the user must re-authenticate before a
// submission can be accepted; a preserved ledger survives that round trip.
var (
	ErrNoIdentity   = errors.New("no stored identity")
	ErrTokenExpired = errors.New("stored token has expired")
)

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
}

// Store persists the access token between runs and exposes the identity
// encoded in it. The token is issued and signature-checked by the
// backend; locally we only decode claims and enforce expiry.
type Store struct {
	path string
	log  zerolog.Logger

	mu    sync.Mutex
	token string
}

// NewStore creates a token store backed by the given file path.
func NewStore(path string, log zerolog.Logger) *Store {
	s := &Store{
		path: path,
		log:  log.With().Str("component", "auth_store").Logger(),
	}
	if raw, err := os.ReadFile(path); err == nil {
		s.token = strings.TrimSpace(string(raw))
	}
	return s
}

// Token returns the stored token, or "" when not logged in.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Save persists a freshly issued token.
func (s *Store) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	s.token = token
	s.log.Info().Msg("Token saved")
	return nil
}

// Clear forgets the stored token (logout or invalidated session).
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// Identity decodes the stored token's claims and enforces expiry.
// Returns ErrNoIdentity when not logged in or the token is malformed,
// ErrTokenExpired when it has lapsed.
func (s *Store) Identity() (*Claims, error) {
	tok := s.Token()
	if tok == "" {
		return nil, ErrNoIdentity
	}

	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tok, claims); err != nil {
		s.log.Warn().Err(err).Msg("Stored token is malformed")
		return nil, ErrNoIdentity
	}
	if claims.UserID == "" {
		return nil, ErrNoIdentity
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}
