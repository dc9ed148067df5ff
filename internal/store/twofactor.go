package store

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// ChallengeTTL is how long a two-factor code stays valid.
const ChallengeTTL = 10 * time.Minute

var (
	// ErrChallengeExpired is returned when the live challenge's TTL passed.
	ErrChallengeExpired = fmt.Errorf("verification code expired")
	// ErrChallengeMismatch is returned when the submitted code is wrong.
	ErrChallengeMismatch = fmt.Errorf("incorrect verification code")
)

// GenerateCode returns a random 6-digit verification code. The caller
// hands it to the gateway for out-of-band delivery; only its digest is
// stored locally.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// IssueChallenge stores the digest of a freshly generated code for uid.
// At most one challenge is live per principal: reissuing supersedes any
// previous code.
func (s *Store) IssueChallenge(ctx context.Context, uid, code string) error {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO two_factor_codes (uid, digest, created_at, expires_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(uid) DO UPDATE SET digest = excluded.digest,
			created_at = excluded.created_at, expires_at = excluded.expires_at`,
		uid, digestCode(code), now, now.Add(ChallengeTTL),
	)
	if err != nil {
		return fmt.Errorf("failed to issue challenge: %w", err)
	}
	return nil
}

// VerifyChallenge checks the submitted code against the live challenge for
// uid. The challenge is consumed on success and discarded on expiry; a
// wrong code leaves it in place until it expires or is superseded.
func (s *Store) VerifyChallenge(ctx context.Context, uid, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var digest string
	var expires time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT digest, expires_at FROM two_factor_codes WHERE uid = ?`, uid,
	).Scan(&digest, &expires)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load challenge: %w", err)
	}

	if time.Now().UTC().After(expires) {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM two_factor_codes WHERE uid = ?`, uid)
		return ErrChallengeExpired
	}

	if subtle.ConstantTimeCompare([]byte(digest), []byte(digestCode(code))) != 1 {
		return ErrChallengeMismatch
	}

	_, err = s.db.ExecContext(ctx, `DELETE FROM two_factor_codes WHERE uid = ?`, uid)
	if err != nil {
		return fmt.Errorf("failed to consume challenge: %w", err)
	}
	return nil
}

func digestCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
