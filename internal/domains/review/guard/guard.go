// Package guard keeps one network origin from reviewing the same profile
// more than once per cooldown window. Origins are only ever stored as a
// keyed hash.
package guard

import (
	"context"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/blake2b"

	"engagement-backend/internal/domains/review/model"
	"engagement-backend/internal/shared/apperror"
	"engagement-backend/internal/shared/utils"
)

// LatestFinder is the single query the guard needs.
type LatestFinder interface {
	FindLatestByFingerprint(ctx context.Context, profileID uuid.UUID, fingerprint string) (*model.Review, error)
}

type Guard struct {
	finder LatestFinder
	key    [32]byte
	clock  clockwork.Clock
}

// New builds a guard keyed by secret. Any secret length is accepted; it is
// compressed to a 32 byte BLAKE2b key.
func New(finder LatestFinder, secret string, clock clockwork.Clock) *Guard {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Guard{
		finder: finder,
		key:    blake2b.Sum256([]byte(secret)),
		clock:  clock,
	}
}

// Fingerprint returns the hex encoded keyed hash of origin.
func (g *Guard) Fingerprint(origin string) string {
	h, err := blake2b.New256(g.key[:])
	if err != nil {
		// unreachable: the key is always 32 bytes
		panic(err)
	}
	h.Write([]byte(origin))
	return hex.EncodeToString(h.Sum(nil))
}

// CheckAndRecord fingerprints rawOrigin and fails with RateLimited when the
// newest review for (profileID, fingerprint) is still inside the cooldown.
// It only reads; the caller's insert is what records the attempt.
func (g *Guard) CheckAndRecord(ctx context.Context, profileID uuid.UUID, rawOrigin string) (string, error) {
	fingerprint := g.Fingerprint(utils.ResolveOrigin(rawOrigin, ""))

	latest, err := g.finder.FindLatestByFingerprint(ctx, profileID, fingerprint)
	if err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			return fingerprint, nil
		}
		return "", apperror.Storage(err)
	}

	now := g.clock.Now()
	if until := latest.CooldownEndsAt(); until.After(now) {
		return "", model.NewRateLimitedError(until.Sub(now))
	}

	return fingerprint, nil
}
