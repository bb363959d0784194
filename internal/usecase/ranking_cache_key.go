package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"talent-match/internal/domain/matching"

	"github.com/google/uuid"
)

const rankingKeyPrefix = "ranking:"

// populationFingerprint hashes the snapshots a ranking was computed from, so
// any profile or application change yields a new cache key.
func populationFingerprint[T any](items []T) string {
	b, _ := json.Marshal(items)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:8])
}

type rankingCacheKeyInput struct {
	Subject    json.RawMessage `json:"subject"`
	Population string          `json:"population"`
	Policy     string          `json:"policy"`
	MinScore   float64         `json:"min_score"`
	MaxResults int             `json:"max_results"`
}

// RankingCacheKey is ranking:<direction>:<subject id>:<hash>. The hash covers
// the subject snapshot, population fingerprint, policy fingerprint and options.
func RankingCacheKey(direction string, subjectID uuid.UUID, subject any, population, policy string, opts matching.RankOptions) string {
	s, _ := json.Marshal(subject)
	in := rankingCacheKeyInput{
		Subject:    s,
		Population: population,
		Policy:     policy,
		MinScore:   opts.MinScore,
		MaxResults: opts.MaxResults,
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return fmt.Sprintf("%s%s:%s:%s", rankingKeyPrefix, direction, subjectID, hex.EncodeToString(sum[:16]))
}

func RankingInvalidatePattern(direction string, subjectID uuid.UUID) string {
	return fmt.Sprintf("%s%s:%s:*", rankingKeyPrefix, direction, subjectID)
}
