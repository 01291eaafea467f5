package trust

import (
	"math"
	"time"
)

// NeutralScore is assigned when profile metrics are missing or malformed.
// A profile we know nothing about is neither trusted nor distrusted.
const NeutralScore = 50

// Metrics are the profile facts the score is computed from.
type Metrics struct {
	FollowerCount    int64
	ContentCount     int64
	Verified         bool
	AccountCreatedAt time.Time
}

// ScoreAt computes the trust score for the given metrics as of now.
//
// The score starts from a neutral baseline and earns additive bonuses for
// account age, audience reach, content volume and platform verification,
// then clamps into [0, 100]. Malformed metrics (negative counts, zero or
// future creation date) yield NeutralScore rather than an error so one bad
// profile never breaks a listing.
func ScoreAt(m Metrics, now time.Time) int {
	if m.FollowerCount < 0 || m.ContentCount < 0 {
		return NeutralScore
	}
	if m.AccountCreatedAt.IsZero() || m.AccountCreatedAt.After(now) {
		return NeutralScore
	}

	score := 50.0

	// Account age: 5 points per full year, capped at 20.
	years := now.Sub(m.AccountCreatedAt).Hours() / (24 * 365)
	ageBonus := math.Floor(years) * 5
	if ageBonus > 20 {
		ageBonus = 20
	}
	score += ageBonus

	// Audience reach, highest matching tier only.
	switch {
	case m.FollowerCount > 1_000_000:
		score += 15
	case m.FollowerCount > 100_000:
		score += 10
	case m.FollowerCount > 10_000:
		score += 5
	}

	// Content volume, highest matching tier only.
	switch {
	case m.ContentCount > 100:
		score += 10
	case m.ContentCount > 50:
		score += 5
	case m.ContentCount > 20:
		score += 3
	}

	if m.Verified {
		score += 15
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return int(math.Round(score))
}

// Score computes the trust score as of the current time.
func Score(m Metrics) int {
	return ScoreAt(m, time.Now())
}
