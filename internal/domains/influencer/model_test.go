package influencer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInfluencerNormalizesHandle(t *testing.T) {
	i, err := NewInfluencer("  DrHealth ", " Instagram ", "Dr. Health", "", "nutrition")
	require.NoError(t, err)

	assert.Equal(t, "drhealth", i.Username)
	assert.Equal(t, "instagram", i.Platform)
	assert.Equal(t, 50, i.TrustScore)
}

func TestNewInfluencerRejectsBadInput(t *testing.T) {
	_, err := NewInfluencer("", "instagram", "", "", "")
	assert.ErrorIs(t, err, ErrInvalidUsername)

	_, err = NewInfluencer("someone", "myspace", "", "", "")
	assert.ErrorIs(t, err, ErrInvalidPlatform)
}

func TestNewInfluencerPlatformSet(t *testing.T) {
	for _, platform := range []string{"instagram", "youtube", "linkedin", "tiktok"} {
		_, err := NewInfluencer("drhealth", platform, "", "", "")
		assert.NoError(t, err, platform)
	}

	_, err := NewInfluencer("drhealth", "twitter", "", "", "")
	assert.ErrorIs(t, err, ErrInvalidPlatform)
}

func TestApplyMetricsRecomputesTrustScore(t *testing.T) {
	i, err := NewInfluencer("fitguru", "youtube", "", "", "fitness")
	require.NoError(t, err)

	i.ApplyMetrics(2_000_000, 300, true, time.Now().AddDate(-8, 0, 0))

	// 50 base + 20 age + 15 reach + 10 content + 15 verified, clamped.
	assert.Equal(t, 100, i.TrustScore)
	assert.False(t, i.LastFetchedAt.IsZero())
}

func TestIsStale(t *testing.T) {
	now := time.Now()

	i := &Influencer{}
	assert.True(t, i.IsStale(now), "never fetched profile must be stale")

	i.LastFetchedAt = now.Add(-1 * time.Hour)
	assert.False(t, i.IsStale(now))

	i.LastFetchedAt = now.Add(-25 * time.Hour)
	assert.True(t, i.IsStale(now))
}
