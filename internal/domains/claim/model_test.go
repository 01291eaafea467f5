package claim

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name       string
		studies    []Study
		wantStatus string
		wantOK     bool
	}{
		{
			name:    "no studies leaves status untouched",
			studies: nil,
			wantOK:  false,
		},
		{
			name: "only empty conclusions leaves status untouched",
			studies: []Study{
				{Title: "a", Conclusion: ""},
				{Title: "b", Conclusion: "   "},
			},
			wantOK: false,
		},
		{
			name: "majority refutes wins",
			studies: []Study{
				{Conclusion: "refutes"},
				{Conclusion: "refutes"},
				{Conclusion: "supports"},
			},
			wantStatus: StatusRefuted,
			wantOK:     true,
		},
		{
			name: "majority supports verifies",
			studies: []Study{
				{Conclusion: "supports"},
				{Conclusion: "supports"},
				{Conclusion: "refutes"},
			},
			wantStatus: StatusVerified,
			wantOK:     true,
		},
		{
			name: "single support verifies",
			studies: []Study{
				{Conclusion: "supports"},
			},
			wantStatus: StatusVerified,
			wantOK:     true,
		},
		{
			name: "tie is questionable",
			studies: []Study{
				{Conclusion: "supports"},
				{Conclusion: "refutes"},
			},
			wantStatus: StatusQuestionable,
			wantOK:     true,
		},
		{
			name: "only inconclusive studies is questionable",
			studies: []Study{
				{Conclusion: "inconclusive"},
				{Conclusion: "inconclusive"},
			},
			wantStatus: StatusQuestionable,
			wantOK:     true,
		},
		{
			name: "conclusion matching is case and space insensitive",
			studies: []Study{
				{Conclusion: " Supports "},
				{Conclusion: "REFUTES"},
				{Conclusion: "Supports"},
			},
			wantStatus: StatusVerified,
			wantOK:     true,
		},
		{
			name: "unknown conclusions count but sway nothing",
			studies: []Study{
				{Conclusion: "maybe"},
				{Conclusion: "supports"},
			},
			wantStatus: StatusVerified,
			wantOK:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, ok := DeriveStatus(tt.studies)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantStatus, status)
			}
		})
	}
}

func TestNewClaimStartsPending(t *testing.T) {
	c, err := NewClaim(uuid.New(), "spinach cures insomnia", "nutrition", "", 60)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, c.Status)
	assert.Equal(t, 60, c.TrustScore)
	assert.Equal(t, "nutrition", c.Category)
}

func TestReverifyKeepsStatusWithoutStudies(t *testing.T) {
	c, err := NewClaim(uuid.New(), "spinach cures insomnia", "nutrition", "", 60)
	require.NoError(t, err)
	require.Equal(t, StatusPending, c.Status)

	c.Status = StatusVerified
	status, applied := c.Reverify()

	assert.False(t, applied)
	assert.Equal(t, StatusVerified, status)
	assert.Equal(t, StatusVerified, c.Status)
}

func TestReverifyAppliesDerivedStatus(t *testing.T) {
	c, err := NewClaim(uuid.New(), "cold showers boost immunity", "wellness", "", 40)
	require.NoError(t, err)

	c.Studies = []Study{
		{Conclusion: ConclusionRefutes},
		{Conclusion: ConclusionRefutes},
	}

	status, applied := c.Reverify()
	assert.True(t, applied)
	assert.Equal(t, StatusRefuted, status)
	assert.Equal(t, StatusRefuted, c.Status)
}

func TestNewClaimValidatesInput(t *testing.T) {
	_, err := NewClaim(uuid.New(), "   ", "nutrition", "", 50)
	assert.ErrorIs(t, err, ErrInvalidClaimContent)

	_, err = NewClaim(uuid.New(), "juicing melts fat", "astrology", "", 50)
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = NewClaim(uuid.New(), "juicing melts fat", "fitness", "", 101)
	assert.ErrorIs(t, err, ErrInvalidTrustScore)
}
