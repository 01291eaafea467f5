package trust

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var scoreNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func yearsAgo(n int) time.Time {
	return scoreNow.AddDate(-n, 0, 0)
}

func TestScoreAt(t *testing.T) {
	tests := []struct {
		name    string
		metrics Metrics
		want    int
	}{
		{
			name: "new small account stays at baseline",
			metrics: Metrics{
				FollowerCount:    500,
				ContentCount:     5,
				Verified:         false,
				AccountCreatedAt: scoreNow.AddDate(0, -1, 0),
			},
			want: 50,
		},
		{
			name: "age bonus caps at twenty",
			metrics: Metrics{
				FollowerCount:    100,
				ContentCount:     1,
				AccountCreatedAt: yearsAgo(12),
			},
			want: 70,
		},
		{
			name: "mega account with everything clamps at one hundred",
			metrics: Metrics{
				FollowerCount:    5_000_000,
				ContentCount:     1000,
				Verified:         true,
				AccountCreatedAt: yearsAgo(10),
			},
			want: 100,
		},
		{
			name: "mid tier reach and content",
			metrics: Metrics{
				FollowerCount:    150_000,
				ContentCount:     60,
				Verified:         false,
				AccountCreatedAt: yearsAgo(2),
			},
			want: 75, // 50 + 10 age + 10 reach + 5 content
		},
		{
			name: "boundary values do not trigger tiers",
			metrics: Metrics{
				FollowerCount:    10_000,
				ContentCount:     20,
				AccountCreatedAt: yearsAgo(0),
			},
			want: 50,
		},
		{
			name: "one above boundary triggers lowest tiers",
			metrics: Metrics{
				FollowerCount:    10_001,
				ContentCount:     21,
				AccountCreatedAt: scoreNow.AddDate(0, -6, 0),
			},
			want: 58, // 50 + 5 reach + 3 content
		},
		{
			name: "verified only",
			metrics: Metrics{
				FollowerCount:    1,
				ContentCount:     0,
				Verified:         true,
				AccountCreatedAt: scoreNow.AddDate(0, 0, -1),
			},
			want: 65,
		},
		{
			name: "negative follower count is neutral",
			metrics: Metrics{
				FollowerCount:    -1,
				ContentCount:     10,
				AccountCreatedAt: yearsAgo(3),
			},
			want: NeutralScore,
		},
		{
			name: "negative content count is neutral",
			metrics: Metrics{
				FollowerCount:    10,
				ContentCount:     -5,
				AccountCreatedAt: yearsAgo(3),
			},
			want: NeutralScore,
		},
		{
			name:    "zero creation date is neutral",
			metrics: Metrics{FollowerCount: 200_000, ContentCount: 80, Verified: true},
			want:    NeutralScore,
		},
		{
			name: "future creation date is neutral",
			metrics: Metrics{
				FollowerCount:    200_000,
				ContentCount:     80,
				AccountCreatedAt: scoreNow.AddDate(1, 0, 0),
			},
			want: NeutralScore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreAt(tt.metrics, scoreNow))
		})
	}
}

func TestScoreAtBounds(t *testing.T) {
	// A sweep across metric combinations must never escape [0, 100].
	followers := []int64{0, 10_000, 10_001, 100_001, 1_000_001, 50_000_000}
	contents := []int64{0, 20, 21, 51, 101, 100_000}
	ages := []int{0, 1, 4, 10, 40}

	for _, f := range followers {
		for _, cc := range contents {
			for _, a := range ages {
				for _, v := range []bool{false, true} {
					got := ScoreAt(Metrics{
						FollowerCount:    f,
						ContentCount:     cc,
						Verified:         v,
						AccountCreatedAt: yearsAgo(a),
					}, scoreNow)
					assert.GreaterOrEqual(t, got, 0)
					assert.LessOrEqual(t, got, 100)
				}
			}
		}
	}
}

func TestScoreAtDeterministic(t *testing.T) {
	m := Metrics{
		FollowerCount:    123_456,
		ContentCount:     78,
		Verified:         true,
		AccountCreatedAt: yearsAgo(5),
	}

	first := ScoreAt(m, scoreNow)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ScoreAt(m, scoreNow))
	}
}
