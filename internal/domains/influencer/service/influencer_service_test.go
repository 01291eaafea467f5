package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustboard-backend/internal/domains/influencer"
	"trustboard-backend/internal/infrastructure/social"
)

// ========== stubs ==========

type pagedInfluencerRepo struct {
	items []influencer.Influencer
	total int64
}

func (r *pagedInfluencerRepo) Create(_ context.Context, i *influencer.Influencer) (*influencer.Influencer, error) {
	return i, nil
}
func (r *pagedInfluencerRepo) GetByID(_ context.Context, _ uuid.UUID) (*influencer.Influencer, error) {
	return nil, influencer.ErrInfluencerNotFound
}
func (r *pagedInfluencerRepo) GetByHandle(_ context.Context, _, _ string) (*influencer.Influencer, error) {
	return nil, influencer.ErrInfluencerNotFound
}
func (r *pagedInfluencerRepo) Search(_ context.Context, filter *influencer.SearchFilter) ([]influencer.Influencer, int64, error) {
	start := filter.Offset
	if start > len(r.items) {
		start = len(r.items)
	}
	end := start + filter.Limit
	if end > len(r.items) {
		end = len(r.items)
	}
	return r.items[start:end], r.total, nil
}
func (r *pagedInfluencerRepo) Update(_ context.Context, i *influencer.Influencer) (*influencer.Influencer, error) {
	return i, nil
}
func (r *pagedInfluencerRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }
func (r *pagedInfluencerRepo) ListStale(_ context.Context, _ time.Time, _ int) ([]influencer.Influencer, error) {
	return nil, nil
}

type passthroughCache struct{}

func (passthroughCache) Get(_ context.Context, _ string, _ interface{}) (bool, error) {
	return false, nil
}
func (passthroughCache) Set(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return nil
}
func (passthroughCache) Delete(_ context.Context, _ ...string) error         { return nil }
func (passthroughCache) DeletePattern(_ context.Context, _ string) error     { return nil }
func (passthroughCache) Ping(_ context.Context) error                        { return nil }
func (passthroughCache) Increment(_ context.Context, _ string) (int64, error) { return 0, nil }
func (passthroughCache) Exists(_ context.Context, _ string) (bool, error)     { return false, nil }
func (passthroughCache) Expire(_ context.Context, _ string, _ time.Duration) error {
	return nil
}
func (passthroughCache) TTL(_ context.Context, _ string) (time.Duration, error) { return 0, nil }

type noopFetcher struct{}

func (noopFetcher) FetchProfile(_ context.Context, _, _ string) (*social.RawProfile, error) {
	return nil, errors.New("profile proxy unreachable")
}

// ========== tests ==========

func TestSearchReportsHasMore(t *testing.T) {
	items := make([]influencer.Influencer, 5)
	for i := range items {
		items[i] = influencer.Influencer{ID: uuid.New(), Username: "creator", Platform: "instagram"}
	}
	svc := NewInfluencerService(&pagedInfluencerRepo{items: items, total: 5}, passthroughCache{}, noopFetcher{})

	resp, err := svc.Search(context.Background(), &influencer.SearchFilter{Limit: 2})
	require.NoError(t, err)
	assert.True(t, resp.HasMore)
	assert.Len(t, resp.Items, 2)

	resp, err = svc.Search(context.Background(), &influencer.SearchFilter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.False(t, resp.HasMore)
	assert.Len(t, resp.Items, 1)
}
