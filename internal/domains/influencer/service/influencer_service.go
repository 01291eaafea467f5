package service

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"trustboard-backend/internal/domains/influencer"
	"trustboard-backend/internal/infrastructure/social"
	"trustboard-backend/pkg/cache"
	"trustboard-backend/pkg/logger"
)

const (
	profileCacheTTL = time.Hour
	searchCacheTTL  = 5 * time.Minute

	searchCachePattern = "influencers:search:*"
)

type influencerService struct {
	repo    influencer.Repository
	cache   cache.Cache
	fetcher social.ProfileFetcher
}

func NewInfluencerService(
	repo influencer.Repository,
	cacheClient cache.Cache,
	fetcher social.ProfileFetcher,
) influencer.Service {
	return &influencerService{
		repo:    repo,
		cache:   cacheClient,
		fetcher: fetcher,
	}
}

func profileCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("influencer:%s", id)
}

// searchCacheKey hashes the normalized filter so equivalent searches share
// one cache entry.
func searchCacheKey(filter *influencer.SearchFilter) string {
	data, err := json.Marshal(filter)
	if err != nil {
		return "influencers:search:invalid"
	}
	return fmt.Sprintf("influencers:search:%x", md5.Sum(data))
}

func (s *influencerService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, profileCacheKey(id)); err != nil {
		logger.Error("failed to invalidate influencer cache", err)
	}
	if err := s.cache.DeletePattern(ctx, searchCachePattern); err != nil {
		logger.Error("failed to invalidate search cache", err)
	}
}

func (s *influencerService) Create(ctx context.Context, req *influencer.CreateInfluencerReq) (*influencer.InfluencerResp, error) {
	entity, err := influencer.NewInfluencer(req.Username, req.Platform, req.DisplayName, req.Bio, req.Category)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByHandle(ctx, entity.Username, entity.Platform); err == nil && existing != nil {
		return nil, influencer.ErrDuplicateHandle
	}

	// Initial metrics fetch. Failure is tolerated: the profile starts at
	// the neutral score and the stale-refresh job picks it up later.
	if profile, err := s.fetcher.FetchProfile(ctx, entity.Platform, entity.Username); err != nil {
		logger.Warn("initial profile fetch failed, storing with neutral score", map[string]interface{}{
			"username": entity.Username,
			"platform": entity.Platform,
			"error":    err.Error(),
		})
	} else {
		entity.ApplyMetrics(profile.FollowerCount, profile.ContentCount, profile.Verified, profile.AccountCreatedAt)
	}

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, created.ID)
	return influencer.ToResp(created), nil
}

func (s *influencerService) GetByID(ctx context.Context, id uuid.UUID) (*influencer.InfluencerResp, error) {
	key := profileCacheKey(id)

	var cached influencer.InfluencerResp
	if found, _ := s.cache.Get(ctx, key, &cached); found {
		return &cached, nil
	}

	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := influencer.ToResp(entity)
	if err := s.cache.Set(ctx, key, resp, profileCacheTTL); err != nil {
		logger.Error("failed to cache influencer", err)
	}
	return resp, nil
}

func (s *influencerService) GetByHandle(ctx context.Context, username, platform string) (*influencer.InfluencerResp, error) {
	entity, err := s.repo.GetByHandle(ctx, username, platform)
	if err != nil {
		return nil, err
	}
	return influencer.ToResp(entity), nil
}

func (s *influencerService) Search(ctx context.Context, filter *influencer.SearchFilter) (*influencer.InfluencerListResp, error) {
	filter.Normalize()
	key := searchCacheKey(filter)

	var cached influencer.InfluencerListResp
	if found, _ := s.cache.Get(ctx, key, &cached); found {
		return &cached, nil
	}

	items, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &influencer.InfluencerListResp{
		Items:   make([]influencer.InfluencerResp, 0, len(items)),
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
		HasMore: int64(filter.Offset+len(items)) < total,
	}
	for idx := range items {
		resp.Items = append(resp.Items, *influencer.ToResp(&items[idx]))
	}

	if err := s.cache.Set(ctx, key, resp, searchCacheTTL); err != nil {
		logger.Error("failed to cache influencer search", err)
	}
	return resp, nil
}

func (s *influencerService) Update(ctx context.Context, id uuid.UUID, req *influencer.UpdateInfluencerReq) (*influencer.InfluencerResp, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		entity.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		entity.Bio = *req.Bio
	}
	if req.Category != nil {
		entity.Category = *req.Category
	}

	updated, err := s.repo.Update(ctx, entity)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return influencer.ToResp(updated), nil
}

// Delete removes the influencer row and its cache entries. Claims keep their
// influencerId reference; orphaned claims are an accepted state.
func (s *influencerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *influencerService) RefreshProfile(ctx context.Context, id uuid.UUID) (*influencer.InfluencerResp, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile, err := s.fetcher.FetchProfile(ctx, entity.Platform, entity.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", influencer.ErrProfileFetchFailed, err)
	}

	entity.ApplyMetrics(profile.FollowerCount, profile.ContentCount, profile.Verified, profile.AccountCreatedAt)

	updated, err := s.repo.Update(ctx, entity)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return influencer.ToResp(updated), nil
}

func (s *influencerService) RefreshStaleProfiles(ctx context.Context, limit int) (int, error) {
	cutoff := time.Now().Add(-influencer.ProfileFreshness)

	stale, err := s.repo.ListStale(ctx, cutoff, limit)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for idx := range stale {
		if _, err := s.RefreshProfile(ctx, stale[idx].ID); err != nil {
			// One unreachable profile must not abort the whole run.
			logger.Warn("stale profile refresh failed", map[string]interface{}{
				"influencer_id": stale[idx].ID.String(),
				"error":         err.Error(),
			})
			continue
		}
		refreshed++
	}

	return refreshed, nil
}
