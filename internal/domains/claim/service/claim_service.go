package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"trustboard-backend/internal/domains/claim"
	"trustboard-backend/internal/domains/influencer"
	"trustboard-backend/pkg/cache"
	"trustboard-backend/pkg/logger"
)

const (
	claimCacheTTL = time.Hour

	// listCacheCatchAll is the key for an unfiltered listing. Writes only
	// invalidate this key: filtered listings ride out their short TTL.
	listCacheCatchAll = "claims:{}"
	listCacheTTL      = 5 * time.Minute
)

type claimService struct {
	repo           claim.Repository
	influencerRepo influencer.Repository
	cache          cache.Cache
	notifier       claim.Notifier
}

func NewClaimService(
	repo claim.Repository,
	influencerRepo influencer.Repository,
	cacheClient cache.Cache,
	notifier claim.Notifier,
) claim.Service {
	return &claimService{
		repo:           repo,
		influencerRepo: influencerRepo,
		cache:          cacheClient,
		notifier:       notifier,
	}
}

func claimCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("claim:%s", id)
}

func listCacheKey(filter *claim.ListFilter) string {
	data, err := json.Marshal(filter)
	if err != nil {
		return listCacheCatchAll
	}
	return "claims:" + string(data)
}

// refreshCaches runs after every successful mutation: the claim entry is
// re-populated rather than dropped, and the unfiltered listing is evicted.
func (s *claimService) refreshCaches(ctx context.Context, c *claim.Claim) {
	if err := s.cache.Set(ctx, claimCacheKey(c.ID), claim.ToResp(c), claimCacheTTL); err != nil {
		logger.Error("failed to refresh claim cache", err)
	}
	if err := s.cache.Delete(ctx, listCacheCatchAll); err != nil {
		logger.Error("failed to invalidate claim list cache", err)
	}
}

func (s *claimService) dropCaches(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, claimCacheKey(id), listCacheCatchAll); err != nil {
		logger.Error("failed to drop claim caches", err)
	}
}

func (s *claimService) notify(ctx context.Context, claimID uuid.UUID, status string) {
	if err := s.notifier.NotifyClaimStatusChange(ctx, claimID, status); err != nil {
		// Alerts are best-effort; the status change itself is committed.
		logger.Error("failed to enqueue claim status alert", err)
	}
}

func (s *claimService) Create(ctx context.Context, req *claim.CreateClaimReq) (*claim.ClaimResp, error) {
	inf, err := s.influencerRepo.GetByID(ctx, req.InfluencerID)
	if err != nil {
		return nil, claim.ErrInfluencerNotFound
	}

	entity, err := claim.NewClaim(inf.ID, req.Content, req.Category, req.OriginalSource, req.TrustScore)
	if err != nil {
		return nil, err
	}

	// Ingestion may supply a non-pending starting status; attached studies
	// still take precedence through the derivation below.
	if req.Status != "" {
		entity.Status = req.Status
	}

	if len(req.Studies) > 0 {
		entity.Studies = claim.StudiesFromReq(req.Studies)
		entity.Reverify()
	}

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return nil, err
	}

	s.refreshCaches(ctx, created)
	return claim.ToResp(created), nil
}

func (s *claimService) GetByID(ctx context.Context, id uuid.UUID) (*claim.ClaimResp, error) {
	key := claimCacheKey(id)

	var cached claim.ClaimResp
	if found, _ := s.cache.Get(ctx, key, &cached); found {
		return &cached, nil
	}

	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := claim.ToResp(entity)
	if err := s.cache.Set(ctx, key, resp, claimCacheTTL); err != nil {
		logger.Error("failed to cache claim", err)
	}
	return resp, nil
}

func (s *claimService) List(ctx context.Context, filter *claim.ListFilter) (*claim.ClaimListResp, error) {
	filter.Normalize()
	key := listCacheKey(filter)

	var cached claim.ClaimListResp
	if found, _ := s.cache.Get(ctx, key, &cached); found {
		return &cached, nil
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &claim.ClaimListResp{
		Items:  make([]claim.ClaimResp, 0, len(items)),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	for idx := range items {
		resp.Items = append(resp.Items, *claim.ToResp(&items[idx]))
	}

	if err := s.cache.Set(ctx, key, resp, listCacheTTL); err != nil {
		logger.Error("failed to cache claim list", err)
	}
	return resp, nil
}

func (s *claimService) Update(ctx context.Context, id uuid.UUID, req *claim.UpdateClaimReq) (*claim.ClaimResp, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		entity.Content = *req.Content
	}
	if req.Category != nil {
		entity.Category = *req.Category
	}
	if req.TrustScore != nil {
		entity.TrustScore = *req.TrustScore
	}
	if req.OriginalSource != nil {
		entity.OriginalSource = *req.OriginalSource
	}
	if req.VerificationNotes != nil {
		entity.VerificationNotes = *req.VerificationNotes
	}
	if req.ExpertOpinions != nil {
		entity.ExpertOpinions = *req.ExpertOpinions
	}

	statusChanged := false
	if req.Studies != nil {
		entity.Studies = claim.StudiesFromReq(*req.Studies)
		_, statusChanged = entity.Reverify()
	}

	updated, err := s.repo.Update(ctx, entity)
	if err != nil {
		return nil, err
	}

	s.refreshCaches(ctx, updated)
	if statusChanged {
		s.notify(ctx, updated.ID, updated.Status)
	}
	return claim.ToResp(updated), nil
}

func (s *claimService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.dropCaches(ctx, id)
	return nil
}

func (s *claimService) AddStudy(ctx context.Context, id uuid.UUID, req *claim.StudyReq) (*claim.ClaimResp, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entity.Studies = append(entity.Studies, claim.Study{
		Title:      req.Title,
		URL:        req.URL,
		Journal:    req.Journal,
		Year:       req.Year,
		Conclusion: req.Conclusion,
	})
	_, applied := entity.Reverify()

	updated, err := s.repo.Update(ctx, entity)
	if err != nil {
		return nil, err
	}

	s.refreshCaches(ctx, updated)
	if applied {
		s.notify(ctx, updated.ID, updated.Status)
	}
	return claim.ToResp(updated), nil
}

func (s *claimService) Verify(ctx context.Context, id uuid.UUID) (*claim.ClaimResp, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_, applied := entity.Reverify()

	updated, err := s.repo.Update(ctx, entity)
	if err != nil {
		return nil, err
	}

	s.refreshCaches(ctx, updated)
	if applied {
		// Emitted even when the derived status equals the previous one so
		// downstream consumers see every verification pass.
		s.notify(ctx, updated.ID, updated.Status)
	}
	return claim.ToResp(updated), nil
}
