package service

import (
	"context"
	"errors"
	"time"

	"trustboard-backend/internal/domains/influencer"
	"trustboard-backend/internal/domains/social"
	"trustboard-backend/internal/shared/utils"
	"trustboard-backend/pkg/logger"
)

// analyzerService turns raw platform handles into tracked influencers. It
// leans on the influencer service for fetching, scoring and cache handling.
type analyzerService struct {
	influencers influencer.Service
}

func NewAnalyzerService(influencers influencer.Service) social.AnalyzerService {
	return &analyzerService{influencers: influencers}
}

func (s *analyzerService) Analyze(ctx context.Context, platform, username string) (*influencer.InfluencerResp, error) {
	platform = utils.NormalizeHandle(platform)
	username = utils.NormalizeHandle(username)

	existing, err := s.influencers.GetByHandle(ctx, username, platform)
	switch {
	case err == nil:
		if !existing.LastFetchedAt.IsZero() && time.Since(existing.LastFetchedAt) < influencer.ProfileFreshness {
			return existing, nil
		}

		refreshed, err := s.influencers.RefreshProfile(ctx, existing.ID)
		if err != nil {
			if errors.Is(err, influencer.ErrProfileFetchFailed) {
				// Serve the stale record rather than failing the analysis.
				logger.Warn("profile refresh failed, serving stale record", map[string]interface{}{
					"username": username,
					"platform": platform,
					"error":    err.Error(),
				})
				return existing, nil
			}
			return nil, err
		}
		return refreshed, nil

	case errors.Is(err, influencer.ErrInfluencerNotFound):
		// First sighting: track the handle. A failed metrics fetch still
		// succeeds with the neutral score.
		return s.influencers.Create(ctx, &influencer.CreateInfluencerReq{
			Username: username,
			Platform: platform,
		})

	default:
		return nil, err
	}
}
