package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"trustboard-backend/internal/domains/claim"
	"trustboard-backend/internal/domains/influencer"
	"trustboard-backend/internal/domains/report"
)

// generator produces the data document for one report type. Every
// generator returns a document with "columns" and "rows" keys so exports
// can render any report type uniformly, plus a type-specific "summary".
type generator func(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error)

// generators is the dispatch table. Types absent from it (monthly among
// them) are handled by the generic generator instead of failing.
func (s *reportService) generators() map[string]generator {
	return map[string]generator{
		report.TypeInfluencer: s.generateInfluencerReport,
		report.TypeCategory:   s.generateCategoryReport,
		report.TypeEngagement: s.generateEngagementReport,
		report.TypeAudience:   s.generateAudienceReport,
		report.TypeContent:    s.generateContentReport,
	}
}

func (s *reportService) generatorFor(reportType string) generator {
	if g, ok := s.generators()[reportType]; ok {
		return g
	}
	return s.generateGeneric
}

func stringParam(params map[string]interface{}, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

func uuidParam(params map[string]interface{}, key string) *uuid.UUID {
	v := stringParam(params, key)
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

// generateInfluencerReport summarizes tracked influencers and their trust
// scores, optionally narrowed by platform or category.
func (s *reportService) generateInfluencerReport(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error) {
	filter := &influencer.SearchFilter{
		Platform: stringParam(params, "platform"),
		Category: stringParam(params, "category"),
		Limit:    100,
	}

	items, total, err := s.influencerRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("influencer summary query: %w", err)
	}

	rows := make([]map[string]interface{}, 0, len(items))
	var trustSum int64
	for idx := range items {
		i := &items[idx]
		trustSum += int64(i.TrustScore)
		rows = append(rows, map[string]interface{}{
			"username":       i.Username,
			"platform":       i.Platform,
			"trust_score":    i.TrustScore,
			"follower_count": i.FollowerCount,
			"verified":       i.Verified,
		})
	}

	avgTrust := 0.0
	if len(items) > 0 {
		avgTrust = float64(trustSum) / float64(len(items))
	}

	return map[string]interface{}{
		"columns": []string{"username", "platform", "trust_score", "follower_count", "verified"},
		"rows":    rows,
		"summary": map[string]interface{}{
			"total_influencers": total,
			"average_trust":     avgTrust,
		},
	}, nil
}

// generateCategoryReport breaks claims down by verification outcome within
// a category (or across all categories when none is given).
func (s *reportService) generateCategoryReport(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error) {
	filter := &claim.ListFilter{
		InfluencerID: uuidParam(params, "influencer_id"),
		Category:     stringParam(params, "category"),
		Limit:        100,
	}

	items, total, err := s.claimRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("category report query: %w", err)
	}

	counts := map[string]int{
		claim.StatusPending:      0,
		claim.StatusVerified:     0,
		claim.StatusQuestionable: 0,
		claim.StatusRefuted:      0,
	}
	rows := make([]map[string]interface{}, 0, len(items))
	for idx := range items {
		c := &items[idx]
		counts[c.Status]++
		rows = append(rows, map[string]interface{}{
			"content":     c.Content,
			"category":    c.Category,
			"status":      c.Status,
			"trust_score": c.TrustScore,
			"studies":     len(c.Studies),
		})
	}

	accuracy := 0.0
	if len(items) > 0 {
		accuracy = float64(counts[claim.StatusVerified]) / float64(len(items))
	}

	return map[string]interface{}{
		"columns": []string{"content", "category", "status", "trust_score", "studies"},
		"rows":    rows,
		"summary": map[string]interface{}{
			"total_claims": total,
			"pending":      counts[claim.StatusPending],
			"verified":     counts[claim.StatusVerified],
			"questionable": counts[claim.StatusQuestionable],
			"refuted":      counts[claim.StatusRefuted],
			"accuracy":     accuracy,
		},
	}, nil
}

// generateEngagementReport aggregates per-platform reach as a proxy for
// engagement: influencer counts and average trust by platform.
func (s *reportService) generateEngagementReport(ctx context.Context, _ map[string]interface{}) (map[string]interface{}, error) {
	items, total, err := s.influencerRepo.Search(ctx, &influencer.SearchFilter{Limit: 100})
	if err != nil {
		return nil, fmt.Errorf("engagement report query: %w", err)
	}

	type bucket struct {
		count     int
		trustSum  int64
		followers int64
	}
	buckets := map[string]*bucket{}
	for idx := range items {
		i := &items[idx]
		b, ok := buckets[i.Platform]
		if !ok {
			b = &bucket{}
			buckets[i.Platform] = b
		}
		b.count++
		b.trustSum += int64(i.TrustScore)
		b.followers += i.FollowerCount
	}

	topPlatform := ""
	var topFollowers int64 = -1
	rows := make([]map[string]interface{}, 0, len(buckets))
	for platform, b := range buckets {
		if b.followers > topFollowers {
			topPlatform, topFollowers = platform, b.followers
		}
		rows = append(rows, map[string]interface{}{
			"platform":      platform,
			"influencers":   b.count,
			"followers":     b.followers,
			"average_trust": float64(b.trustSum) / float64(b.count),
		})
	}

	return map[string]interface{}{
		"columns": []string{"platform", "influencers", "followers", "average_trust"},
		"rows":    rows,
		"summary": map[string]interface{}{
			"total_influencers": total,
			"platforms":         len(buckets),
			"top_platform":      topPlatform,
		},
	}, nil
}

// generateAudienceReport lists follower reach per influencer.
func (s *reportService) generateAudienceReport(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error) {
	filter := &influencer.SearchFilter{
		Platform: stringParam(params, "platform"),
		Limit:    100,
	}

	items, total, err := s.influencerRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("audience report query: %w", err)
	}

	var followerSum int64
	rows := make([]map[string]interface{}, 0, len(items))
	for idx := range items {
		i := &items[idx]
		followerSum += i.FollowerCount
		rows = append(rows, map[string]interface{}{
			"username":       i.Username,
			"platform":       i.Platform,
			"follower_count": i.FollowerCount,
			"verified":       i.Verified,
		})
	}

	avgFollowers := 0.0
	if len(items) > 0 {
		avgFollowers = float64(followerSum) / float64(len(items))
	}

	return map[string]interface{}{
		"columns": []string{"username", "platform", "follower_count", "verified"},
		"rows":    rows,
		"summary": map[string]interface{}{
			"total_influencers": total,
			"total_followers":   followerSum,
			"average_followers": avgFollowers,
		},
	}, nil
}

// generateContentReport lists published content volume per influencer.
func (s *reportService) generateContentReport(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error) {
	filter := &influencer.SearchFilter{
		Platform: stringParam(params, "platform"),
		Limit:    100,
	}

	items, total, err := s.influencerRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("content report query: %w", err)
	}

	var contentSum int64
	rows := make([]map[string]interface{}, 0, len(items))
	for idx := range items {
		i := &items[idx]
		contentSum += i.ContentCount
		rows = append(rows, map[string]interface{}{
			"username":      i.Username,
			"platform":      i.Platform,
			"content_count": i.ContentCount,
			"trust_score":   i.TrustScore,
		})
	}

	return map[string]interface{}{
		"columns": []string{"username", "platform", "content_count", "trust_score"},
		"rows":    rows,
		"summary": map[string]interface{}{
			"total_influencers": total,
			"total_content":     contentSum,
		},
	}, nil
}

// generateGeneric covers report types without a dedicated generator.
func (s *reportService) generateGeneric(ctx context.Context, _ map[string]interface{}) (map[string]interface{}, error) {
	_, influencerTotal, err := s.influencerRepo.Search(ctx, &influencer.SearchFilter{Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("generic report query: %w", err)
	}
	_, claimTotal, err := s.claimRepo.List(ctx, &claim.ListFilter{Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("generic report query: %w", err)
	}

	return map[string]interface{}{
		"columns": []string{"metric", "value"},
		"rows": []map[string]interface{}{
			{"metric": "influencers", "value": influencerTotal},
			{"metric": "claims", "value": claimTotal},
		},
		"summary": map[string]interface{}{
			"influencers": influencerTotal,
			"claims":      claimTotal,
		},
	}, nil
}
