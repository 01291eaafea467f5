package influencer

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ========================================
// REQUEST DTOs
// ========================================

// CreateInfluencerReq is the body of POST /v1/influencers.
type CreateInfluencerReq struct {
	Username    string `json:"username" binding:"required"`
	Platform    string `json:"platform" binding:"required"`
	DisplayName string `json:"display_name,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Category    string `json:"category,omitempty"`
}

func (r CreateInfluencerReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Platform,
			validation.Required.Error("platform is required"),
			validation.In("instagram", "youtube", "linkedin", "tiktok").
				Error("platform must be one of: instagram, youtube, linkedin, tiktok"),
		),
		validation.Field(&r.Bio, validation.Length(0, 2000)),
		validation.Field(&r.Category, validation.Length(0, 100)),
	)
}

// UpdateInfluencerReq is the body of PUT /v1/influencers/{id}.
// Pointer fields distinguish "not provided" from zero values.
type UpdateInfluencerReq struct {
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Category    *string `json:"category,omitempty"`
}

func (r UpdateInfluencerReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Bio, validation.Length(0, 2000)),
		validation.Field(&r.Category, validation.Length(0, 100)),
	)
}

// SearchFilter narrows the influencer listing. Marshalled with omitempty to
// build the search cache key, so identical filters hit the same entry.
type SearchFilter struct {
	Query        string `json:"query,omitempty" form:"query"`
	Platform     string `json:"platform,omitempty" form:"platform"`
	Category     string `json:"category,omitempty" form:"category"`
	MinTrust     int    `json:"min_trust,omitempty" form:"min_trust"`
	MaxTrust     int    `json:"max_trust,omitempty" form:"max_trust"`
	VerifiedOnly bool   `json:"verified_only,omitempty" form:"verified_only"`
	Limit        int    `json:"limit,omitempty" form:"limit"`
	Offset       int    `json:"offset,omitempty" form:"offset"`
}

// Normalize applies pagination defaults and bounds.
func (f *SearchFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// ========================================
// RESPONSE DTOs
// ========================================

type InfluencerResp struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Platform      string    `json:"platform"`
	DisplayName   string    `json:"display_name"`
	Bio           string    `json:"bio"`
	Category      string    `json:"category"`
	FollowerCount int64     `json:"follower_count"`
	ContentCount  int64     `json:"content_count"`
	Verified      bool      `json:"verified"`
	TrustScore    int       `json:"trust_score"`
	LastFetchedAt time.Time `json:"last_fetched_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type InfluencerListResp struct {
	Items   []InfluencerResp `json:"items"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
	HasMore bool             `json:"has_more"`
}

func ToResp(i *Influencer) *InfluencerResp {
	return &InfluencerResp{
		ID:            i.ID,
		Username:      i.Username,
		Platform:      i.Platform,
		DisplayName:   i.DisplayName,
		Bio:           i.Bio,
		Category:      i.Category,
		FollowerCount: i.FollowerCount,
		ContentCount:  i.ContentCount,
		Verified:      i.Verified,
		TrustScore:    i.TrustScore,
		LastFetchedAt: i.LastFetchedAt,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}
