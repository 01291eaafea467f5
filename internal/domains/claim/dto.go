package claim

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// ========================================
// REQUEST DTOs
// ========================================

type StudyReq struct {
	Title      string `json:"title"`
	URL        string `json:"url,omitempty"`
	Journal    string `json:"journal,omitempty"`
	Year       int    `json:"year,omitempty"`
	Conclusion string `json:"conclusion"`
}

func (r StudyReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("study title is required"),
			validation.Length(1, 500),
		),
		validation.Field(&r.URL, is.URL),
		validation.Field(&r.Year, validation.Min(1900), validation.Max(2100)),
	)
}

// CreateClaimReq is the body of POST /v1/claims. TrustScore is caller
// supplied; Status defaults to pending when omitted.
type CreateClaimReq struct {
	InfluencerID   uuid.UUID  `json:"influencer_id" binding:"required"`
	Content        string     `json:"content" binding:"required"`
	Category       string     `json:"category" binding:"required"`
	Status         string     `json:"status,omitempty"`
	TrustScore     int        `json:"trust_score"`
	OriginalSource string     `json:"original_source,omitempty"`
	Studies        []StudyReq `json:"studies,omitempty"`
}

func (r CreateClaimReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("claim content is required"),
			validation.Length(1, 5000),
		),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			validation.In(CategoryNutrition, CategoryMedical, CategoryFitness, CategoryWellness).
				Error("category must be one of: nutrition, medical, fitness, wellness"),
		),
		validation.Field(&r.Status,
			validation.In(StatusPending, StatusVerified, StatusQuestionable, StatusRefuted).
				Error("status must be one of: pending, verified, questionable, refuted"),
		),
		validation.Field(&r.TrustScore, validation.Min(0), validation.Max(100)),
		validation.Field(&r.Studies),
	)
}

// UpdateClaimReq is the body of PUT /v1/claims/{id}. Pointer fields
// distinguish "not provided" from zero values.
type UpdateClaimReq struct {
	Content           *string          `json:"content,omitempty"`
	Category          *string          `json:"category,omitempty"`
	TrustScore        *int             `json:"trust_score,omitempty"`
	OriginalSource    *string          `json:"original_source,omitempty"`
	VerificationNotes *string          `json:"verification_notes,omitempty"`
	ExpertOpinions    *[]ExpertOpinion `json:"expert_opinions,omitempty"`
	Studies           *[]StudyReq      `json:"studies,omitempty"`
}

func (r UpdateClaimReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Length(1, 5000)),
		validation.Field(&r.Category,
			validation.In(CategoryNutrition, CategoryMedical, CategoryFitness, CategoryWellness).
				Error("category must be one of: nutrition, medical, fitness, wellness"),
		),
		validation.Field(&r.TrustScore, validation.Min(0), validation.Max(100)),
	)
}

// ListFilter narrows the claim listing. The JSON encoding of the filter is
// the cache key suffix, so an empty filter serializes to "{}".
type ListFilter struct {
	InfluencerID *uuid.UUID `json:"influencer_id,omitempty" form:"influencer_id"`
	Status       string     `json:"status,omitempty" form:"status"`
	Category     string     `json:"category,omitempty" form:"category"`
	Limit        int        `json:"limit,omitempty" form:"limit"`
	Offset       int        `json:"offset,omitempty" form:"offset"`
}

func (f *ListFilter) Normalize() {
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

type ClaimResp struct {
	ID                uuid.UUID       `json:"id"`
	InfluencerID      uuid.UUID       `json:"influencer_id"`
	Content           string          `json:"content"`
	Category          string          `json:"category"`
	OriginalSource    string          `json:"original_source,omitempty"`
	Status            string          `json:"status"`
	TrustScore        int             `json:"trust_score"`
	Studies           []Study         `json:"studies"`
	VerificationNotes string          `json:"verification_notes,omitempty"`
	ExpertOpinions    []ExpertOpinion `json:"expert_opinions,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type ClaimListResp struct {
	Items  []ClaimResp `json:"items"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

func ToResp(c *Claim) *ClaimResp {
	studies := c.Studies
	if studies == nil {
		studies = []Study{}
	}
	return &ClaimResp{
		ID:                c.ID,
		InfluencerID:      c.InfluencerID,
		Content:           c.Content,
		Category:          c.Category,
		OriginalSource:    c.OriginalSource,
		Status:            c.Status,
		TrustScore:        c.TrustScore,
		Studies:           studies,
		VerificationNotes: c.VerificationNotes,
		ExpertOpinions:    c.ExpertOpinions,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// StudiesFromReq converts request studies into model studies.
func StudiesFromReq(reqs []StudyReq) []Study {
	studies := make([]Study, 0, len(reqs))
	for _, r := range reqs {
		studies = append(studies, Study{
			Title:      r.Title,
			URL:        r.URL,
			Journal:    r.Journal,
			Year:       r.Year,
			Conclusion: r.Conclusion,
		})
	}
	return studies
}
