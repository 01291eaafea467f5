package claim

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Verification statuses a claim can hold. Pending is the initial state;
// the others are reached through verification passes.
const (
	StatusPending      = "pending"
	StatusVerified     = "verified"
	StatusQuestionable = "questionable"
	StatusRefuted      = "refuted"
)

var validStatuses = map[string]bool{
	StatusPending:      true,
	StatusVerified:     true,
	StatusQuestionable: true,
	StatusRefuted:      true,
}

// ValidStatus checks a claim status string.
func ValidStatus(status string) bool {
	return validStatuses[status]
}

// Claim categories.
const (
	CategoryNutrition = "nutrition"
	CategoryMedical   = "medical"
	CategoryFitness   = "fitness"
	CategoryWellness  = "wellness"
)

var validCategories = map[string]bool{
	CategoryNutrition: true,
	CategoryMedical:   true,
	CategoryFitness:   true,
	CategoryWellness:  true,
}

// Study conclusions recognized by the status derivation. Any other value
// (including empty) does not count toward either side.
const (
	ConclusionSupports     = "supports"
	ConclusionRefutes      = "refutes"
	ConclusionInconclusive = "inconclusive"
)

// Study is a scientific reference attached to a claim. Studies are stored
// inline with the claim as a JSONB array.
type Study struct {
	Title      string `json:"title"`
	URL        string `json:"url,omitempty"`
	Journal    string `json:"journal,omitempty"`
	Year       int    `json:"year,omitempty"`
	Conclusion string `json:"conclusion"`
}

// ExpertOpinion is a professional assessment attached to a claim, stored
// inline as a JSONB array.
type ExpertOpinion struct {
	Name        string `json:"name"`
	Credentials string `json:"credentials,omitempty"`
	Opinion     string `json:"opinion"`
}

// Claim is a health statement made by an influencer, verified against
// attached studies. TrustScore is caller supplied and moves independently
// of the verification status.
type Claim struct {
	ID             uuid.UUID `json:"id"`
	InfluencerID   uuid.UUID `json:"influencer_id"`
	Content        string    `json:"content"`
	Category       string    `json:"category"`
	OriginalSource string    `json:"original_source,omitempty"`

	Status     string  `json:"status"`
	TrustScore int     `json:"trust_score"`
	Studies    []Study `json:"studies"`

	VerificationNotes string          `json:"verification_notes,omitempty"`
	ExpertOpinions    []ExpertOpinion `json:"expert_opinions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewClaim builds a claim in the pending state; verification happens once
// studies are attached.
func NewClaim(influencerID uuid.UUID, content, category, originalSource string, trustScore int) (*Claim, error) {
	content = strings.TrimSpace(content)
	if content == "" || len(content) > 5000 {
		return nil, ErrInvalidClaimContent
	}
	if !validCategories[category] {
		return nil, ErrInvalidCategory
	}
	if trustScore < 0 || trustScore > 100 {
		return nil, ErrInvalidTrustScore
	}

	now := time.Now()
	return &Claim{
		ID:             uuid.New(),
		InfluencerID:   influencerID,
		Content:        content,
		Category:       category,
		OriginalSource: originalSource,
		Status:         StatusPending,
		TrustScore:     trustScore,
		Studies:        []Study{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// DeriveStatus computes the verification status from a set of studies.
//
// Studies whose conclusion is empty are skipped entirely. Refutations win
// ties in neither direction: more refutes than supports means refuted, more
// supports than refutes (with at least one support) means verified, and
// everything else is questionable. With no countable studies the status is
// left unchanged, so ok = false.
func DeriveStatus(studies []Study) (status string, ok bool) {
	supports, refutes, counted := 0, 0, 0

	for _, s := range studies {
		conclusion := strings.ToLower(strings.TrimSpace(s.Conclusion))
		if conclusion == "" {
			continue
		}
		counted++
		switch conclusion {
		case ConclusionSupports:
			supports++
		case ConclusionRefutes:
			refutes++
		}
	}

	if counted == 0 {
		return "", false
	}

	switch {
	case refutes > supports:
		return StatusRefuted, true
	case supports > refutes && supports >= 1:
		return StatusVerified, true
	default:
		return StatusQuestionable, true
	}
}

// Reverify re-derives the status from the claim's studies. Returns the new
// status and whether it was applied (false when no studies count).
func (c *Claim) Reverify() (string, bool) {
	status, ok := DeriveStatus(c.Studies)
	if !ok {
		return c.Status, false
	}
	c.Status = status
	c.UpdatedAt = time.Now()
	return status, true
}
