package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustboard-backend/internal/domains/claim"
	"trustboard-backend/internal/domains/influencer"
)

// ========== stubs ==========

type stubClaimRepo struct {
	claims map[uuid.UUID]*claim.Claim
}

func newStubClaimRepo() *stubClaimRepo {
	return &stubClaimRepo{claims: map[uuid.UUID]*claim.Claim{}}
}

func (r *stubClaimRepo) Create(_ context.Context, c *claim.Claim) (*claim.Claim, error) {
	cp := *c
	r.claims[c.ID] = &cp
	return &cp, nil
}

func (r *stubClaimRepo) GetByID(_ context.Context, id uuid.UUID) (*claim.Claim, error) {
	c, ok := r.claims[id]
	if !ok {
		return nil, claim.ErrClaimNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubClaimRepo) List(_ context.Context, _ *claim.ListFilter) ([]claim.Claim, int64, error) {
	var out []claim.Claim
	for _, c := range r.claims {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubClaimRepo) Update(_ context.Context, c *claim.Claim) (*claim.Claim, error) {
	if _, ok := r.claims[c.ID]; !ok {
		return nil, claim.ErrClaimNotFound
	}
	cp := *c
	r.claims[c.ID] = &cp
	return &cp, nil
}

func (r *stubClaimRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.claims[id]; !ok {
		return claim.ErrClaimNotFound
	}
	delete(r.claims, id)
	return nil
}

type stubInfluencerRepo struct {
	influencers map[uuid.UUID]*influencer.Influencer
}

func (r *stubInfluencerRepo) Create(_ context.Context, i *influencer.Influencer) (*influencer.Influencer, error) {
	return i, nil
}
func (r *stubInfluencerRepo) GetByID(_ context.Context, id uuid.UUID) (*influencer.Influencer, error) {
	i, ok := r.influencers[id]
	if !ok {
		return nil, influencer.ErrInfluencerNotFound
	}
	return i, nil
}
func (r *stubInfluencerRepo) GetByHandle(_ context.Context, _, _ string) (*influencer.Influencer, error) {
	return nil, influencer.ErrInfluencerNotFound
}
func (r *stubInfluencerRepo) Search(_ context.Context, _ *influencer.SearchFilter) ([]influencer.Influencer, int64, error) {
	return nil, 0, nil
}
func (r *stubInfluencerRepo) Update(_ context.Context, i *influencer.Influencer) (*influencer.Influencer, error) {
	return i, nil
}
func (r *stubInfluencerRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }
func (r *stubInfluencerRepo) ListStale(_ context.Context, _ time.Time, _ int) ([]influencer.Influencer, error) {
	return nil, nil
}

// stubCache records sets and deletes so tests can assert the write path.
type stubCache struct {
	sets    map[string]interface{}
	deleted []string
}

func newStubCache() *stubCache {
	return &stubCache{sets: map[string]interface{}{}}
}

func (c *stubCache) Get(_ context.Context, _ string, _ interface{}) (bool, error) {
	return false, nil
}
func (c *stubCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.sets[key] = value
	return nil
}
func (c *stubCache) Delete(_ context.Context, keys ...string) error {
	c.deleted = append(c.deleted, keys...)
	return nil
}
func (c *stubCache) DeletePattern(_ context.Context, pattern string) error {
	c.deleted = append(c.deleted, pattern)
	return nil
}
func (c *stubCache) Ping(_ context.Context) error                        { return nil }
func (c *stubCache) Increment(_ context.Context, _ string) (int64, error) { return 0, nil }
func (c *stubCache) Exists(_ context.Context, _ string) (bool, error)     { return false, nil }
func (c *stubCache) Expire(_ context.Context, _ string, _ time.Duration) error {
	return nil
}
func (c *stubCache) TTL(_ context.Context, _ string) (time.Duration, error) { return 0, nil }

type stubNotifier struct {
	events []string
}

func (n *stubNotifier) NotifyClaimStatusChange(_ context.Context, _ uuid.UUID, newStatus string) error {
	n.events = append(n.events, newStatus)
	return nil
}

// ========== fixtures ==========

func setup() (claim.Service, *stubClaimRepo, *stubCache, *stubNotifier, uuid.UUID) {
	repo := newStubClaimRepo()
	infID := uuid.New()
	infRepo := &stubInfluencerRepo{influencers: map[uuid.UUID]*influencer.Influencer{
		infID: {ID: infID, Username: "drhealth", Platform: "instagram", TrustScore: 72},
	}}
	c := newStubCache()
	n := &stubNotifier{}
	svc := NewClaimService(repo, infRepo, c, n)
	return svc, repo, c, n, infID
}

// ========== tests ==========

func TestCreateStartsPendingWithCallerTrustScore(t *testing.T) {
	svc, _, _, _, infID := setup()

	resp, err := svc.Create(context.Background(), &claim.CreateClaimReq{
		InfluencerID: infID,
		Content:      "green tea prevents flu",
		Category:     "nutrition",
		TrustScore:   38,
	})
	require.NoError(t, err)

	// The score comes from the request, not the influencer profile.
	assert.Equal(t, 38, resp.TrustScore)
	assert.Equal(t, claim.StatusPending, resp.Status)
}

func TestCreateHonorsStatusOverride(t *testing.T) {
	svc, _, _, _, infID := setup()

	resp, err := svc.Create(context.Background(), &claim.CreateClaimReq{
		InfluencerID: infID,
		Content:      "collagen rebuilds cartilage",
		Category:     "medical",
		Status:       claim.StatusQuestionable,
		TrustScore:   25,
	})
	require.NoError(t, err)
	assert.Equal(t, claim.StatusQuestionable, resp.Status)
}

func TestCreateRejectsUnknownInfluencer(t *testing.T) {
	svc, _, _, _, _ := setup()

	_, err := svc.Create(context.Background(), &claim.CreateClaimReq{
		InfluencerID: uuid.New(),
		Content:      "sunlight cures acne",
		Category:     "medical",
	})
	assert.ErrorIs(t, err, claim.ErrInfluencerNotFound)
}

func TestCreateDerivesStatusFromStudies(t *testing.T) {
	svc, _, _, _, infID := setup()

	resp, err := svc.Create(context.Background(), &claim.CreateClaimReq{
		InfluencerID: infID,
		Content:      "intermittent fasting extends lifespan",
		Category:     "wellness",
		Studies: []claim.StudyReq{
			{Title: "s1", Conclusion: "refutes"},
			{Title: "s2", Conclusion: "refutes"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, claim.StatusRefuted, resp.Status)
}

func TestMutationRefreshesClaimEntryAndEvictsListing(t *testing.T) {
	svc, _, cacheStub, _, infID := setup()

	resp, err := svc.Create(context.Background(), &claim.CreateClaimReq{
		InfluencerID: infID,
		Content:      "raw milk is safer than pasteurized",
		Category:     "nutrition",
	})
	require.NoError(t, err)

	// The claim entry is re-set, not deleted, and the unfiltered listing
	// key is evicted.
	_, set := cacheStub.sets["claim:"+resp.ID.String()]
	assert.True(t, set)
	assert.Contains(t, cacheStub.deleted, "claims:{}")
}

func TestVerifyNotifiesOnEveryAppliedPass(t *testing.T) {
	svc, _, _, notifier, infID := setup()

	resp, err := svc.Create(context.Background(), &claim.CreateClaimReq{
		InfluencerID: infID,
		Content:      "vitamin D megadoses are harmless",
		Category:     "medical",
		Studies: []claim.StudyReq{
			{Title: "s1", Conclusion: "supports"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, claim.StatusVerified, resp.Status)

	// Two verification passes deriving the same status still emit twice.
	_, err = svc.Verify(context.Background(), resp.ID)
	require.NoError(t, err)
	_, err = svc.Verify(context.Background(), resp.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{claim.StatusVerified, claim.StatusVerified}, notifier.events)
}

func TestVerifyWithoutStudiesKeepsStatusAndStaysQuiet(t *testing.T) {
	svc, _, _, notifier, infID := setup()

	resp, err := svc.Create(context.Background(), &claim.CreateClaimReq{
		InfluencerID: infID,
		Content:      "celery juice detoxes the liver",
		Category:     "wellness",
	})
	require.NoError(t, err)

	verified, err := svc.Verify(context.Background(), resp.ID)
	require.NoError(t, err)

	assert.Equal(t, claim.StatusPending, verified.Status)
	assert.Empty(t, notifier.events)
}

func TestUpdateAppliesScoreAndExpertOpinions(t *testing.T) {
	svc, _, _, _, infID := setup()

	resp, err := svc.Create(context.Background(), &claim.CreateClaimReq{
		InfluencerID: infID,
		Content:      "magnesium fixes sleep",
		Category:     "wellness",
		TrustScore:   50,
	})
	require.NoError(t, err)

	score := 85
	opinions := []claim.ExpertOpinion{
		{Name: "Dr. Rivera", Credentials: "MD, sleep medicine", Opinion: "plausible for deficient patients"},
	}
	updated, err := svc.Update(context.Background(), resp.ID, &claim.UpdateClaimReq{
		TrustScore:     &score,
		ExpertOpinions: &opinions,
	})
	require.NoError(t, err)

	assert.Equal(t, 85, updated.TrustScore)
	require.Len(t, updated.ExpertOpinions, 1)
	assert.Equal(t, "Dr. Rivera", updated.ExpertOpinions[0].Name)
	// Score edits never touch verification status.
	assert.Equal(t, claim.StatusPending, updated.Status)
}

func TestAddStudyFlipsStatusAndNotifies(t *testing.T) {
	svc, _, _, notifier, infID := setup()

	resp, err := svc.Create(context.Background(), &claim.CreateClaimReq{
		InfluencerID: infID,
		Content:      "keto reverses diabetes",
		Category:     "medical",
	})
	require.NoError(t, err)

	updated, err := svc.AddStudy(context.Background(), resp.ID, &claim.StudyReq{
		Title:      "meta analysis",
		Conclusion: "supports",
	})
	require.NoError(t, err)

	assert.Equal(t, claim.StatusVerified, updated.Status)
	assert.Equal(t, []string{claim.StatusVerified}, notifier.events)
}
