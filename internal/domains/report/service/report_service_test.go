package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustboard-backend/internal/domains/claim"
	"trustboard-backend/internal/domains/influencer"
	"trustboard-backend/internal/domains/report"
)

// ========== stubs ==========

type stubReportRepo struct {
	reports map[uuid.UUID]*report.Report
}

func newStubReportRepo() *stubReportRepo {
	return &stubReportRepo{reports: map[uuid.UUID]*report.Report{}}
}

func (r *stubReportRepo) Create(_ context.Context, rep *report.Report) (*report.Report, error) {
	cp := *rep
	r.reports[rep.ID] = &cp
	return &cp, nil
}

func (r *stubReportRepo) GetByID(_ context.Context, id uuid.UUID) (*report.Report, error) {
	rep, ok := r.reports[id]
	if !ok {
		return nil, report.ErrReportNotFound
	}
	cp := *rep
	return &cp, nil
}

func (r *stubReportRepo) ListByUser(_ context.Context, userID uuid.UUID, _ *report.ListFilter) ([]report.Report, int64, error) {
	var out []report.Report
	for _, rep := range r.reports {
		if rep.UserID == userID {
			out = append(out, *rep)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubReportRepo) Update(_ context.Context, rep *report.Report) (*report.Report, error) {
	if _, ok := r.reports[rep.ID]; !ok {
		return nil, report.ErrReportNotFound
	}
	cp := *rep
	r.reports[rep.ID] = &cp
	return &cp, nil
}

func (r *stubReportRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.reports[id]; !ok {
		return report.ErrReportNotFound
	}
	delete(r.reports, id)
	return nil
}

type stubQueue struct {
	enqueued []uuid.UUID
	fail     bool
}

func (q *stubQueue) EnqueueProcessReport(_ context.Context, reportID, _ uuid.UUID) error {
	if q.fail {
		return errors.New("redis down")
	}
	q.enqueued = append(q.enqueued, reportID)
	return nil
}

type stubArtifacts struct {
	uploads map[string][]byte
}

func newStubArtifacts() *stubArtifacts {
	return &stubArtifacts{uploads: map[string][]byte{}}
}

func (a *stubArtifacts) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	a.uploads[key] = data
	return "http://storage/" + key, nil
}

func (a *stubArtifacts) DeleteByPrefix(_ context.Context, prefix string) error {
	for k := range a.uploads {
		if strings.HasPrefix(k, prefix) {
			delete(a.uploads, k)
		}
	}
	return nil
}

type fixedInfluencerRepo struct {
	items []influencer.Influencer
}

func (r *fixedInfluencerRepo) Create(_ context.Context, i *influencer.Influencer) (*influencer.Influencer, error) {
	return i, nil
}
func (r *fixedInfluencerRepo) GetByID(_ context.Context, _ uuid.UUID) (*influencer.Influencer, error) {
	return nil, influencer.ErrInfluencerNotFound
}
func (r *fixedInfluencerRepo) GetByHandle(_ context.Context, _, _ string) (*influencer.Influencer, error) {
	return nil, influencer.ErrInfluencerNotFound
}
func (r *fixedInfluencerRepo) Search(_ context.Context, _ *influencer.SearchFilter) ([]influencer.Influencer, int64, error) {
	return r.items, int64(len(r.items)), nil
}
func (r *fixedInfluencerRepo) Update(_ context.Context, i *influencer.Influencer) (*influencer.Influencer, error) {
	return i, nil
}
func (r *fixedInfluencerRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }
func (r *fixedInfluencerRepo) ListStale(_ context.Context, _ time.Time, _ int) ([]influencer.Influencer, error) {
	return nil, nil
}

type fixedClaimRepo struct {
	items []claim.Claim
}

func (r *fixedClaimRepo) Create(_ context.Context, c *claim.Claim) (*claim.Claim, error) {
	return c, nil
}
func (r *fixedClaimRepo) GetByID(_ context.Context, _ uuid.UUID) (*claim.Claim, error) {
	return nil, claim.ErrClaimNotFound
}
func (r *fixedClaimRepo) List(_ context.Context, _ *claim.ListFilter) ([]claim.Claim, int64, error) {
	return r.items, int64(len(r.items)), nil
}
func (r *fixedClaimRepo) Update(_ context.Context, c *claim.Claim) (*claim.Claim, error) {
	return c, nil
}
func (r *fixedClaimRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

// ========== fixtures ==========

func setup() (report.Service, *stubReportRepo, *stubQueue, *stubArtifacts) {
	repo := newStubReportRepo()
	queue := &stubQueue{}
	artifacts := newStubArtifacts()

	infRepo := &fixedInfluencerRepo{items: []influencer.Influencer{
		{ID: uuid.New(), Username: "drhealth", Platform: "instagram", TrustScore: 80, FollowerCount: 1200, ContentCount: 40, Verified: true},
		{ID: uuid.New(), Username: "fitguru", Platform: "youtube", TrustScore: 60, FollowerCount: 800, ContentCount: 25},
	}}
	claimRepo := &fixedClaimRepo{items: []claim.Claim{
		{ID: uuid.New(), Content: "c1", Category: "nutrition", Status: claim.StatusVerified, TrustScore: 80},
		{ID: uuid.New(), Content: "c2", Category: "medical", Status: claim.StatusRefuted, TrustScore: 60},
	}}

	svc := NewReportService(repo, infRepo, claimRepo, queue, artifacts)
	return svc, repo, queue, artifacts
}

// ========== tests ==========

func TestCreateEnqueuesAndReturnsPendingHandle(t *testing.T) {
	svc, _, queue, _ := setup()
	userID := uuid.New()

	resp, err := svc.Create(context.Background(), userID, &report.CreateReportReq{
		Type: report.TypeInfluencer,
	})
	require.NoError(t, err)

	assert.Equal(t, report.StatusPending, resp.Status)
	assert.Equal(t, []uuid.UUID{resp.ID}, queue.enqueued)
}

func TestCreateSurfacesEnqueueFailure(t *testing.T) {
	svc, repo, queue, _ := setup()
	queue.fail = true
	userID := uuid.New()

	_, err := svc.Create(context.Background(), userID, &report.CreateReportReq{
		Type: report.TypeCategory,
	})
	require.Error(t, err)

	// The stored report carries the error state.
	for _, rep := range repo.reports {
		assert.Equal(t, report.StatusError, rep.Status)
	}
}

func TestProcessRunsDedicatedGenerator(t *testing.T) {
	svc, repo, _, _ := setup()
	userID := uuid.New()

	resp, err := svc.Create(context.Background(), userID, &report.CreateReportReq{
		Type: report.TypeCategory,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Process(context.Background(), resp.ID))

	stored := repo.reports[resp.ID]
	assert.Equal(t, report.StatusCompleted, stored.Status)
	assert.NotNil(t, stored.CompletedAt)

	summary := stored.Data["summary"].(map[string]interface{})
	assert.Equal(t, 1, summary["verified"])
	assert.Equal(t, 1, summary["refuted"])
	assert.Equal(t, 0.5, summary["accuracy"])
}

func TestProcessAudienceAndContentGenerators(t *testing.T) {
	svc, repo, _, _ := setup()
	userID := uuid.New()

	audience, err := svc.Create(context.Background(), userID, &report.CreateReportReq{
		Type: report.TypeAudience,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Process(context.Background(), audience.ID))

	summary := repo.reports[audience.ID].Data["summary"].(map[string]interface{})
	assert.Equal(t, int64(2000), summary["total_followers"])
	assert.Equal(t, 1000.0, summary["average_followers"])

	content, err := svc.Create(context.Background(), userID, &report.CreateReportReq{
		Type: report.TypeContent,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Process(context.Background(), content.ID))

	summary = repo.reports[content.ID].Data["summary"].(map[string]interface{})
	assert.Equal(t, int64(65), summary["total_content"])
}

func TestProcessSkipsNonPendingReport(t *testing.T) {
	svc, repo, _, _ := setup()
	userID := uuid.New()

	resp, err := svc.Create(context.Background(), userID, &report.CreateReportReq{
		Type: report.TypeCategory,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Process(context.Background(), resp.ID))

	completed := repo.reports[resp.ID]
	require.Equal(t, report.StatusCompleted, completed.Status)
	completedAt := *completed.CompletedAt

	// A redelivered task must not rewrite a finished report.
	require.NoError(t, svc.Process(context.Background(), resp.ID))

	stored := repo.reports[resp.ID]
	assert.Equal(t, report.StatusCompleted, stored.Status)
	assert.Equal(t, completedAt, *stored.CompletedAt)
}

func TestProcessUnknownTypeUsesGenericGenerator(t *testing.T) {
	svc, repo, _, _ := setup()
	userID := uuid.New()

	resp, err := svc.Create(context.Background(), userID, &report.CreateReportReq{
		Type: "quarterly_compliance",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Process(context.Background(), resp.ID))

	stored := repo.reports[resp.ID]
	assert.Equal(t, report.StatusCompleted, stored.Status)

	summary := stored.Data["summary"].(map[string]interface{})
	assert.Equal(t, int64(2), summary["influencers"])
	assert.Equal(t, int64(2), summary["claims"])
}

func TestExportAccessCheckOrdering(t *testing.T) {
	svc, _, _, _ := setup()
	owner := uuid.New()
	stranger := uuid.New()

	resp, err := svc.Create(context.Background(), owner, &report.CreateReportReq{
		Type: report.TypeInfluencer,
	})
	require.NoError(t, err)

	// Missing report: 404 before anything else, even with a bad format.
	_, err = svc.Export(context.Background(), owner, uuid.New(), "docx")
	assert.ErrorIs(t, err, report.ErrReportNotFound)

	// Existing report, wrong owner: 403 even with a bad format.
	_, err = svc.Export(context.Background(), stranger, resp.ID, "docx")
	assert.ErrorIs(t, err, report.ErrNotOwner)

	// Right owner, bad format: 400.
	_, err = svc.Export(context.Background(), owner, resp.ID, "docx")
	assert.ErrorIs(t, err, report.ErrInvalidFormat)

	// Right owner, good format, but still pending: 400.
	_, err = svc.Export(context.Background(), owner, resp.ID, report.FormatCSV)
	assert.ErrorIs(t, err, report.ErrNotCompleted)
}

func TestExportCompletedReport(t *testing.T) {
	svc, _, _, artifacts := setup()
	owner := uuid.New()

	resp, err := svc.Create(context.Background(), owner, &report.CreateReportReq{
		Type: report.TypeInfluencer,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Process(context.Background(), resp.ID))

	result, err := svc.Export(context.Background(), owner, resp.ID, report.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "text/csv", result.ContentType)
	content := string(result.Content)
	assert.Contains(t, content, "username,platform,trust_score,follower_count,verified")
	assert.Contains(t, content, "drhealth")

	// Artifact copy stored under the report prefix.
	assert.Len(t, artifacts.uploads, 1)
}

func TestExportPDFIsValidDocument(t *testing.T) {
	svc, _, _, _ := setup()
	owner := uuid.New()

	resp, err := svc.Create(context.Background(), owner, &report.CreateReportReq{
		Type: report.TypeEngagement,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Process(context.Background(), resp.ID))

	result, err := svc.Export(context.Background(), owner, resp.ID, report.FormatPDF)
	require.NoError(t, err)

	content := string(result.Content)
	assert.True(t, strings.HasPrefix(content, "%PDF-1.4"))
	assert.Contains(t, content, "%%EOF")
}

func TestDeleteRemovesArtifacts(t *testing.T) {
	svc, repo, _, artifacts := setup()
	owner := uuid.New()

	resp, err := svc.Create(context.Background(), owner, &report.CreateReportReq{
		Type: report.TypeInfluencer,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Process(context.Background(), resp.ID))

	_, err = svc.Export(context.Background(), owner, resp.ID, report.FormatCSV)
	require.NoError(t, err)
	require.Len(t, artifacts.uploads, 1)

	require.NoError(t, svc.Delete(context.Background(), owner, resp.ID))

	assert.Empty(t, repo.reports)
	assert.Empty(t, artifacts.uploads)
}
