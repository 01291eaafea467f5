package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustboard-backend/internal/domains/influencer"
)

type stubInfluencerService struct {
	byHandle map[string]*influencer.InfluencerResp

	created      []*influencer.CreateInfluencerReq
	refreshCalls int
	refreshErr   error
}

func handleKey(username, platform string) string {
	return username + "@" + platform
}

func newStubInfluencerService() *stubInfluencerService {
	return &stubInfluencerService{byHandle: map[string]*influencer.InfluencerResp{}}
}

func (s *stubInfluencerService) Create(_ context.Context, req *influencer.CreateInfluencerReq) (*influencer.InfluencerResp, error) {
	s.created = append(s.created, req)
	resp := &influencer.InfluencerResp{
		ID:         uuid.New(),
		Username:   req.Username,
		Platform:   req.Platform,
		TrustScore: 50,
	}
	s.byHandle[handleKey(req.Username, req.Platform)] = resp
	return resp, nil
}

func (s *stubInfluencerService) GetByID(_ context.Context, _ uuid.UUID) (*influencer.InfluencerResp, error) {
	return nil, influencer.ErrInfluencerNotFound
}

func (s *stubInfluencerService) GetByHandle(_ context.Context, username, platform string) (*influencer.InfluencerResp, error) {
	resp, ok := s.byHandle[handleKey(username, platform)]
	if !ok {
		return nil, influencer.ErrInfluencerNotFound
	}
	return resp, nil
}

func (s *stubInfluencerService) Search(_ context.Context, _ *influencer.SearchFilter) (*influencer.InfluencerListResp, error) {
	return &influencer.InfluencerListResp{}, nil
}

func (s *stubInfluencerService) Update(_ context.Context, _ uuid.UUID, _ *influencer.UpdateInfluencerReq) (*influencer.InfluencerResp, error) {
	return nil, influencer.ErrInfluencerNotFound
}

func (s *stubInfluencerService) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (s *stubInfluencerService) RefreshProfile(_ context.Context, id uuid.UUID) (*influencer.InfluencerResp, error) {
	s.refreshCalls++
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}
	for _, resp := range s.byHandle {
		if resp.ID == id {
			refreshed := *resp
			refreshed.TrustScore = 80
			refreshed.LastFetchedAt = time.Now()
			return &refreshed, nil
		}
	}
	return nil, influencer.ErrInfluencerNotFound
}

func (s *stubInfluencerService) RefreshStaleProfiles(_ context.Context, _ int) (int, error) {
	return 0, nil
}

func TestAnalyzeServesFreshRecordWithoutRefetch(t *testing.T) {
	inf := newStubInfluencerService()
	inf.byHandle[handleKey("drhealth", "instagram")] = &influencer.InfluencerResp{
		ID:            uuid.New(),
		Username:      "drhealth",
		Platform:      "instagram",
		TrustScore:    72,
		LastFetchedAt: time.Now().Add(-time.Hour),
	}
	svc := NewAnalyzerService(inf)

	resp, err := svc.Analyze(context.Background(), "Instagram", " DrHealth ")
	require.NoError(t, err)

	assert.Equal(t, 72, resp.TrustScore)
	assert.Zero(t, inf.refreshCalls)
}

func TestAnalyzeRefreshesStaleRecord(t *testing.T) {
	inf := newStubInfluencerService()
	inf.byHandle[handleKey("drhealth", "instagram")] = &influencer.InfluencerResp{
		ID:            uuid.New(),
		Username:      "drhealth",
		Platform:      "instagram",
		TrustScore:    72,
		LastFetchedAt: time.Now().Add(-48 * time.Hour),
	}
	svc := NewAnalyzerService(inf)

	resp, err := svc.Analyze(context.Background(), "instagram", "drhealth")
	require.NoError(t, err)

	assert.Equal(t, 1, inf.refreshCalls)
	assert.Equal(t, 80, resp.TrustScore)
}

func TestAnalyzeFetchFailureServesStaleRecord(t *testing.T) {
	inf := newStubInfluencerService()
	inf.byHandle[handleKey("drhealth", "instagram")] = &influencer.InfluencerResp{
		ID:            uuid.New(),
		Username:      "drhealth",
		Platform:      "instagram",
		TrustScore:    72,
		LastFetchedAt: time.Now().Add(-48 * time.Hour),
	}
	inf.refreshErr = influencer.ErrProfileFetchFailed
	svc := NewAnalyzerService(inf)

	resp, err := svc.Analyze(context.Background(), "instagram", "drhealth")
	require.NoError(t, err)

	assert.Equal(t, 72, resp.TrustScore)
}

func TestAnalyzeTracksUnknownHandle(t *testing.T) {
	inf := newStubInfluencerService()
	svc := NewAnalyzerService(inf)

	resp, err := svc.Analyze(context.Background(), "youtube", "fitguru")
	require.NoError(t, err)

	require.Len(t, inf.created, 1)
	assert.Equal(t, "fitguru", inf.created[0].Username)
	assert.Equal(t, "youtube", inf.created[0].Platform)
	assert.Equal(t, 50, resp.TrustScore)
}
