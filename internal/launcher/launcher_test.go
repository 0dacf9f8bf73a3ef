package launcher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"adlaunch/internal/config"
	"adlaunch/internal/interfaces"
	"adlaunch/internal/metrics"
	"adlaunch/internal/models"
)

type fakeGraph struct {
	calls []string

	balance    *models.AccountBalance
	balanceErr error
	pages      []models.Page
	pagesErr   error

	campaignID  string
	campaignErr error
	adSetID     string
	adSetErr    error
	creativeID  string
	creativeErr error
	adID        string
	adErr       error
	deleteErr   error

	videoID      string
	uploadErr    error
	uploadedURL  string
	uploadedFile string
	uploadedData []byte
	thumbBatches [][]models.VideoThumbnail
	thumbErr     error
	thumbCalls   int
	meta         *models.VideoMeta
	metaErr      error

	campaignSpec *models.CampaignSpec
	adSetSpec    *models.AdSetSpec
	creativeSpec *models.CreativeSpec
	adSpec       *models.AdSpec
	deleted      []string
}

var _ interfaces.GraphAPI = (*fakeGraph)(nil)

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		balance:      &models.AccountBalance{ID: "act_123", SpendCap: "10000000", AmountSpent: "0", Currency: "BRL"},
		pages:        []models.Page{{ID: "page_1", Name: "Acme Store"}},
		campaignID:   "cmp_1",
		adSetID:      "as_1",
		creativeID:   "cr_1",
		adID:         "ad_1",
		videoID:      "vid_1",
		thumbBatches: [][]models.VideoThumbnail{{{URI: "https://cdn.example.com/thumb.jpg"}}},
		meta:         &models.VideoMeta{ID: "vid_1", Width: 1280, Height: 720},
	}
}

func (g *fakeGraph) AccountBalance(ctx context.Context, accountID, token string) (*models.AccountBalance, error) {
	g.calls = append(g.calls, "account_balance")
	if g.balanceErr != nil {
		return nil, g.balanceErr
	}
	return g.balance, nil
}

func (g *fakeGraph) ListPages(ctx context.Context, token string) ([]models.Page, error) {
	g.calls = append(g.calls, "list_pages")
	if g.pagesErr != nil {
		return nil, g.pagesErr
	}
	return g.pages, nil
}

func (g *fakeGraph) CreateCampaign(ctx context.Context, accountID, token string, spec models.CampaignSpec) (string, error) {
	g.calls = append(g.calls, "create_campaign")
	if g.campaignErr != nil {
		return "", g.campaignErr
	}
	g.campaignSpec = &spec
	return g.campaignID, nil
}

func (g *fakeGraph) CreateAdSet(ctx context.Context, accountID, token string, spec models.AdSetSpec) (string, error) {
	g.calls = append(g.calls, "create_adset")
	if g.adSetErr != nil {
		return "", g.adSetErr
	}
	g.adSetSpec = &spec
	return g.adSetID, nil
}

func (g *fakeGraph) UploadVideoByURL(ctx context.Context, accountID, token, fileURL string) (string, error) {
	g.calls = append(g.calls, "upload_video")
	if g.uploadErr != nil {
		return "", g.uploadErr
	}
	g.uploadedURL = fileURL
	return g.videoID, nil
}

func (g *fakeGraph) UploadVideoFile(ctx context.Context, accountID, token, filename string, data []byte) (string, error) {
	g.calls = append(g.calls, "upload_video_file")
	if g.uploadErr != nil {
		return "", g.uploadErr
	}
	g.uploadedFile = filename
	g.uploadedData = data
	return g.videoID, nil
}

func (g *fakeGraph) VideoThumbnails(ctx context.Context, videoID, token string) ([]models.VideoThumbnail, error) {
	g.calls = append(g.calls, "video_thumbnails")
	g.thumbCalls++
	if g.thumbErr != nil {
		return nil, g.thumbErr
	}
	if len(g.thumbBatches) == 0 {
		return nil, nil
	}
	idx := g.thumbCalls - 1
	if idx >= len(g.thumbBatches) {
		idx = len(g.thumbBatches) - 1
	}
	return g.thumbBatches[idx], nil
}

func (g *fakeGraph) VideoMeta(ctx context.Context, videoID, token string) (*models.VideoMeta, error) {
	g.calls = append(g.calls, "video_meta")
	if g.metaErr != nil {
		return nil, g.metaErr
	}
	return g.meta, nil
}

func (g *fakeGraph) CreateCreative(ctx context.Context, accountID, token string, spec models.CreativeSpec) (string, error) {
	g.calls = append(g.calls, "create_creative")
	if g.creativeErr != nil {
		return "", g.creativeErr
	}
	g.creativeSpec = &spec
	return g.creativeID, nil
}

func (g *fakeGraph) CreateAd(ctx context.Context, accountID, token string, spec models.AdSpec) (string, error) {
	g.calls = append(g.calls, "create_ad")
	if g.adErr != nil {
		return "", g.adErr
	}
	g.adSpec = &spec
	return g.adID, nil
}

func (g *fakeGraph) DeleteCampaign(ctx context.Context, campaignID, token string) error {
	g.calls = append(g.calls, "delete_campaign")
	g.deleted = append(g.deleted, campaignID)
	return g.deleteErr
}

type fakeFetcher struct {
	data     []byte
	filename string
	err      error
	fetched  []string
}

var _ interfaces.MediaFetcher = (*fakeFetcher)(nil)

func (f *fakeFetcher) Fetch(ctx context.Context, ref string) ([]byte, string, error) {
	f.fetched = append(f.fetched, ref)
	if f.err != nil {
		return nil, "", f.err
	}
	return f.data, f.filename, nil
}

func testLaunchConfig() config.LaunchConfig {
	return config.LaunchConfig{
		MinDailyBudgetCents: 576,
		BidAmountCents:      100,
		Countries:           []string{"BR"},
		PublisherPlatforms:  []string{"facebook", "instagram"},
		ThumbnailAttempts:   3,
		ThumbnailDelay:      0,
		RollbackTimeout:     time.Second,
		PlaceholderImageURL: "https://cdn.example.com/placeholder.png",
		DefaultLinkURL:      "https://www.example.com",
	}
}

func newTestLauncher(g *fakeGraph, f interfaces.MediaFetcher) *Launcher {
	if f == nil {
		f = &fakeFetcher{}
	}
	m := metrics.New(prometheus.NewRegistry(), "test")
	return New(g, f, testLaunchConfig(), config.MediaConfig{MaxFetchBytes: 1 << 20}, zap.NewNop(), m)
}

func decodeRequest(t *testing.T, body string) *models.CampaignRequest {
	t.Helper()
	var req models.CampaignRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

const saleRequest = `{
	"account_id": "123",
	"token": "tok",
	"campaign_name": "Summer Sale",
	"objective": "Sales",
	"budget": "$ 300",
	"initial_date": "04/03/2025",
	"final_date": "04/04/2025",
	"target_gender": "female",
	"target_age": 30,
	"image": "https://cdn.example.com/img.png",
	"description": "Big summer sale",
	"keywords": "sale, summer",
	"content": "https://shop.example.com"
}`

func TestLaunchCreatesFullObjectGraph(t *testing.T) {
	g := newFakeGraph()
	l := newTestLauncher(g, nil)

	result, err := l.Launch(context.Background(), "launch-1", decodeRequest(t, saleRequest))
	require.NoError(t, err)

	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "cmp_1", result.CampaignID)
	assert.Equal(t, "as_1", result.AdSetID)
	assert.Equal(t, "cr_1", result.CreativeID)
	assert.Equal(t, "ad_1", result.AdID)
	assert.Equal(t, "https://www.facebook.com/adsmanager/manage/campaigns?act=123&campaign_ids=cmp_1", result.CampaignLink)

	assert.Equal(t, []string{"account_balance", "list_pages", "create_campaign", "create_adset", "create_creative", "create_ad"}, g.calls)
	assert.Empty(t, g.deleted)

	require.NotNil(t, g.campaignSpec)
	assert.Equal(t, "Summer Sale", g.campaignSpec.Name)
	assert.Equal(t, "OUTCOME_SALES", g.campaignSpec.Objective)
	assert.Equal(t, "ACTIVE", g.campaignSpec.Status)
	require.NotNil(t, g.campaignSpec.SpecialAdCategories)
	assert.Empty(t, g.campaignSpec.SpecialAdCategories)

	require.NotNil(t, g.adSetSpec)
	assert.Equal(t, "cmp_1", g.adSetSpec.CampaignID)
	assert.Equal(t, int64(937), g.adSetSpec.DailyBudget) // 30000 cents over 32 days, truncated
	assert.Equal(t, "LINK_CLICKS", g.adSetSpec.OptimizationGoal)
	assert.Equal(t, "IMPRESSIONS", g.adSetSpec.BillingEvent)
	assert.Equal(t, int64(100), g.adSetSpec.BidAmount)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC).Unix(), g.adSetSpec.StartTime)
	assert.Equal(t, time.Date(2025, 4, 4, 23, 59, 59, 0, time.UTC).Unix(), g.adSetSpec.EndTime)
	assert.Equal(t, "Acme Store", g.adSetSpec.DSABeneficiary)
	assert.Equal(t, "Acme Store", g.adSetSpec.DSAPayor)
	assert.Equal(t, []int{2}, g.adSetSpec.Targeting.Genders)
	assert.Equal(t, 30, g.adSetSpec.Targeting.AgeMin)
	assert.Equal(t, 30, g.adSetSpec.Targeting.AgeMax)
	assert.Equal(t, []string{"BR"}, g.adSetSpec.Targeting.GeoLocations.Countries)
	assert.Equal(t, []string{"facebook", "instagram"}, g.adSetSpec.Targeting.PublisherPlatforms)

	require.NotNil(t, g.creativeSpec)
	assert.Equal(t, "page_1", g.creativeSpec.ObjectStorySpec.PageID)
	require.NotNil(t, g.creativeSpec.ObjectStorySpec.LinkData)
	assert.Equal(t, "https://cdn.example.com/img.png", g.creativeSpec.ObjectStorySpec.LinkData.Picture)
	assert.Equal(t, "https://shop.example.com", g.creativeSpec.ObjectStorySpec.LinkData.Link)
	assert.Equal(t, "Big summer sale", g.creativeSpec.ObjectStorySpec.LinkData.Message)
	assert.Equal(t, "sale, summer", g.creativeSpec.ObjectStorySpec.LinkData.Caption)
	require.NotNil(t, g.creativeSpec.ObjectStorySpec.LinkData.CallToAction)
	assert.Equal(t, "SHOP_NOW", g.creativeSpec.ObjectStorySpec.LinkData.CallToAction.Type)

	require.NotNil(t, g.adSpec)
	assert.Equal(t, "as_1", g.adSpec.AdSetID)
	assert.Equal(t, "cr_1", g.adSpec.Creative.CreativeID)
	assert.Equal(t, "ACTIVE", g.adSpec.Status)
}

func TestLaunchRollsBackAfterCampaignExists(t *testing.T) {
	upstream := &interfaces.GraphError{Message: "Invalid parameter", Code: 100, HTTPStatus: 400}
	tests := []struct {
		name  string
		prep  func(*fakeGraph)
		stage Stage
	}{
		{"ad set creation fails", func(g *fakeGraph) { g.adSetErr = upstream }, StageAdSet},
		{"creative creation fails", func(g *fakeGraph) { g.creativeErr = upstream }, StageCreative},
		{"ad creation fails", func(g *fakeGraph) { g.adErr = upstream }, StageAd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newFakeGraph()
			tt.prep(g)
			l := newTestLauncher(g, nil)

			_, err := l.Launch(context.Background(), "launch-1", decodeRequest(t, saleRequest))
			require.Error(t, err)

			var ue *UpstreamError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, tt.stage, ue.Stage)
			assert.Equal(t, []string{"cmp_1"}, g.deleted)
		})
	}
}

func TestLaunchNoRollbackWhenCampaignCreationFails(t *testing.T) {
	g := newFakeGraph()
	g.campaignErr = errors.New("connection reset")
	l := newTestLauncher(g, nil)

	_, err := l.Launch(context.Background(), "launch-1", decodeRequest(t, saleRequest))
	require.Error(t, err)

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, StageCampaign, ue.Stage)
	assert.Empty(t, g.deleted)
}

func TestLaunchRollbackFailureKeepsOriginalError(t *testing.T) {
	g := newFakeGraph()
	g.creativeErr = &interfaces.GraphError{Message: "Invalid creative", Code: 100, HTTPStatus: 400}
	g.deleteErr = errors.New("delete refused")
	l := newTestLauncher(g, nil)

	_, err := l.Launch(context.Background(), "launch-1", decodeRequest(t, saleRequest))
	require.Error(t, err)

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, StageCreative, ue.Stage)
	assert.Equal(t, []string{"cmp_1"}, g.deleted)
}

func TestLaunchScheduleFailureRollsBackCampaign(t *testing.T) {
	g := newFakeGraph()
	l := newTestLauncher(g, nil)

	// One day at $5 is 500 cents per day, under the 576 cent floor.
	req := decodeRequest(t, `{
		"account_id": "123",
		"token": "tok",
		"campaign_name": "Tiny",
		"budget": "5.00",
		"initial_date": "2025-03-04",
		"final_date": "2025-03-04"
	}`)
	_, err := l.Launch(context.Background(), "launch-1", req)
	require.Error(t, err)

	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "budget", ve.Field)
	assert.Equal(t, []string{"cmp_1"}, g.deleted)
	assert.NotContains(t, g.calls, "create_adset")
}

func TestLaunchMinimumFlightDuration(t *testing.T) {
	g := newFakeGraph()
	l := newTestLauncher(g, nil)

	// Well funded but under 24 hours.
	req := decodeRequest(t, `{
		"account_id": "123",
		"token": "tok",
		"campaign_name": "Short",
		"budget": "600",
		"initial_date": "2025-03-04",
		"final_date": "2025-03-04"
	}`)
	_, err := l.Launch(context.Background(), "launch-1", req)
	require.Error(t, err)

	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "final_date", ve.Field)
	assert.Equal(t, []string{"cmp_1"}, g.deleted)
}

func TestLaunchInsufficientFunds(t *testing.T) {
	g := newFakeGraph()
	g.balance = &models.AccountBalance{SpendCap: "10000", AmountSpent: "9800", Currency: "BRL"}
	l := newTestLauncher(g, nil)

	_, err := l.Launch(context.Background(), "launch-1", decodeRequest(t, saleRequest))
	require.Error(t, err)

	var fe *FundsError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, int64(30000), fe.RequiredCents)
	assert.Equal(t, int64(200), fe.AvailableCents)
	assert.Equal(t, []string{"account_balance"}, g.calls)
}

func TestLaunchFundsGuardFailsClosed(t *testing.T) {
	tests := []struct {
		name    string
		balance *models.AccountBalance
	}{
		{"missing spend_cap", &models.AccountBalance{AmountSpent: "100"}},
		{"garbage spend_cap", &models.AccountBalance{SpendCap: "abc", AmountSpent: "0"}},
		{"missing amount_spent", &models.AccountBalance{SpendCap: "10000"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newFakeGraph()
			g.balance = tt.balance
			l := newTestLauncher(g, nil)

			_, err := l.Launch(context.Background(), "launch-1", decodeRequest(t, saleRequest))

			var fe *FundsError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, []string{"account_balance"}, g.calls)
		})
	}
}

func TestLaunchBalanceLookupFailureIsUpstream(t *testing.T) {
	g := newFakeGraph()
	g.balanceErr = errors.New("dial tcp: connection refused")
	l := newTestLauncher(g, nil)

	_, err := l.Launch(context.Background(), "launch-1", decodeRequest(t, saleRequest))

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, StageBalance, ue.Stage)
}

func TestLaunchNoPageIsTerminal(t *testing.T) {
	g := newFakeGraph()
	g.pages = nil
	l := newTestLauncher(g, nil)

	_, err := l.Launch(context.Background(), "launch-1", decodeRequest(t, saleRequest))

	var pe *NoPageError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, []string{"account_balance", "list_pages"}, g.calls)
}

func TestLaunchPageListingFailureIsUpstream(t *testing.T) {
	g := newFakeGraph()
	g.pagesErr = errors.New("connection reset")
	l := newTestLauncher(g, nil)

	_, err := l.Launch(context.Background(), "launch-1", decodeRequest(t, saleRequest))

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, StagePage, ue.Stage)
}

func TestLaunchValidationShortCircuits(t *testing.T) {
	g := newFakeGraph()
	l := newTestLauncher(g, nil)

	req := decodeRequest(t, `{
		"account_id": "123",
		"token": "tok",
		"campaign_name": "Broken",
		"budget": "300",
		"initial_date": "someday",
		"final_date": "2025-03-04"
	}`)
	_, err := l.Launch(context.Background(), "launch-1", req)
	require.Error(t, err)

	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "initial_date", ve.Field)
	assert.Empty(t, g.calls)
}
