package launcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"adlaunch/internal/config"
	"adlaunch/internal/interfaces"
	"adlaunch/internal/metrics"
	"adlaunch/internal/models"
)

// Launcher turns one request into a full campaign object graph: campaign,
// ad set, creative and ad, created in that order. Once the campaign exists,
// any later failure deletes it again so nothing half-built keeps spending.
type Launcher struct {
	graph   interfaces.GraphAPI
	fetcher interfaces.MediaFetcher
	cfg     config.LaunchConfig
	media   config.MediaConfig
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func New(graph interfaces.GraphAPI, fetcher interfaces.MediaFetcher, cfg config.LaunchConfig, media config.MediaConfig, logger *zap.Logger, m *metrics.Metrics) *Launcher {
	return &Launcher{
		graph:   graph,
		fetcher: fetcher,
		cfg:     cfg,
		media:   media,
		logger:  logger,
		metrics: m,
	}
}

var _ interfaces.CampaignLauncher = (*Launcher)(nil)

func (l *Launcher) Launch(ctx context.Context, launchID string, req *models.CampaignRequest) (*models.LaunchResult, error) {
	start := time.Now()
	logger := l.logger.With(zap.String("launch_id", launchID), zap.String("account_id", req.AccountID))

	result, err := l.launch(ctx, logger, req)
	if err != nil {
		stage := failedStage(err)
		var ue *UpstreamError
		if errors.As(err, &ue) {
			logger.Error("campaign launch failed", zap.String("stage", stage), zap.Error(err))
		} else {
			logger.Warn("campaign launch rejected", zap.String("stage", stage), zap.Error(err))
		}
		l.metrics.RecordLaunch("error", time.Since(start))
		l.metrics.RecordStageFailure(stage)
		return nil, err
	}

	l.metrics.RecordLaunch("success", time.Since(start))
	logger.Info("campaign launched",
		zap.String("campaign_id", result.CampaignID),
		zap.String("ad_id", result.AdID),
		zap.Duration("took", time.Since(start)),
	)
	return result, nil
}

func (l *Launcher) launch(ctx context.Context, logger *zap.Logger, req *models.CampaignRequest) (*models.LaunchResult, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}
	logger.Debug("request normalized",
		zap.String("objective", req.Objective),
		zap.Int64("budget_cents", req.Budget.Cents()),
	)

	if err := l.checkFunds(ctx, logger, req.AccountID, req.Token, req.Budget.Cents()); err != nil {
		return nil, err
	}

	page, err := l.resolvePage(ctx, logger, req.Token)
	if err != nil {
		return nil, err
	}

	campaignID, err := l.graph.CreateCampaign(ctx, req.AccountID, req.Token, models.CampaignSpec{
		Name:                req.CampaignName,
		Objective:           req.Objective,
		Status:              "ACTIVE",
		SpecialAdCategories: []string{},
	})
	if err != nil {
		return nil, &UpstreamError{Stage: StageCampaign, Err: err}
	}
	logger.Debug("campaign created", zap.String("campaign_id", campaignID))

	result, err := l.assemble(ctx, logger, req, page, campaignID)
	if err != nil {
		// Deleting the campaign cascades to whatever was already attached.
		l.rollback(ctx, logger, campaignID, req.Token)
		return nil, err
	}
	return result, nil
}

// assemble builds everything hanging off an existing campaign. Any error
// returned from here makes the caller roll the campaign back.
func (l *Launcher) assemble(ctx context.Context, logger *zap.Logger, req *models.CampaignRequest, page models.Page, campaignID string) (*models.LaunchResult, error) {
	sched, err := ComputeSchedule(req.StartTime, req.EndTime, req.Budget.Cents(), l.cfg.MinDailyBudgetCents)
	if err != nil {
		return nil, err
	}
	logger.Debug("schedule computed",
		zap.Int("days", sched.Days),
		zap.Int64("daily_budget_cents", sched.DailyBudgetCents),
	)

	plan := PlanForObjective(req.Objective)

	payload, err := l.resolveCreative(ctx, logger, req, page, plan.CallToAction)
	if err != nil {
		return nil, err
	}

	targeting := BuildTargeting(req, l.cfg.Countries, l.cfg.PublisherPlatforms)
	payload.applyPlacement(&targeting)

	adSetID, err := l.graph.CreateAdSet(ctx, req.AccountID, req.Token, models.AdSetSpec{
		Name:             "Ad Set for " + req.CampaignName,
		CampaignID:       campaignID,
		DailyBudget:      sched.DailyBudgetCents,
		BillingEvent:     plan.BillingEvent,
		OptimizationGoal: plan.OptimizationGoal,
		BidAmount:        l.cfg.BidAmountCents,
		Targeting:        targeting,
		StartTime:        sched.Start.Unix(),
		EndTime:          sched.End.Unix(),
		Status:           "ACTIVE",
		DSABeneficiary:   page.Name,
		DSAPayor:         page.Name,
	})
	if err != nil {
		return nil, &UpstreamError{Stage: StageAdSet, Err: err}
	}
	logger.Debug("ad set created", zap.String("ad_set_id", adSetID))

	creativeID, err := l.graph.CreateCreative(ctx, req.AccountID, req.Token, payload.spec)
	if err != nil {
		return nil, &UpstreamError{Stage: StageCreative, Err: err}
	}
	logger.Debug("creative created", zap.String("creative_id", creativeID))

	adID, err := l.graph.CreateAd(ctx, req.AccountID, req.Token, models.AdSpec{
		Name:     "Ad for " + req.CampaignName,
		AdSetID:  adSetID,
		Creative: models.CreativeRef{CreativeID: creativeID},
		Status:   "ACTIVE",
	})
	if err != nil {
		return nil, &UpstreamError{Stage: StageAd, Err: err}
	}
	logger.Debug("ad created", zap.String("ad_id", adID))

	return &models.LaunchResult{
		Status:       "success",
		CampaignID:   campaignID,
		AdSetID:      adSetID,
		CreativeID:   creativeID,
		AdID:         adID,
		CampaignLink: adsManagerLink(req.AccountID, campaignID),
	}, nil
}

// rollback deletes the campaign so the account is left as it was found. It
// is best effort: the caller's error stays the one reported, and the delete
// survives cancellation of the inbound request.
func (l *Launcher) rollback(ctx context.Context, logger *zap.Logger, campaignID, token string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.cfg.RollbackTimeout)
	defer cancel()

	if err := l.graph.DeleteCampaign(ctx, campaignID, token); err != nil {
		logger.Error("compensating campaign delete failed, the campaign may need manual cleanup",
			zap.String("campaign_id", campaignID),
			zap.Error(err),
		)
		l.metrics.RecordRollback("failed")
		return
	}
	logger.Info("campaign rolled back", zap.String("campaign_id", campaignID))
	l.metrics.RecordRollback("ok")
}

func failedStage(err error) string {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return string(ue.Stage)
	}
	var fe *FundsError
	if errors.As(err, &fe) {
		return string(StageBalance)
	}
	var pe *NoPageError
	if errors.As(err, &pe) {
		return string(StagePage)
	}
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return "validation"
	}
	return "internal"
}

func adsManagerLink(accountID, campaignID string) string {
	return fmt.Sprintf("https://www.facebook.com/adsmanager/manage/campaigns?act=%s&campaign_ids=%s", accountID, campaignID)
}
