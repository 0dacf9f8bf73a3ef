package interfaces

import (
	"context"

	"adlaunch/internal/models"
)

// CampaignLauncher turns one request into a live campaign, ad set, creative
// and ad, or into nothing at all when a stage fails.
type CampaignLauncher interface {
	Launch(ctx context.Context, launchID string, req *models.CampaignRequest) (*models.LaunchResult, error)
}
