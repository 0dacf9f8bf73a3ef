package interfaces

import (
	"context"

	"adlaunch/internal/models"
)

// GraphAPI is the surface of the Meta Marketing API the launcher depends on.
// Create methods return the remote object's id.
type GraphAPI interface {
	AccountBalance(ctx context.Context, accountID, token string) (*models.AccountBalance, error)
	ListPages(ctx context.Context, token string) ([]models.Page, error)
	CreateCampaign(ctx context.Context, accountID, token string, spec models.CampaignSpec) (string, error)
	CreateAdSet(ctx context.Context, accountID, token string, spec models.AdSetSpec) (string, error)
	UploadVideoByURL(ctx context.Context, accountID, token, fileURL string) (string, error)
	UploadVideoFile(ctx context.Context, accountID, token, filename string, data []byte) (string, error)
	VideoThumbnails(ctx context.Context, videoID, token string) ([]models.VideoThumbnail, error)
	VideoMeta(ctx context.Context, videoID, token string) (*models.VideoMeta, error)
	CreateCreative(ctx context.Context, accountID, token string, spec models.CreativeSpec) (string, error)
	CreateAd(ctx context.Context, accountID, token string, spec models.AdSpec) (string, error)
	DeleteCampaign(ctx context.Context, campaignID, token string) error
}
