package launcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"adlaunch/internal/models"
)

// creativePayload is the resolved creative plus the placement hints a
// video's orientation may impose on the ad set.
type creativePayload struct {
	spec        models.CreativeSpec
	publishers  []string
	fbPositions []string
	igPositions []string
}

// applyPlacement narrows the targeting to the placements the creative fits.
func (p *creativePayload) applyPlacement(t *models.TargetingSpec) {
	if len(p.publishers) == 0 {
		return
	}
	t.PublisherPlatforms = p.publishers
	t.FacebookPositions = p.fbPositions
	t.InstagramPositions = p.igPositions
}

// resolveCreative builds the creative for the request's media. Precedence is
// video, then image, then carousel, then a placeholder image that keeps the
// launch alive when no media was given. cta is empty for objectives without
// a call to action.
func (l *Launcher) resolveCreative(ctx context.Context, logger *zap.Logger, req *models.CampaignRequest, page models.Page, cta string) (*creativePayload, error) {
	link := req.Content
	if link == "" {
		link = l.cfg.DefaultLinkURL
	}
	var callToAction *models.CallToAction
	if cta != "" {
		callToAction = &models.CallToAction{Type: cta, Value: models.CallToActionValue{Link: link}}
	}
	name := "Ad Creative for " + req.CampaignName

	if req.Video != "" {
		return l.videoCreative(ctx, logger, req, page, name, link, callToAction)
	}

	image := req.Image
	if image == "" {
		image = req.SingleImage
	}
	if image != "" {
		return linkCreative(page, name, &models.LinkData{
			Message:      req.Description,
			Link:         link,
			Caption:      req.Keywords,
			Picture:      image,
			CallToAction: callToAction,
		}), nil
	}

	if children := carouselChildren(req.Carrossel, link); len(children) > 0 {
		return linkCreative(page, name, &models.LinkData{
			Message:          req.Description,
			Link:             link,
			Caption:          req.Keywords,
			ChildAttachments: children,
			CallToAction:     callToAction,
		}), nil
	}

	logger.Debug("no media given, using placeholder image")
	return linkCreative(page, name, &models.LinkData{
		Message:      req.Description,
		Link:         link,
		Caption:      req.Keywords,
		Picture:      l.cfg.PlaceholderImageURL,
		CallToAction: callToAction,
	}), nil
}

func linkCreative(page models.Page, name string, data *models.LinkData) *creativePayload {
	return &creativePayload{spec: models.CreativeSpec{
		Name: name,
		ObjectStorySpec: models.ObjectStorySpec{
			PageID:   page.ID,
			LinkData: data,
		},
	}}
}

func carouselChildren(pics []string, link string) []models.ChildAttachment {
	children := make([]models.ChildAttachment, 0, len(pics))
	for _, pic := range pics {
		if pic == "" {
			continue
		}
		children = append(children, models.ChildAttachment{Link: link, Picture: pic})
	}
	return children
}

func (l *Launcher) videoCreative(ctx context.Context, logger *zap.Logger, req *models.CampaignRequest, page models.Page, name, link string, cta *models.CallToAction) (*creativePayload, error) {
	videoID, err := l.uploadVideo(ctx, logger, req)
	if err != nil {
		return nil, &UpstreamError{Stage: StageMedia, Err: err}
	}
	logger.Debug("video uploaded", zap.String("video_id", videoID))

	thumb, err := l.pollThumbnail(ctx, videoID, req.Token)
	if err != nil {
		return nil, &UpstreamError{Stage: StageMedia, Err: err}
	}

	payload := &creativePayload{spec: models.CreativeSpec{
		Name: name,
		ObjectStorySpec: models.ObjectStorySpec{
			PageID: page.ID,
			VideoData: &models.VideoData{
				VideoID:         videoID,
				Title:           req.CampaignName,
				Message:         req.Description,
				LinkDescription: req.Keywords,
				ImageURL:        thumb,
				CallToAction:    cta,
			},
		},
	}}

	l.applyOrientation(ctx, logger, payload, videoID, req.Token)
	return payload, nil
}

// uploadVideo hands an http(s) URL straight to the platform unless forced to
// download. s3:// references are always fetched locally first.
func (l *Launcher) uploadVideo(ctx context.Context, logger *zap.Logger, req *models.CampaignRequest) (string, error) {
	ref := req.Video
	if strings.HasPrefix(ref, "s3://") || l.media.ForceDownload {
		data, filename, err := l.fetcher.Fetch(ctx, ref)
		if err != nil {
			return "", err
		}
		logger.Debug("video fetched", zap.String("filename", filename), zap.Int("bytes", len(data)))
		return l.graph.UploadVideoFile(ctx, req.AccountID, req.Token, filename, data)
	}
	return l.graph.UploadVideoByURL(ctx, req.AccountID, req.Token, ref)
}

// pollThumbnail waits for the platform to generate thumbnails, which happens
// asynchronously some time after the upload. A preferred thumbnail wins over
// the first one listed.
func (l *Launcher) pollThumbnail(ctx context.Context, videoID, token string) (string, error) {
	attempts := l.cfg.ThumbnailAttempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(l.cfg.ThumbnailDelay):
			}
		}
		thumbs, err := l.graph.VideoThumbnails(ctx, videoID, token)
		if err != nil {
			lastErr = err
			continue
		}
		if len(thumbs) == 0 {
			continue
		}
		pick := thumbs[0]
		for _, t := range thumbs {
			if t.IsPreferred {
				pick = t
				break
			}
		}
		return pick.URI, nil
	}
	if lastErr != nil {
		return "", fmt.Errorf("no thumbnail after %d attempts: %w", attempts, lastErr)
	}
	return "", fmt.Errorf("no thumbnail after %d attempts", attempts)
}

// applyOrientation narrows placements by the video's aspect ratio: portrait
// video goes to instagram stories, anything else to the facebook feed. When
// the dimensions cannot be read the default placements stay.
func (l *Launcher) applyOrientation(ctx context.Context, logger *zap.Logger, payload *creativePayload, videoID, token string) {
	meta, err := l.graph.VideoMeta(ctx, videoID, token)
	if err != nil {
		logger.Warn("video dimensions unavailable, keeping default placements",
			zap.String("video_id", videoID),
			zap.Error(err),
		)
		return
	}
	if meta.Width <= 0 || meta.Height <= 0 {
		return
	}
	if meta.Height > meta.Width {
		payload.publishers = []string{"instagram"}
		payload.igPositions = []string{"story"}
		return
	}
	payload.publishers = []string{"facebook"}
	payload.fbPositions = []string{"feed"}
}
