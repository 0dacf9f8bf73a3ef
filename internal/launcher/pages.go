package launcher

import (
	"context"

	"go.uber.org/zap"

	"adlaunch/internal/models"
)

// resolvePage picks the page every creative is published under. The first
// page the token can see wins; a token that reaches no page at all is a
// terminal condition, not a retryable one.
func (l *Launcher) resolvePage(ctx context.Context, logger *zap.Logger, token string) (models.Page, error) {
	pages, err := l.graph.ListPages(ctx, token)
	if err != nil {
		return models.Page{}, &UpstreamError{Stage: StagePage, Err: err}
	}
	if len(pages) == 0 {
		return models.Page{}, &NoPageError{}
	}
	page := pages[0]
	logger.Debug("page resolved", zap.String("page_id", page.ID), zap.String("page_name", page.Name))
	return page, nil
}
