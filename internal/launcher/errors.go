package launcher

import (
	"errors"

	"adlaunch/internal/interfaces"
)

// Stage identifies one step of the launch pipeline, used for error reporting
// and metrics labels.
type Stage string

const (
	StageBalance  Stage = "balance"
	StagePage     Stage = "page"
	StageCampaign Stage = "campaign"
	StageSchedule Stage = "schedule"
	StageMedia    Stage = "media"
	StageAdSet    Stage = "adset"
	StageCreative Stage = "creative"
	StageAd       Stage = "ad"
	StageRollback Stage = "rollback"
)

var stageMessages = map[Stage]string{
	StageBalance:  "error checking the account balance",
	StagePage:     "error listing facebook pages",
	StageCampaign: "error creating campaign",
	StageMedia:    "error preparing the campaign media",
	StageAdSet:    "error creating ad set",
	StageCreative: "error creating ad creative",
	StageAd:       "error creating ad",
}

// UpstreamError wraps a Graph API failure with the pipeline stage it
// happened in.
type UpstreamError struct {
	Stage Stage
	Err   error
}

func (e *UpstreamError) Error() string {
	return stageMessages[e.Stage] + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Detail is the client-facing message. The platform's own message wins when
// one exists; transport noise stays out of responses.
func (e *UpstreamError) Detail() string {
	var ge *interfaces.GraphError
	if errors.As(e.Err, &ge) && ge.Platform() {
		return stageMessages[e.Stage] + ": " + ge.Message
	}
	return stageMessages[e.Stage]
}

// FundsError means the account cannot cover the requested budget, or that
// its balance could not be established. The guard fails closed.
type FundsError struct {
	RequiredCents  int64
	AvailableCents int64
	Reason         string
}

func (e *FundsError) Error() string {
	return "insufficient funds to publish the campaign"
}

// NoPageError means the access token reaches no Facebook page, so no
// creative can ever be attached. Retrying without fixing the token is
// pointless.
type NoPageError struct{}

func (e *NoPageError) Error() string {
	return "no facebook page is available for this access token"
}
