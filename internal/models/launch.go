package models

// LaunchResult is returned once the whole campaign object graph exists.
type LaunchResult struct {
	Status       string `json:"status"`
	LaunchID     string `json:"launch_id"`
	CampaignID   string `json:"campaign_id"`
	AdSetID      string `json:"ad_set_id"`
	CreativeID   string `json:"creative_id"`
	AdID         string `json:"ad_id"`
	CampaignLink string `json:"campaign_link"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
