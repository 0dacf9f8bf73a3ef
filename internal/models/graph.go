package models

// Graph API wire shapes. Monetary fields arrive as strings of minor currency
// units, matching what the platform returns.

// AccountBalance is the subset of the ad account needed for the spend guard.
type AccountBalance struct {
	ID          string `json:"id"`
	SpendCap    string `json:"spend_cap"`
	AmountSpent string `json:"amount_spent"`
	Currency    string `json:"currency"`
}

// Page is a Facebook page reachable with the caller's token.
type Page struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token,omitempty"`
	Category    string `json:"category,omitempty"`
}

type CampaignSpec struct {
	Name                string   `json:"name"`
	Objective           string   `json:"objective"`
	Status              string   `json:"status"`
	SpecialAdCategories []string `json:"special_ad_categories"`
}

type TargetingSpec struct {
	GeoLocations       GeoLocations `json:"geo_locations"`
	AgeMin             int          `json:"age_min,omitempty"`
	AgeMax             int          `json:"age_max,omitempty"`
	Genders            []int        `json:"genders,omitempty"`
	PublisherPlatforms []string     `json:"publisher_platforms,omitempty"`
	FacebookPositions  []string     `json:"facebook_positions,omitempty"`
	InstagramPositions []string     `json:"instagram_positions,omitempty"`
	DevicePlatforms    []string     `json:"device_platforms,omitempty"`
}

type GeoLocations struct {
	Countries []string `json:"countries"`
}

type AdSetSpec struct {
	Name             string        `json:"name"`
	CampaignID       string        `json:"campaign_id"`
	DailyBudget      int64         `json:"daily_budget"`
	BillingEvent     string        `json:"billing_event"`
	OptimizationGoal string        `json:"optimization_goal"`
	BidAmount        int64         `json:"bid_amount"`
	Targeting        TargetingSpec `json:"targeting"`
	StartTime        int64         `json:"start_time"`
	EndTime          int64         `json:"end_time"`
	Status           string        `json:"status"`
	DSABeneficiary   string        `json:"dsa_beneficiary,omitempty"`
	DSAPayor         string        `json:"dsa_payor,omitempty"`
}

type CreativeSpec struct {
	Name            string          `json:"name"`
	ObjectStorySpec ObjectStorySpec `json:"object_story_spec"`
}

type ObjectStorySpec struct {
	PageID    string     `json:"page_id"`
	LinkData  *LinkData  `json:"link_data,omitempty"`
	VideoData *VideoData `json:"video_data,omitempty"`
}

type LinkData struct {
	Message          string            `json:"message,omitempty"`
	Link             string            `json:"link"`
	Caption          string            `json:"caption,omitempty"`
	Picture          string            `json:"picture,omitempty"`
	ChildAttachments []ChildAttachment `json:"child_attachments,omitempty"`
	CallToAction     *CallToAction     `json:"call_to_action,omitempty"`
}

type ChildAttachment struct {
	Link    string `json:"link"`
	Picture string `json:"picture"`
}

type VideoData struct {
	VideoID         string        `json:"video_id"`
	Title           string        `json:"title,omitempty"`
	Message         string        `json:"message,omitempty"`
	LinkDescription string        `json:"link_description,omitempty"`
	ImageURL        string        `json:"image_url,omitempty"`
	CallToAction    *CallToAction `json:"call_to_action,omitempty"`
}

type CallToAction struct {
	Type  string            `json:"type"`
	Value CallToActionValue `json:"value"`
}

type CallToActionValue struct {
	Link string `json:"link"`
}

type AdSpec struct {
	Name     string      `json:"name"`
	AdSetID  string      `json:"adset_id"`
	Creative CreativeRef `json:"creative"`
	Status   string      `json:"status"`
}

type CreativeRef struct {
	CreativeID string `json:"creative_id"`
}

// VideoThumbnail is one entry of a video's thumbnails edge. The platform
// generates them asynchronously after upload.
type VideoThumbnail struct {
	ID          string `json:"id"`
	URI         string `json:"uri"`
	IsPreferred bool   `json:"is_preferred"`
}

// VideoMeta carries the dimensions used to pick placements by orientation.
type VideoMeta struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}
