package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultObjective = "OUTCOME_TRAFFIC"

	defaultMinSalary = 2000
	defaultMaxSalary = 20000
)

// ValidationError marks a request that cannot be turned into a campaign.
// Field carries the JSON name of the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CampaignRequest is the inbound payload for a campaign launch. Besides the
// validate tags, most of the tolerance lives in Normalize: human-friendly
// objectives, two date layouts, money strings with currency noise.
type CampaignRequest struct {
	AccountID    string   `json:"account_id" validate:"required"`
	Token        string   `json:"token" validate:"required"`
	CampaignName string   `json:"campaign_name" validate:"required"`
	Objective    string   `json:"objective"`
	Budget       Money    `json:"budget" swaggertype:"string"`
	InitialDate  string   `json:"initial_date" validate:"required"`
	FinalDate    string   `json:"final_date" validate:"required"`
	TargetGender string   `json:"target_gender"`
	TargetAge    int      `json:"target_age" validate:"omitempty,gte=13,lte=65"`
	MinSalary    Money    `json:"min_salary" swaggertype:"string"`
	MaxSalary    Money    `json:"max_salary" swaggertype:"string"`
	Locations    []string `json:"locations"`
	Devices      []string `json:"devices"`
	Description  string   `json:"description"`
	Keywords     string   `json:"keywords"`
	Content      string   `json:"content"`
	Video        string   `json:"video"`
	Image        string   `json:"image"`
	SingleImage  string   `json:"single_image"`
	Carrossel    []string `json:"carrossel"`

	// Derived by Normalize, not part of the wire payload.
	StartTime time.Time `json:"-"`
	EndTime   time.Time `json:"-"`
}

var objectiveSynonyms = map[string]string{
	"brand awareness": "OUTCOME_AWARENESS",
	"awareness":       "OUTCOME_AWARENESS",
	"sales":           "OUTCOME_SALES",
	"leads":           "OUTCOME_LEADS",
	"traffic":         "OUTCOME_TRAFFIC",
}

// Normalize cleans the request in place: it rejects unparseable money values,
// canonicalizes the objective, resolves the flight dates, trims media
// references and fills salary defaults. Calling it twice is a no-op.
func (r *CampaignRequest) Normalize() error {
	if r.Budget.Invalid() {
		return moneyError("budget", r.Budget)
	}
	if r.MinSalary.Invalid() {
		return moneyError("min_salary", r.MinSalary)
	}
	if r.MaxSalary.Invalid() {
		return moneyError("max_salary", r.MaxSalary)
	}

	r.Objective = normalizeObjective(r.Objective)

	start, err := parseFlightDate("initial_date", r.InitialDate)
	if err != nil {
		return err
	}
	end, err := parseFlightDate("final_date", r.FinalDate)
	if err != nil {
		return err
	}
	r.StartTime = start
	r.EndTime = end.Add(24*time.Hour - time.Second)
	if r.EndTime.Before(r.StartTime) {
		return &ValidationError{Field: "final_date", Reason: "final date must not be before the initial date"}
	}

	r.Video = cleanMediaRef(r.Video)
	r.Image = cleanMediaRef(r.Image)
	r.SingleImage = cleanMediaRef(r.SingleImage)
	for i, u := range r.Carrossel {
		r.Carrossel[i] = cleanMediaRef(u)
	}

	if r.MinSalary.IsZero() {
		r.MinSalary = MoneyFromInt(defaultMinSalary)
	}
	if r.MaxSalary.IsZero() {
		r.MaxSalary = MoneyFromInt(defaultMaxSalary)
	}
	return nil
}

func moneyError(field string, m Money) error {
	return &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf("cannot parse %q as a monetary amount", m.String()),
	}
}

func normalizeObjective(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultObjective
	}
	if canonical, ok := objectiveSynonyms[strings.ToLower(s)]; ok {
		return canonical
	}
	return s
}

var flightDateLayouts = []string{"2006-01-02", "02/01/2006"}

func parseFlightDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &ValidationError{Field: field, Reason: "a date is required"}
	}
	for _, layout := range flightDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf("cannot parse %q as a date (expected YYYY-MM-DD or DD/MM/YYYY)", s),
	}
}

// cleanMediaRef strips surrounding whitespace and trailing semicolons, which
// show up when URLs are pasted out of spreadsheet exports.
func cleanMediaRef(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), ";")
}
