package launcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanForObjective(t *testing.T) {
	tests := []struct {
		objective string
		want      ObjectivePlan
	}{
		{"OUTCOME_AWARENESS", ObjectivePlan{OptimizationGoal: "REACH", BillingEvent: "IMPRESSIONS", CallToAction: "LEARN_MORE"}},
		{"OUTCOME_TRAFFIC", ObjectivePlan{OptimizationGoal: "LINK_CLICKS", BillingEvent: "IMPRESSIONS", CallToAction: "LEARN_MORE"}},
		{"OUTCOME_LEADS", ObjectivePlan{OptimizationGoal: "LINK_CLICKS", BillingEvent: "IMPRESSIONS", CallToAction: "SIGN_UP"}},
		{"OUTCOME_SALES", ObjectivePlan{OptimizationGoal: "LINK_CLICKS", BillingEvent: "IMPRESSIONS", CallToAction: "SHOP_NOW"}},
		{"OUTCOME_APP_PROMOTION", ObjectivePlan{OptimizationGoal: "REACH", BillingEvent: "IMPRESSIONS"}},
		{"", ObjectivePlan{OptimizationGoal: "REACH", BillingEvent: "IMPRESSIONS"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PlanForObjective(tt.objective), "objective %q", tt.objective)
	}
}
