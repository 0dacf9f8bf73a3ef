package launcher

// ObjectivePlan fixes how an ad set bills and optimizes for a campaign
// objective, and which call to action the creative carries.
type ObjectivePlan struct {
	OptimizationGoal string
	BillingEvent     string
	CallToAction     string
}

var objectivePlans = map[string]ObjectivePlan{
	"OUTCOME_AWARENESS": {OptimizationGoal: "REACH", BillingEvent: "IMPRESSIONS", CallToAction: "LEARN_MORE"},
	"OUTCOME_TRAFFIC":   {OptimizationGoal: "LINK_CLICKS", BillingEvent: "IMPRESSIONS", CallToAction: "LEARN_MORE"},
	"OUTCOME_LEADS":     {OptimizationGoal: "LINK_CLICKS", BillingEvent: "IMPRESSIONS", CallToAction: "SIGN_UP"},
	"OUTCOME_SALES":     {OptimizationGoal: "LINK_CLICKS", BillingEvent: "IMPRESSIONS", CallToAction: "SHOP_NOW"},
}

// PlanForObjective returns the delivery plan for a canonical objective.
// Unknown objectives get a conservative reach plan with no call to action.
func PlanForObjective(objective string) ObjectivePlan {
	if plan, ok := objectivePlans[objective]; ok {
		return plan
	}
	return ObjectivePlan{OptimizationGoal: "REACH", BillingEvent: "IMPRESSIONS"}
}
