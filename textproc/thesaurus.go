package textproc

// Business intent category names.
const (
	IntentFeedbackCollection = "feedback_collection"
	IntentCustomerService    = "customer_service"
	IntentDataAnalysis       = "data_analysis"
	IntentAutomation         = "automation"
	IntentIntegration        = "integration"
)

// IntentNames lists the fixed intent categories in a stable order.
var IntentNames = []string{
	IntentFeedbackCollection,
	IntentCustomerService,
	IntentDataAnalysis,
	IntentAutomation,
	IntentIntegration,
}

// businessSynonyms maps canonical business-domain concepts to their synonyms.
// Expansion is one-hop: a keyword matching a canonical term or a synonym pulls
// in the canonical term and its synonym list, nothing transitive beyond that.
var businessSynonyms = map[string][]string{
	"customer":        {"client", "user", "consumer", "buyer", "patron", "clientele"},
	"feedback":        {"review", "comment", "opinion", "suggestion", "input", "response"},
	"support":         {"help", "assistance", "service", "aid", "care", "helpdesk"},
	"analysis":        {"analytics", "examination", "evaluation", "assessment", "insights"},
	"insight":         {"understanding", "knowledge", "intelligence", "perception", "wisdom"},
	"automation":      {"automatic", "automated", "ai", "machine", "bot", "smart"},
	"integration":     {"connection", "linking", "combining", "merging", "sync"},
	"dashboard":       {"interface", "panel", "view", "display", "screen", "console"},
	"survey":          {"poll", "questionnaire", "form", "quiz", "inquiry"},
	"engagement":      {"interaction", "participation", "involvement", "activity"},
	"personalization": {"customization", "tailoring", "individualization", "custom"},
	"workflow":        {"process", "procedure", "flow", "operation", "pipeline"},
	"real-time":       {"live", "instant", "immediate", "current", "realtime"},
	"tracking":        {"monitoring", "following", "observing", "watching", "surveillance"},
}

// canonicalOrder keeps synonym expansion output deterministic.
var canonicalOrder = []string{
	"customer", "feedback", "support", "analysis", "insight", "automation",
	"integration", "dashboard", "survey", "engagement", "personalization",
	"workflow", "real-time", "tracking",
}

// intentPhrases holds the representative phrase lists scanned during
// business-intent detection.
var intentPhrases = map[string][]string{
	IntentFeedbackCollection: {
		"collect feedback", "gather opinion", "survey", "review collection",
		"customer input", "feedback gathering", "opinion mining",
	},
	IntentCustomerService: {
		"support customer", "help desk", "customer care", "service quality",
		"resolve issue", "customer assistance", "support ticket",
	},
	IntentDataAnalysis: {
		"analyze data", "insights", "analytics", "reporting", "dashboard",
		"metrics", "kpi", "business intelligence", "data visualization",
	},
	IntentAutomation: {
		"automate process", "workflow automation", "ai powered", "automatic",
		"streamline", "efficiency", "reduce manual work",
	},
	IntentIntegration: {
		"integrate system", "connect platform", "sync data", "api integration",
		"third party", "external system", "data flow",
	},
}

// categoryIntents maps lowercase product categories to the intents they serve.
// Categories outside the table carry zero domain relevance.
var categoryIntents = map[string][]string{
	"voice of customer":   {IntentFeedbackCollection, IntentDataAnalysis},
	"ai customer service": {IntentCustomerService, IntentAutomation},
	"insights":            {IntentDataAnalysis},
	"customer 360":        {IntentCustomerService, IntentDataAnalysis},
	"ai & automation":     {IntentAutomation, IntentIntegration},
}
