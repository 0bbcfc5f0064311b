package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "petbot_http_requests_total"
	MetricNameHTTPRequestDuration  = "petbot_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "petbot_http_requests_in_flight"

	MetricNameCommandsTotal       = "petbot_commands_total"
	MetricNameFavorGranted        = "petbot_favor_granted_total"
	MetricNameMarblesGranted      = "petbot_marbles_granted_total"
	MetricNameCollectibleDrops    = "petbot_collectible_drops_total"
	MetricNameAchievementsGranted = "petbot_achievements_granted_total"
	MetricNamePersistFailures     = "petbot_persist_failures_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"

	HelpTextCommandsTotal       = "Economy commands processed, by action and outcome"
	HelpTextFavorGranted        = "Net favor granted, by action"
	HelpTextMarblesGranted      = "Net marbles granted, by action"
	HelpTextCollectibleDrops    = "Collectibles dropped, by rarity tier"
	HelpTextAchievementsGranted = "Achievements granted"
	HelpTextPersistFailures     = "Durable state writes that failed after retry"
)

// Label names
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelAction  = "action"
	LabelOutcome = "outcome"
	LabelTier    = "tier"
)

// Outcome label values
const (
	OutcomeOK          = "ok"
	OutcomeAlreadyDone = "already_done"
	OutcomeOnCooldown  = "on_cooldown"
	OutcomeError       = "error"
)

// HTTPLatencyBuckets are the histogram buckets for request latency.
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}
