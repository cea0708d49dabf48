package dto

// OperatorAlertInput is a best-effort operator-facing notification. Delivery
// failures must never abort the payout flow.
type OperatorAlertInput struct {
	AlertID  string
	Subject  string
	Message  string
	Metadata map[string]any
}

type OperatorAlertOutput struct {
	StatusCode int
}
