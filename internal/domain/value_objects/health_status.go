package valueobjects

// HealthStatus is the single-value liveness signal exposed on /healthz.
type HealthStatus string

const (
	HealthStatusOK HealthStatus = "ok"
)

func NewHealthyStatus() HealthStatus {
	return HealthStatusOK
}

func (h HealthStatus) String() string {
	return string(h)
}
