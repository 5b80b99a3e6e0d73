package ports

import "github.com/bft-labs/wallbridge/internal/domain"

// AnomalyObserver is notified when the bridge absorbs a protocol anomaly.
// Implementations must not call back into the bridge.
type AnomalyObserver interface {
	OnAnomaly(anomaly domain.Anomaly, detail string)
}
