package domain

// Anomaly is a host event that arrived in a state the bridge did not expect.
// Anomalies are absorbed into session state and reported for diagnostics only.
type Anomaly int

const (
	// AnomalyDisconnectUnbalanced: disconnect with no outstanding connect.
	AnomalyDisconnectUnbalanced Anomaly = iota
	// AnomalyResizeDetached: resize with no attached surface or no connection.
	AnomalyResizeDetached
	// AnomalyVisibleDetached: visibility true with no attached surface.
	AnomalyVisibleDetached
	// AnomalyAttachDisconnected: surface created before the first connect.
	AnomalyAttachDisconnected
	// AnomalyVisibleDisconnected: visibility true before the first connect.
	AnomalyVisibleDisconnected
	// AnomalyDestroyUnbalanced: engine destroyed with no outstanding connect.
	AnomalyDestroyUnbalanced
)

// String returns a human-readable representation of the anomaly.
func (a Anomaly) String() string {
	switch a {
	case AnomalyDisconnectUnbalanced:
		return "disconnect_unbalanced"
	case AnomalyResizeDetached:
		return "resize_detached"
	case AnomalyVisibleDetached:
		return "visible_detached"
	case AnomalyAttachDisconnected:
		return "attach_disconnected"
	case AnomalyVisibleDisconnected:
		return "visible_disconnected"
	case AnomalyDestroyUnbalanced:
		return "destroy_unbalanced"
	default:
		return "unknown"
	}
}
