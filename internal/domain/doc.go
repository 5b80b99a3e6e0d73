// Package domain contains the core entities and value objects for wallbridge.
//
// This package is the innermost layer. It has no dependencies on the
// renderer, the file system or logging, and holds only the state the
// lifecycle bridge reasons about.
//
// # Entities
//
//   - [SurfaceSession]: the currently attached drawable plus its last known size
//   - [Surface]: an opaque drawable handle owned by the host
//   - [Preferences]: scene settings the renderer reloads on change
//   - [Anomaly]: protocol anomalies absorbed by the bridge
//
// # Design Principles
//
// Domain entities are:
//   - Total: no operation on them fails or panics
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
