// Package metrics defines the engine interface the ad server records its
// operational counters through.
package metrics

import (
	"time"
)

// Engine is the interface for recording ad-server metrics.
type Engine interface {
	// RecordVastRequest accounts one VAST request by platform and HTTP status.
	RecordVastRequest(platformID string, statusCode int)
	// RecordBuildTime tracks how long one document build took.
	RecordBuildTime(duration time.Duration)
	// RecordValidationFailure accounts a built document failing validation.
	RecordValidationFailure(platformID string)
	// RecordNewConnection accounts an accepted server connection.
	RecordNewConnection()
	// RecordClosedConnection accounts a closed server connection.
	RecordClosedConnection()
}

// NoopEngine discards all metrics. Used when no metrics backend is configured.
type NoopEngine struct{}

func (NoopEngine) RecordVastRequest(platformID string, statusCode int) {}
func (NoopEngine) RecordBuildTime(duration time.Duration)              {}
func (NoopEngine) RecordValidationFailure(platformID string)           {}
func (NoopEngine) RecordNewConnection()                                {}
func (NoopEngine) RecordClosedConnection()                             {}
