package pool

import "time"

// NoopMetrics is a drop-in Metrics implementation that does nothing.
type NoopMetrics struct{}

func (NoopMetrics) Queued()            {}
func (NoopMetrics) Done(time.Duration) {}
func (NoopMetrics) Panicked()          {}
func (NoopMetrics) Dropped()           {}
func (NoopMetrics) Abandoned(int)      {}

var _ Metrics = NoopMetrics{}
