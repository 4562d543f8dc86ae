package usecase

import "time"

const (
	liveResultApplied     = "applied"
	liveResultSkipped     = "skipped"
	liveResultNotLive     = "not_live"
	liveResultUnavailable = "unavailable"
	liveResultFailed      = "failed"
)

// SnapshotRecorder receives aggregation instrumentation.
type SnapshotRecorder interface {
	ObserveAggregation(d time.Duration)
	IncParticipantFailure(participant string)
	IncLiveOverride(result string)
	AddLiveFallbacks(n int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveAggregation(time.Duration) {}
func (nopRecorder) IncParticipantFailure(string)     {}
func (nopRecorder) IncLiveOverride(string)           {}
func (nopRecorder) AddLiveFallbacks(int)             {}

func recorderOrNop(recorder SnapshotRecorder) SnapshotRecorder {
	if recorder == nil {
		return nopRecorder{}
	}
	return recorder
}
