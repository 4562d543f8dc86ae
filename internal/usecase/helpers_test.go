package usecase

import (
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-league-snapshot/internal/domain/leaguehistory"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/resilience"
)

func intPtr(v int) *int { return &v }

func testLimiter() *resilience.Limiter {
	return resilience.NewLimiter(resilience.LimiterConfig{Workers: 2})
}

func testRoster() []leaguehistory.Participant {
	return []leaguehistory.Participant{
		{Name: "Scott", EntryID: "2408847"},
		{Name: "Ross", EntryID: "7707025"},
		{Name: "Douglas", EntryID: "688541"},
		{Name: "Jake", EntryID: "541241"},
	}
}

type recordingRecorder struct {
	mu        sync.Mutex
	failures  []string
	live      map[string]int
	fallbacks int
	builds    int
}

func newRecordingRecorder() *recordingRecorder {
	return &recordingRecorder{live: make(map[string]int)}
}

func (r *recordingRecorder) ObserveAggregation(time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builds++
}

func (r *recordingRecorder) IncParticipantFailure(participant string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, participant)
}

func (r *recordingRecorder) IncLiveOverride(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live[result]++
}

func (r *recordingRecorder) AddLiveFallbacks(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallbacks += n
}
