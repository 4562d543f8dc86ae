package fetch

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSession_SharesInFlightRequest(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	client, _, baseURL := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		<-release
		_, _ = w.Write([]byte(`{"value":7}`))
	})

	session := NewSession()
	ctx := WithSession(context.Background(), session)

	const callers = 5
	results := make([]int, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var out struct {
				Value int `json:"value"`
			}
			errs[i] = client.GetJSON(ctx, baseURL+"/same", DefaultOptions(), &out)
			results[i] = out.Value
		}(i)
	}

	require.Eventually(t, func() bool { return session.flight.Waiting() == callers-1 }, 2*time.Second, 5*time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, 7, results[i])
	}
	require.Equal(t, int32(1), calls.Load())
	require.Equal(t, int64(callers), session.Requests())
	require.Equal(t, int64(callers-1), session.Shared())
	require.Zero(t, session.InFlight())
}

func TestSession_SettledRequestIsFetchedAgain(t *testing.T) {
	var calls atomic.Int32
	client, _, baseURL := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{}`))
	})

	ctx := WithSession(context.Background(), NewSession())
	require.NoError(t, client.GetJSON(ctx, baseURL, DefaultOptions(), &map[string]any{}))
	require.NoError(t, client.GetJSON(ctx, baseURL, DefaultOptions(), &map[string]any{}))
	require.Equal(t, int32(2), calls.Load())
}

func TestSessionFrom_Missing(t *testing.T) {
	require.Nil(t, SessionFrom(context.Background()))
	ctx := WithSession(context.Background(), nil)
	require.Nil(t, SessionFrom(ctx))
}
