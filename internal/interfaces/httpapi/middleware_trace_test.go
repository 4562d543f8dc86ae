package httpapi

import "testing"

func TestShouldTraceRequest_ProbePaths(t *testing.T) {
	paths := []string{"/healthz", "/health", "/livez", "/readyz", "/metrics", " /healthz "}
	for _, path := range paths {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}
}

func TestShouldTraceRequest_NonProbePaths(t *testing.T) {
	paths := []string{"/v1/snapshot", "/v1/roster", "/"}
	for _, path := range paths {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}

func TestRouteLabel(t *testing.T) {
	if got := routeLabel("/v1/snapshot"); got != "/v1/snapshot" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := routeLabel("/v1/snapshot/../../etc"); got != "unmatched" {
		t.Fatalf("unexpected label for unknown path: %q", got)
	}
}
