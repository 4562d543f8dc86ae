package fetch

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	crerr "github.com/cockroachdb/errors"
)

const bodyPreviewLimit = 300

// ErrTransient marks failures worth retrying: transport errors, unreadable or
// non-JSON bodies and non-2xx statuses.
var ErrTransient = crerr.New("upstream transient failure")

// StatusError captures a non-2xx upstream response.
type StatusError struct {
	URL         string
	StatusCode  int
	BodyPreview string
	Header      http.Header
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status=%d url=%s body=%s", e.StatusCode, e.URL, e.BodyPreview)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrTransient
}

func newStatusError(rawURL string, resp *http.Response, body []byte) *StatusError {
	return &StatusError{
		URL:         rawURL,
		StatusCode:  resp.StatusCode,
		BodyPreview: previewBody(body),
		Header:      resp.Header.Clone(),
	}
}

func previewBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= bodyPreviewLimit {
		return text
	}
	cut := bodyPreviewLimit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
