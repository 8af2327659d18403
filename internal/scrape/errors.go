// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"errors"
	"fmt"
)

// FailKind classifies why a page fetch failed. The engine and the proxy
// retry logic branch on the kind rather than on error text.
type FailKind string

const (
	// KindBlocked marks URLs rejected by the blocked-domain list before
	// any network traffic.
	KindBlocked FailKind = "blocked"

	// KindInvalidURL marks URLs that could not be parsed or use an
	// unsupported scheme.
	KindInvalidURL FailKind = "invalid-url"

	// KindTimeout marks fetches that exceeded the per-page deadline.
	KindTimeout FailKind = "timeout"

	// KindTransport marks connection-level failures: DNS, refused
	// connections, TLS handshakes.
	KindTransport FailKind = "transport"

	// KindStatus marks non-2xx HTTP responses.
	KindStatus FailKind = "status"

	// KindProxy marks failures of the relay fallback itself.
	KindProxy FailKind = "proxy"
)

// FetchError reports a failed page fetch with its classification.
type FetchError struct {
	URL  string
	Kind FailKind
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %s: %v", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetching %s: %s", e.URL, e.Kind)
}

func (e *FetchError) Unwrap() error { return e.Err }

// KindOf returns the classification of err, or an empty kind for errors
// that did not originate in this package.
func KindOf(err error) FailKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
