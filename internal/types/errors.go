package types

import "fmt"

// UpstreamError reports a failed remote parser call: unreachable service,
// rate limit, timeout, or a response failing schema validation. It is
// always recovered locally by falling back to the heuristic parser and is
// never surfaced to API callers.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("upstream parser: %s", e.Op)
	}
	return fmt.Sprintf("upstream parser: %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// RepositoryError reports a storage failure. It is surfaced to the
// transport layer as a server error and is not retried by the core.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("recipe repository: %s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error { return e.Err }

// InvalidFilterError reports a client-supplied filter that cannot be
// clamped into a valid value. The offending field is named so the
// transport layer can point at it.
type InvalidFilterError struct {
	Field  string
	Reason string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter %q: %s", e.Field, e.Reason)
}
