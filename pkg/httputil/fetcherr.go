package httputil

import "fmt"

// FetchError describes one failed remote fetch: a non-2xx status or a
// transport failure for a specific URL. Callers treat it as non-fatal and
// count it per chunk rather than aborting a run.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
