package domain

import "fmt"

// DataFetchError reports that records for a dataset could not be retrieved or
// decoded. StatusCode is zero when no response was received.
type DataFetchError struct {
	Dataset    DatasetName
	URL        string
	StatusCode int
	Err        error
}

func (e *DataFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s from %s: status %d: %v", e.Dataset, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s from %s: %v", e.Dataset, e.URL, e.Err)
}

func (e *DataFetchError) Unwrap() error {
	return e.Err
}

// LookupError reports a record whose key has no match in a lookup table.
type LookupError struct {
	Dataset DatasetName
	Field   string
	Key     string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: no lookup match for %s=%s", e.Dataset, e.Field, e.Key)
}

// ValidationError reports a form selection that cannot be submitted or applied.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
