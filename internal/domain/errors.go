package domain

import "fmt"

// Source names used in load errors.
const (
	SourceRoles        = "roles"
	SourceContributors = "contributors"
	SourceReviews      = "reviews"
)

// LoadError reports that one of the source payloads could not be fetched or parsed.
// Any LoadError aborts the whole load.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
