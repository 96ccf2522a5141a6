package view

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/s0up4200/marquee/catalog"
	"github.com/s0up4200/marquee/fetch"
	"github.com/s0up4200/marquee/tmdb"
)

var (
	// ErrValidationRejected is returned when user input fails a local check.
	// No request is made and the view state is unchanged.
	ErrValidationRejected = errors.New("input rejected")
	// ErrNothingToRetry is returned by Retry before any accepted input
	ErrNothingToRetry = errors.New("nothing to retry")
)

// ListState is the screen state of a search or discover listing
type ListState int

const (
	// ListNotLoaded means no request has been made yet
	ListNotLoaded ListState = iota
	// ListLoading means the latest request is in flight
	ListLoading
	// ListResults means the latest request returned at least one movie
	ListResults
	// ListEmpty means the latest request returned no movies
	ListEmpty
	// ListError means the latest request failed
	ListError
)

func (s ListState) String() string {
	switch s {
	case ListNotLoaded:
		return "not-loaded"
	case ListLoading:
		return "loading"
	case ListResults:
		return "results"
	case ListEmpty:
		return "empty"
	case ListError:
		return "error"
	default:
		return "unknown"
	}
}

func listStateOf(r fetch.Result[*catalog.Page]) ListState {
	switch r.Status() {
	case fetch.StatusLoading:
		return ListLoading
	case fetch.StatusError:
		return ListError
	case fetch.StatusSuccess:
		page, _ := r.Data()
		if page.IsEmpty() {
			return ListEmpty
		}
		return ListResults
	default:
		return ListNotLoaded
	}
}

// DetailState is the screen state of a single movie
type DetailState int

const (
	// DetailIdle means the view has not been mounted
	DetailIdle DetailState = iota
	// DetailLoading means the record is being fetched
	DetailLoading
	// DetailLoaded means the record is available
	DetailLoaded
	// DetailNotFound covers invalid ids, missing records and failed requests
	DetailNotFound
)

func (s DetailState) String() string {
	switch s {
	case DetailIdle:
		return "idle"
	case DetailLoading:
		return "loading"
	case DetailLoaded:
		return "loaded"
	case DetailNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// reject wraps a validation failure
func reject(field string, err error) error {
	return fmt.Errorf("%w: %s %v", ErrValidationRejected, field, err)
}

func validateSortKey(key tmdb.SortKey) error {
	allowed := make([]any, 0, len(tmdb.SortKeys))
	for _, k := range tmdb.SortKeys {
		allowed = append(allowed, k)
	}
	if err := validation.Validate(key, validation.Required, validation.In(allowed...)); err != nil {
		return reject("sort key", err)
	}
	return nil
}

// errorMessage turns a request error into the text shown on an error screen
func errorMessage(err error) string {
	var apiErr *tmdb.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, catalog.ErrMalformed):
		return "unexpected response from TMDB"
	default:
		return err.Error()
	}
}
