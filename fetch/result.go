package fetch

// Status is the lifecycle stage of a Result
type Status int

const (
	// StatusIdle means nothing has been dispatched yet
	StatusIdle Status = iota
	// StatusLoading means the latest dispatch has not resolved
	StatusLoading
	// StatusSuccess means the latest dispatch returned data
	StatusSuccess
	// StatusError means the latest dispatch failed
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the observable state of a Controller. The zero value is idle.
type Result[T any] struct {
	status  Status
	data    T
	message string
	seq     uint64
}

func loading[T any](seq uint64) Result[T] {
	return Result[T]{status: StatusLoading, seq: seq}
}

func success[T any](seq uint64, data T) Result[T] {
	return Result[T]{status: StatusSuccess, data: data, seq: seq}
}

func failure[T any](seq uint64, message string) Result[T] {
	return Result[T]{status: StatusError, message: message, seq: seq}
}

// Status returns the lifecycle stage
func (r Result[T]) Status() Status {
	return r.status
}

// Data returns the payload of a success. ok is false in every other state.
func (r Result[T]) Data() (data T, ok bool) {
	if r.status != StatusSuccess {
		var zero T
		return zero, false
	}
	return r.data, true
}

// Err returns the human readable failure message, or "" unless the result
// is an error.
func (r Result[T]) Err() string {
	if r.status != StatusError {
		return ""
	}
	return r.message
}

// Seq returns the sequence number of the dispatch that produced the result.
// Idle results have sequence 0.
func (r Result[T]) Seq() uint64 {
	return r.seq
}

// IsLoading reports whether a request is outstanding
func (r Result[T]) IsLoading() bool {
	return r.status == StatusLoading
}
