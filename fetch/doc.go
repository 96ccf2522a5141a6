// Package fetch runs asynchronous requests on behalf of a single view and
// decides which of their results may change what the view shows.
//
// # Supersede rule
//
// Every call to Dispatch takes the next sequence number and moves the
// controller to loading. When a request resolves, its outcome is applied only
// if no later Dispatch has happened in the meantime. Older results are
// dropped on arrival; their requests are never aborted.
//
//	ctrl := fetch.New("search", client.SearchMovies, fetch.WithLogger(logger))
//	ctrl.Dispatch(ctx, tmdb.SearchQuery{Query: "alien", Page: 1})
//	ticket := ctrl.Dispatch(ctx, tmdb.SearchQuery{Query: "aliens", Page: 1})
//
//	if err := ticket.Wait(ctx); err != nil {
//		return err
//	}
//	state := ctrl.State() // reflects "aliens" no matter which reply came first
//
// # States
//
// A Result is exactly one of idle, loading, success or error. Data can only
// be read from a success and the message only from an error, so a loading
// result carrying stale data or an error alongside data cannot be built.
// An empty page is a success.
//
// # Subscribers
//
// Subscribe delivers every applied transition in order. Callbacks run while
// the controller holds its emission lock and must not call Dispatch.
package fetch
