// Package tmdb provides a client for the read-only parts of The Movie
// Database (TMDB) v3 API used by marquee.
//
// Three endpoints are consumed: title search, the discover listing and the
// single movie lookup. Responses are normalized into catalog records before
// they leave this package, so callers never see raw TMDB JSON.
//
// # Usage
//
//	client, err := tmdb.NewClient(
//		tmdb.DefaultBaseURL,
//		os.Getenv("TMDB_TOKEN"),
//		logger,
//		tmdb.WithTimeout(10*time.Second),
//		tmdb.WithLanguage("en-US"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	page, err := client.SearchMovies(ctx, tmdb.SearchQuery{Query: "batman", Page: 1})
//
// # Authentication
//
// TMDB v4 read access tokens are sent as "Authorization: Bearer <token>".
// The token is always injected by the caller; nothing in this package reads
// the environment.
//
// # Error Handling
//
// Non-2xx replies become *APIError, which carries the HTTP status and TMDB's
// status_message. APIError unwraps to ErrNotFound for 404 and to
// ErrUnauthorized for 401/403, so callers can use errors.Is:
//
//	if tmdb.IsNotFound(err) {
//		// render the not-found view
//	}
//
// Bodies that cannot be normalized wrap catalog.ErrMalformed.
package tmdb
