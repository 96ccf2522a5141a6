// Package view holds the coordinators behind the search, discover and
// detail screens.
//
// Each coordinator owns one fetch.Controller and the query fields the user
// can change. User actions translate into at most one dispatch; the
// controller decides which reply wins. Renderers read a snapshot through
// View and may Subscribe to be told when it changes.
//
//	search := view.NewSearch(client, logger)
//	ticket, err := search.Submit(ctx, "batman")
//	if errors.Is(err, view.ErrValidationRejected) {
//		// nothing was sent, the screen stays as it was
//	}
//	ticket.Wait(ctx)
//	fmt.Print(view.NewConsoleFormatter(view.FormatOptions{}).FormatSearch(search.View()))
//
// Actions on a coordinator are serialized so that dispatch order matches
// the order the user acted in. Subscribe callbacks may call View but must
// not trigger further actions on the same coordinator.
package view
