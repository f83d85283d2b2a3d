// Package events is the event listing prototype: an in-memory Store of
// events with attendee registration.
//
//	store := events.NewStore(events.WithLogger(log))
//	if err := store.Seed(ctx, nil); err != nil { // built-in sample data
//		return err
//	}
//
//	e, err := store.Add(ctx, events.NewEvent{Title: "Taller de Go", ...})
//	// e.Slug == "taller-de-go", or "taller-de-go-1" when taken
//
//	_, err = store.Register(ctx, e.Slug, events.Attendee{Name: "Ana", Email: "ana@example.com"})
//	// ErrEventFull, ErrAlreadyRegistered or ErrNotFound on failure
//
// Nothing is persisted; each Store starts empty.
package events
