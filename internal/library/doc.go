// Package library provides the sync controller that coordinates the
// optimistic local forest with the best-effort remote persist.
//
// # Manager
//
// The Manager owns the authoritative in-memory forest:
//
//	client := store.NewClient(settings.ServerURL, settings.Resource, settings.Timeout())
//	mgr := library.NewManager(client, settings, func(e library.Event) {
//	    fmt.Println(e.Message)
//	})
//
//	if err := mgr.Load(ctx); err != nil {
//	    // degraded: editing blocked until mgr.Retry(ctx) succeeds
//	}
//
//	mgr.CreateAlbum(nil, "Trips")        // applies locally at once
//	mgr.Wait()                           // CLI only: drain persists before exit
//
// # Consistency model
//
// Mutations are applied to local state first and persisted to the remote
// store in the background, whole forest per write. Persist failures are
// absorbed (the session keeps running on local state) and overlapping
// persists are not sequenced, so the remote copy is last-completed-write-
// wins. These are the protocol's documented limits, not bugs to fix here:
// the remote store offers no partial updates, no transactions, and no
// conflict detection to build anything stronger on.
package library
