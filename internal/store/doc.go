// Package store implements the client side of the remote document-store
// protocol that persists the album forest.
//
// The protocol is three verbs on one resource:
//
//	GET  /{resource}       fetch the stored document, or 404
//	PUT  /{resource}/{id}  replace an existing document's data wholesale
//	POST /{resource}       create a document with a known id
//
// There are no partial updates, no transactions, and no server-side
// conflict detection: every persist ships the entire forest and the last
// write wins. The client adds nothing on top: sequencing local writes is
// the sync controller's job, and multi-client reconciliation is out of
// scope for the whole system.
//
// # Retrying
//
// Network calls are wrapped in Retry, a bounded exponential backoff:
//
//	err := store.Retry(ctx, cfg, func(ctx context.Context) error {
//	    return client.Save(ctx, docID, forest)
//	})
//
// Client errors (4xx) abort immediately; transport and server errors are
// retried until the attempt budget runs out.
package store
