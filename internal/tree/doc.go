// Package tree implements the hierarchical mutation engine for the album
// forest: path resolution and the pure edit operations.
//
// # Resolution
//
// A current path is the chain of album ids from a root down to the open
// album. Resolve locates the addressed level; TruncatePath repairs a path
// that went stale because an ancestor was deleted:
//
//	res, ok := tree.Resolve(forest, path)
//	if !ok {
//	    path = tree.TruncatePath(forest, path)
//	    res, _ = tree.Resolve(forest, path)
//	}
//
// # Mutation
//
// CreateAlbum, AddImages, DeleteAlbum and DeleteImage are pure functions
// from forest to forest. The input forest is never modified; ancestors of
// the edited node are rebuilt and everything else is shared. Requests that
// violate a precondition (empty album name, unresolvable path, unknown id)
// return the input forest unchanged rather than an error:
//
//	next := tree.CreateAlbum(forest, nil, "Trips")
//	if tree.Same(next, forest) {
//	    // validation no-op, nothing to persist
//	}
//
// Every operation is O(total nodes) in the worst case; the remote store
// offers no indexing primitive worth exploiting at the tree sizes a photo
// library reaches.
package tree
