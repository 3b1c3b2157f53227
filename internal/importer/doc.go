// Package importer turns file-system-shaped input into album and image
// nodes, merging folder structures into the existing library tree.
//
// # Entries
//
// The reducer consumes the Entry interface rather than the filesystem
// directly, so any nested source (a local directory via NewDirEntry, a
// dropped payload, a test fixture) imports the same way:
//
//	entry, err := importer.NewDirEntry("/photos/trip")
//	reducer := importer.NewReducer(8, assets)
//	next, err := reducer.Import(ctx, forest, path, []importer.Entry{entry})
//
// # Merge behavior
//
// Directories merge by name into existing sub-albums; images accumulate;
// non-image files are skipped without complaint. Importing the same folder
// twice grows one album with both batches of images, never a second album
// of the same name.
//
// # Assets
//
// With an AssetStore configured, imported bytes are copied into the
// library's own directory and images reference the copy. Without one,
// images reference their source in place.
package importer
