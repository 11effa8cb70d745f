// Package pathkit lets a file manager browse different kinds of storage
// through one path abstraction.
//
// Every node, whether a local file, an entry inside a zip archive or a
// bookmark slot, implements [Path]. What a node can do is negotiated with
// [Path.Supports] and reached through small optional interfaces such as
// [Deleter], [Creator], [Opener] and [CopyTarget].
//
// # Backends
//
// Backends live in the driver packages and register themselves into the
// [Default] registry when imported:
//
//   - Local filesystem (github.com/gobeaver/pathkit/driver/local), scheme "file"
//   - Zip archives (github.com/gobeaver/pathkit/driver/zip), scheme "zip" and
//     the extensions zip, jar and xpi
//   - Favorites (github.com/gobeaver/pathkit/driver/favorites), scheme "fav"
//
// # Path Strings
//
// A path string carries its backend as a scheme prefix. Strings without one
// are local paths:
//
//	/home/user/notes.txt
//	zip:///home/user/backup.zip/docs/readme.md
//	fav://
//
// Archive paths are resolved by walking up the local part until an existing
// file is found; the remaining segments name the entry inside the archive.
//
// # Basic Usage
//
//	import (
//	    "github.com/gobeaver/pathkit"
//	    _ "github.com/gobeaver/pathkit/driver/local"
//	    _ "github.com/gobeaver/pathkit/driver/zip"
//	)
//
//	p, err := pathkit.Resolve("zip:///tmp/backup.zip/docs/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	items, err := p.Items(ctx)
//	pathkit.SortItems(items)
//
//	if d, ok := items[0].(pathkit.Deleter); ok && items[0].Supports(pathkit.FeatureDelete) {
//	    err = d.Delete(ctx)
//	}
//
// # Host Collaborators
//
// Backends get preferences, icon resolution, size formatting and logging
// from the registry's [Env]. A zero Env works: icons are guessed from the
// file extension, sizes are formatted with go-humanize and logging is
// disabled.
//
// # Activation
//
// [Activate] does what a panel does on Enter: containers are entered, files
// with a registered extension are handed to their handler (archives open as
// directories) and favorites jump to their target.
//
// # Read-Only Views
//
// [ReadOnly] wraps a node so that every mutating feature reports false and
// the mutating interfaces are gone. Children and parents of a read-only node
// are read-only too.
//
// # Change Notification
//
// Backends that implement [Watcher] return a [ChangeToken]; [OnChange] turns
// a token producer into a refresh loop.
//
// # Configuration
//
// [GetConfig] reads BEAVER_PATHKIT_* environment variables; see [Config].
package pathkit
