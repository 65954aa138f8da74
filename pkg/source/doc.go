// Package source loads the payloads of expandable nodes.
//
// Every fetcher implements navigator.Fetcher: given a node's URL it returns a
// validated, prepared [pack.Node] tree.
//
//   - [HTTP] fetches JSON over http(s) with a file cache and retries for
//     transient failures.
//   - [Files] reads JSON files, from file:// URLs or bare paths.
//   - [SQLiteStore] keeps payloads in a SQLite database, keyed by URL, and
//     serves sqlite:// URLs.
//   - [Router] dispatches on the URL scheme.
//
// Failures wrap [ErrNotFound], [ErrNetwork] or [ErrUnsupportedScheme]; test
// them with errors.Is.
//
// [pack.Node]: github.com/matzehuels/packnav/pkg/pack
package source
