// Package errors provides error handling conventions for agentops.
//
// This package defines the error taxonomy shared by the metadata cache, the
// search engine, the local reconciler, and the install manager, an ExitError
// type for CLI exit code handling, and re-exports of the
// [github.com/cockroachdb/errors] helpers used across the tree.
//
// # Kinds
//
// Every failure that crosses a component boundary is marked with one of the
// sentinel errors below. The mark survives wrapping, so callers can branch on
// it with [Is] or recover the stable kind name with [KindOf]:
//
//	if errors.Is(err, errors.ErrAlreadyExists) {
//	    // ask before overwriting
//	}
//	fmt.Println(errors.KindOf(err)) // ALREADY_EXISTS
//
// # Exit Codes
//
// The package defines standard exit codes for CLI applications:
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, missing artifact, occupied destination)
//   - ExitSystem (2): System-related error (network, malformed listing, local I/O)
//
// [ExitFor] converts any error into an [ExitError] whose code follows its kind.
package errors
