// Package migrations contains the schema migration files. Each file
// registers itself through init(), so the CLI only has to blank-import this
// package for the full set to be available.
package migrations
