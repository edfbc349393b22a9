// Package heroku wraps the Heroku CLI for installation checks, the
// authenticated user and the app list.
//
// Every command goes through a Runner so tests can substitute canned output.
// FindBinary prefers the usual Homebrew and installer paths over PATH lookup,
// and ExecRunner prepends those directories to PATH for the child.
package heroku
