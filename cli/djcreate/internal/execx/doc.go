// Package execx wraps os/exec with the exit-code conventions the CLI relies
// on: a Result always carries a numeric code (124 when a deadline killed the
// child, 1 when the binary could not be started) next to the raw error.
package execx
