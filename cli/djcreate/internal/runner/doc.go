// Package runner executes an ordered list of provisioning steps.
//
// Each step wraps a single external operation (a mkdir, a subprocess, a
// download). A step either succeeds, is reported on the console and logged
// at info level, and the next step starts; or it fails, and the whole run is
// aborted with exit code 1 after the error is printed and logged as fatal.
// There are no retries and no rollback.
//
// Failures carry a Kind (filesystem, process, network) so tests and callers
// can tell them apart without matching on error text.
package runner
