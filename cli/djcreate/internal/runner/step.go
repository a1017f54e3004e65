package runner

import (
	"context"
	"errors"
)

// Kind tags the source of a step failure so callers can branch on it
// without parsing messages.
type Kind string

const (
	KindFilesystem Kind = "filesystem"
	KindProcess    Kind = "process"
	KindNetwork    Kind = "network"
	KindInternal   Kind = "internal"
)

// StepError is the only failure the runner reports.
type StepError struct {
	Step string
	Kind Kind
	Err  error
}

// Error returns the underlying message unchanged; it is what the user sees.
func (e *StepError) Error() string { return e.Err.Error() }

func (e *StepError) Unwrap() error { return e.Err }

// Fail tags err with kind. Steps use it when a single action can fail in
// more than one way, e.g. a download followed by a file write.
func Fail(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &StepError{Kind: kind, Err: err}
}

// KindOf returns the kind carried by err, or "" when err is not a StepError.
func KindOf(err error) Kind {
	var se *StepError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// Status is what a successful step reports back for display and logging.
type Status struct {
	Message string
	// Value is highlighted after Message (a path, a package name).
	Value string
	// Detail is printed verbatim below the status line.
	Detail string
}

// PlanEntry describes a step without running it.
type PlanEntry struct {
	Step        string   `yaml:"step"`
	Kind        Kind     `yaml:"kind"`
	Command     []string `yaml:"command,omitempty"`
	Dir         string   `yaml:"dir,omitempty"`
	Path        string   `yaml:"path,omitempty"`
	URL         string   `yaml:"url,omitempty"`
	Interactive bool     `yaml:"interactive,omitempty"`
}

// Step is one provisioning action. Do performs exactly one external
// operation; Kind is the failure kind assumed when Do returns an untagged error.
type Step struct {
	Name string
	Kind Kind
	// Progress, when set, is printed before Do runs.
	Progress string
	Plan     PlanEntry
	Do       func(ctx context.Context) (Status, error)
}

func (s Step) entry() PlanEntry {
	e := s.Plan
	e.Step = s.Name
	if e.Kind == "" {
		e.Kind = s.Kind
	}
	return e
}

// Outcome records how one executed step ended.
type Outcome struct {
	Step string
	Err  *StepError
}

func (o Outcome) OK() bool { return o.Err == nil }
