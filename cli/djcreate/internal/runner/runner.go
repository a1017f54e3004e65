package runner

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"devkit/cli/djcreate/internal/console"
)

type State string

const (
	StatePending   State = "pending"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateAborted   State = "aborted"
	StatePlanned   State = "planned"
)

// Runner executes steps strictly in order. The first failure is printed,
// logged at fatal level and ends the process through the logger's ExitFunc;
// nothing already done is undone.
type Runner struct {
	log      *log.Entry
	con      *console.Console
	dry      bool
	state    State
	outcomes []Outcome
}

// New returns a runner. When dry is true Run only prints the plan.
func New(logger *log.Entry, con *console.Console, dry bool) *Runner {
	return &Runner{log: logger, con: con, dry: dry, state: StatePending}
}

func (r *Runner) State() State { return r.state }

// Outcomes lists every step that ran, in order, including the failed one.
func (r *Runner) Outcomes() []Outcome {
	out := make([]Outcome, len(r.outcomes))
	copy(out, r.outcomes)
	return out
}

// Run executes steps and, once all of them succeed, prints the follow-up
// commands in next. The returned error is always a *StepError; in production
// it is never observed because the fatal log record exits the process first.
func (r *Runner) Run(ctx context.Context, steps []Step, next []string) error {
	if r.state != StatePending {
		return fmt.Errorf("runner already used (state %s)", r.state)
	}
	if r.dry {
		return r.plan(steps, next)
	}
	r.state = StateRunning
	for _, s := range steps {
		if s.Do == nil {
			return r.abort(s, Fail(KindInternal, fmt.Errorf("step %s has no action", s.Name)))
		}
		if s.Progress != "" {
			r.con.Progress(s.Progress)
			r.log.WithField("step", s.Name).Debug(s.Progress)
		}
		st, err := s.Do(ctx)
		if err != nil {
			return r.abort(s, err)
		}
		r.outcomes = append(r.outcomes, Outcome{Step: s.Name})
		r.con.OK(st.Message, st.Value)
		if st.Detail != "" {
			r.con.Plain(st.Detail)
		}
		r.log.WithField("step", s.Name).Info(st.Message + st.Value)
	}
	r.state = StateCompleted
	r.log.WithField("steps", len(steps)).Info("All steps completed")
	if len(next) > 0 {
		r.con.OK("\nDone. Next, run:", "")
		for _, c := range next {
			r.con.Command(c)
		}
	}
	return nil
}

func (r *Runner) abort(s Step, err error) error {
	se := &StepError{Step: s.Name, Kind: s.Kind, Err: err}
	var tagged *StepError
	if errors.As(err, &tagged) {
		if tagged.Kind != "" {
			se.Kind = tagged.Kind
		}
		se.Err = tagged.Err
	}
	if se.Kind == "" {
		se.Kind = KindInternal
	}
	r.outcomes = append(r.outcomes, Outcome{Step: s.Name, Err: se})
	r.state = StateAborted
	r.con.Fail(se)
	r.log.WithFields(log.Fields{"step": s.Name, "kind": string(se.Kind)}).Fatal(se.Error())
	return se
}

type planDoc struct {
	Steps []PlanEntry `yaml:"steps"`
	Next  []string    `yaml:"next,omitempty"`
}

func (r *Runner) plan(steps []Step, next []string) error {
	doc := planDoc{Next: next}
	for _, s := range steps {
		doc.Steps = append(doc.Steps, s.entry())
	}
	enc := yaml.NewEncoder(r.con.Writer())
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("render plan: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("render plan: %w", err)
	}
	r.state = StatePlanned
	r.log.WithField("steps", len(steps)).Info("Dry run: plan printed, nothing executed")
	return nil
}
