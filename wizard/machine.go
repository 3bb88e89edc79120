package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/uvzlabs/launchpad/course"
	"github.com/uvzlabs/launchpad/generate"
	"github.com/uvzlabs/launchpad/logger"
	"github.com/uvzlabs/launchpad/publish"
)

// Input carries the user payload for an advance: the expertise
// descriptor on the keywords step, the concept selection on the
// concepts step. Later steps take no input.
type Input struct {
	Descriptor      course.Descriptor
	SelectedConcept *int
}

// Machine drives the five-step wizard. One advance at a time; every
// failed advance keeps the step and all previously stored data.
type Machine struct {
	mu         sync.Mutex
	session    Session
	generation uint64
	inFlight   bool

	generator generate.ContentGenerator
	pipeline  *publish.Pipeline
	timeout   time.Duration
	logger    logger.Logger
}

func NewMachine(generator generate.ContentGenerator, pipeline *publish.Pipeline, timeout time.Duration, log logger.Logger) *Machine {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &Machine{
		session:   newSession(),
		generator: generator,
		pipeline:  pipeline,
		timeout:   timeout,
		logger:    log,
	}
}

// Snapshot returns a deep copy of the session; mutating it never
// touches the machine's own state.
func (m *Machine) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := m.session
	snap.Concepts = append([]course.Concept(nil), m.session.Concepts...)
	snap.Content = m.session.Content.Clone()
	snap.Published = m.session.Published.Clone()
	snap.Assets = m.session.Assets.Clone()
	return snap
}

// InFlight reports whether an advance is currently outstanding.
func (m *Machine) InFlight() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight
}

// Advance validates the input for the current step, runs that step's
// operation, and moves forward on success. On failure the session
// stays put with the error recorded.
func (m *Machine) Advance(ctx context.Context, in Input) error {
	m.mu.Lock()
	if m.inFlight {
		m.mu.Unlock()
		return ErrBusy
	}
	m.session.Err = nil

	if err := Validate(&m.session, in); err != nil {
		m.session.Err = err
		step := m.session.Step
		m.mu.Unlock()
		m.logger.Debug("validation rejected advance from step " + step.String())
		return err
	}

	switch m.session.Step {
	case StepKeywords:
		descriptor := in.Descriptor
		m.session.Input = descriptor
		return m.run(ctx, func(callCtx context.Context) (func(*Session), error) {
			concepts, err := m.generator.GenerateConcepts(callCtx, descriptor)
			if err != nil {
				return nil, err
			}
			if err := generate.ValidateConceptsShape(concepts, descriptor.Mode()); err != nil {
				return nil, err
			}
			return func(s *Session) {
				s.Concepts = concepts
				s.Step = StepConcepts
			}, nil
		})

	case StepConcepts:
		m.session.SelectedConcept = in.SelectedConcept
		concept := m.session.Concepts[*in.SelectedConcept]
		return m.run(ctx, func(callCtx context.Context) (func(*Session), error) {
			content, err := m.generator.GenerateContent(callCtx, concept)
			if err != nil {
				return nil, err
			}
			if err := generate.ValidateContentShape(content); err != nil {
				return nil, err
			}
			return func(s *Session) {
				s.Content = content
				s.Step = StepContent
			}, nil
		})

	case StepContent:
		concept := m.session.Concepts[*m.session.SelectedConcept]
		content := m.session.Content
		return m.run(ctx, func(callCtx context.Context) (func(*Session), error) {
			bundle, err := m.pipeline.Publish(callCtx, content, concept)
			if err != nil {
				return nil, err
			}
			return func(s *Session) {
				s.Published = bundle
				assets := AssembleLaunchAssets(bundle, content)
				s.Assets = &assets
				s.Step = StepPublish
			}, nil
		})

	case StepPublish:
		// Local-only: the bundle must exist since 3->4 only advances
		// on success.
		assets := AssembleLaunchAssets(m.session.Published, m.session.Content)
		m.session.Assets = &assets
		m.session.Step = StepLaunch
		m.mu.Unlock()
		return nil

	default:
		err := &ValidationError{Reason: "course already launched; reset to create another"}
		m.session.Err = err
		m.mu.Unlock()
		return err
	}
}

// run executes op outside the lock with a bounded timeout, then folds
// the result back into the session unless a reset happened in between.
// The caller must hold the lock; run releases it.
func (m *Machine) run(ctx context.Context, op func(context.Context) (func(*Session), error)) error {
	generation := m.generation
	m.inFlight = true
	m.mu.Unlock()

	callCtx := ctx
	if m.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	apply, err := op(callCtx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if generation != m.generation {
		// The session was reset while this call was in flight. The
		// resolution must not touch the fresh session; drop it.
		m.logger.Debug("stale result discarded")
		return nil
	}
	m.inFlight = false
	if err != nil {
		m.session.Err = err
		return err
	}
	apply(&m.session)
	return nil
}

// Reset clears the session back to its initial state, discarding all
// generated and published data. No remote records are touched; there
// is no "undo publish". Idempotent.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generation++
	m.inFlight = false
	m.session = newSession()
	m.logger.Debug("session reset")
}

// DismissError clears the active error without altering the step or
// any stored data.
func (m *Machine) DismissError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Err = nil
}
