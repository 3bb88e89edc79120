package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/uvzlabs/launchpad/commerce"
	"github.com/uvzlabs/launchpad/course"
	"github.com/uvzlabs/launchpad/logger"
)

// Step is one named sub-step of the publication composite. Steps run
// strictly in order; a lesson step always follows its chapter's step.
type Step struct {
	Name    string
	Execute func(ctx context.Context, state *State) error
}

// State accumulates remote ids as the composite progresses.
type State struct {
	Content    *course.Content
	Concept    course.Concept
	Course     *commerce.CreatedCourse
	ChapterIDs []string
	Product    *commerce.CreatedProduct
	Link       *commerce.Link
	Logger     logger.Logger
}

// PublicationFailure reports which sub-step of the composite failed.
// Already-created remote records are not rolled back; a retry re-runs
// the whole composite and may duplicate them.
type PublicationFailure struct {
	Step string
	Err  error
}

func (f *PublicationFailure) Error() string {
	return fmt.Sprintf("publication failed at %q: %v", f.Step, f.Err)
}

func (f *PublicationFailure) Unwrap() error {
	return f.Err
}

type StepPublisher interface {
	PublishStep(name string)
	Error(name string, err error)
}

type NullStepPublisher struct{}

func (NullStepPublisher) PublishStep(name string)      {}
func (NullStepPublisher) Error(name string, err error) {}

// Pipeline turns generated course content into a persisted course and
// product pair on the commerce platform.
type Pipeline struct {
	publisher commerce.Publisher
	events    StepPublisher
	logger    logger.Logger
}

func NewPipeline(publisher commerce.Publisher, events StepPublisher, log logger.Logger) *Pipeline {
	if events == nil {
		events = NullStepPublisher{}
	}
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &Pipeline{
		publisher: publisher,
		events:    events,
		logger:    log,
	}
}

// StepCount returns how many sub-steps a publish of this content runs.
func StepCount(content *course.Content) int {
	n := 1 // course
	for _, ch := range content.Chapters {
		n += 1 + len(ch.Lessons)
	}
	return n + 2 // product, link
}

// Publish executes the composite. Any sub-step failure aborts the rest
// and surfaces as a PublicationFailure tagged with that step's name.
func (p *Pipeline) Publish(ctx context.Context, content *course.Content, concept course.Concept) (*course.PublishedBundle, error) {
	state := &State{
		Content: content,
		Concept: concept,
		Logger:  p.logger,
	}

	steps := buildSteps(p.publisher, content)
	p.logger.Info(fmt.Sprintf("Starting publication of %q (%d steps)", content.Title, len(steps)))
	for i, step := range steps {
		select {
		case <-ctx.Done():
			p.logger.Info("Publication cancelled")
			p.events.Error(step.Name, ctx.Err())
			return nil, &PublicationFailure{Step: step.Name, Err: ctx.Err()}
		default:
		}

		p.logger.Debug(fmt.Sprintf("Executing step %d: %s", i, step.Name))
		startTime := time.Now()
		if err := step.Execute(ctx, state); err != nil {
			p.logger.Error(fmt.Sprintf("Error executing step %q: %v", step.Name, err))
			p.events.Error(step.Name, err)
			return nil, &PublicationFailure{Step: step.Name, Err: err}
		}
		p.logger.Debug(fmt.Sprintf("Step %q completed in %v", step.Name, time.Since(startTime)))
		p.events.PublishStep(step.Name)
	}

	p.logger.Info("Publication completed")
	return &course.PublishedBundle{
		Course: course.PublishedCourse{
			ID:     state.Course.ID,
			Title:  state.Course.Title,
			URL:    state.Course.URL,
			Status: state.Course.Status,
		},
		Product: course.PublishedProduct{
			ID:     state.Product.ID,
			Name:   state.Product.Name,
			Price:  state.Product.Price,
			URL:    state.Product.URL,
			Status: state.Product.Status,
		},
		LinkID: state.Link.ID,
	}, nil
}
