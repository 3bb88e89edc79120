package wizard

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/uvzlabs/launchpad/commerce"
	"github.com/uvzlabs/launchpad/course"
	"github.com/uvzlabs/launchpad/generate"
	"github.com/uvzlabs/launchpad/publish"
)

// MockGenerator is a mock implementation of the content generator.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateConcepts(ctx context.Context, d course.Descriptor) ([]course.Concept, error) {
	args := m.Called(ctx, d)
	if c := args.Get(0); c != nil {
		return c.([]course.Concept), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGenerator) GenerateContent(ctx context.Context, concept course.Concept) (*course.Content, error) {
	args := m.Called(ctx, concept)
	if c := args.Get(0); c != nil {
		return c.(*course.Content), args.Error(1)
	}
	return nil, args.Error(1)
}

// blockingGenerator parks GenerateConcepts until released, to exercise
// the in-flight and reset paths.
type blockingGenerator struct {
	release  chan struct{}
	concepts []course.Concept
}

func (g *blockingGenerator) GenerateConcepts(ctx context.Context, d course.Descriptor) ([]course.Concept, error) {
	<-g.release
	return g.concepts, nil
}

func (g *blockingGenerator) GenerateContent(ctx context.Context, concept course.Concept) (*course.Content, error) {
	return nil, errors.New("unexpected call")
}

func newTestMachine(generator generate.ContentGenerator, publisher commerce.Publisher) *Machine {
	pipeline := publish.NewPipeline(publisher, nil, nil)
	return NewMachine(generator, pipeline, time.Minute, nil)
}

func fakeConcepts(n int) []course.Concept {
	concepts := make([]course.Concept, n)
	for i := range concepts {
		concepts[i] = course.Concept{
			ID:         fmt.Sprintf("concept_%d", i+1),
			Title:      fmt.Sprintf("Concept %d", i+1),
			PricePoint: 197,
		}
	}
	return concepts
}

func TestFullWizardFlow(t *testing.T) {
	machine := newTestMachine(generate.NewFakeContentGenerator(), commerce.NewFakePublisher())
	ctx := context.Background()

	err := machine.Advance(ctx, Input{Descriptor: course.Descriptor{Keywords: "fitness"}})
	assert.NoError(t, err)
	snap := machine.Snapshot()
	assert.Equal(t, StepConcepts, snap.Step)
	assert.Len(t, snap.Concepts, course.KeywordConceptCount)
	assert.Nil(t, snap.Err)

	selected := 2
	err = machine.Advance(ctx, Input{SelectedConcept: &selected})
	assert.NoError(t, err)
	snap = machine.Snapshot()
	assert.Equal(t, StepContent, snap.Step)
	assert.Len(t, snap.Content.Chapters, course.ChapterCount)
	assert.Len(t, snap.Content.EmailSequence, course.EmailCount)

	err = machine.Advance(ctx, Input{})
	assert.NoError(t, err)
	snap = machine.Snapshot()
	assert.Equal(t, StepPublish, snap.Step)
	assert.Equal(t, snap.Content.Title+" - Premium Access", snap.Published.Product.Name)
	assert.Equal(t, snap.Concepts[selected].PricePoint, snap.Published.Product.Price)
	assert.NotEmpty(t, snap.Published.LinkID)

	err = machine.Advance(ctx, Input{})
	assert.NoError(t, err)
	snap = machine.Snapshot()
	assert.Equal(t, StepLaunch, snap.Step)
	assert.Equal(t, snap.Published.Course.URL, snap.Assets.CourseURL)
	assert.Equal(t, snap.Published.Product.URL, snap.Assets.ProductURL)
	assert.Len(t, snap.Assets.EmailSequence, course.EmailCount)

	// Steps never go past launch without a reset.
	err = machine.Advance(ctx, Input{})
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Equal(t, StepLaunch, machine.Snapshot().Step)
}

func TestUVZModeGeneratesThreeConcepts(t *testing.T) {
	machine := newTestMachine(generate.NewFakeContentGenerator(), commerce.NewFakePublisher())

	err := machine.Advance(context.Background(), Input{Descriptor: course.Descriptor{UVZ: &course.UVZ{
		Skills:   "golf coaching",
		Passions: "teaching",
		Results:  "trained 100 players",
	}}})
	assert.NoError(t, err)
	assert.Len(t, machine.Snapshot().Concepts, course.UVZConceptCount)
}

func TestValidationFailureKeepsStep(t *testing.T) {
	generator := new(MockGenerator)
	machine := newTestMachine(generator, commerce.NewFakePublisher())

	err := machine.Advance(context.Background(), Input{Descriptor: course.Descriptor{Keywords: "  "}})
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)

	snap := machine.Snapshot()
	assert.Equal(t, StepKeywords, snap.Step)
	assert.Error(t, snap.Err)

	machine.DismissError()
	snap = machine.Snapshot()
	assert.Equal(t, StepKeywords, snap.Step)
	assert.Nil(t, snap.Err)

	// No external call was made.
	generator.AssertNotCalled(t, "GenerateConcepts", mock.Anything, mock.Anything)
}

func TestWrongConceptCountIsGenerationFailure(t *testing.T) {
	generator := new(MockGenerator)
	generator.On("GenerateConcepts", mock.Anything, mock.Anything).Return(fakeConcepts(7), nil)
	machine := newTestMachine(generator, commerce.NewFakePublisher())

	err := machine.Advance(context.Background(), Input{Descriptor: course.Descriptor{Keywords: "fitness"}})
	var failure *generate.GenerationFailure
	assert.ErrorAs(t, err, &failure)

	snap := machine.Snapshot()
	assert.Equal(t, StepKeywords, snap.Step)
	assert.Empty(t, snap.Concepts)
	assert.Error(t, snap.Err)
}

func TestGeneratorErrorKeepsSessionData(t *testing.T) {
	generator := new(MockGenerator)
	generator.On("GenerateConcepts", mock.Anything, mock.Anything).Return(fakeConcepts(10), nil)
	generator.On("GenerateContent", mock.Anything, mock.Anything).Return(nil, errors.New("rate limited"))
	machine := newTestMachine(generator, commerce.NewFakePublisher())
	ctx := context.Background()

	assert.NoError(t, machine.Advance(ctx, Input{Descriptor: course.Descriptor{Keywords: "fitness"}}))

	selected := 0
	err := machine.Advance(ctx, Input{SelectedConcept: &selected})
	assert.Error(t, err)

	snap := machine.Snapshot()
	assert.Equal(t, StepConcepts, snap.Step)
	assert.Len(t, snap.Concepts, 10)
	assert.Error(t, snap.Err)
}

func TestPublishFailureKeepsContent(t *testing.T) {
	publisher := commerce.NewFakePublisher()
	publisher.FailOn = "CreateProduct"
	machine := newTestMachine(generate.NewFakeContentGenerator(), publisher)
	ctx := context.Background()

	assert.NoError(t, machine.Advance(ctx, Input{Descriptor: course.Descriptor{Keywords: "fitness"}}))
	selected := 0
	assert.NoError(t, machine.Advance(ctx, Input{SelectedConcept: &selected}))

	err := machine.Advance(ctx, Input{})
	var failure *publish.PublicationFailure
	assert.ErrorAs(t, err, &failure)
	assert.Equal(t, "create product", failure.Step)

	snap := machine.Snapshot()
	assert.Equal(t, StepContent, snap.Step)
	assert.NotNil(t, snap.Content)
	assert.Nil(t, snap.Published)
}

func TestAdvanceWhileInFlightIsBusy(t *testing.T) {
	generator := &blockingGenerator{
		release:  make(chan struct{}),
		concepts: generateValidConcepts(),
	}
	machine := newTestMachine(generator, commerce.NewFakePublisher())

	done := make(chan error, 1)
	go func() {
		done <- machine.Advance(context.Background(), Input{Descriptor: course.Descriptor{Keywords: "fitness"}})
	}()
	waitInFlight(t, machine)

	err := machine.Advance(context.Background(), Input{Descriptor: course.Descriptor{Keywords: "fitness"}})
	assert.ErrorIs(t, err, ErrBusy)

	close(generator.release)
	assert.NoError(t, <-done)
	assert.Equal(t, StepConcepts, machine.Snapshot().Step)
	assert.False(t, machine.InFlight())
}

func TestResetDiscardsInFlightResult(t *testing.T) {
	generator := &blockingGenerator{
		release:  make(chan struct{}),
		concepts: generateValidConcepts(),
	}
	machine := newTestMachine(generator, commerce.NewFakePublisher())

	done := make(chan error, 1)
	go func() {
		done <- machine.Advance(context.Background(), Input{Descriptor: course.Descriptor{Keywords: "fitness"}})
	}()
	waitInFlight(t, machine)

	machine.Reset()
	assert.False(t, machine.InFlight())

	close(generator.release)
	assert.NoError(t, <-done)

	// The stale resolution must not touch the fresh session.
	snap := machine.Snapshot()
	assert.Equal(t, StepKeywords, snap.Step)
	assert.Empty(t, snap.Concepts)
	assert.Nil(t, snap.Err)
	assert.False(t, machine.InFlight())
}

func TestSnapshotIsDetachedFromSession(t *testing.T) {
	machine := newTestMachine(generate.NewFakeContentGenerator(), commerce.NewFakePublisher())
	ctx := context.Background()

	assert.NoError(t, machine.Advance(ctx, Input{Descriptor: course.Descriptor{Keywords: "fitness"}}))
	selected := 0
	assert.NoError(t, machine.Advance(ctx, Input{SelectedConcept: &selected}))
	assert.NoError(t, machine.Advance(ctx, Input{}))
	assert.NoError(t, machine.Advance(ctx, Input{}))

	snap := machine.Snapshot()
	snap.Concepts[0].Title = "tampered"
	snap.Content.Chapters[0].Lessons[0].Title = "tampered"
	snap.Content.EmailSequence[0].Subject = "tampered"
	snap.Published.Course.Title = "tampered"
	snap.Assets.EmailSequence[0].Subject = "tampered"

	fresh := machine.Snapshot()
	assert.NotEqual(t, "tampered", fresh.Concepts[0].Title)
	assert.NotEqual(t, "tampered", fresh.Content.Chapters[0].Lessons[0].Title)
	assert.NotEqual(t, "tampered", fresh.Content.EmailSequence[0].Subject)
	assert.NotEqual(t, "tampered", fresh.Published.Course.Title)
	assert.NotEqual(t, "tampered", fresh.Assets.EmailSequence[0].Subject)
}

func TestResetIsIdempotent(t *testing.T) {
	machine := newTestMachine(generate.NewFakeContentGenerator(), commerce.NewFakePublisher())
	assert.NoError(t, machine.Advance(context.Background(), Input{Descriptor: course.Descriptor{Keywords: "fitness"}}))

	machine.Reset()
	machine.Reset()

	snap := machine.Snapshot()
	assert.Equal(t, StepKeywords, snap.Step)
	assert.Empty(t, snap.Concepts)
	assert.Nil(t, snap.Content)
}

func generateValidConcepts() []course.Concept {
	return fakeConcepts(course.KeywordConceptCount)
}

func waitInFlight(t *testing.T, machine *Machine) {
	t.Helper()
	for i := 0; i < 200; i++ {
		if machine.InFlight() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("advance never became in-flight")
}
