package generate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uvzlabs/launchpad/course"
)

func TestFakeGenerateConceptsKeywords(t *testing.T) {
	generator := NewFakeContentGenerator()
	d := course.Descriptor{Keywords: "fitness"}

	concepts, err := generator.GenerateConcepts(context.Background(), d)
	assert.NoError(t, err)
	assert.NoError(t, ValidateConceptsShape(concepts, course.ModeKeywords))
	assert.Equal(t, "fitness Mastery Program", concepts[0].Title)
	assert.Contains(t, concepts[0].Tags, "fitness")
}

func TestFakeGenerateConceptsUVZ(t *testing.T) {
	generator := NewFakeContentGenerator()
	d := course.Descriptor{UVZ: &course.UVZ{
		Skills:   "golf coaching, biomechanics",
		Passions: "teaching",
		Results:  "trained 100 players",
	}}

	concepts, err := generator.GenerateConcepts(context.Background(), d)
	assert.NoError(t, err)
	assert.NoError(t, ValidateConceptsShape(concepts, course.ModeUVZ))
	assert.Equal(t, "golf coaching Mastery Program", concepts[0].Title)
}

func TestFakeGenerateContent(t *testing.T) {
	generator := NewFakeContentGenerator()
	concept := course.Concept{
		ID:          "concept_1",
		Title:       "Fitness Mastery",
		Description: "Master fitness",
		PricePoint:  197,
	}

	content, err := generator.GenerateContent(context.Background(), concept)
	assert.NoError(t, err)
	assert.NoError(t, ValidateContentShape(content))
	assert.Equal(t, concept.Title, content.Title)
	assert.Contains(t, content.SalesPage, "$197")
}

func TestFakeGeneratorHonorsCancelledContext(t *testing.T) {
	generator := NewFakeContentGenerator()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := generator.GenerateConcepts(ctx, course.Descriptor{Keywords: "fitness"})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = generator.GenerateContent(ctx, course.Concept{})
	assert.ErrorIs(t, err, context.Canceled)
}
