package bundle

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/uvzlabs/launchpad/course"
	"github.com/uvzlabs/launchpad/generate"
)

func testAssets(t *testing.T) (course.LaunchAssets, *course.Content) {
	t.Helper()
	generator := generate.NewFakeContentGenerator()
	concepts, err := generator.GenerateConcepts(context.Background(), course.Descriptor{Keywords: "fitness"})
	assert.NoError(t, err)
	content, err := generator.GenerateContent(context.Background(), concepts[0])
	assert.NoError(t, err)

	return course.LaunchAssets{
		CourseURL:     "https://whop.com/courses/course_1",
		ProductURL:    "https://whop.com/products/product_1",
		SalesScript:   content.SalesPage,
		EmailSequence: content.EmailSequence,
	}, content
}

func TestNewMemoryManager(t *testing.T) {
	m := NewMemoryManager()
	assert.NotNil(t, m)
	assert.IsType(t, &afero.MemMapFs{}, m.Fs)
}

func TestWriteLaunchBundle(t *testing.T) {
	assets, content := testAssets(t)
	m := NewMemoryManager()

	err := m.WriteLaunchBundle(assets, content)
	assert.NoError(t, err)

	links, err := afero.ReadFile(m.Fs, "launch_links.md")
	assert.NoError(t, err)
	assert.Contains(t, string(links), assets.CourseURL)
	assert.Contains(t, string(links), assets.ProductURL)

	script, err := afero.ReadFile(m.Fs, "sales_script.md")
	assert.NoError(t, err)
	assert.Equal(t, assets.SalesScript, string(script))

	for i := 1; i <= course.EmailCount; i++ {
		email, err := afero.ReadFile(m.Fs, fmt.Sprintf("emails/email_%d.md", i))
		assert.NoError(t, err)
		assert.Contains(t, string(email), "Subject: ")
	}

	for _, chapter := range content.Chapters {
		for _, lesson := range chapter.Lessons {
			path := fmt.Sprintf("course/chapter_%d/lesson_%d.md", chapter.Order, lesson.Order)
			body, err := afero.ReadFile(m.Fs, path)
			assert.NoError(t, err)
			assert.Equal(t, lesson.Content, string(body))
		}
	}
}

func TestWriteToZip(t *testing.T) {
	assets, content := testAssets(t)
	m := NewMemoryManager()
	assert.NoError(t, m.WriteLaunchBundle(assets, content))

	data, err := m.WriteToZip()
	assert.NoError(t, err)
	assert.NotEmpty(t, data)

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	assert.NoError(t, err)
	// links + script + 5 emails + 15 lessons
	assert.Len(t, reader.File, 22)
}

func TestWriteToZipEmpty(t *testing.T) {
	m := NewMemoryManager()
	_, err := m.WriteToZip()
	assert.Error(t, err)
}
