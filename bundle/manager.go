package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/uvzlabs/launchpad/course"
)

// Manager assembles the downloadable launch collateral on an Afero
// file system, in memory by default.
type Manager struct {
	Fs afero.Fs
}

// NewMemoryManager creates a Manager over an in-memory file system.
func NewMemoryManager() *Manager {
	return &Manager{
		Fs: afero.NewMemMapFs(),
	}
}

// WriteLaunchBundle lays out the marketing collateral: launch links,
// the sales script, the email sequence, and every lesson as markdown.
func (m *Manager) WriteLaunchBundle(assets course.LaunchAssets, content *course.Content) error {
	links := fmt.Sprintf("# Launch Links\n\n- Course: %s\n- Product: %s\n", assets.CourseURL, assets.ProductURL)
	if err := m.writeFile("launch_links.md", links); err != nil {
		return err
	}

	if err := m.writeFile("sales_script.md", assets.SalesScript); err != nil {
		return err
	}

	for i, email := range assets.EmailSequence {
		path := filepath.Join("emails", fmt.Sprintf("email_%d.md", i+1))
		body := fmt.Sprintf("Subject: %s\n\n%s", email.Subject, email.Body)
		if err := m.writeFile(path, body); err != nil {
			return err
		}
	}

	for _, chapter := range content.Chapters {
		dir := filepath.Join("course", fmt.Sprintf("chapter_%d", chapter.Order))
		for _, lesson := range chapter.Lessons {
			path := filepath.Join(dir, fmt.Sprintf("lesson_%d.md", lesson.Order))
			if err := m.writeFile(path, lesson.Content); err != nil {
				return err
			}
		}
	}

	return nil
}

func (m *Manager) writeFile(path, content string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := m.Fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(m.Fs, path, []byte(content), 0644); err != nil {
		return fmt.Errorf("error writing file %s: %w", path, err)
	}
	return nil
}

// WriteToZip packs the assembled bundle into a zip archive.
func (m *Manager) WriteToZip() ([]byte, error) {
	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	fileCount := 0
	err := afero.Walk(m.Fs, ".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == "." || info.IsDir() {
			return nil
		}

		writer, err := zipWriter.Create(path)
		if err != nil {
			return fmt.Errorf("error creating zip entry for file %s: %w", path, err)
		}

		file, err := m.Fs.Open(path)
		if err != nil {
			return fmt.Errorf("error opening file %s: %w", path, err)
		}
		defer file.Close()

		if _, err = io.Copy(writer, file); err != nil {
			return fmt.Errorf("error writing file %s to zip: %w", path, err)
		}

		fileCount++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking file system: %w", err)
	}
	if fileCount == 0 {
		return nil, fmt.Errorf("no files to zip")
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("error closing zip writer: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportZip writes the zipped bundle to the OS file system.
func (m *Manager) ExportZip(zipPath string) error {
	data, err := m.WriteToZip()
	if err != nil {
		return err
	}
	if err := os.WriteFile(zipPath, data, 0644); err != nil {
		return fmt.Errorf("error writing zip file %s: %w", zipPath, err)
	}
	return nil
}
