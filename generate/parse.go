package generate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/uvzlabs/launchpad/course"
)

type conceptPayload struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	TargetAudience string `json:"targetAudience"`
	PricePoint     int    `json:"pricePoint"`
}

type contentPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Chapters    []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Lessons     []struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		} `json:"lessons"`
	} `json:"chapters"`
	SalesPage     string                `json:"salesPage"`
	EmailSequence []course.EmailMessage `json:"emailSequence"`
}

// extractJSON returns the first span delimited by open/close in raw.
// Models tend to wrap JSON answers in prose or code fences.
func extractJSON(raw string, open, close byte) (string, bool) {
	start := strings.IndexByte(raw, open)
	end := strings.LastIndexByte(raw, close)
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

func parseConcepts(raw string, d course.Descriptor) ([]course.Concept, error) {
	const op = "generate concepts"

	span, ok := extractJSON(raw, '[', ']')
	if !ok {
		return nil, failf(op, nil, "response contains no JSON array")
	}

	var payload []conceptPayload
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return nil, failf(op, err, "error parsing concepts")
	}

	concepts := make([]course.Concept, len(payload))
	for i, p := range payload {
		concepts[i] = course.Concept{
			ID:                fmt.Sprintf("concept_%d", i+1),
			Title:             p.Title,
			Description:       p.Description,
			TargetAudience:    p.TargetAudience,
			PricePoint:        p.PricePoint,
			EstimatedDuration: "2-4 weeks",
			Tags:              descriptorTags(d),
		}
	}

	if err := ValidateConceptsShape(concepts, d.Mode()); err != nil {
		return nil, err
	}
	return concepts, nil
}

func parseContent(raw string, concept course.Concept) (*course.Content, error) {
	const op = "generate content"

	span, ok := extractJSON(raw, '{', '}')
	if !ok {
		return nil, failf(op, nil, "response contains no JSON object")
	}

	var payload contentPayload
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return nil, failf(op, err, "error parsing content")
	}
	if payload.Title == "" {
		return nil, failf(op, nil, "response missing course title")
	}
	if payload.Description == "" {
		payload.Description = concept.Description
	}

	content := &course.Content{
		ID:            fmt.Sprintf("content_%s", concept.ID),
		Title:         payload.Title,
		Description:   payload.Description,
		Chapters:      make([]course.Chapter, len(payload.Chapters)),
		SalesPage:     payload.SalesPage,
		EmailSequence: payload.EmailSequence,
	}
	for i, ch := range payload.Chapters {
		chapter := course.Chapter{
			ID:          fmt.Sprintf("chapter_%d", i+1),
			Title:       ch.Title,
			Description: ch.Description,
			Order:       i + 1,
			Lessons:     make([]course.Lesson, len(ch.Lessons)),
		}
		for j, l := range ch.Lessons {
			chapter.Lessons[j] = course.Lesson{
				ID:      fmt.Sprintf("lesson_%d_%d", i+1, j+1),
				Title:   l.Title,
				Content: l.Content,
				Order:   j + 1,
				Type:    "text",
			}
		}
		content.Chapters[i] = chapter
	}

	if err := ValidateContentShape(content); err != nil {
		return nil, err
	}
	return content, nil
}

func descriptorTags(d course.Descriptor) []string {
	var source string
	if d.UVZ != nil {
		source = d.UVZ.Skills
	} else {
		source = d.Keywords
	}
	parts := strings.Split(source, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// ValidateConceptsShape rejects any concept batch whose count does not
// match the input mode. Wrong counts are never truncated or padded.
func ValidateConceptsShape(concepts []course.Concept, mode course.InputMode) error {
	const op = "generate concepts"

	want := course.KeywordConceptCount
	if mode == course.ModeUVZ {
		want = course.UVZConceptCount
	}
	if len(concepts) != want {
		return failf(op, nil, "expected exactly %d concepts, got %d", want, len(concepts))
	}
	for i, c := range concepts {
		if c.Title == "" {
			return failf(op, nil, "concept %d has no title", i+1)
		}
	}
	return nil
}

// ValidateContentShape rejects any curriculum that deviates from the
// fixed 5x3 chapter/lesson structure, or is missing sales copy or the
// five-part email sequence.
func ValidateContentShape(content *course.Content) error {
	const op = "generate content"

	if content == nil {
		return failf(op, nil, "no content returned")
	}
	if len(content.Chapters) != course.ChapterCount {
		return failf(op, nil, "expected exactly %d chapters, got %d", course.ChapterCount, len(content.Chapters))
	}
	for i, ch := range content.Chapters {
		if len(ch.Lessons) != course.LessonsPerChapter {
			return failf(op, nil, "chapter %d: expected exactly %d lessons, got %d", i+1, course.LessonsPerChapter, len(ch.Lessons))
		}
	}
	if strings.TrimSpace(content.SalesPage) == "" {
		return failf(op, nil, "sales page copy is empty")
	}
	if len(content.EmailSequence) != course.EmailCount {
		return failf(op, nil, "expected exactly %d emails, got %d", course.EmailCount, len(content.EmailSequence))
	}
	return nil
}
