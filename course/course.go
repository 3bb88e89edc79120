package course

// Shape of a complete generated curriculum. Every piece of generated
// content is rejected unless it matches these counts exactly.
const (
	ChapterCount      = 5
	LessonsPerChapter = 3
	EmailCount        = 5
)

// Concept counts depend on how the operator described their expertise.
const (
	KeywordConceptCount = 10
	UVZConceptCount     = 3
)

// MinPricePoint is the floor for generated price points, in whole USD.
const MinPricePoint = 97

type InputMode string

const (
	ModeKeywords InputMode = "keywords"
	ModeUVZ      InputMode = "uvz"
)

// UVZ is the structured "Unique Value Zone" descriptor: what the
// operator is good at, what they care about, and what results they
// have produced for others.
type UVZ struct {
	Skills   string `json:"skills"`
	Passions string `json:"passions"`
	Results  string `json:"results"`
}

// Descriptor is the step-1 input. Exactly one shape is active: the
// free-text Keywords string, or the structured UVZ triple.
type Descriptor struct {
	Keywords string `json:"keywords,omitempty"`
	UVZ      *UVZ   `json:"uvz,omitempty"`
}

func (d Descriptor) Mode() InputMode {
	if d.UVZ != nil {
		return ModeUVZ
	}
	return ModeKeywords
}

// ConceptCount returns how many concepts generation must produce for
// this descriptor: 10 for keyword input, 3 for UVZ input.
func (d Descriptor) ConceptCount() int {
	if d.Mode() == ModeUVZ {
		return UVZConceptCount
	}
	return KeywordConceptCount
}

// Concept is one candidate course idea. Immutable once produced;
// identified by its position in the concepts slice.
type Concept struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	TargetAudience    string   `json:"targetAudience"`
	PricePoint        int      `json:"pricePoint"`
	EstimatedDuration string   `json:"estimatedDuration,omitempty"`
	Difficulty        string   `json:"difficulty,omitempty"`
	Tags              []string `json:"tags,omitempty"`
}

type Lesson struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   int    `json:"order"`
	Type    string `json:"type"`
}

type Chapter struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Order       int      `json:"order"`
	Lessons     []Lesson `json:"lessons"`
}

type EmailMessage struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Content is the full generated curriculum for the selected concept.
type Content struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Chapters      []Chapter      `json:"chapters"`
	SalesPage     string         `json:"salesPage"`
	EmailSequence []EmailMessage `json:"emailSequence"`
}

// Clone returns a deep copy detached from the receiver's slices.
func (c *Content) Clone() *Content {
	if c == nil {
		return nil
	}
	out := *c
	out.Chapters = make([]Chapter, len(c.Chapters))
	for i, chapter := range c.Chapters {
		chapter.Lessons = append([]Lesson(nil), chapter.Lessons...)
		out.Chapters[i] = chapter
	}
	out.EmailSequence = append([]EmailMessage(nil), c.EmailSequence...)
	return &out
}

type PublishedCourse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

type PublishedProduct struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Price  int    `json:"price"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

// PublishedBundle is the result of the publication composite. Created
// once per session and never mutated; a new course requires a reset.
type PublishedBundle struct {
	Course  PublishedCourse  `json:"course"`
	Product PublishedProduct `json:"product"`
	LinkID  string           `json:"linkId"`
}

func (b *PublishedBundle) Clone() *PublishedBundle {
	if b == nil {
		return nil
	}
	out := *b
	return &out
}

// LaunchAssets is a derived view over the published bundle and the
// generated content. It carries no authoritative state of its own.
type LaunchAssets struct {
	CourseURL     string         `json:"courseUrl"`
	ProductURL    string         `json:"productUrl"`
	SalesScript   string         `json:"salesScript"`
	EmailSequence []EmailMessage `json:"emailSequence"`
}

func (a *LaunchAssets) Clone() *LaunchAssets {
	if a == nil {
		return nil
	}
	out := *a
	out.EmailSequence = append([]EmailMessage(nil), a.EmailSequence...)
	return &out
}
