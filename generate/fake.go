package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/uvzlabs/launchpad/course"
)

// FakeContentGenerator implements the ContentGenerator contract with
// a deterministic catalog. Selected by configuration at construction
// time; the real client never falls back to it.
type FakeContentGenerator struct{}

func NewFakeContentGenerator() *FakeContentGenerator {
	return &FakeContentGenerator{}
}

var conceptTemplates = []struct {
	title       string
	description string
	audience    string
	price       int
	difficulty  string
	duration    string
	tag         string
}{
	{"%s Mastery Program", "Master %s from beginner to expert level", "Beginners wanting to learn %s", 197, "beginner", "2-4 weeks", ""},
	{"%s Business Blueprint", "Build a profitable %s business from scratch", "Entrepreneurs interested in %s", 297, "intermediate", "3-5 weeks", "business"},
	{"Advanced %s Strategies", "Advanced techniques for %s professionals", "Experienced %s practitioners", 397, "advanced", "4-6 weeks", "advanced"},
	{"%s for Beginners", "Complete beginner's guide to %s", "Complete beginners in %s", 197, "beginner", "2-3 weeks", "beginner"},
	{"%s Certification Course", "Get certified in %s with industry recognition", "Professionals seeking %s certification", 497, "intermediate", "6-8 weeks", "certification"},
	{"%s Marketing Mastery", "Learn to market %s effectively", "Marketers focusing on %s", 297, "intermediate", "3-4 weeks", "marketing"},
	{"%s Automation Secrets", "Automate your %s processes for efficiency", "Professionals wanting to automate %s", 397, "intermediate", "4-5 weeks", "automation"},
	{"%s Success Formula", "Proven formula for %s success", "Individuals seeking %s success", 597, "advanced", "5-7 weeks", "success"},
	{"%s Expert Training", "Become an expert in %s field", "Serious learners of %s", 697, "advanced", "6-8 weeks", "expert"},
	{"%s Complete System", "Complete system for mastering %s", "Comprehensive %s learners", 797, "advanced", "8-10 weeks", "complete"},
}

func (g *FakeContentGenerator) GenerateConcepts(ctx context.Context, d course.Descriptor) ([]course.Concept, error) {
	if err := ctx.Err(); err != nil {
		return nil, failf("generate concepts", err, "cancelled")
	}

	topic := d.Keywords
	if d.UVZ != nil {
		topic = firstTag(d.UVZ.Skills)
	}

	count := d.ConceptCount()
	concepts := make([]course.Concept, count)
	for i := 0; i < count; i++ {
		t := conceptTemplates[i]
		tags := descriptorTags(d)
		if t.tag != "" {
			tags = append(tags, t.tag)
		}
		concepts[i] = course.Concept{
			ID:                fmt.Sprintf("concept_%d", i+1),
			Title:             fmt.Sprintf(t.title, topic),
			Description:       fmt.Sprintf(t.description, topic),
			TargetAudience:    fmt.Sprintf(t.audience, topic),
			PricePoint:        t.price,
			EstimatedDuration: t.duration,
			Difficulty:        t.difficulty,
			Tags:              tags,
		}
	}
	return concepts, nil
}

var chapterTemplates = []struct {
	title       string
	description string
	lessons     [course.LessonsPerChapter]string
}{
	{"Introduction & Foundation", "Get started with the fundamentals",
		[...]string{"Welcome to Your Journey", "Understanding the Basics", "Setting Your Goals"}},
	{"Core Skills Development", "Master the essential skills",
		[...]string{"Essential Skills Overview", "Hands-On Practice", "Advanced Techniques"}},
	{"Implementation & Strategy", "Put your skills into action",
		[...]string{"Strategic Planning", "Building Systems", "Measuring Success"}},
	{"Advanced Applications", "Take your skills to the next level",
		[...]string{"Real-World Applications", "Scaling Your Approach", "Industry Insights"}},
	{"Mastery & Beyond", "Achieve mastery and build your legacy",
		[...]string{"Achieving Mastery", "Building Your Legacy", "Next Steps & Resources"}},
}

func (g *FakeContentGenerator) GenerateContent(ctx context.Context, concept course.Concept) (*course.Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, failf("generate content", err, "cancelled")
	}

	chapters := make([]course.Chapter, course.ChapterCount)
	for i, t := range chapterTemplates {
		chapter := course.Chapter{
			ID:          fmt.Sprintf("chapter_%d", i+1),
			Title:       t.title,
			Description: t.description,
			Order:       i + 1,
			Lessons:     make([]course.Lesson, course.LessonsPerChapter),
		}
		for j, title := range t.lessons {
			chapter.Lessons[j] = course.Lesson{
				ID:    fmt.Sprintf("lesson_%d_%d", i+1, j+1),
				Title: title,
				Content: fmt.Sprintf("# %s\n\nThis lesson is part of %q and walks through %s step by step.\n\n## Action Steps\n1. Review the material\n2. Apply it to your own situation\n3. Note your results before moving on",
					title, t.title, strings.ToLower(title)),
				Order: j + 1,
				Type:  "text",
			}
		}
		chapters[i] = chapter
	}

	return &course.Content{
		ID:          fmt.Sprintf("content_%s", concept.ID),
		Title:       concept.Title,
		Description: concept.Description,
		Chapters:    chapters,
		SalesPage:   fakeSalesPage(concept),
		EmailSequence: []course.EmailMessage{
			{Subject: fmt.Sprintf("Welcome to %s!", concept.Title),
				Body: fmt.Sprintf("# Welcome to Your Journey!\n\nCongratulations on taking the first step towards %s.\n\nComplete the introduction module and start with the first lesson.", strings.ToLower(concept.Description))},
			{Subject: "Your First Lesson is Ready!",
				Body: "# Ready for Your First Lesson?\n\nToday's focus: understanding the fundamentals, setting your goals, and creating your action plan."},
			{Subject: "How's Your Progress?",
				Body: "# Checking In on Your Progress\n\nAre you following along with the lessons? What's your biggest takeaway so far?"},
			{Subject: "Advanced Techniques Coming Up!",
				Body: "# Ready for Advanced Techniques?\n\nYou've mastered the basics. Make sure the foundational lessons are done before moving on."},
			{Subject: "Congratulations - You're Almost There!",
				Body: fmt.Sprintf("# You're Almost at the Finish Line!\n\nAfter completing this course you'll have all the tools you need to %s.", strings.ToLower(concept.Description))},
		},
	}, nil
}

func fakeSalesPage(concept course.Concept) string {
	return fmt.Sprintf(`# %s - Sales Page

## Transform Your Life with %s

Are you ready to %s?

This comprehensive course is designed specifically for %s.

## What You'll Get:

- **%d Complete Chapters** with %d detailed lessons
- **Step-by-step guidance** from beginner to expert
- **Lifetime access** to all course materials

## Special Launch Price: $%d

[GET INSTANT ACCESS NOW]`,
		concept.Title, concept.Title,
		strings.ToLower(concept.Description), strings.ToLower(concept.TargetAudience),
		course.ChapterCount, course.ChapterCount*course.LessonsPerChapter,
		concept.PricePoint)
}

func firstTag(s string) string {
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
