package generate

import (
	"fmt"

	"github.com/uvzlabs/launchpad/course"
)

func getSystemPrompt() string {
	return `You are an expert digital product strategist and course designer. Your task is to generate course concepts, complete curricula, and high-converting marketing copy based on the operator's expertise.

Always answer with exactly the JSON structure requested, with no surrounding commentary. Do NOT wrap your answer in markdown code blocks.`
}

func getConceptsPrompt(d course.Descriptor) string {
	var basis string
	if uvz := d.UVZ; uvz != nil {
		basis = fmt.Sprintf(`Based on this Unique Value Zone:
- Skills: %q
- Passions: %q
- Results achieved for others: %q`, uvz.Skills, uvz.Passions, uvz.Results)
	} else {
		basis = fmt.Sprintf(`Based on these keywords: %q`, d.Keywords)
	}

	return fmt.Sprintf(`You are an Expert Digital Product Strategist with 10+ years of experience in creating high-converting digital courses.

%s

Generate exactly %d distinct, high-demand digital course ideas that:
1. Are directly related to the expertise provided
2. Address real market needs and pain points
3. Have clear, compelling promises
4. Target specific, identifiable audiences
5. Are priced at $%d or higher
6. Can be taught through text-based lessons

For each course concept, provide:
- A compelling course name (max 60 characters)
- A clear core promise/outcome (max 100 characters)
- A specific target audience description (max 80 characters)
- A suggested price point ($97-$997 range)

Output MUST be a valid JSON array with this exact structure:
[
  {
    "title": "Course Name Here",
    "description": "What students will achieve",
    "targetAudience": "Who this course is for",
    "pricePoint": 197
  }
]

Focus on courses that have proven market demand and can generate significant revenue.`, basis, d.ConceptCount(), course.MinPricePoint)
}

func getContentPrompt(concept course.Concept) string {
	return fmt.Sprintf(`You are a Senior Course Designer & Copywriter with expertise in creating comprehensive digital courses and high-converting sales materials.

Based on the selected course concept:
- Course Name: %s
- Core Promise: %s
- Target Audience: %s
- Price: $%d

Generate a complete course structure with:

1. COURSE STRUCTURE:
   - %d comprehensive chapters (modules)
   - %d detailed lessons per chapter (%d total lessons)
   - Each lesson should be 500-1000 words of valuable, actionable content
   - Content should be in markdown format

2. SALES PAGE COPY:
   - High-converting VSL (Video Sales Letter) script format
   - Include compelling headlines, benefits, social proof, urgency, and call-to-action
   - Focus on the transformation and results students will achieve

3. EMAIL NURTURE SEQUENCE:
   - %d-part email sequence for nurturing leads
   - Each email should have a clear subject line and compelling body
   - Build trust, provide value, and guide toward purchase

Output MUST be a valid JSON object with this exact structure:
{
  "title": "Full Course Title",
  "description": "Course description",
  "chapters": [
    {
      "title": "Chapter 1 Title",
      "description": "Chapter description",
      "lessons": [
        {
          "title": "Lesson 1.1 Title",
          "content": "# Lesson Content in Markdown\n\nDetailed lesson content here..."
        }
      ]
    }
  ],
  "salesPage": "# High-Converting Sales Page\n\n## Headline\n\nCompelling headline here...",
  "emailSequence": [
    {
      "subject": "Email 1 Subject Line",
      "body": "# Email 1 Content\n\nEmail body content in markdown..."
    }
  ]
}

Make sure the content is valuable, actionable, and directly addresses the target audience's pain points and desired outcomes.`,
		concept.Title, concept.Description, concept.TargetAudience, concept.PricePoint,
		course.ChapterCount, course.LessonsPerChapter, course.ChapterCount*course.LessonsPerChapter,
		course.EmailCount)
}
