package publish

import (
	"context"
	"fmt"

	"github.com/uvzlabs/launchpad/commerce"
	"github.com/uvzlabs/launchpad/course"
)

// buildSteps lays out the composite as an explicit ordered task list:
// course first, then each chapter followed immediately by its lessons,
// then the product, then the link. The step name doubles as the
// failure tag.
func buildSteps(publisher commerce.Publisher, content *course.Content) []Step {
	steps := make([]Step, 0, StepCount(content))

	steps = append(steps, Step{
		Name: "create course",
		Execute: func(ctx context.Context, state *State) error {
			created, err := publisher.CreateCourse(ctx, commerce.CourseDraft{
				Title:       state.Content.Title,
				Description: state.Content.Description,
			})
			if err != nil {
				return err
			}
			state.Course = created
			state.ChapterIDs = make([]string, len(state.Content.Chapters))
			return nil
		},
	})

	for i := range content.Chapters {
		chapterIndex := i
		chapter := content.Chapters[i]

		steps = append(steps, Step{
			Name: fmt.Sprintf("create chapter %d", chapterIndex+1),
			Execute: func(ctx context.Context, state *State) error {
				created, err := publisher.CreateChapter(ctx, commerce.ChapterDraft{
					CourseID: state.Course.ID,
					Title:    chapter.Title,
					Order:    chapter.Order,
				})
				if err != nil {
					return err
				}
				state.ChapterIDs[chapterIndex] = created.ID
				return nil
			},
		})

		for j := range chapter.Lessons {
			lesson := chapter.Lessons[j]
			steps = append(steps, Step{
				Name: fmt.Sprintf("create lesson %d.%d", chapterIndex+1, j+1),
				Execute: func(ctx context.Context, state *State) error {
					_, err := publisher.CreateLesson(ctx, commerce.LessonDraft{
						ChapterID: state.ChapterIDs[chapterIndex],
						Title:     lesson.Title,
						Content:   lesson.Content,
						Order:     lesson.Order,
						Type:      lesson.Type,
					})
					return err
				},
			})
		}
	}

	steps = append(steps, Step{
		Name: "create product",
		Execute: func(ctx context.Context, state *State) error {
			created, err := publisher.CreateProduct(ctx, commerce.ProductDraft{
				Name:        fmt.Sprintf("%s - Premium Access", state.Content.Title),
				Description: state.Content.Description,
				Price:       state.Concept.PricePoint,
			})
			if err != nil {
				return err
			}
			state.Product = created
			return nil
		},
	})

	steps = append(steps, Step{
		Name: "link course to product",
		Execute: func(ctx context.Context, state *State) error {
			link, err := publisher.LinkCourseToProduct(ctx, state.Course.ID, state.Product.ID)
			if err != nil {
				return err
			}
			state.Link = link
			return nil
		},
	})

	return steps
}
