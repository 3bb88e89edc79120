package commerce

import (
	"context"
	"fmt"
	"sync"
)

// FakePublisher is an in-memory Publisher for local runs and tests.
// It mints sequential ids and records everything it creates.
type FakePublisher struct {
	mu       sync.Mutex
	seq      int
	Courses  []CreatedCourse
	Chapters []ChapterDraft
	Lessons  []LessonDraft
	Products []CreatedProduct
	Links    []Link

	// FailOn makes the named operation fail, for exercising error
	// paths: "CreateCourse", "CreateChapter", "CreateLesson",
	// "CreateProduct", "LinkCourseToProduct".
	FailOn string
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

func (f *FakePublisher) next() int {
	f.seq++
	return f.seq
}

func (f *FakePublisher) fail(op string) error {
	if f.FailOn == op {
		return fmt.Errorf("injected %s failure", op)
	}
	return nil
}

func (f *FakePublisher) CreateCourse(ctx context.Context, draft CourseDraft) (*CreatedCourse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("CreateCourse"); err != nil {
		return nil, err
	}
	id := fmt.Sprintf("course_%d", f.next())
	created := CreatedCourse{
		ID:     id,
		Title:  draft.Title,
		URL:    "https://whop.com/courses/" + id,
		Status: "draft",
	}
	f.Courses = append(f.Courses, created)
	return &created, nil
}

func (f *FakePublisher) CreateChapter(ctx context.Context, draft ChapterDraft) (*CreatedChapter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("CreateChapter"); err != nil {
		return nil, err
	}
	f.Chapters = append(f.Chapters, draft)
	return &CreatedChapter{ID: fmt.Sprintf("chapter_%d", f.next())}, nil
}

func (f *FakePublisher) CreateLesson(ctx context.Context, draft LessonDraft) (*CreatedLesson, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("CreateLesson"); err != nil {
		return nil, err
	}
	f.Lessons = append(f.Lessons, draft)
	return &CreatedLesson{ID: fmt.Sprintf("lesson_%d", f.next())}, nil
}

func (f *FakePublisher) CreateProduct(ctx context.Context, draft ProductDraft) (*CreatedProduct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("CreateProduct"); err != nil {
		return nil, err
	}
	id := fmt.Sprintf("product_%d", f.next())
	created := CreatedProduct{
		ID:     id,
		Name:   draft.Name,
		Price:  draft.Price,
		URL:    "https://whop.com/products/" + id,
		Status: "active",
	}
	f.Products = append(f.Products, created)
	return &created, nil
}

func (f *FakePublisher) LinkCourseToProduct(ctx context.Context, courseID, productID string) (*Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("LinkCourseToProduct"); err != nil {
		return nil, err
	}
	link := Link{
		ID:        fmt.Sprintf("link_%d", f.next()),
		CourseID:  courseID,
		ProductID: productID,
	}
	f.Links = append(f.Links, link)
	return &link, nil
}
