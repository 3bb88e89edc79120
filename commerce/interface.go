package commerce

import "context"

type CourseDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CreatedCourse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

type ChapterDraft struct {
	CourseID string `json:"courseId"`
	Title    string `json:"title"`
	Order    int    `json:"order"`
}

type CreatedChapter struct {
	ID string `json:"id"`
}

type LessonDraft struct {
	ChapterID string `json:"chapterId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Order     int    `json:"order"`
	Type      string `json:"type"`
}

type CreatedLesson struct {
	ID string `json:"id"`
}

type ProductDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
}

type CreatedProduct struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Price  int    `json:"price"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

type Link struct {
	ID        string `json:"id"`
	CourseID  string `json:"courseId"`
	ProductID string `json:"productId"`
}

// Publisher is the course-commerce platform surface. Implementations
// must honor the caller's context deadline on every call.
type Publisher interface {
	CreateCourse(ctx context.Context, draft CourseDraft) (*CreatedCourse, error)
	CreateChapter(ctx context.Context, draft ChapterDraft) (*CreatedChapter, error)
	CreateLesson(ctx context.Context, draft LessonDraft) (*CreatedLesson, error)
	CreateProduct(ctx context.Context, draft ProductDraft) (*CreatedProduct, error)
	LinkCourseToProduct(ctx context.Context, courseID, productID string) (*Link, error)
}
