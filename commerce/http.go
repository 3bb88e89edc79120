package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/uvzlabs/launchpad/logger"
)

type ClientConfig struct {
	BaseURL string
	APIKey  string
}

// Client talks to the commerce platform's REST API. Every request
// carries a client-generated Idempotency-Key so a platform that honors
// it can dedupe retried publishes.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	logger     logger.Logger
}

func NewClient(cfg *ClientConfig, log logger.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("commerce API key is required")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("commerce base URL is required")
	}
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &Client{
		config:     cfg,
		httpClient: &http.Client{},
		logger:     log,
	}, nil
}

func (c *Client) CreateCourse(ctx context.Context, draft CourseDraft) (*CreatedCourse, error) {
	var out CreatedCourse
	if err := c.post(ctx, "/api/v1/courses", draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateChapter(ctx context.Context, draft ChapterDraft) (*CreatedChapter, error) {
	var out CreatedChapter
	path := fmt.Sprintf("/api/v1/courses/%s/chapters", draft.CourseID)
	if err := c.post(ctx, path, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateLesson(ctx context.Context, draft LessonDraft) (*CreatedLesson, error) {
	var out CreatedLesson
	path := fmt.Sprintf("/api/v1/chapters/%s/lessons", draft.ChapterID)
	if err := c.post(ctx, path, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, draft ProductDraft) (*CreatedProduct, error) {
	var out CreatedProduct
	if err := c.post(ctx, "/api/v1/products", draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LinkCourseToProduct(ctx context.Context, courseID, productID string) (*Link, error) {
	body := map[string]string{"courseId": courseID, "productId": productID}
	var out Link
	if err := c.post(ctx, "/api/v1/course_links", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("error encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.WithField("status", resp.StatusCode).Error(fmt.Sprintf("commerce API rejected %s", path))
		return fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, snippet)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding %s response: %w", path, err)
	}
	return nil
}
