package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Sai2211201144/learn-ai-2/internal/constants"
	"github.com/Sai2211201144/learn-ai-2/internal/logger"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

// Config configures the OpenAI-compatible client.
type Config struct {
	BaseURL           string
	APIKey            string
	Model             string
	RequestsPerMinute int
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	config  Config
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Client. Missing fields fall back to defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = constants.DefaultAIBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = constants.DefaultAIModel
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = constants.DefaultRequestsPerMinute
	}

	return &Client{
		config:  cfg,
		http:    &http.Client{},
		limiter: rate.NewLimiter(limitFor(cfg.RequestsPerMinute), 1),
	}
}

func limitFor(rpm int) rate.Limit {
	return rate.Every(time.Minute / time.Duration(rpm))
}

// SetRequestsPerMinute changes the outgoing request rate. Values <= 0 are ignored.
func (c *Client) SetRequestsPerMinute(rpm int) {
	if rpm <= 0 {
		return
	}
	c.limiter.SetLimit(limitFor(rpm))
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// chat sends one prompt and returns the first choice's content.
func (c *Client) chat(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	logger.Debug("Generation request finished", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: API error (status %d): %s", ErrGeneration, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: invalid response: %v", ErrGeneration, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrGeneration, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrGeneration)
	}
	return parsed.Choices[0].Message.Content, nil
}

// stripFences removes a surrounding ```json ... ``` block if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func decode[T any](content string) (T, error) {
	var out T
	if err := json.Unmarshal([]byte(stripFences(content)), &out); err != nil {
		return out, fmt.Errorf("%w: malformed content: %v", ErrGeneration, err)
	}
	return out, nil
}

func complete[T any](ctx context.Context, c *Client, prompt string) (T, error) {
	content, err := c.chat(ctx, prompt)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](content)
}

// GenerateCourse implements Service.
func (c *Client) GenerateCourse(ctx context.Context, req CourseRequest) (models.Course, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return models.Course{}, fmt.Errorf("%w: topic is required", ErrGeneration)
	}
	course, err := complete[models.Course](ctx, c, coursePrompt(req))
	if err != nil {
		return models.Course{}, err
	}
	if err := checkCourse(course); err != nil {
		return models.Course{}, err
	}
	course.KnowledgeLevel = levelOrDefault(req.Level)
	return course, nil
}

// GeneratePlanOutline implements Service.
func (c *Client) GeneratePlanOutline(ctx context.Context, req OutlineRequest) (models.PlanOutline, error) {
	if strings.TrimSpace(req.Goal) == "" {
		return models.PlanOutline{}, fmt.Errorf("%w: goal is required", ErrGeneration)
	}
	outline, err := complete[models.PlanOutline](ctx, c, outlinePrompt(req))
	if err != nil {
		return models.PlanOutline{}, err
	}
	if err := outline.Validate(); err != nil {
		return models.PlanOutline{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return outline, nil
}

// GenerateCourseFromOutline implements Service.
func (c *Client) GenerateCourseFromOutline(ctx context.Context, outline models.PlanOutline, level models.KnowledgeLevel) (models.Course, error) {
	course, err := complete[models.Course](ctx, c, courseFromOutlinePrompt(outline, level))
	if err != nil {
		return models.Course{}, err
	}
	if err := checkCourse(course); err != nil {
		return models.Course{}, err
	}
	course.KnowledgeLevel = levelOrDefault(level)
	return course, nil
}

// GenerateArticle implements Service.
func (c *Client) GenerateArticle(ctx context.Context, req ArticleRequest) (models.Article, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return models.Article{}, fmt.Errorf("%w: topic is required", ErrGeneration)
	}
	article, err := complete[models.Article](ctx, c, articlePrompt(req))
	if err != nil {
		return models.Article{}, err
	}
	if article.Title == "" || article.BlogPost == "" {
		return models.Article{}, fmt.Errorf("%w: article is missing a title or body", ErrGeneration)
	}
	return article, nil
}

// GenerateProject implements Service.
func (c *Client) GenerateProject(ctx context.Context, course models.Course) (models.Project, error) {
	project, err := complete[models.Project](ctx, c, projectPrompt(course))
	if err != nil {
		return models.Project{}, err
	}
	if project.Title == "" || len(project.Steps) == 0 {
		return models.Project{}, fmt.Errorf("%w: project has no steps", ErrGeneration)
	}
	return project, nil
}

func checkCourse(c models.Course) error {
	if c.Title == "" {
		return fmt.Errorf("%w: course has no title", ErrGeneration)
	}
	if c.ItemCount() == 0 {
		return fmt.Errorf("%w: course has no lessons", ErrGeneration)
	}
	return nil
}
