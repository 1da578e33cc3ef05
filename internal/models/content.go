package models

import "time"

type ProjectStep struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CodeStub    string `json:"code_stub,omitempty"`
	Challenge   string `json:"challenge,omitempty"`
}

type Project struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Steps       []ProjectStep `json:"steps"`
	Course      *CourseRef    `json:"course,omitempty"`
	Progress    Progress      `json:"progress"`
	CreatedAt   time.Time     `json:"created_at"`
}

type Article struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Subtitle  string     `json:"subtitle,omitempty"`
	BlogPost  string     `json:"blog_post"`
	Course    *CourseRef `json:"course,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Folder groups courses and articles by ID. Membership is a weak reference.
type Folder struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	CourseIDs  []string `json:"course_ids"`
	ArticleIDs []string `json:"article_ids"`
}
