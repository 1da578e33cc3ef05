package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Sai2211201144/learn-ai-2/internal/generator"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

type courseView struct {
	models.Course
	Percent float64 `json:"percent"`
}

type generateCourseRequest struct {
	Topic         string                `json:"topic" binding:"required"`
	Level         models.KnowledgeLevel `json:"level"`
	Goal          models.LearningGoal   `json:"goal"`
	Style         models.LearningStyle  `json:"style"`
	Technology    string                `json:"technology"`
	IncludeTheory bool                  `json:"include_theory"`
	FolderID      string                `json:"folder_id"`
}

type folderRequest struct {
	FolderID string `json:"folder_id"`
}

type noteRequest struct {
	Note string `json:"note"`
}

func (s *Server) listCourses(c *gin.Context) {
	courses := s.app.Courses()
	views := make([]courseView, 0, len(courses))
	for _, course := range courses {
		pct, _ := s.app.CoursePercent(course.ID)
		views = append(views, courseView{Course: course, Percent: pct})
	}
	success(c, gin.H{"courses": views, "last_active_id": s.app.LastActiveCourseID()})
}

func (s *Server) getCourse(c *gin.Context) {
	course, err := s.app.Course(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	pct, _ := s.app.CoursePercent(course.ID)
	success(c, courseView{Course: course, Percent: pct})
}

func (s *Server) generateCourse(c *gin.Context) {
	var req generateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	course, err := s.app.GenerateCourse(c.Request.Context(), generator.CourseRequest{
		Topic:         req.Topic,
		Level:         req.Level,
		Goal:          req.Goal,
		Style:         req.Style,
		Technology:    req.Technology,
		IncludeTheory: req.IncludeTheory,
	}, req.FolderID)
	s.metrics.ObserveGeneration("course", err)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, gin.H{"course": course, "achievements": s.app.DrainUnlocked()})
}

func (s *Server) deleteCourse(c *gin.Context) {
	if err := s.app.DeleteCourse(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	success(c, nil)
}

func (s *Server) selectCourse(c *gin.Context) {
	if err := s.app.SelectCourse(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	success(c, gin.H{"last_active_id": s.app.LastActiveCourseID()})
}

func (s *Server) moveCourse(c *gin.Context) {
	var req folderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := s.app.MoveCourse(c.Param("id"), req.FolderID); err != nil {
		fail(c, err)
		return
	}
	success(c, nil)
}

func (s *Server) toggleItem(c *gin.Context) {
	completed, err := s.app.ToggleItemComplete(c.Param("id"), c.Param("itemId"))
	if err != nil {
		fail(c, err)
		return
	}
	pct, _ := s.app.CoursePercent(c.Param("id"))
	success(c, gin.H{
		"completed":    completed,
		"percent":      pct,
		"stats":        s.app.Stats(),
		"achievements": s.app.DrainUnlocked(),
	})
}

func (s *Server) saveNote(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := s.app.SaveItemNote(c.Param("id"), c.Param("itemId"), req.Note); err != nil {
		fail(c, err)
		return
	}
	success(c, nil)
}
