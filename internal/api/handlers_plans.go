package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sai2211201144/learn-ai-2/internal/generator"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
	"github.com/Sai2211201144/learn-ai-2/internal/state"
	"github.com/Sai2211201144/learn-ai-2/internal/utils"
)

type outlineRequest struct {
	Goal  string                `json:"goal" binding:"required"`
	Level models.KnowledgeLevel `json:"level"`
	Days  int                   `json:"days" binding:"gte=0"`
}

type refineRequest struct {
	outlineRequest
	Feedback string `json:"feedback" binding:"required"`
}

type createPlanRequest struct {
	Level    models.KnowledgeLevel `json:"level"`
	FolderID string                `json:"folder_id"`
}

type planStatusRequest struct {
	Status models.PlanStatus `json:"status" binding:"required,oneof=active archived completed"`
}

type editTaskRequest struct {
	Date     string `json:"date"`
	Priority string `json:"priority"`
}

func (r outlineRequest) toGenerator() generator.OutlineRequest {
	return generator.OutlineRequest{Goal: r.Goal, Level: r.Level, Days: r.Days}
}

func (s *Server) listPlans(c *gin.Context) {
	success(c, s.app.Plans())
}

func (s *Server) activePlan(c *gin.Context) {
	plan, ok := s.app.ActivePlan()
	if !ok {
		errorJSON(c, http.StatusNotFound, "no active plan")
		return
	}
	success(c, plan)
}

func (s *Server) todayTasks(c *gin.Context) {
	success(c, s.app.TodayTasks())
}

func (s *Server) getOutline(c *gin.Context) {
	outline, ok := s.app.PendingOutline()
	if !ok {
		fail(c, state.ErrNoOutline)
		return
	}
	success(c, outline)
}

func (s *Server) generateOutline(c *gin.Context) {
	var req outlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	outline, err := s.app.GeneratePlanOutline(c.Request.Context(), req.toGenerator())
	s.metrics.ObserveGeneration("outline", err)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, outline)
}

func (s *Server) refineOutline(c *gin.Context) {
	var req refineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	outline, err := s.app.RefineOutline(c.Request.Context(), req.toGenerator(), req.Feedback)
	s.metrics.ObserveGeneration("outline", err)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, outline)
}

func (s *Server) clearOutline(c *gin.Context) {
	s.app.ClearOutline()
	success(c, nil)
}

func (s *Server) createPlan(c *gin.Context) {
	var req createPlanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	if req.Level == "" {
		req.Level = models.LevelBeginner
	}
	plan, err := s.app.CreatePlanFromOutline(c.Request.Context(), req.Level, req.FolderID)
	s.metrics.ObserveGeneration("plan", err)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, gin.H{"plan": plan, "achievements": s.app.DrainUnlocked()})
}

func (s *Server) setPlanStatus(c *gin.Context) {
	var req planStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := s.app.SetPlanStatus(c.Param("id"), req.Status); err != nil {
		fail(c, err)
		return
	}
	success(c, nil)
}

// requirePlan reports a 404 for unknown plans, since task edits ignore them.
func (s *Server) requirePlan(c *gin.Context) bool {
	if !s.app.HasPlan(c.Param("id")) {
		fail(c, fmt.Errorf("plan %s: %w", c.Param("id"), state.ErrNotFound))
		return false
	}
	return true
}

func (s *Server) deletePlan(c *gin.Context) {
	if !s.requirePlan(c) {
		return
	}
	s.app.DeletePlan(c.Param("id"))
	success(c, nil)
}

func (s *Server) editTask(c *gin.Context) {
	var req editTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !s.requirePlan(c) {
		return
	}
	planID, taskID := c.Param("id"), c.Param("taskId")

	var (
		priority models.TaskPriority
		day      time.Time
		err      error
	)
	if req.Priority != "" {
		if priority, err = models.ParsePriority(req.Priority); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	if req.Date != "" {
		if day, err = utils.ParseDayInLocation(req.Date, s.app.Now().Location()); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	if req.Priority != "" {
		s.app.SetTaskPriority(planID, taskID, priority)
	}
	if req.Date != "" {
		s.app.RescheduleTask(planID, taskID, day)
	}
	success(c, nil)
}

func (s *Server) toggleTask(c *gin.Context) {
	if !s.requirePlan(c) {
		return
	}
	s.app.ToggleTask(c.Param("id"), c.Param("taskId"))
	success(c, nil)
}

func (s *Server) deleteTask(c *gin.Context) {
	if !s.requirePlan(c) {
		return
	}
	s.app.DeleteTask(c.Param("id"), c.Param("taskId"))
	success(c, nil)
}
