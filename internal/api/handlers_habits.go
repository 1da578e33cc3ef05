package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Sai2211201144/learn-ai-2/internal/constants"
	"github.com/Sai2211201144/learn-ai-2/internal/habits"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

type habitView struct {
	models.Habit
	Streak  int           `json:"streak"`
	Heatmap []habits.Cell `json:"heatmap"`
}

type addHabitRequest struct {
	Title string `json:"title" binding:"required"`
}

type toggleHabitRequest struct {
	Day string `json:"day"`
}

func (s *Server) habitView(h models.Habit) habitView {
	now := s.app.Now()
	return habitView{
		Habit:   h,
		Streak:  habits.CalculateStreak(h.History, now),
		Heatmap: habits.Heatmap(h.History, now, constants.HeatmapDays),
	}
}

func (s *Server) listHabits(c *gin.Context) {
	list := s.app.Habits()
	views := make([]habitView, 0, len(list))
	for _, h := range list {
		views = append(views, s.habitView(h))
	}
	success(c, views)
}

func (s *Server) addHabit(c *gin.Context) {
	var req addHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	h, err := s.app.AddHabit(req.Title)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, s.habitView(h))
}

func (s *Server) toggleHabit(c *gin.Context) {
	var req toggleHabitRequest
	// the body is optional; an empty day means today
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	h, err := s.app.ToggleHabit(c.Param("id"), req.Day)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, s.habitView(h))
}

func (s *Server) deleteHabit(c *gin.Context) {
	if err := s.app.DeleteHabit(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	success(c, nil)
}
