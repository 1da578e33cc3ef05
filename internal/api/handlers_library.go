package api

import (
	"github.com/gin-gonic/gin"
)

type createFolderRequest struct {
	Name string `json:"name" binding:"required"`
}

type generateArticleRequest struct {
	Topic    string `json:"topic" binding:"required"`
	CourseID string `json:"course_id"`
	FolderID string `json:"folder_id"`
}

type generateProjectRequest struct {
	CourseID string `json:"course_id" binding:"required"`
}

func (s *Server) listFolders(c *gin.Context) {
	success(c, s.app.Folders())
}

func (s *Server) createFolder(c *gin.Context) {
	var req createFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	folder, err := s.app.CreateFolder(req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, folder)
}

func (s *Server) renameFolder(c *gin.Context) {
	var req createFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := s.app.RenameFolder(c.Param("id"), req.Name); err != nil {
		fail(c, err)
		return
	}
	success(c, nil)
}

func (s *Server) deleteFolder(c *gin.Context) {
	if err := s.app.DeleteFolder(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	success(c, nil)
}

func (s *Server) listArticles(c *gin.Context) {
	success(c, s.app.Articles())
}

func (s *Server) getArticle(c *gin.Context) {
	article, err := s.app.Article(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, article)
}

func (s *Server) generateArticle(c *gin.Context) {
	var req generateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	article, err := s.app.GenerateArticle(c.Request.Context(), req.Topic, req.CourseID, req.FolderID)
	s.metrics.ObserveGeneration("article", err)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, article)
}

func (s *Server) deleteArticle(c *gin.Context) {
	if err := s.app.DeleteArticle(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	success(c, nil)
}

func (s *Server) moveArticle(c *gin.Context) {
	var req folderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := s.app.MoveArticle(c.Param("id"), req.FolderID); err != nil {
		fail(c, err)
		return
	}
	success(c, nil)
}

func (s *Server) listProjects(c *gin.Context) {
	success(c, s.app.Projects())
}

func (s *Server) getProject(c *gin.Context) {
	project, err := s.app.Project(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, project)
}

func (s *Server) generateProject(c *gin.Context) {
	var req generateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	project, err := s.app.GenerateProject(c.Request.Context(), req.CourseID)
	s.metrics.ObserveGeneration("project", err)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, gin.H{"project": project, "achievements": s.app.DrainUnlocked()})
}

func (s *Server) deleteProject(c *gin.Context) {
	if err := s.app.DeleteProject(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	success(c, nil)
}

func (s *Server) toggleStep(c *gin.Context) {
	completed, err := s.app.ToggleProjectStep(c.Param("id"), c.Param("stepId"))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, gin.H{"completed": completed})
}
