package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sai2211201144/learn-ai-2/internal/constants"
	"github.com/Sai2211201144/learn-ai-2/internal/exports"
	"github.com/Sai2211201144/learn-ai-2/internal/logger"
)

const maxImportSize = 32 << 20

func (s *Server) exportData(c *gin.Context) {
	now := s.app.Now()
	bundle := exports.NewBundle(s.app.Profile(), s.app.Snapshot(), now)
	name := fmt.Sprintf("%s%s%s", constants.ExportFilePrefix, now.Format("20060102-1504"), constants.ExportFileSuffix)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.JSON(http.StatusOK, bundle)
}

func (s *Server) importData(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	bundle, err := exports.Decode(raw)
	if err != nil {
		fail(c, err)
		return
	}
	s.app.Import(bundle.Data)
	logger.Info("Imported data over API", "courses", len(bundle.Data.Courses), "exported_at", bundle.ExportedAt)
	success(c, s.app.Stats())
}

func (s *Server) reset(c *gin.Context) {
	s.app.Reset()
	logger.Info("Reset data over API")
	success(c, s.app.Stats())
}
