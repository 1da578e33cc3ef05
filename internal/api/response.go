package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sai2211201144/learn-ai-2/internal/exports"
	"github.com/Sai2211201144/learn-ai-2/internal/generator"
	"github.com/Sai2211201144/learn-ai-2/internal/logger"
	"github.com/Sai2211201144/learn-ai-2/internal/state"
)

// Response is the envelope for every JSON reply.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func errorJSON(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func badRequest(c *gin.Context, message string) {
	errorJSON(c, http.StatusBadRequest, message)
}

// fail maps domain errors to HTTP status codes.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, state.ErrNotFound):
		errorJSON(c, http.StatusNotFound, err.Error())
	case errors.Is(err, state.ErrNoOutline):
		errorJSON(c, http.StatusConflict, err.Error())
	case errors.Is(err, state.ErrNoGenerator):
		errorJSON(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, generator.ErrGeneration):
		logger.Warn("Generation failed", "path", c.FullPath(), "error", err)
		errorJSON(c, http.StatusBadGateway, err.Error())
	case errors.Is(err, exports.ErrInvalidExport):
		errorJSON(c, http.StatusBadRequest, err.Error())
	default:
		errorJSON(c, http.StatusBadRequest, err.Error())
	}
}

// requireConfirm aborts destructive requests that lack ?confirm=true.
func requireConfirm() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("confirm") != "true" {
			errorJSON(c, http.StatusPreconditionRequired, "destructive operation requires confirm=true")
			return
		}
		c.Next()
	}
}
