package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/japaniel/visionary/pkg/db"
	"github.com/japaniel/visionary/pkg/service"
	"github.com/japaniel/visionary/pkg/symbols"
)

// POST /visions
func SubmitVisionHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.SubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status": "error",
				"error":  "invalid request body",
			})
			return
		}

		sub, err := svc.Submit(c.Request.Context(), req)
		switch {
		case errors.Is(err, service.ErrInvalidSubmission):
			c.JSON(http.StatusBadRequest, gin.H{
				"status": "error",
				"error":  err.Error(),
			})
		case err != nil:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":         "error",
				"error":          err.Error(),
				"interpretation": sub.Interpretation,
			})
		default:
			c.JSON(http.StatusOK, gin.H{
				"status":         "success",
				"id":             sub.ID,
				"interpretation": sub.Interpretation,
				"analysis":       sub.Analysis,
			})
		}
	}
}

type visionResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Context        string `json:"context"`
	SubmittedAt    string `json:"submitted_at"`
	Interpretation string `json:"interpretation"`
}

func toResponse(v db.Vision) visionResponse {
	return visionResponse{
		ID:             v.ID,
		Title:          v.Title,
		Description:    v.Description,
		Context:        v.Context,
		SubmittedAt:    v.SubmittedAt.UTC().Format(time.RFC3339),
		Interpretation: v.InterpretationText(),
	}
}

// GET /visions/:id
func GetVisionHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := svc.Get(c.Request.Context(), c.Param("id"))
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "error": "vision not found"})
			return
		}
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toResponse(v))
	}
}

// GET /visions?limit=N
func ListVisionsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		visions, err := svc.Recent(c.Request.Context(), limit)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
			return
		}
		out := make([]visionResponse, len(visions))
		for i, v := range visions {
			out[i] = toResponse(v)
		}
		c.JSON(http.StatusOK, gin.H{"visions": out})
	}
}

// GET /symbols?group=category
func ListSymbolsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := svc.Symbols(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
			return
		}
		if c.Query("group") == "category" {
			c.JSON(http.StatusOK, gin.H{"categories": symbols.GroupByCategory(entries)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"symbols": entries})
	}
}

// POST /admin/symbols/reset
func ResetSymbolsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := svc.ResetSymbols(c.Request.Context(), nil)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "symbols": n})
	}
}

// GET /status
func StatusHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := svc.Status(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, st)
			return
		}
		c.JSON(http.StatusOK, st)
	}
}
