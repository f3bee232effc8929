package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davin-ai/agriview/services/api/interpret"
)

type chatRequest struct {
	History  interpret.Conversation `json:"history"`
	Question string                 `json:"question"`
}

// handleV1Interpret runs the initial interpretation of the latest reading
// POST /api/v1/interpret
func (s *Server) handleV1Interpret(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.HFTimeout+5*time.Second)
	defer cancel()

	latest, ok, err := s.feed.Latest(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no sensor data available for interpretation"})
		return
	}

	text, err := s.gen.Generate(ctx, interpret.InitialPrompt(latest))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"interpretation": text,
			"reading":        latest,
		},
	})
}

// handleV1Chat answers a follow-up question and returns the grown history
// POST /api/v1/chat
func (s *Server) handleV1Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.HFTimeout+5*time.Second)
	defer cancel()

	latest, ok, err := s.feed.Latest(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no sensor data available for interpretation"})
		return
	}

	history, err := interpret.Ask(ctx, s.gen, req.History, latest, req.Question)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"history": history,
		},
		"meta": gin.H{
			"turns": len(history),
		},
	})
}
