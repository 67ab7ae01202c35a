package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gymunity/backend/coach"
)

type newsChatRequest struct {
	Message string `json:"message"`
}

// newsChat is a static stub: the real pipeline-backed chat is not connected
// yet, so it echoes the message back with a pointer at Explore.
func (s *Server) newsChat(c *gin.Context) {
	var payload newsChatRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	message := strings.TrimSpace(payload.Message)
	if message == "" {
		message = "No message provided"
	}
	c.JSON(http.StatusOK, gin.H{
		"reply":     fmt.Sprintf("Pipeline not connected yet. I received: '%s'.", message),
		"follow_up": "Try again later or check Explore for the latest updates.",
	})
}

func (s *Server) aiChat(c *gin.Context) {
	var payload coach.ChatRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, coach.Respond(payload))
}
