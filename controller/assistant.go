package controller

import (
	"fmt"
	"net/http"
	"strings"

	"arogyachat/service"

	"github.com/gin-gonic/gin"
)

type AssistantController struct{}

// sessionKey scopes a transcript to one user. Role is not part of the key:
// the assistant speaks Kannada to everyone.
func sessionKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

// Ask sends one question to the health assistant and returns the reply plus
// the updated transcript.
func (a AssistantController) Ask(c *gin.Context) {
	userID, _ := currentUser(c)

	var input struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	text := strings.TrimSpace(input.Message)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message text is required"})
		return
	}

	turns, reply, err := assistantService.Ask(c.Request.Context(), sessionKey(userID), text)
	if err != nil {
		logger.Warnf("[%s] Assistant transcript store failed: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply, "chat": turns})
}

// Transcript returns the caller's running assistant conversation.
func (a AssistantController) Transcript(c *gin.Context) {
	userID, _ := currentUser(c)

	turns, err := assistantService.Transcript(c.Request.Context(), sessionKey(userID))
	if err != nil {
		logger.Warnf("[%s] Failed to load transcript: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transcript"})
		return
	}
	if turns == nil {
		turns = []service.Turn{}
	}
	c.JSON(http.StatusOK, gin.H{"chat": turns})
}
