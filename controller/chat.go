package controller

import (
	"errors"
	"net/http"
	"strconv"

	"arogyachat/model"
	"arogyachat/service"

	"github.com/gin-gonic/gin"
)

type ChatController struct{}

// Send stores one bilingual message to the peer in the URL. An empty body
// is a no-op; a translation failure aborts the send with nothing stored.
func (ch ChatController) Send(c *gin.Context) {
	userID, role := currentUser(c)

	peerID, err := strconv.ParseUint(c.Param("peer"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid peer id"})
		return
	}

	var input struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	sender := &model.User{ID: userID, Role: role}
	msg, err := chatService.SendMessage(sender, uint(peerID), input.Message)
	if err != nil {
		if errors.Is(err, service.ErrTranslationFailed) {
			logger.Warnf("[%s] Translation failed, message not stored: %s", c.GetString("requestId"), err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Translation service unavailable, message not sent"})
			return
		}
		logger.Warnf("[%s] Failed to send message: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}
	if msg == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message text is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": msg.ID})
}

// Thread returns the conversation with the peer, projected into the
// caller's language.
func (ch ChatController) Thread(c *gin.Context) {
	userID, role := currentUser(c)

	peerID, err := strconv.ParseUint(c.Param("peer"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid peer id"})
		return
	}

	viewer := &model.User{ID: userID, Role: role}
	entries, err := chatService.GetThread(viewer, uint(peerID))
	if err != nil {
		logger.Warnf("[%s] Failed to load thread: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load thread"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": entries})
}

// Contacts lists the users the caller can chat with or book: doctors for
// patients, patients for doctors.
func (ch ChatController) Contacts(c *gin.Context) {
	_, role := currentUser(c)

	peerRole := model.RoleDoctor
	if role == model.RoleDoctor {
		peerRole = model.RolePatient
	}

	users, err := model.ListUsersByRole(peerRole)
	if err != nil {
		logger.Warnf("[%s] Failed to list contacts: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list contacts"})
		return
	}

	type contact struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	out := make([]contact, 0, len(users))
	for _, u := range users {
		out = append(out, contact{ID: u.ID, Name: u.Name})
	}
	c.JSON(http.StatusOK, gin.H{"contacts": out})
}
