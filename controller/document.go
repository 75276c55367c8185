package controller

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"arogyachat/model"

	"github.com/gin-gonic/gin"
)

type DocumentController struct{}

func uploadDir() string {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "./uploads"
	}
	return dir
}

// Upload stores a patient's document on disk and records it.
func (d DocumentController) Upload(c *gin.Context) {
	userID, role := currentUser(c)

	if role != model.RolePatient {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only patients can upload documents"})
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Document file is required"})
		return
	}

	// strip any client-supplied path components
	filename := filepath.Base(fileHeader.Filename)
	patientDir := filepath.Join(uploadDir(), fmt.Sprintf("patient_%d", userID))
	if err := os.MkdirAll(patientDir, os.ModePerm); err != nil {
		logger.Warnf("[%s] Unable to create upload directory: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to store document"})
		return
	}

	path := filepath.Join(patientDir, filename)
	if err := c.SaveUploadedFile(fileHeader, path); err != nil {
		logger.Warnf("[%s] Unable to save document: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to store document"})
		return
	}

	doc := &model.Document{
		PatientID: userID,
		Filename:  filename,
		Filepath:  path,
	}
	if err := model.CreateDocument(doc); err != nil {
		logger.Warnf("[%s] Failed to record document: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to store document"})
		return
	}

	logger.Infof("[%s] Patient %d uploaded %s", c.GetString("requestId"), userID, filename)
	c.JSON(http.StatusOK, gin.H{"id": doc.ID, "filename": doc.Filename})
}

// Download serves a stored document to its owning patient or to a doctor.
func (d DocumentController) Download(c *gin.Context) {
	userID, role := currentUser(c)

	docID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document id"})
		return
	}

	doc, err := model.GetDocumentByID(uint(docID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if role != model.RoleDoctor && doc.PatientID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to access this document"})
		return
	}

	c.FileAttachment(doc.Filepath, doc.Filename)
}

// Mine lists the calling patient's own documents, newest first.
func (d DocumentController) Mine(c *gin.Context) {
	userID, role := currentUser(c)

	if role != model.RolePatient {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only patients have documents"})
		return
	}

	docs, err := model.ListDocumentsByPatient(userID)
	if err != nil {
		logger.Warnf("[%s] Failed to list documents: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list documents"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// ByPatient lets a doctor view a patient's documents.
func (d DocumentController) ByPatient(c *gin.Context) {
	_, role := currentUser(c)

	if role != model.RoleDoctor {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only doctors can view patient documents"})
		return
	}

	patientID, err := strconv.ParseUint(c.Param("patient"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient id"})
		return
	}

	docs, err := model.ListDocumentsByPatient(uint(patientID))
	if err != nil {
		logger.Warnf("[%s] Failed to list documents: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list documents"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}
