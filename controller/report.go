package controller

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ReportController struct{}

// maxReportImageSize bounds the multipart image payload (10MB).
const maxReportImageSize = 10 << 20

// Analyze runs the uploaded image through the vision model and returns a
// plain-language explanation in the caller's language. Failures come back
// as a fixed localized message, not an error status.
func (r ReportController) Analyze(c *gin.Context) {
	_, role := currentUser(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	if fileHeader.Size > maxReportImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read image"})
		return
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read image"})
		return
	}

	logger.Infof("[%s] Analyzing report image (%d bytes)", c.GetString("requestId"), len(imageBytes))
	result := reportService.AnalyzeImage(imageBytes, role)

	c.JSON(http.StatusOK, gin.H{"result": result})
}
