package service

import (
	"encoding/base64"
	"os"
	"time"

	"arogyachat/model"
	"arogyachat/platform"
)

const reportTimeout = 180 * time.Second

const reportPrompt = "You are a medical assistant. " +
	"Explain what you see in this medical image in simple terms. " +
	"This is not a diagnosis."

// Role-localized fallbacks for a failed analysis.
const (
	reportFallbackKN = "ಎಐ ಸೇವೆ ಲಭ್ಯವಿಲ್ಲ."
	reportFallbackEN = "AI service unavailable."
)

// ReportService sends an uploaded image to the vision model for a
// plain-language explanation. Patients get the explanation translated to
// Kannada; doctors get the English text as-is.
type ReportService struct {
	Client     *platform.InferenceClient
	Model      string
	Translator *TranslateService
}

func NewReportService(translator *TranslateService) *ReportService {
	m := os.Getenv("VISION_MODEL")
	if m == "" {
		m = "medicalimaginganalysis"
	}
	return &ReportService{
		Client:     platform.Inference,
		Model:      m,
		Translator: translator,
	}
}

// AnalyzeImage never returns an error: any failure of the vision call is
// replaced with a fixed fallback in the viewer's language. A failed
// translation for a patient viewer degrades to the English explanation
// rather than the fallback.
func (r *ReportService) AnalyzeImage(imageBytes []byte, viewerRole model.Role) string {
	imageB64 := base64.StdEncoding.EncodeToString(imageBytes)

	english, err := r.Client.GenerateWithImages(r.Model, reportPrompt, []string{imageB64}, reportTimeout)
	if err != nil {
		logger.Warnf("image analysis failed: %s", err)
		return reportFallback(viewerRole)
	}

	if viewerRole.Language() == model.LanguageKannada && english != "" {
		kannada, err := r.Translator.TranslateReport(english)
		if err != nil {
			logger.Warnf("report translation failed, returning English text: %s", err)
			return english
		}
		return kannada
	}
	return english
}

func reportFallback(viewerRole model.Role) string {
	if viewerRole.Language() == model.LanguageKannada {
		return reportFallbackKN
	}
	return reportFallbackEN
}
