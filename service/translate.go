package service

import (
	"fmt"
	"os"
	"time"

	"arogyachat/platform"
)

// Direction of a translation between the two supported languages.
type Direction string

const (
	KNToEN Direction = "kn-en"
	ENToKN Direction = "en-kn"
)

const (
	translateTimeout       = 60 * time.Second
	reportTranslateTimeout = 120 * time.Second
)

const knToENPrompt = "Translate the following text from Kannada to English.\n" +
	"Return ONLY the English translation.\n" +
	"Do NOT include explanations.\n\n"

// The model drifts into Devanagari without the explicit script rules.
const enToKNPrompt = "Translate the following text from English to Kannada.\n" +
	"IMPORTANT RULES:\n" +
	"- Output MUST be in Kannada language\n" +
	"- Output MUST be in Kannada script\n" +
	"- DO NOT use Hindi or Devanagari script\n" +
	"- DO NOT explain anything\n" +
	"- ONLY return the translated sentence\n\n"

const reportTranslatePrompt = "Translate the following medical explanation to Kannada:\n\n"

// TranslateService wraps the inference endpoint for Kannada/English
// translation. It does not validate the model's output: the trimmed reply is
// the translation, and any transport or decode failure is returned to the
// caller untouched.
type TranslateService struct {
	Client *platform.InferenceClient
	Model  string
}

func NewTranslateService() *TranslateService {
	m := os.Getenv("TRANSLATE_MODEL")
	if m == "" {
		m = "translategemma:12b"
	}
	return &TranslateService{
		Client: platform.Inference,
		Model:  m,
	}
}

func (s *TranslateService) Translate(text string, direction Direction) (string, error) {
	var prompt string
	switch direction {
	case KNToEN:
		prompt = knToENPrompt + text
	case ENToKN:
		prompt = enToKNPrompt + text
	default:
		return "", fmt.Errorf("unknown translation direction: %s", direction)
	}
	return s.Client.Generate(s.Model, prompt, translateTimeout)
}

// TranslateReport converts an English report explanation to Kannada. Report
// texts are long, so this path gets a wider timeout than chat translation.
func (s *TranslateService) TranslateReport(text string) (string, error) {
	return s.Client.Generate(s.Model, reportTranslatePrompt+text, reportTranslateTimeout)
}
