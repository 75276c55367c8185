package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"arogyachat/model"
	"arogyachat/platform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reportInference fails translate-model calls with translateStatus while
// answering vision-model calls with englishReply.
func reportInference(t *testing.T, englishReply string, translateStatus int, translateReply string, visionCalls, translateCalls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p generatePayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))

		if len(p.Images) > 0 {
			*visionCalls++
			json.NewEncoder(w).Encode(map[string]string{"response": englishReply})
			return
		}

		*translateCalls++
		if translateStatus != http.StatusOK {
			w.WriteHeader(translateStatus)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"response": translateReply})
	}))
}

func newTestReportService(url string) *ReportService {
	client := platform.NewInferenceClient(url)
	return &ReportService{
		Client:     client,
		Model:      "medicalimaginganalysis",
		Translator: &TranslateService{Client: client, Model: "translategemma:12b"},
	}
}

func TestAnalyzeImageDoctorSkipsTranslation(t *testing.T) {
	var visionCalls, translateCalls int
	srv := reportInference(t, "A hairline fracture of the radius.", http.StatusOK, "", &visionCalls, &translateCalls)
	defer srv.Close()

	r := newTestReportService(srv.URL)
	result := r.AnalyzeImage([]byte("fake-image"), model.RoleDoctor)

	assert.Equal(t, "A hairline fracture of the radius.", result)
	assert.Equal(t, 1, visionCalls)
	assert.Equal(t, 0, translateCalls)
}

func TestAnalyzeImagePatientGetsKannada(t *testing.T) {
	var visionCalls, translateCalls int
	srv := reportInference(t, "A hairline fracture of the radius.", http.StatusOK, "ಮೂಳೆಯಲ್ಲಿ ಸಣ್ಣ ಬಿರುಕು ಇದೆ.", &visionCalls, &translateCalls)
	defer srv.Close()

	r := newTestReportService(srv.URL)
	result := r.AnalyzeImage([]byte("fake-image"), model.RolePatient)

	assert.Equal(t, "ಮೂಳೆಯಲ್ಲಿ ಸಣ್ಣ ಬಿರುಕು ಇದೆ.", result)
	assert.Equal(t, 1, visionCalls)
	assert.Equal(t, 1, translateCalls)
}

func TestAnalyzeImagePatientFallsBackToEnglishWhenTranslationFails(t *testing.T) {
	var visionCalls, translateCalls int
	srv := reportInference(t, "A hairline fracture of the radius.", http.StatusBadGateway, "", &visionCalls, &translateCalls)
	defer srv.Close()

	r := newTestReportService(srv.URL)
	result := r.AnalyzeImage([]byte("fake-image"), model.RolePatient)

	// the English explanation, not an error and not the fixed fallback
	assert.Equal(t, "A hairline fracture of the radius.", result)
	assert.Equal(t, 1, translateCalls)
}

func TestAnalyzeImageFailureUsesLocalizedFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := newTestReportService(srv.URL)
	assert.Equal(t, reportFallbackKN, r.AnalyzeImage([]byte("fake-image"), model.RolePatient))
	assert.Equal(t, reportFallbackEN, r.AnalyzeImage([]byte("fake-image"), model.RoleDoctor))
}

func TestAnalyzeImageEmptyExplanationSkipsTranslation(t *testing.T) {
	var visionCalls, translateCalls int
	srv := reportInference(t, "", http.StatusOK, "ಏನೂ ಇಲ್ಲ", &visionCalls, &translateCalls)
	defer srv.Close()

	r := newTestReportService(srv.URL)
	result := r.AnalyzeImage([]byte("fake-image"), model.RolePatient)

	assert.Equal(t, "", result)
	assert.Equal(t, 0, translateCalls)
}
