package controller

import (
	"time"

	"arogyachat/platform"
	"arogyachat/service"
)

var (
	chatService      *service.ChatService
	assistantService *service.AssistantService
	reportService    *service.ReportService
)

// InitServices wires the controllers' services. Must run after the
// platform singletons (DB, redis, inference client) are initialized.
func InitServices() {
	translator := service.NewTranslateService()
	chatService = &service.ChatService{Translator: translator}
	assistantService = service.NewAssistantService(&service.RedisTranscriptStore{
		Client: platform.Redis,
		TTL:    24 * time.Hour,
	})
	reportService = service.NewReportService(translator)
}
