package main

import (
	"os"
	"time"

	"arogyachat/controller"
	"arogyachat/model"
	"arogyachat/platform"
	"arogyachat/service"

	_uuid "github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// RequestIDMiddleware ...
// Generate a unique ID and attach it to each request for future reference or use
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		uuid := _uuid.New()
		c.Writer.Header().Set("X-Request-Id", uuid.String())
		c.Set("requestId", uuid.String())
		c.Next()
	}
}

func LogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery
		if raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		latency := time.Since(start)

		status := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method
		userAgent := c.Request.UserAgent()
		requestId := c.GetString("requestId")

		logrus.Infof(
			" [%s] %d | %v | %s | %s | %s | %s ",
			requestId,
			status,
			latency,
			clientIP,
			method,
			path,
			userAgent,
		)
	}
}

var auth = new(controller.AuthController)

// TokenAuthMiddleware ...
// JWT Authentication middleware attached to each request that needs to be authenticated to
// validate the access_token in the header
func TokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.TokenValid(c)
		c.Next()
	}
}

func main() {
	//Load the .env file
	err := godotenv.Load(".env")
	if err != nil {
		logrus.Warn("failed to load the env file")
	}

	platform.InitFile("./log", "gin")

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(RequestIDMiddleware())
	r.Use(LogMiddleware())

	//init database
	platform.InitDB()
	model.InstallDB()

	platform.InitInference()
	if err := platform.InitRedis(); err != nil {
		platform.Logger.Fatalf("failed to connect redis: %v", err)
	}

	controller.InitServices()

	v1 := r.Group("/v1")
	{
		user := new(controller.UserController)
		v1.POST("/user/register", user.Register)
		v1.POST("/user/login", user.Login)

		//Refresh the token
		v1.POST("/token/refresh", auth.Refresh)

		authorized := v1.Group("/", TokenAuthMiddleware())

		// Bilingual chat
		chat := new(controller.ChatController)
		authorized.GET("/contacts", chat.Contacts)
		authorized.POST("/chat/:peer", chat.Send)
		authorized.GET("/chat/:peer", chat.Thread)

		// Kannada health assistant
		assistant := new(controller.AssistantController)
		authorized.POST("/assistant", assistant.Ask)
		authorized.GET("/assistant", assistant.Transcript)

		// AI image report
		report := new(controller.ReportController)
		authorized.POST("/report", report.Analyze)

		// Appointments
		appointment := new(controller.AppointmentController)
		authorized.POST("/appointments", appointment.Book)
		authorized.GET("/appointments", appointment.List)
		authorized.POST("/appointments/:id/confirm", appointment.Confirm)
		authorized.POST("/appointments/:id/cancel", appointment.Cancel)

		// Documents
		document := new(controller.DocumentController)
		authorized.POST("/documents", document.Upload)
		authorized.GET("/documents", document.Mine)
		authorized.GET("/documents/:id/download", document.Download)
		authorized.GET("/patients/:patient/documents", document.ByPatient)
	}

	reminders := service.NewReminderService()
	c := cron.New()
	c.AddFunc("0 18 * * *", func() {
		_, _ = reminders.SendAppointmentReminders()
	})
	c.Start()

	port := os.Getenv("PORT")
	r.Run(":" + port)
}
