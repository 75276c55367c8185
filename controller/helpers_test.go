package controller

import (
	"fmt"
	"strings"
	"testing"

	"arogyachat/model"
	"arogyachat/platform"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Message{}, &model.Appointment{}, &model.Document{}))
	platform.DB = db
}

// authedRouter builds a test engine whose middleware injects the identity
// the token middleware would normally set.
func authedRouter(userID uint, role model.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("UserId", userID)
		c.Set("UserRole", role)
		c.Set("requestId", "test")
		c.Next()
	})
	return r
}
