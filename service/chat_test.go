package service

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"arogyachat/model"
	"arogyachat/platform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	// one named in-memory database per test, shared across pool connections
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Message{}, &model.Appointment{}, &model.Document{}))
	platform.DB = db
}

func countMessages(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, platform.DB.Model(&model.Message{}).Count(&count).Error)
	return count
}

func TestSendMessageStoresBothVariants(t *testing.T) {
	setupTestDB(t)
	srv := fakeInference(t, http.StatusOK, "Hello", nil)
	defer srv.Close()

	chat := &ChatService{Translator: newTestTranslator(srv.URL)}
	patient := &model.User{ID: 1, Role: model.RolePatient}

	msg, err := chat.SendMessage(patient, 2, "ನಮಸ್ಕಾರ")
	require.NoError(t, err)
	require.NotNil(t, msg)

	var stored model.Message
	require.NoError(t, platform.DB.First(&stored, msg.ID).Error)
	assert.Equal(t, uint(1), stored.SenderID)
	assert.Equal(t, uint(2), stored.ReceiverID)
	assert.Equal(t, "ನಮಸ್ಕಾರ", stored.MessageKN)
	assert.Equal(t, "Hello", stored.MessageEN)
	assert.NotEmpty(t, stored.MessageEN)
	assert.NotEmpty(t, stored.MessageKN)
}

func TestSendMessageFromDoctorTranslatesToKannada(t *testing.T) {
	setupTestDB(t)
	var calls []generatePayload
	srv := fakeInference(t, http.StatusOK, "ನಮಸ್ಕಾರ", &calls)
	defer srv.Close()

	chat := &ChatService{Translator: newTestTranslator(srv.URL)}
	doctor := &model.User{ID: 2, Role: model.RoleDoctor}

	msg, err := chat.SendMessage(doctor, 1, "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello", msg.MessageEN)
	assert.Equal(t, "ನಮಸ್ಕಾರ", msg.MessageKN)

	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "English to Kannada")
}

func TestSendMessageFailsClosedOnGatewayError(t *testing.T) {
	setupTestDB(t)
	srv := fakeInference(t, http.StatusBadGateway, "", nil)
	defer srv.Close()

	chat := &ChatService{Translator: newTestTranslator(srv.URL)}
	patient := &model.User{ID: 1, Role: model.RolePatient}

	_, err := chat.SendMessage(patient, 2, "ನಮಸ್ಕಾರ")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTranslationFailed)
	assert.EqualValues(t, 0, countMessages(t))
}

func TestSendMessageEmptyTextIsNoOp(t *testing.T) {
	setupTestDB(t)
	chat := &ChatService{Translator: newTestTranslator("http://127.0.0.1:0")}
	patient := &model.User{ID: 1, Role: model.RolePatient}

	msg, err := chat.SendMessage(patient, 2, "   ")
	require.NoError(t, err)
	assert.Nil(t, msg)
	assert.EqualValues(t, 0, countMessages(t))
}

func TestThreadProjectionByViewerRole(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, platform.DB.Create(&model.Message{
		SenderID: 1, ReceiverID: 2, MessageKN: "ನಮಸ್ಕಾರ", MessageEN: "Hello",
	}).Error)
	require.NoError(t, platform.DB.Create(&model.Message{
		SenderID: 2, ReceiverID: 1, MessageKN: "ಹೇಗಿದ್ದೀರಿ?", MessageEN: "How are you?",
	}).Error)

	chat := &ChatService{}
	patient := &model.User{ID: 1, Role: model.RolePatient}
	doctor := &model.User{ID: 2, Role: model.RoleDoctor}

	patientView, err := chat.GetThread(patient, 2)
	require.NoError(t, err)
	require.Len(t, patientView, 2)
	assert.Equal(t, "ನಮಸ್ಕಾರ", patientView[0].Text)
	assert.Equal(t, "ಹೇಗಿದ್ದೀರಿ?", patientView[1].Text)

	doctorView, err := chat.GetThread(doctor, 1)
	require.NoError(t, err)
	require.Len(t, doctorView, 2)
	assert.Equal(t, "Hello", doctorView[0].Text)
	assert.Equal(t, "How are you?", doctorView[1].Text)

	// same input, same output
	again, err := chat.GetThread(patient, 2)
	require.NoError(t, err)
	assert.Equal(t, patientView, again)
}

func TestThreadOrderingWithTimestampTies(t *testing.T) {
	setupTestDB(t)
	ts := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, platform.DB.Create(&model.Message{
			SenderID:   1,
			ReceiverID: 2,
			MessageEN:  text,
			MessageKN:  text,
			CreatedAt:  ts,
		}).Error)
	}

	messages, err := model.ListThread(2, 1)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].MessageEN)
	assert.Equal(t, "second", messages[1].MessageEN)
	assert.Equal(t, "third", messages[2].MessageEN)
	assert.True(t, messages[0].ID < messages[1].ID && messages[1].ID < messages[2].ID)
}

func TestThreadExcludesOtherPairs(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, platform.DB.Create(&model.Message{
		SenderID: 1, ReceiverID: 2, MessageEN: "ours", MessageKN: "ours",
	}).Error)
	require.NoError(t, platform.DB.Create(&model.Message{
		SenderID: 1, ReceiverID: 3, MessageEN: "theirs", MessageKN: "theirs",
	}).Error)

	messages, err := model.ListThread(1, 2)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "ours", messages[0].MessageEN)
}
