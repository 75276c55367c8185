package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"arogyachat/model"
	"arogyachat/platform"
)

// ErrTranslationFailed marks a send that was aborted because the gateway
// could not produce the second language variant. Nothing is persisted in
// that case; a half-translated message must never reach the store.
var ErrTranslationFailed = errors.New("translation failed")

var logger = platform.Logger

// ChatService implements the bilingual patient/doctor chat. Each stored
// message carries both language variants; each viewer only ever sees the
// variant matching their role.
type ChatService struct {
	Translator *TranslateService
}

// ThreadEntry is one message projected into the viewer's language.
type ThreadEntry struct {
	SenderID  uint      `json:"sender_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// SendMessage translates the raw text into the missing variant and persists
// both in a single insert. The sender's role decides the source language.
// Empty input is a no-op. A gateway failure aborts the send with
// ErrTranslationFailed and leaves the store untouched.
func (s *ChatService) SendMessage(sender *model.User, receiverID uint, text string) (*model.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	var messageEN, messageKN string
	switch sender.Role.Language() {
	case model.LanguageKannada:
		messageKN = text
		translated, err := s.Translator.Translate(text, KNToEN)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTranslationFailed, err)
		}
		messageEN = translated
	case model.LanguageEnglish:
		messageEN = text
		translated, err := s.Translator.Translate(text, ENToKN)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTranslationFailed, err)
		}
		messageKN = translated
	default:
		return nil, fmt.Errorf("no language mapped for role %q", sender.Role)
	}

	msg := &model.Message{
		SenderID:   sender.ID,
		ReceiverID: receiverID,
		MessageEN:  messageEN,
		MessageKN:  messageKN,
	}
	if err := model.AppendMessage(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// GetThread returns the conversation with peerID projected into the
// viewer's language, oldest first.
func (s *ChatService) GetThread(viewer *model.User, peerID uint) ([]ThreadEntry, error) {
	messages, err := model.ListThread(viewer.ID, peerID)
	if err != nil {
		return nil, err
	}

	entries := make([]ThreadEntry, 0, len(messages))
	for _, msg := range messages {
		entries = append(entries, ThreadEntry{
			SenderID:  msg.SenderID,
			Text:      ProjectMessage(&msg, viewer.Role),
			CreatedAt: msg.CreatedAt,
		})
	}
	return entries, nil
}

// ProjectMessage picks the language variant a viewer of the given role is
// shown. The other variant is discarded, including for the viewer's own
// historical messages.
func ProjectMessage(msg *model.Message, viewerRole model.Role) string {
	if viewerRole.Language() == model.LanguageKannada {
		return msg.MessageKN
	}
	return msg.MessageEN
}
