package model

import (
	"fmt"
	"time"

	"arogyachat/platform"
)

// Message is one bilingual chat turn. Both variants are written in a single
// insert; a committed row never has an empty side. Messages are immutable.
type Message struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID   uint      `json:"sender_id" gorm:"index:idx_sender_receiver_created_at"`
	ReceiverID uint      `json:"receiver_id" gorm:"index:idx_sender_receiver_created_at"`
	MessageEN  string    `gorm:"type:text;not null" json:"message_en"`
	MessageKN  string    `gorm:"type:text;not null" json:"message_kn"`
	CreatedAt  time.Time `json:"created_at" gorm:"index:idx_sender_receiver_created_at"`
}

func AppendMessage(msg *Message) error {
	db := platform.DB
	if err := db.Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// ListThread returns every message exchanged between the two users, oldest
// first. Equal timestamps fall back to insertion order via the id.
func ListThread(userA, userB uint) ([]Message, error) {
	db := platform.DB
	var messages []Message
	err := db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at").
		Order("id").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list thread: %w", err)
	}
	return messages, nil
}
