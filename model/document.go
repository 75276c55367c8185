package model

import (
	"errors"
	"fmt"
	"time"

	"arogyachat/platform"

	"gorm.io/gorm"
)

// Document is a patient-uploaded file. Filepath is the server-local
// location and never leaves the API; clients retrieve the file through
// the download endpoint.
type Document struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID  uint      `gorm:"index" json:"patient_id"`
	Filename   string    `gorm:"type:varchar(255)" json:"filename"`
	Filepath   string    `gorm:"type:varchar(512)" json:"-"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func CreateDocument(doc *Document) error {
	db := platform.DB
	if err := db.Create(doc).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

func GetDocumentByID(id uint) (*Document, error) {
	var doc Document
	db := platform.DB
	if err := db.First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("document not found")
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &doc, nil
}

func ListDocumentsByPatient(patientID uint) ([]Document, error) {
	db := platform.DB
	var docs []Document
	if err := db.Where("patient_id = ?", patientID).
		Order("uploaded_at DESC").
		Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}
