package model

import (
	"errors"
	"fmt"
	"time"

	"arogyachat/platform"

	"gorm.io/gorm"
)

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

type Language string

const (
	LanguageKannada Language = "kn"
	LanguageEnglish Language = "en"
)

// roleLanguages is the single place the role/language coupling lives.
// Patients write and read Kannada, doctors write and read English.
var roleLanguages = map[Role]Language{
	RolePatient: LanguageKannada,
	RoleDoctor:  LanguageEnglish,
}

func (r Role) Valid() bool {
	_, ok := roleLanguages[r]
	return ok
}

// Language returns the language this role authors in and is shown.
func (r Role) Language() Language {
	return roleLanguages[r]
}

// User is a patient or doctor account. Role is fixed at registration.
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);not null;unique" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      Role      `gorm:"type:varchar(32);not null" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func CreateUser(user *User) error {
	db := platform.DB
	if err := db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func GetUserByEmail(email string) (*User, error) {
	var user User
	db := platform.DB
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &user, nil
}

func GetUserByID(id uint) (*User, error) {
	var user User
	db := platform.DB
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &user, nil
}

// ListUsersByRole backs the booking and chat directories
// (patients pick a doctor, doctors pick a patient).
func ListUsersByRole(role Role) ([]User, error) {
	db := platform.DB
	var users []User
	if err := db.Where("role = ?", role).Order("name").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func UserExists(email string) bool {
	var count int64
	db := platform.DB
	if err := db.Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		platform.Logger.Warnf("Failed to check user existence: %v", err)
		return false
	}
	return count > 0
}
