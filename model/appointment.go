package model

import (
	"errors"
	"fmt"
	"time"

	"arogyachat/platform"

	"gorm.io/gorm"
)

const (
	AppointmentPending   = "Pending"
	AppointmentConfirmed = "Confirmed"
	AppointmentCancelled = "Cancelled"
)

type Appointment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID uint      `gorm:"index" json:"patient_id"`
	DoctorID  uint      `gorm:"index" json:"doctor_id"`
	Date      string    `gorm:"type:varchar(64)" json:"date"`
	Reason    string    `gorm:"type:text" json:"reason"`
	Status    string    `gorm:"type:varchar(32)" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// AppointmentView is an appointment joined with the counterparty's name,
// shaped for the listing endpoints.
type AppointmentView struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
	Status string `json:"status"`
}

func CreateAppointment(appointment *Appointment) error {
	db := platform.DB
	if err := db.Create(appointment).Error; err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// ListAppointmentsForPatient shows the doctor's name per row.
func ListAppointmentsForPatient(patientID uint) ([]AppointmentView, error) {
	db := platform.DB
	var views []AppointmentView
	err := db.Model(&Appointment{}).
		Select("appointments.id, users.name, appointments.date, appointments.reason, appointments.status").
		Joins("JOIN users ON users.id = appointments.doctor_id").
		Where("appointments.patient_id = ?", patientID).
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return views, nil
}

// ListAppointmentsForDoctor shows the patient's name per row.
func ListAppointmentsForDoctor(doctorID uint) ([]AppointmentView, error) {
	db := platform.DB
	var views []AppointmentView
	err := db.Model(&Appointment{}).
		Select("appointments.id, users.name, appointments.date, appointments.reason, appointments.status").
		Joins("JOIN users ON users.id = appointments.patient_id").
		Where("appointments.doctor_id = ?", doctorID).
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return views, nil
}

func GetAppointmentByID(id uint) (*Appointment, error) {
	var appointment Appointment
	db := platform.DB
	if err := db.First(&appointment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("appointment not found")
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &appointment, nil
}

func UpdateAppointmentStatus(id uint, status string) error {
	db := platform.DB
	if err := db.Model(&Appointment{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	return nil
}

// ListAppointmentsByDate backs the daily reminder mail.
func ListAppointmentsByDate(date string) ([]Appointment, error) {
	db := platform.DB
	var appointments []Appointment
	if err := db.Where("date = ? AND status <> ?", date, AppointmentCancelled).
		Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments by date: %w", err)
	}
	return appointments, nil
}
