package service

import (
	"fmt"
	"net/smtp"
	"os"
	"time"

	"arogyachat/model"

	"github.com/jordan-wright/email"
)

// ReminderService mails each doctor a summary of their next-day
// appointments from the daily cron. SendMail is a field so tests can
// swap the SMTP transport out.
type ReminderService struct {
	SendMail func(to, subject, body string) error
}

func NewReminderService() *ReminderService {
	return &ReminderService{SendMail: sendSMTPMail}
}

// SendAppointmentReminders groups tomorrow's appointments by doctor and
// sends one mail per doctor. A failed doctor does not stop the others;
// the count of delivered mails is returned.
func (s *ReminderService) SendAppointmentReminders() (int, error) {
	logger.Infof("[%s] Start scheduled task SendAppointmentReminders", "scheduled task")
	startTime := time.Now()

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	appointments, err := model.ListAppointmentsByDate(tomorrow)
	if err != nil {
		return 0, fmt.Errorf("failed to list reminder appointments: %w", err)
	}

	byDoctor := make(map[uint][]model.Appointment)
	for _, a := range appointments {
		byDoctor[a.DoctorID] = append(byDoctor[a.DoctorID], a)
	}

	sent := 0
	for doctorID, list := range byDoctor {
		doctor, err := model.GetUserByID(doctorID)
		if err != nil {
			logger.Warnf("[%s] doctor %d lookup failed, %s", "scheduled task", doctorID, err)
			continue
		}

		body := fmt.Sprintf("You have %d appointment(s) on %s:\n\n", len(list), tomorrow)
		for _, a := range list {
			patient, err := model.GetUserByID(a.PatientID)
			name := "unknown patient"
			if err == nil {
				name = patient.Name
			}
			body += fmt.Sprintf("- %s: %s (%s)\n", name, a.Reason, a.Status)
		}

		if err := s.SendMail(doctor.Email, "Appointments for "+tomorrow, body); err != nil {
			logger.Warnf("[%s] reminder mail to %s failed, %s", "scheduled task", doctor.Email, err)
			continue
		}
		sent++
	}

	logger.Infof("[%s] Finished scheduled task SendAppointmentReminders, %d mail(s) in %v",
		"scheduled task", sent, time.Since(startTime))
	return sent, nil
}

func sendSMTPMail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	password := os.Getenv("SMTP_PASSWORD")

	e := email.NewEmail()
	e.From = user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if err := e.Send(host+":"+port, smtp.PlainAuth("", user, password, host)); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
