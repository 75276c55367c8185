package controller

import (
	"net/http"
	"strconv"

	"arogyachat/model"

	"github.com/gin-gonic/gin"
)

type AppointmentController struct{}

// Book creates a pending appointment for the calling patient.
func (a AppointmentController) Book(c *gin.Context) {
	userID, role := currentUser(c)

	if role != model.RolePatient {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only patients can book appointments"})
		return
	}

	var input struct {
		DoctorID uint   `json:"doctor_id" binding:"required"`
		Date     string `json:"date" binding:"required"`
		Reason   string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	doctor, err := model.GetUserByID(input.DoctorID)
	if err != nil || doctor.Role != model.RoleDoctor {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown doctor"})
		return
	}

	appointment := &model.Appointment{
		PatientID: userID,
		DoctorID:  input.DoctorID,
		Date:      input.Date,
		Reason:    input.Reason,
		Status:    model.AppointmentPending,
	}
	if err := model.CreateAppointment(appointment); err != nil {
		logger.Warnf("[%s] Failed to book appointment: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to book appointment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": appointment.ID, "status": appointment.Status})
}

// Confirm lets the assigned doctor accept a pending appointment.
func (a AppointmentController) Confirm(c *gin.Context) {
	userID, role := currentUser(c)

	if role != model.RoleDoctor {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only doctors can confirm appointments"})
		return
	}

	appointment, ok := appointmentFromParam(c)
	if !ok {
		return
	}
	if appointment.DoctorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your appointment"})
		return
	}

	if err := model.UpdateAppointmentStatus(appointment.ID, model.AppointmentConfirmed); err != nil {
		logger.Warnf("[%s] Failed to confirm appointment: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm appointment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": appointment.ID, "status": model.AppointmentConfirmed})
}

// Cancel lets either party cancel their own appointment.
func (a AppointmentController) Cancel(c *gin.Context) {
	userID, role := currentUser(c)

	appointment, ok := appointmentFromParam(c)
	if !ok {
		return
	}

	owns := appointment.DoctorID == userID
	if role == model.RolePatient {
		owns = appointment.PatientID == userID
	}
	if !owns {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your appointment"})
		return
	}

	if err := model.UpdateAppointmentStatus(appointment.ID, model.AppointmentCancelled); err != nil {
		logger.Warnf("[%s] Failed to cancel appointment: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel appointment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": appointment.ID, "status": model.AppointmentCancelled})
}

func appointmentFromParam(c *gin.Context) (*model.Appointment, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment id"})
		return nil, false
	}
	appointment, err := model.GetAppointmentByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return nil, false
	}
	return appointment, true
}

// List returns the caller's appointments with the counterparty's name.
func (a AppointmentController) List(c *gin.Context) {
	userID, role := currentUser(c)

	var (
		views []model.AppointmentView
		err   error
	)
	if role == model.RoleDoctor {
		views, err = model.ListAppointmentsForDoctor(userID)
	} else {
		views, err = model.ListAppointmentsForPatient(userID)
	}
	if err != nil {
		logger.Warnf("[%s] Failed to list appointments: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list appointments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": views})
}
