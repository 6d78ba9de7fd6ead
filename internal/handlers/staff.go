package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gastropro/backoffice/internal/services"
	"github.com/gastropro/backoffice/pkg/response"
)

// StaffHandler exposes shift reminders addressed to individual staff members.
type StaffHandler struct {
	service *services.StaffService
}

// NewStaffHandler constructs a staff handler.
func NewStaffHandler(service *services.StaffService) *StaffHandler {
	return &StaffHandler{service: service}
}

// ShiftReminder raises a shift_reminder for the staff member.
func (h *StaffHandler) ShiftReminder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload services.ShiftReminderInput
	if !bindAndValidate(c, &payload) {
		return
	}

	result, err := h.service.SendShiftReminder(requestContext(c), id, payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusCreated
	if result.Suppressed {
		status = http.StatusOK
	}
	response.Success(c, status, result)
}
