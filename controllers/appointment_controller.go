package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"real-estate-api/services"
)

// AppointmentRequest represents the request body for creating or updating an
// appointment
type AppointmentRequest struct {
	BuyerID     uuid.UUID `json:"buyer_id" binding:"required"`
	SellerID    uuid.UUID `json:"seller_id" binding:"required"`
	PropertyID  uuid.UUID `json:"property_id" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Notes       string    `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateStatusRequest represents the request body for a status transition
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AppointmentController exposes the appointment booking endpoints
type AppointmentController struct {
	appointments *services.AppointmentService
}

// NewAppointmentController creates a new appointment controller
func NewAppointmentController(appointments *services.AppointmentService) *AppointmentController {
	return &AppointmentController{appointments: appointments}
}

// Create handles POST /appointments
func (ctrl *AppointmentController) Create(c *gin.Context) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	appointment, err := ctrl.appointments.Create(c.Request.Context(), services.AppointmentInput{
		BuyerID:     req.BuyerID,
		SellerID:    req.SellerID,
		PropertyID:  req.PropertyID,
		ScheduledAt: req.ScheduledAt,
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    appointment,
	})
}

// List handles GET /appointments
func (ctrl *AppointmentController) List(c *gin.Context) {
	appointments, err := ctrl.appointments.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    appointments,
	})
}

// GetByID handles GET /appointments/:id
func (ctrl *AppointmentController) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	appointment, err := ctrl.appointments.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    appointment,
	})
}

// Update handles PUT /appointments/:id - mutates scheduling and notes only,
// never the status
func (ctrl *AppointmentController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	appointment, err := ctrl.appointments.Update(c.Request.Context(), id, services.AppointmentInput{
		BuyerID:     req.BuyerID,
		SellerID:    req.SellerID,
		PropertyID:  req.PropertyID,
		ScheduledAt: req.ScheduledAt,
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    appointment,
	})
}

// UpdateStatus handles PATCH /appointments/:id/status - applies an explicit
// transition from the status table
func (ctrl *AppointmentController) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	appointment, err := ctrl.appointments.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    appointment,
	})
}

// Delete handles DELETE /appointments/:id - soft delete, the record stays
// with status CANCELLED
func (ctrl *AppointmentController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if _, err := ctrl.appointments.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseIDParam parses the :id path parameter, writing a validation response
// on failure
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Invalid id parameter",
			},
		})
		return 0, false
	}
	return uint(id), true
}
