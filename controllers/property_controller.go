package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"real-estate-api/services"
)

// PropertyRequest represents the request body for creating or updating a
// listing
type PropertyRequest struct {
	Title       string  `json:"title" binding:"required"`
	Location    string  `json:"location"`
	Price       float64 `json:"price" binding:"gte=0"`
	Description string  `json:"description"`
}

// PropertyController exposes the property listing endpoints
type PropertyController struct {
	properties *services.PropertyService
}

// NewPropertyController creates a new property controller
func NewPropertyController(properties *services.PropertyService) *PropertyController {
	return &PropertyController{properties: properties}
}

// Create handles POST /properties
func (ctrl *PropertyController) Create(c *gin.Context) {
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	property, err := ctrl.properties.Create(c.Request.Context(), services.PropertyInput{
		Title:       req.Title,
		Location:    req.Location,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    property,
	})
}

// List handles GET /properties
func (ctrl *PropertyController) List(c *gin.Context) {
	properties, err := ctrl.properties.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    properties,
	})
}

// GetByID handles GET /properties/:id
func (ctrl *PropertyController) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	property, err := ctrl.properties.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    property,
	})
}

// Update handles PUT /properties/:id
func (ctrl *PropertyController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	property, err := ctrl.properties.Update(c.Request.Context(), id, services.PropertyInput{
		Title:       req.Title,
		Location:    req.Location,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    property,
	})
}

// Delete handles DELETE /properties/:id - listings are hard-deleted
func (ctrl *PropertyController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.properties.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage handles POST /properties/:id/image - attaches a PNG photo to
// the listing
func (ctrl *PropertyController) UploadImage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Image file is required",
			},
		})
		return
	}

	property, err := ctrl.properties.AttachImage(c.Request.Context(), id, fileHeader)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    property,
	})
}
