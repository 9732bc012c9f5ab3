package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"text-summary/dto"
	"text-summary/services"
)

// CreateSummaryHandler godoc
// @Summary      Create summary record
// @Description  Persists a record for the URL and triggers asynchronous generation
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.CreateSummaryResponse
// @Router       /summaries [post]
func CreateSummaryHandler(svc *services.SummaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateSummaryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		d, err := svc.Create(c.Request.Context(), req.URL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, dto.CreateSummaryResponse{ID: d.ID, URL: d.URL})
	}
}

// GetSummaryHandler godoc
// @Summary      Get summary by id
// @Produce      json
// @Success      200  {object}  dto.SummaryDTO
// @Router       /summaries/{id} [get]
func GetSummaryHandler(svc *services.SummaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := summaryID(c)
		if !ok {
			return
		}
		d, err := svc.GetByID(c.Request.Context(), id)
		if err != nil {
			respondLookupError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// ListSummariesHandler godoc
// @Summary      List summaries
// @Produce      json
// @Success      200  {array}  dto.SummaryDTO
// @Router       /summaries [get]
func ListSummariesHandler(svc *services.SummaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// UpdateSummaryHandler godoc
// @Summary      Update summary record
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.SummaryDTO
// @Router       /summaries/{id} [put]
func UpdateSummaryHandler(svc *services.SummaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := summaryID(c)
		if !ok {
			return
		}
		var req dto.UpdateSummaryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		d, err := svc.Update(c.Request.Context(), id, req.URL, req.Summary)
		if err != nil {
			respondLookupError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// DeleteSummaryHandler godoc
// @Summary      Delete summary record
// @Produce      json
// @Success      200  {object}  dto.SummaryDTO
// @Router       /summaries/{id} [delete]
func DeleteSummaryHandler(svc *services.SummaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := summaryID(c)
		if !ok {
			return
		}
		d, err := svc.Delete(c.Request.Context(), id)
		if err != nil {
			respondLookupError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// summaryID parses the :id path param. Non-numeric or non-positive ids
// read as records that cannot exist.
func summaryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return id, true
}

func respondLookupError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
