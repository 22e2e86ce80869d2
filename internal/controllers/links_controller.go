package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shrtr-be/internal/models"
	"shrtr-be/internal/service"
)

type LinksController struct {
	linkService service.LinkService
}

func NewLinksController(linkService service.LinkService) *LinksController {
	return &LinksController{
		linkService: linkService,
	}
}

// currentUserID returns the authenticated user's id set by the auth middleware
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		c.Abort()
		return "", false
	}
	return userID.(string), true
}

// CreateLink handles POST /api/v1/links
func (lc *LinksController) CreateLink(c *gin.Context) {
	var req models.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	response, err := lc.linkService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrShortCodeExhausted) {
			c.JSON(http.StatusConflict, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create link",
		})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetLinks handles GET /api/v1/links - returns all links owned by the caller
func (lc *LinksController) GetLinks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	links, err := lc.linkService.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list links",
		})
		return
	}

	c.JSON(http.StatusOK, links)
}

// GetLink handles GET /api/v1/links/:id
func (lc *LinksController) GetLink(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	link, err := lc.linkService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Link not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get link",
		})
		return
	}

	c.JSON(http.StatusOK, link)
}

// DeleteLink handles DELETE /api/v1/links/:id
func (lc *LinksController) DeleteLink(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	err := lc.linkService.Delete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Link not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete link",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Link deleted successfully",
	})
}

// GetLinkMetrics handles GET /api/v1/links/:id/metrics?from=YYYY-MM-DD&to=YYYY-MM-DD
// Returns the per-day visit counts over the inclusive date range, ascending.
func (lc *LinksController) GetLinkMetrics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid 'from' date. Use ISO format (e.g. 2024-12-31)",
		})
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid 'to' date. Use ISO format (e.g. 2024-12-31)",
		})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "'to' must not be before 'from'",
		})
		return
	}

	metrics, err := lc.linkService.Metrics(c.Request.Context(), userID, c.Param("id"), from, to)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Link not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get link metrics",
		})
		return
	}

	c.JSON(http.StatusOK, metrics)
}
