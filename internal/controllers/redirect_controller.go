package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shrtr-be/internal/logger"
	"shrtr-be/internal/service"
)

type RedirectController struct {
	linkService service.LinkService
}

func NewRedirectController(linkService service.LinkService) *RedirectController {
	return &RedirectController{
		linkService: linkService,
	}
}

// Redirect handles GET /:shortCode - resolves a short code and redirects to
// the original URL. 404 when the code is unknown, 429 when the owner's
// redirect budget is exhausted.
func (rc *RedirectController) Redirect(c *gin.Context) {
	shortCode := c.Param("shortCode")
	requestTime := time.Now()

	originalURL, err := rc.linkService.Resolve(c.Request.Context(), shortCode, requestTime)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Short URL not found",
			})
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
		default:
			logger.Error().Err(err).Str("short_code", shortCode).Msg("Failed to resolve short code")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to resolve short URL",
			})
		}
		return
	}

	// 302 so clients keep coming back through the redirect endpoint; a 301
	// would let browsers cache the target and bypass rate limiting entirely
	c.Redirect(http.StatusFound, originalURL)
}
