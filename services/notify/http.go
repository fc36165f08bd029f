package notify

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	resendRepo "github.com/skateapp/roster-sync/repos/resend"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Notify is the interface for the notification service.
type Notify interface {
	SendRegistration(c *gin.Context, request RegistrationRequest) (string, error)
	SendAnnouncement(c *gin.Context, request AnnouncementRequest) (*AnnouncementResult, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Notify

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/registration", h.registrationHandler)
	r.POST("/announcement", h.announcementHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) registrationHandler(c *gin.Context) {
	var request RegistrationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		c.Abort()
		return
	}

	emailID, err := s.Service.SendRegistration(c, request)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: name, email"})
		case errors.Is(err, resendRepo.ErrNotConfigured):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Email service not configured"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		}
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "emailId": emailID})
}

func (s *httpHandler) announcementHandler(c *gin.Context) {
	var request AnnouncementRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		c.Abort()
		return
	}

	result, err := s.Service.SendAnnouncement(c, request)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized: invalid admin secret"})
		case errors.Is(err, ErrNoRecipients):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No recipients provided"})
		case errors.Is(err, ErrMissingSession):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session details (date, time, location)"})
		case errors.Is(err, resendRepo.ErrNotConfigured):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Email service not configured"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		c.Abort()
		return
	}

	response := gin.H{
		"success":         len(result.Errors) == 0,
		"totalRecipients": result.TotalRecipients,
		"totalSent":       result.TotalSent,
	}
	code := http.StatusOK
	if len(result.Errors) > 0 {
		response["errors"] = result.Errors
		// Multi-Status, some batches failed.
		code = http.StatusMultiStatus
	}
	c.JSON(code, response)
}
