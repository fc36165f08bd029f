package roster

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	roster "github.com/skateapp/roster-sync/repos/roster"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Roster is the interface for the roster service.
type Roster interface {
	GetRoster(c *gin.Context) ([]roster.Player, int64, error)
	ReplaceRoster(c *gin.Context, players []roster.Player, expected int64) (int64, error)
	LookupByEmail(c *gin.Context, email string) (*roster.Player, error)
	Respond(c *gin.Context, email string, status roster.RsvpStatus) (*roster.Player, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Roster

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/roster", h.getRosterHandler)
	r.POST("/roster", h.postRosterHandler)
	r.GET("/rsvp", h.getRsvpHandler)
	r.POST("/rsvp", h.postRsvpHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) getRosterHandler(c *gin.Context) {
	players, version, err := s.Service.GetRoster(c)
	if err != nil {
		abortStoreError(c, err)
		return
	}

	c.Header(VersionHeader, strconv.FormatInt(version, 10))
	c.JSON(http.StatusOK, players)
}

func (s *httpHandler) postRosterHandler(c *gin.Context) {
	var players []roster.Player
	if err := c.ShouldBindJSON(&players); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid JSON body"})
		c.Abort()
		return
	}

	expected := int64(-1)
	if raw := c.GetHeader(VersionHeader); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s header", VersionHeader)})
			c.Abort()
			return
		}
		expected = parsed
	}

	version, err := s.Service.ReplaceRoster(c, players, expected)
	if err != nil {
		if errors.Is(err, roster.ErrVersionMismatch) {
			c.JSON(http.StatusConflict, gin.H{"error": "Stale roster version"})
			c.Abort()
			return
		}
		abortStoreError(c, err)
		return
	}

	c.Header(VersionHeader, strconv.FormatInt(version, 10))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *httpHandler) getRsvpHandler(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email parameter"})
		c.Abort()
		return
	}

	player, err := s.Service.LookupByEmail(c, email)
	if err != nil {
		abortRsvpError(c, err)
		return
	}

	c.JSON(http.StatusOK, RsvpResponse{
		ID:       player.ID,
		Name:     player.Name,
		Email:    player.Email,
		Position: player.Position,
		Status:   player.Status,
	})
}

func (s *httpHandler) postRsvpHandler(c *gin.Context) {
	var request RsvpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		c.Abort()
		return
	}

	if request.Email == "" || request.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email or status"})
		c.Abort()
		return
	}

	player, err := s.Service.Respond(c, request.Email, roster.RsvpStatus(request.Status))
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be ACCEPTED or DECLINED"})
			c.Abort()
			return
		}
		abortRsvpError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"name":    player.Name,
		"status":  player.Status,
	})
}

func abortRsvpError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, roster.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Roster is empty or not initialized"})
	case errors.Is(err, roster.ErrPlayerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Player not found on roster"})
	default:
		abortStoreError(c, err)
		return
	}
	c.Abort()
}

func abortStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, roster.ErrMalformed):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid roster data"})
	case errors.Is(err, roster.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Roster storage unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
	c.Abort()
}
