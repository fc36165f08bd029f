package suggest

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Suggest is the interface for the suggestion service.
type Suggest interface {
	DraftEmail(c *gin.Context, request DraftRequest) (string, bool)
	SplitTeams(c *gin.Context, players []SplitPlayer) (TeamSplit, bool)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Suggest

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/email-draft", h.emailDraftHandler)
	r.POST("/team-split", h.teamSplitHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) emailDraftHandler(c *gin.Context) {
	var request DraftRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		c.Abort()
		return
	}

	text, degraded := s.Service.DraftEmail(c, request)
	response := gin.H{"text": text}
	if degraded {
		response["error"] = "AI generation failed, using fallback."
	}
	c.JSON(http.StatusOK, response)
}

func (s *httpHandler) teamSplitHandler(c *gin.Context) {
	players, ok := bindPlayers(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		c.Abort()
		return
	}

	split, degraded := s.Service.SplitTeams(c, players)
	if degraded {
		c.JSON(http.StatusOK, gin.H{
			"white": split.White,
			"dark":  split.Dark,
			"error": "AI balancing failed, using simple split.",
		})
		return
	}
	c.JSON(http.StatusOK, split)
}

// bindPlayers accepts either a bare player array or the wrapped
// {"players": [...]} shape the dashboard sends.
func bindPlayers(c *gin.Context) ([]SplitPlayer, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, false
	}

	var players []SplitPlayer
	if err := json.Unmarshal(body, &players); err == nil {
		return players, true
	}

	var wrapped struct {
		Players []SplitPlayer `json:"players"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil {
		return wrapped.Players, true
	}
	return nil, false
}
