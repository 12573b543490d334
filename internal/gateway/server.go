package gateway

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"github.com/zhulik/pollcfg/internal/core"
	"github.com/zhulik/pollcfg/internal/polls"
	"github.com/zhulik/pollcfg/pkg/httpserver"
)

type createPollRequest struct {
	Title                 string              `json:"title"`
	Type                  core.PollType       `json:"type"`
	PollMethod            core.PollMethod     `json:"pollmethod"`
	OnehundredPercentBase core.PercentBase    `json:"onehundred_percent_base"`
	MajorityMethod        core.MajorityMethod `json:"majority_method"`
	Groups                []int               `json:"groups"`
}

type electronicVotingSetting struct {
	Enabled *bool `json:"enabled"`
}

type Server struct {
	*httpserver.Server

	polls    *polls.Service
	settings core.VotingSettings
}

// NewServer creates a new Server instance.
func NewServer(injector *do.Injector) (*Server, error) {
	config, err := do.Invoke[core.Config](injector)
	if err != nil {
		return nil, err
	}

	server, err := httpserver.NewServer(injector, "gateway.Server", config.HTTPPort())
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	pollsService, err := do.Invoke[*polls.Service](injector)
	if err != nil {
		return nil, err
	}

	settings, err := do.Invoke[core.VotingSettings](injector)
	if err != nil {
		return nil, err
	}

	srv := &Server{
		Server:   server,
		polls:    pollsService,
		settings: settings,
	}

	srv.Router.GET("/health", srv.HealthHandler)

	srv.Router.GET("/polls", srv.ListPollsHandler)
	srv.Router.POST("/polls", srv.CreatePollHandler)
	srv.Router.GET("/polls/:id", srv.GetPollHandler)
	srv.Router.PATCH("/polls/:id", srv.UpdatePollHandler)

	srv.Router.GET("/settings/electronic-voting", srv.GetElectronicVotingHandler)
	srv.Router.PUT("/settings/electronic-voting", srv.SetElectronicVotingHandler)

	return srv, nil
}

func (s *Server) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ListPollsHandler(c *gin.Context) {
	list, err := s.polls.List(c.Request.Context())
	if err != nil {
		s.handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, list)
}

func (s *Server) GetPollHandler(c *gin.Context) {
	poll, err := s.polls.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, poll)
}

func (s *Server) CreatePollHandler(c *gin.Context) {
	var req createPollRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})

		return
	}

	poll, err := s.polls.Create(c.Request.Context(), core.Poll{
		Title:                 req.Title,
		Type:                  req.Type,
		PollMethod:            req.PollMethod,
		OnehundredPercentBase: req.OnehundredPercentBase,
		MajorityMethod:        req.MajorityMethod,
		Groups:                req.Groups,
	})
	if err != nil {
		s.handleError(c, err)

		return
	}

	c.JSON(http.StatusCreated, poll)
}

func (s *Server) UpdatePollHandler(c *gin.Context) {
	var changes core.PollChanges

	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})

		return
	}

	poll, err := s.polls.Update(c.Request.Context(), c.Param("id"), changes)
	if err != nil {
		s.handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, poll)
}

func (s *Server) GetElectronicVotingHandler(c *gin.Context) {
	enabled, err := s.settings.ElectronicVotingEnabled(c.Request.Context())
	if err != nil {
		s.handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, electronicVotingSetting{Enabled: &enabled})
}

func (s *Server) SetElectronicVotingHandler(c *gin.Context) {
	var req electronicVotingSetting

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})

		return
	}

	if req.Enabled == nil {
		c.JSON(http.StatusBadRequest, gin.H{"enabled": "This field is required."})

		return
	}

	err := s.settings.SetElectronicVotingEnabled(c.Request.Context(), *req.Enabled)
	if err != nil {
		s.handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, req)
}

func (s *Server) handleError(c *gin.Context, err error) {
	var validationErr *core.ValidationError

	switch {
	case errors.As(err, &validationErr):
		if validationErr.Field != "" {
			c.JSON(http.StatusBadRequest, gin.H{validationErr.Field: validationErr.Detail})

			return
		}

		c.JSON(http.StatusBadRequest, gin.H{"detail": validationErr.Detail})
	case errors.Is(err, core.ErrPollNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	case errors.Is(err, core.ErrConcurrentUpdate):
		c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
	default:
		c.Error(err) //nolint:errcheck
	}
}
