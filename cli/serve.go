package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/uvzlabs/launchpad/config"
	"github.com/uvzlabs/launchpad/course"
	"github.com/uvzlabs/launchpad/generate"
	"github.com/uvzlabs/launchpad/logger"
	"github.com/uvzlabs/launchpad/publish"
	"github.com/uvzlabs/launchpad/wizard"
)

type advanceRequest struct {
	Keywords        string      `json:"keywords"`
	UVZ             *course.UVZ `json:"uvz"`
	SelectedConcept *int        `json:"selected_concept"`
}

type sessionResponse struct {
	Step            int                     `json:"step"`
	StepName        string                  `json:"step_name"`
	InFlight        bool                    `json:"in_flight"`
	Concepts        []course.Concept        `json:"concepts,omitempty"`
	SelectedConcept *int                    `json:"selected_concept,omitempty"`
	Content         *course.Content         `json:"content,omitempty"`
	Published       *course.PublishedBundle `json:"published,omitempty"`
	Assets          *course.LaunchAssets    `json:"assets,omitempty"`
	Error           string                  `json:"error,omitempty"`
}

func runServe(cfg *config.Config) error {
	logger.InitLogger()
	log := logger.GetLogger()

	machine, err := buildMachine(cfg, publish.NullStepPublisher{}, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: NewRouter(machine, log),
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Launchpad listening on " + cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errChan:
		return err
	case <-quit:
	}

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// NewRouter exposes the wizard machine over HTTP. The machine keeps a
// single session, so the API mirrors the TUI: inspect, advance, reset.
func NewRouter(machine *wizard.Machine, log logger.Logger) *gin.Engine {
	if log == nil {
		log = logger.NewNullLogger()
	}
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/session", func(c *gin.Context) {
		c.JSON(http.StatusOK, toResponse(machine))
	})

	r.POST("/session/advance", func(c *gin.Context) {
		// An empty body is fine for the publish and launch steps.
		var req advanceRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
				return
			}
		}

		in := wizard.Input{
			Descriptor:      course.Descriptor{Keywords: req.Keywords, UVZ: req.UVZ},
			SelectedConcept: req.SelectedConcept,
		}
		if err := machine.Advance(c.Request.Context(), in); err != nil {
			log.Warn("Advance failed: " + err.Error())
			c.JSON(statusFor(err), toResponse(machine))
			return
		}
		c.JSON(http.StatusOK, toResponse(machine))
	})

	r.POST("/session/reset", func(c *gin.Context) {
		machine.Reset()
		c.JSON(http.StatusOK, toResponse(machine))
	})

	r.POST("/session/error/dismiss", func(c *gin.Context) {
		machine.DismissError()
		c.JSON(http.StatusOK, toResponse(machine))
	})

	return r
}

func toResponse(machine *wizard.Machine) sessionResponse {
	snap := machine.Snapshot()
	resp := sessionResponse{
		Step:            int(snap.Step),
		StepName:        snap.Step.String(),
		InFlight:        machine.InFlight(),
		Concepts:        snap.Concepts,
		SelectedConcept: snap.SelectedConcept,
		Content:         snap.Content,
		Published:       snap.Published,
		Assets:          snap.Assets,
	}
	if snap.Err != nil {
		resp.Error = snap.Err.Error()
	}
	return resp
}

func statusFor(err error) int {
	var validation *wizard.ValidationError
	var generation *generate.GenerationFailure
	var publication *publish.PublicationFailure
	switch {
	case errors.Is(err, wizard.ErrBusy):
		return http.StatusConflict
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	case errors.As(err, &generation), errors.As(err, &publication):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
