package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/openedx/programs-admin/internal/app/models/dto"
	"github.com/openedx/programs-admin/internal/app/services"
	"github.com/openedx/programs-admin/internal/app/views/programdetails"
	"github.com/openedx/programs-admin/internal/middleware"
	"github.com/openedx/programs-admin/internal/pkg/apperrors"
	"github.com/openedx/programs-admin/internal/pkg/metrics"
)

// ViewOutcomeHeader reports how a view event was handled
const ViewOutcomeHeader = "X-View-Outcome"

// ProgramPageController serves the program details page and its events
type ProgramPageController struct {
	programService services.ProgramService
	sessions       *programdetails.SessionStore
	metrics        *metrics.Metrics
	logger         zerolog.Logger
}

// NewProgramPageController creates a new ProgramPageController. m may be nil.
func NewProgramPageController(
	programService services.ProgramService,
	sessions *programdetails.SessionStore,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *ProgramPageController {
	return &ProgramPageController{
		programService: programService,
		sessions:       sessions,
		metrics:        m,
		logger:         logger,
	}
}

func eventURL(viewID string) string {
	return "/programs/views/" + viewID + "/events"
}

func liveURL(programID int64) string {
	return fmt.Sprintf("/programs/%d/live", programID)
}

// ShowProgram renders the editable program details page. Every load opens a new view
// session; unsaved edits of another tab are not carried over.
func (c *ProgramPageController) ShowProgram(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "program")
	if !ok {
		return
	}
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.String(http.StatusUnauthorized, "Authentication required")
		return
	}

	program, err := c.programService.GetProgram(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrProgramNotFound) {
			ctx.String(http.StatusNotFound, "Program not found")
			return
		}
		c.logger.Error().Err(err).Int64("programID", id).Msg("Failed to load program page")
		ctx.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	view := programdetails.New(program,
		programdetails.NewServiceStore(c.programService),
		programdetails.WithOwner(user.ID),
		programdetails.WithLogger(c.logger),
	)

	var buf bytes.Buffer
	err = view.RenderPage(&buf, programdetails.PageData{
		Username: user.Username,
		LiveURL:  liveURL(program.ID),
		EventURL: eventURL(view.ID()),
	})
	if err != nil {
		c.logger.Error().Err(err).Int64("programID", id).Msg("Failed to render program page")
		ctx.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.sessions.Put(view)
	ctx.Header("Cache-Control", "no-store")
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// HandleEvent applies one UI event to the view session and answers with the re-rendered
// #program-details fragment. Rejected values and storage failures are reported inside the
// fragment with status 200; an expired session answers 410 so the page reloads.
func (c *ProgramPageController) HandleEvent(ctx *gin.Context) {
	view, ok := c.sessions.Get(ctx.Param("viewId"))
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusGone, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "This page has expired, reload it to continue")))
		return
	}

	user, ok := middleware.CurrentUser(ctx)
	if !ok || user.ID != view.Owner() {
		ctx.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")))
		return
	}

	var req dto.ViewEventRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	origin := services.WithOrigin(ctx.Request.Context(), view.ID())
	err := view.Handle(origin, programdetails.Event{
		Type:   programdetails.EventType(req.Type),
		Field:  req.Field,
		Value:  req.Value,
		Target: req.Target,
	})

	outcome := c.classify(view, req.Type, err)
	c.observe(req.Type, outcome)

	var buf bytes.Buffer
	if err := view.Render(&buf); err != nil {
		c.logger.Error().Err(err).Str("viewID", view.ID()).Msg("Failed to render program details")
		ctx.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx.Header(ViewOutcomeHeader, outcome)
	ctx.Header("Cache-Control", "no-store")
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// classify maps a Handle result onto a metrics outcome. Stale events (a row already gone,
// a field no longer editing) are answered with the current fragment so the page resyncs.
func (c *ProgramPageController) classify(view *programdetails.View, eventType string, err error) string {
	var validationErr *programdetails.ValidationError
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.As(err, &validationErr):
		return metrics.OutcomeInvalid
	case errors.Is(err, apperrors.ErrPersistenceFailed):
		return metrics.OutcomePersistErr
	default:
		c.logger.Debug().
			Err(err).
			Str("viewID", view.ID()).
			Str("event", eventType).
			Msg("Ignored stale program details event")
		return metrics.OutcomeError
	}
}

func (c *ProgramPageController) observe(eventType, outcome string) {
	if c.metrics != nil {
		c.metrics.ObserveViewEvent(eventType, outcome)
	}
}
