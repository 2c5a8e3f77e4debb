package websocket

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/openedx/programs-admin/internal/app/models"
	"github.com/openedx/programs-admin/internal/app/models/dto"
	"github.com/openedx/programs-admin/internal/pkg/apperrors"
)

// ProgramFinder looks up the program a page subscribes to
type ProgramFinder interface {
	GetProgram(ctx context.Context, id int64) (*models.Program, error)
}

// Handler for WebSocket connections
type Handler struct {
	hub      *Hub
	programs ProgramFinder
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, programs ProgramFinder, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		programs: programs,
		logger:   logger,
	}
}

// HandleConnection upgrades the request to a WebSocket that receives a program_changed
// message whenever the program is modified.
func (h *Handler) HandleConnection(c *gin.Context) {
	programID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || programID <= 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid program ID").WithField("id")))
		return
	}

	userID := c.GetInt64("userID")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	if _, err := h.programs.GetProgram(c.Request.Context(), programID); err != nil {
		if errors.Is(err, apperrors.ErrProgramNotFound) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Program not found")))
			return
		}
		h.logger.Error().Err(err).Int64("programID", programID).Msg("Failed to load program for live updates")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Int64("programID", programID).
			Int64("userID", userID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:       h.hub,
		conn:      conn,
		send:      make(chan []byte, sendBufferSize),
		userID:    userID,
		programID: programID,
		logger:    h.logger,
	}
	if !h.hub.enqueue(h.hub.register, client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
