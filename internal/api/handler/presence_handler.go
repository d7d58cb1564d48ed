package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/visitorgate/visitor-admin/internal/core/ports"
)

// HeartbeatQueue is the interface the handler uses to enqueue heartbeats.
type HeartbeatQueue interface {
	Enqueue(hb ports.HeartbeatInput) error
}

// PresenceHandler handles heartbeat ingestion and the online counter.
type PresenceHandler struct {
	queue   HeartbeatQueue
	service ports.PresenceService
}

func NewPresenceHandler(queue HeartbeatQueue, service ports.PresenceService) *PresenceHandler {
	return &PresenceHandler{queue: queue, service: service}
}

// Heartbeat handles POST /v1/presence/heartbeat: enqueues the signal for the
// caller and returns 202.
//
// @Summary      Report presence
// @Tags         presence
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      heartbeatRequest  true  "Presence signal"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/presence/heartbeat [post]
func (h *PresenceHandler) Heartbeat(c echo.Context) error {
	uid, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req heartbeatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	err = h.queue.Enqueue(ports.HeartbeatInput{
		UID:         uid,
		State:       req.State,
		LastChanged: req.LastChanged,
		Platform:    req.Platform,
		DeviceInfo:  req.DeviceInfo,
		Email:       ctxEmail(c),
		DisplayName: req.DisplayName,
		ReceivedAt:  time.Now().UTC(),
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "presence queue busy, retry later")
	}
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "heartbeat accepted"})
}

// Online handles GET /v1/presence/online.
//
// @Summary      Number of operators online now
// @Tags         presence
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  onlineResponse
// @Router       /v1/presence/online [get]
func (h *PresenceHandler) Online(c echo.Context) error {
	n, err := h.service.OnlineCount(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, onlineResponse{Online: n})
}
