package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/visitorgate/visitor-admin/internal/api/metrics"
	"github.com/visitorgate/visitor-admin/internal/core/ports"
	"github.com/visitorgate/visitor-admin/internal/core/status"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// VisitorHandler handles HTTP requests for visitor operations.
type VisitorHandler struct {
	service ports.VisitorService
	loc     *time.Location
}

// NewVisitorHandler creates a VisitorHandler. loc is the zone date filters
// are interpreted in.
func NewVisitorHandler(service ports.VisitorService, loc *time.Location) *VisitorHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &VisitorHandler{service: service, loc: loc}
}

func (h *VisitorHandler) bindList(c echo.Context) (ports.ListVisitorsInput, error) {
	var q listVisitorsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return ports.ListVisitorsInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return ports.ListVisitorsInput{}, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	in, err := toListInput(q, h.loc)
	if err != nil {
		return ports.ListVisitorsInput{}, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return in, nil
}

// List handles GET /v1/visitors.
//
// @Summary      List visitors with derived status
// @Tags         visitors
// @Produce      json
// @Security     BearerAuth
// @Param        dateFrom     query     string  false  "First check-in day (YYYY-MM-DD)"
// @Param        dateTo       query     string  false  "Last check-in day, inclusive (YYYY-MM-DD)"
// @Param        visitorType  query     string  false  "foot | vehicle"
// @Param        status       query     string  false  "active | overdue | checked_out"
// @Param        search       query     string  false  "Case-insensitive search term"
// @Param        searchField  query     string  false  "all | name | phone | id | tag"
// @Success      200          {array}   visitorResponse
// @Failure      401          {object}  errorResponse
// @Failure      422          {object}  errorResponse
// @Router       /v1/visitors [get]
func (h *VisitorHandler) List(c echo.Context) error {
	in, err := h.bindList(c)
	if err != nil {
		return err
	}
	views, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVisitorResponses(views))
}

// CheckIn handles POST /v1/visitors.
//
// @Summary      Check a visitor in
// @Tags         visitors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      checkInRequest  true  "Visitor details"
// @Success      201   {object}  visitorResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/visitors [post]
func (h *VisitorHandler) CheckIn(c echo.Context) error {
	uid, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req checkInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.service.CheckIn(c.Request().Context(), toCheckInInput(req, uid))
	if err != nil {
		return err
	}
	metrics.VisitorsCheckedInTotal.WithLabelValues(string(view.Record.Category)).Inc()

	c.Response().Header().Set(echo.HeaderLocation, "/v1/visitors/"+view.Record.ID)
	return c.JSON(http.StatusCreated, toVisitorResponse(*view))
}

// Get handles GET /v1/visitors/:id.
//
// @Summary      Get a visitor
// @Tags         visitors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Visitor id"
// @Success      200  {object}  visitorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/visitors/{id} [get]
func (h *VisitorHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVisitorResponse(*view))
}

// History handles GET /v1/visitors/:id/history.
//
// @Summary      Edit history of a visitor
// @Tags         visitors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Visitor id"
// @Success      200  {array}   editHistoryResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/visitors/{id}/history [get]
func (h *VisitorHandler) History(c echo.Context) error {
	entries, err := h.service.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	out := make([]editHistoryResponse, len(entries))
	for i, e := range entries {
		out[i] = toHistoryResponse(e)
	}
	return c.JSON(http.StatusOK, out)
}

// Edit handles PATCH /v1/visitors/:id. One field per request.
//
// @Summary      Edit one visitor field
// @Tags         visitors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Visitor id"
// @Param        body  body      editVisitorRequest  true  "Field and new value"
// @Success      200   {object}  editVisitorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/visitors/{id} [patch]
func (h *VisitorHandler) Edit(c echo.Context) error {
	uid, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req editVisitorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.service.EditField(c.Request().Context(), ports.EditFieldInput{
		VisitorID: c.Param("id"),
		Field:     req.Field,
		Value:     req.Value,
		Editor:    uid,
	})
	if err != nil {
		return err
	}

	resp := editVisitorResponse{Visitor: toVisitorResponse(res.Visitor), Changed: res.Changed}
	if res.Entry != nil {
		entry := toHistoryResponse(*res.Entry)
		resp.Entry = &entry
		metrics.VisitorEditsTotal.WithLabelValues(req.Field).Inc()
	}
	return c.JSON(http.StatusOK, resp)
}

// Checkout handles POST /v1/visitors/:id/checkout.
//
// @Summary      Check a visitor out
// @Tags         visitors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Visitor id"
// @Success      200  {object}  visitorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/visitors/{id}/checkout [post]
func (h *VisitorHandler) Checkout(c echo.Context) error {
	uid, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	view, err := h.service.Checkout(c.Request().Context(), c.Param("id"), uid)
	if err != nil {
		return err
	}
	metrics.VisitorsCheckedOutTotal.Inc()
	return c.JSON(http.StatusOK, toVisitorResponse(*view))
}

// Stats handles GET /v1/visitors/stats.
//
// @Summary      Dashboard counters
// @Tags         visitors
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  status.Stats
// @Router       /v1/visitors/stats [get]
func (h *VisitorHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Overdue handles GET /v1/visitors/overdue.
//
// @Summary      Overdue visitors, oldest first
// @Tags         visitors
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  overdueResponse
// @Router       /v1/visitors/overdue [get]
func (h *VisitorHandler) Overdue(c echo.Context) error {
	summary, err := h.service.Overdue(c.Request().Context())
	if err != nil {
		return err
	}
	metrics.VisitorsOverdue.WithLabelValues(string(status.SeverityCritical)).Set(float64(summary.Critical))
	metrics.VisitorsOverdue.WithLabelValues(string(status.SeverityHigh)).Set(float64(summary.High))
	metrics.VisitorsOverdue.WithLabelValues(string(status.SeverityMedium)).Set(float64(summary.Medium))
	return c.JSON(http.StatusOK, toOverdueResponse(summary))
}

// ByDay handles GET /v1/visitors/by-day.
//
// @Summary      Visitors grouped by check-in day
// @Tags         visitors
// @Produce      json
// @Security     BearerAuth
// @Param        dateFrom     query     string  false  "First check-in day (YYYY-MM-DD)"
// @Param        dateTo       query     string  false  "Last check-in day, inclusive (YYYY-MM-DD)"
// @Param        visitorType  query     string  false  "foot | vehicle"
// @Param        status       query     string  false  "active | overdue | checked_out"
// @Success      200          {array}   dayGroupResponse
// @Router       /v1/visitors/by-day [get]
func (h *VisitorHandler) ByDay(c echo.Context) error {
	in, err := h.bindList(c)
	if err != nil {
		return err
	}
	groups, err := h.service.GroupByDay(c.Request().Context(), in)
	if err != nil {
		return err
	}
	out := make([]dayGroupResponse, len(groups))
	for i, g := range groups {
		out[i] = dayGroupResponse{
			Date:     g.Key,
			Total:    g.Total,
			Active:   g.Active,
			Overdue:  g.Overdue,
			Visitors: toVisitorResponses(g.Visitors),
		}
	}
	return c.JSON(http.StatusOK, out)
}

// Grouped handles GET /v1/visitors/grouped?by=gender|type|gender-type.
//
// @Summary      Visitors grouped by gender and/or type
// @Tags         visitors
// @Produce      json
// @Security     BearerAuth
// @Param        by           query     string  true   "gender | type | gender-type"
// @Param        dateFrom     query     string  false  "First check-in day (YYYY-MM-DD)"
// @Param        dateTo       query     string  false  "Last check-in day, inclusive (YYYY-MM-DD)"
// @Success      200          {array}   groupResponse
// @Failure      422          {object}  errorResponse
// @Router       /v1/visitors/grouped [get]
func (h *VisitorHandler) Grouped(c echo.Context) error {
	key := status.GroupKey(c.QueryParam("by"))
	switch key {
	case status.GroupGender, status.GroupType, status.GroupGenderType:
	default:
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "by must be one of: gender type gender-type")
	}

	in, err := h.bindList(c)
	if err != nil {
		return err
	}
	groups, err := h.service.GroupBy(c.Request().Context(), in, key)
	if err != nil {
		return err
	}
	out := make([]groupResponse, len(groups))
	for i, g := range groups {
		out[i] = groupResponse{
			Key:      g.Key,
			Total:    g.Total,
			Active:   g.Active,
			Overdue:  g.Overdue,
			Visitors: toVisitorResponses(g.Visitors),
		}
	}
	return c.JSON(http.StatusOK, out)
}

// Export handles GET /v1/visitors/export.
//
// @Summary      Download the visitor report
// @Tags         visitors
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        dateFrom     query     string  false  "First check-in day (YYYY-MM-DD)"
// @Param        dateTo       query     string  false  "Last check-in day, inclusive (YYYY-MM-DD)"
// @Success      200          {file}    file
// @Router       /v1/visitors/export [get]
func (h *VisitorHandler) Export(c echo.Context) error {
	in, err := h.bindList(c)
	if err != nil {
		return err
	}
	buf, filename, err := h.service.Export(c.Request().Context(), in)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
