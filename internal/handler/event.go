package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/service"
)

//go:generate mockery --name EventSvc --output ./mocks --outpkg mocks --with-expecter
type EventSvc interface {
	CreateEvent(ctx context.Context, p model.Principal, in service.EventInput) (*service.EventResult, error)
	UpdateEvent(ctx context.Context, p model.Principal, eventID uint64, in service.EventInput) (*service.EventResult, error)
	GetEventBySlug(ctx context.Context, slug string) (*service.EventView, error)
	ListEvents(ctx context.Context, limit, offset int) ([]model.Event, error)
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// EventHandler serves event management and the public event pages.
type EventHandler struct {
	svc    EventSvc
	logger *slog.Logger
}

func NewEventHandler(svc EventSvc, logger *slog.Logger) *EventHandler {
	return &EventHandler{svc: svc, logger: logger}
}

// Create submits the full desired state of a new event.
func (h *EventHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	var in service.EventInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	res, err := h.svc.CreateEvent(ctx, p, in)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// Update replaces the desired state of an existing event.  Ticket types and
// organizers missing from the body are removed.
func (h *EventHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var in service.EventInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	res, err := h.svc.UpdateEvent(ctx, p, id, in)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, res)
}

// GetBySlug returns the public page of an event with what is left of each
// sellable ticket type.
func (h *EventHandler) GetBySlug(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slug required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	view, err := h.svc.GetEventBySlug(ctx, slug)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, view)
}

// List pages through active events.  Query: page (from 1), limit.
func (h *EventHandler) List(c echo.Context) error {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", defaultPageSize)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	events, err := h.svc.ListEvents(ctx, limit, (page-1)*limit)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	if events == nil {
		events = []model.Event{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": events, "page": page, "limit": limit})
}

func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
