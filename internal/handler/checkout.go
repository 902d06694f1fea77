package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/service"
)

//go:generate mockery --name CheckoutSvc --output ./mocks --outpkg mocks --with-expecter
type CheckoutSvc interface {
	Reserve(ctx context.Context, eventID uint64, in service.ReserveInput) (*model.TicketGroup, error)
	Confirm(ctx context.Context, groupID uint64, in service.ConfirmInput) (*service.ConfirmResult, error)
	ScanTicket(ctx context.Context, p model.Principal, ticketID uint64) (*model.EmittedTicket, error)
}

// CheckoutHandler drives reservations to confirmation and scans tickets
// at the door.
type CheckoutHandler struct {
	svc    CheckoutSvc
	logger *slog.Logger
}

func NewCheckoutHandler(svc CheckoutSvc, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, logger: logger}
}

// Reserve holds tickets in a BOOKED group until it is confirmed or reaped.
func (h *CheckoutHandler) Reserve(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var in service.ReserveInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(in.Lines) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "lines required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	group, err := h.svc.Reserve(ctx, id, in)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, group)
}

// Confirm emits the reserved tickets and moves the group to PAID or FREE.
func (h *CheckoutHandler) Confirm(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var in service.ConfirmInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	res, err := h.svc.Confirm(ctx, id, in)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Scan marks a ticket as used by the calling staff member.
func (h *CheckoutHandler) Scan(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	ticket, err := h.svc.ScanTicket(ctx, p, id)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, ticket)
}
