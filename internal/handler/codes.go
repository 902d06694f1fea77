package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/service"
)

//go:generate mockery --name CodeSvc --output ./mocks --outpkg mocks --with-expecter
type CodeSvc interface {
	ValidateOrganizerCode(ctx context.Context, eventID uint64, code string) (service.OrganizerCodeResult, error)
	ValidateInvitationCode(ctx context.Context, eventID uint64, code string) (service.InvitationCodeResult, error)
	RedeemInvitation(ctx context.Context, eventID uint64, code string, ticketTypeID uint64, who model.Attendee) (*model.EmittedTicket, error)
}

// CodeHandler validates discount and invitation codes and redeems
// invitations.
type CodeHandler struct {
	svc    CodeSvc
	logger *slog.Logger
}

func NewCodeHandler(svc CodeSvc, logger *slog.Logger) *CodeHandler {
	return &CodeHandler{svc: svc, logger: logger}
}

type codeReq struct {
	Code string `json:"code"`
}

type redeemReq struct {
	Code         string `json:"code"`
	TicketTypeID uint64 `json:"ticket_type_id"`
	model.Attendee
}

// bindCode returns the event id and code, or a message for a 400.
func bindCode(c echo.Context) (uint64, string, string) {
	id, ok := pathID(c, "id")
	if !ok {
		return 0, "", "invalid event id"
	}
	var req codeReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		return 0, "", "code required"
	}
	return id, req.Code, ""
}

// ValidateOrganizer checks a TRADITIONAL event discount code.  Unknown
// codes answer 200 with valid=false.
func (h *CodeHandler) ValidateOrganizer(c echo.Context) error {
	id, code, msg := bindCode(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	res, err := h.svc.ValidateOrganizerCode(ctx, id, code)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, res)
}

// ValidateInvitation checks an INVITATION event code.
func (h *CodeHandler) ValidateInvitation(c echo.Context) error {
	id, code, msg := bindCode(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	res, err := h.svc.ValidateInvitationCode(ctx, id, code)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Redeem turns one invitation code into one emitted ticket.
func (h *CodeHandler) Redeem(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req redeemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Code) == "" || req.TicketTypeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code and ticket_type_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	ticket, err := h.svc.RedeemInvitation(ctx, id, req.Code, req.TicketTypeID, req.Attendee)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, ticket)
}
