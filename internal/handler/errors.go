// Package handler holds the Echo handlers.  Handlers bind and check the
// request shape, call one service operation under a short timeout and map
// the engine's sentinel errors onto HTTP status codes.
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/ledger"
	"github.com/iliyamo/event-ticketing/internal/middleware"
	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/service"
)

// requestTimeout bounds every service call made by a handler.
const requestTimeout = 5 * time.Second

var (
	badRequest = []error{
		model.ErrValidation,
		model.ErrEmptyOrganizerList,
		model.ErrInviteConditionImmutable,
		model.ErrReservedTicketTypeName,
		model.ErrInvalidInviteCondition,
		model.ErrPurchaseLimit,
		ledger.ErrNegativeCapacity,
		ledger.ErrAllowanceAboveMaximum,
	}
	notFound = []error{
		model.ErrEventNotFound,
		model.ErrTicketTypeNotFound,
		model.ErrTicketGroupNotFound,
		model.ErrTicketNotFound,
		model.ErrUserNotFound,
		model.ErrCodeNotFound,
		model.ErrOrganizerNotFound,
	}
	conflict = []error{
		model.ErrConflict,
		model.ErrAlreadyRedeemed,
		model.ErrAlreadyScanned,
		model.ErrInvalidTransition,
		model.ErrOrganizerTicketTypeMissing,
		model.ErrCodeSpaceExhausted,
	}
	unprocessable = []error{
		model.ErrSaleClosed,
		model.ErrNotSeller,
		model.ErrReservationExpired,
		model.ErrScanWindowClosed,
	}
)

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// writeError maps err onto a JSON error response.  Unknown errors are
// logged and reported as 500 without detail.
func writeError(c echo.Context, logger *slog.Logger, err error) error {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Message, "field": ve.Field})
	}
	var ce *ledger.CapacityError
	if errors.As(err, &ce) {
		body := echo.Map{"error": "capacity below consumed", "minimum": ce.Minimum}
		if ce.Subject != "" {
			body["subject"] = ce.Subject
		}
		return c.JSON(http.StatusUnprocessableEntity, body)
	}
	switch {
	case errors.Is(err, model.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case isAny(err, badRequest):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case isAny(err, notFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case isAny(err, conflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case service.IsCapacityError(err), isAny(err, unprocessable):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	logger.Error("request failed",
		"method", c.Request().Method,
		"path", c.Path(),
		"err", err,
	)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	return id, err == nil && id > 0
}

func principal(c echo.Context) (model.Principal, error) {
	p, ok := middleware.Principal(c)
	if !ok {
		return model.Principal{}, model.ErrForbidden
	}
	return p, nil
}
