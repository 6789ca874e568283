package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/yakoovad/buoy-notify/internal/auth"
	"github.com/yakoovad/buoy-notify/internal/event"
	"github.com/yakoovad/buoy-notify/internal/metrics"
	"github.com/yakoovad/buoy-notify/internal/service"
	"github.com/yakoovad/buoy-notify/pkg/logger"
	"go.uber.org/zap"
)

type Handler struct {
	dispatcher *event.Dispatcher
	issuer     *auth.Issuer

	healthChecker HealthChecker

	logger *zap.Logger
}

func NewHandler(logger *zap.Logger, dispatcher *event.Dispatcher, issuer *auth.Issuer) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		issuer:     issuer,
		logger:     logger,
	}
}

func (h *Handler) WithHealthChecker(c HealthChecker) *Handler {
	h.healthChecker = c
	return h
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewValidator()
	e.Use(middleware.RequestID())
	e.Use(ZapLoggerMiddleware(h.logger))
	e.Use(middleware.Recover())

	if h.healthChecker != nil {
		e.GET("/health", h.healthChecker.HealthCheck())
	}
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	events := e.Group("/events", AuthMiddleware(h.issuer, auth.TokenTypeSource, auth.TokenTypeAdmin))

	events.POST("/team/visible", h.TeamMadeVisible)
	events.POST("/team/member/added", h.MemberAdded)
	events.POST("/team/member/removed", h.MemberRemoved)
	events.POST("/alert/published", h.AlertPublished)
}

type teamVisibleRequest struct {
	TeamID string `json:"team_id" validate:"required"`
}

type memberAddedRequest struct {
	TeamID    string `json:"team_id" validate:"required"`
	Recipient string `json:"recipient" validate:"required"`
	Notify    *bool  `json:"notify"`
}

type memberRemovedRequest struct {
	TeamID    string `json:"team_id" validate:"required"`
	Recipient string `json:"recipient" validate:"required"`
}

type alertPublishedRequest struct {
	AlertID string `json:"alert_id" validate:"required"`
}

func (h *Handler) TeamMadeVisible(e echo.Context) error {
	ctx := e.Request().Context()
	l := logger.FromContext(ctx).With(zap.String("event", string(event.KindTeamMadeVisible)))

	var req teamVisibleRequest
	if err := decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("raising event", zap.String("team_id", req.TeamID))

	if err := h.dispatcher.RaiseTeamMadeVisible(ctx, event.TeamMadeVisible{TeamID: req.TeamID}); err != nil {
		l.Error("event handling failed", zap.String("team_id", req.TeamID), zap.Error(err))
		return h.transportError(e, serviceError(err))
	}

	return accepted(e)
}

func (h *Handler) MemberAdded(e echo.Context) error {
	ctx := e.Request().Context()
	l := logger.FromContext(ctx).With(zap.String("event", string(event.KindMemberAdded)))

	var req memberAddedRequest
	if err := decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	notify := true
	if req.Notify != nil {
		notify = *req.Notify
	}

	l.Info("raising event",
		zap.String("team_id", req.TeamID),
		zap.String("recipient", req.Recipient),
		zap.Bool("notify", notify))

	ev := event.MemberAdded{TeamID: req.TeamID, Recipient: req.Recipient, Notify: notify}
	if err := h.dispatcher.RaiseMemberAdded(ctx, ev); err != nil {
		l.Error("event handling failed", zap.String("team_id", req.TeamID), zap.Error(err))
		return h.transportError(e, serviceError(err))
	}

	return accepted(e)
}

func (h *Handler) MemberRemoved(e echo.Context) error {
	ctx := e.Request().Context()
	l := logger.FromContext(ctx).With(zap.String("event", string(event.KindMemberRemoved)))

	var req memberRemovedRequest
	if err := decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("raising event",
		zap.String("team_id", req.TeamID),
		zap.String("recipient", req.Recipient))

	ev := event.MemberRemoved{TeamID: req.TeamID, Recipient: req.Recipient}
	if err := h.dispatcher.RaiseMemberRemoved(ctx, ev); err != nil {
		l.Error("event handling failed", zap.String("team_id", req.TeamID), zap.Error(err))
		return h.transportError(e, serviceError(err))
	}

	return accepted(e)
}

func (h *Handler) AlertPublished(e echo.Context) error {
	ctx := e.Request().Context()
	l := logger.FromContext(ctx).With(zap.String("event", string(event.KindAlertPublished)))

	var req alertPublishedRequest
	if err := decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("raising event", zap.String("alert_id", req.AlertID))

	if err := h.dispatcher.RaiseAlertPublished(ctx, event.AlertPublished{AlertID: req.AlertID}); err != nil {
		l.Error("event handling failed", zap.String("alert_id", req.AlertID), zap.Error(err))
		return h.transportError(e, serviceError(err))
	}

	return accepted(e)
}

func accepted(e echo.Context) error {
	return e.JSON(http.StatusAccepted, map[string]string{"status": "accepted"})
}

func decodeRequest[T any](e echo.Context, req *T) *service.Error {
	err := ProcessRequest(e, req,
		func(e echo.Context, req *T) error {
			if err := e.Bind(req); err != nil {
				return service.NewError(service.ErrorCodeInvalidBody, "invalid request body")
			}
			return nil
		},
		func(e echo.Context, req *T) error {
			if err := e.Validate(req); err != nil {
				return service.NewError(service.ErrorCodeInvalidBody, errors.Wrap(err, "request validation failed").Error())
			}
			return nil
		},
	)
	if err != nil {
		return serviceError(err)
	}
	return nil
}

// serviceError finds the first *service.Error in err's chain.
func serviceError(err error) *service.Error {
	var se *service.Error
	if errors.As(err, &se) {
		return se
	}
	return service.NewError(service.ErrorCodeUnspecified, err.Error())
}

func (h *Handler) transportError(e echo.Context, err *service.Error) error {
	response := struct {
		Error *service.Error `json:"error"`
	}{Error: err}

	switch err.Code {
	case service.ErrorCodeNotFound:
		return e.JSON(http.StatusNotFound, response)
	case service.ErrorCodeInvalidBody:
		return e.JSON(http.StatusBadRequest, response)
	case service.ErrorCodeUnauthorized:
		return e.JSON(http.StatusUnauthorized, response)
	default:
		return e.JSON(http.StatusInternalServerError, response)
	}
}
