// Package http exposes the parcel lifecycle engine over a REST API. The
// server trusts the authentication gateway in front of it for identity and
// coordinates between HTTP handlers and application use cases.
package http

import (
	"net/http"
	"strconv"
	"time"

	"parcelflow/internal/core/application/notify"
	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/application/usecases/queries"
	"parcelflow/internal/core/domain/model/actor"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Handlers bundles the use case handlers served by the HTTP API.
type Handlers struct {
	CreateBooking     commands.CreateBookingCommandHandler
	ChangeStatus      commands.ChangeParcelStatusCommandHandler
	AssignAgent       commands.AssignParcelAgentCommandHandler
	RecordTracking    commands.RecordTrackingPointCommandHandler
	SoftDelete        commands.SoftDeleteParcelCommandHandler
	ListParcels       queries.ListCustomerParcelsQueryHandler
	StatusHistory     queries.GetStatusHistoryQueryHandler
	TrackingFeed      queries.GetTrackingFeedQueryHandler
	ByTrackingCode    queries.GetParcelByTrackingCodeQueryHandler
	ListNotifications queries.ListUserNotificationsQueryHandler
	NotificationInbox *notify.Notifier
}

// Server coordinates between HTTP requests and application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates an HTTP server over the given use case handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes mounts the API on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")

	authed := api.Group("", ActorMiddleware())
	authed.GET("/track/:code", s.TrackByCode)
	authed.POST("/parcels", s.CreateParcel)
	authed.GET("/parcels", s.ListParcels)
	authed.GET("/parcels/:id/status-history", s.GetStatusHistory)
	authed.GET("/parcels/:id/track", s.GetTrackingFeed)
	authed.PATCH("/parcels/:id/status", s.ChangeParcelStatus)
	authed.POST("/parcels/:id/assign-agent", s.AssignAgent)
	authed.POST("/parcels/:id/tracking", s.RecordTrackingPoint)
	authed.DELETE("/parcels/:id", s.DeleteParcel)
	authed.GET("/notifications", s.ListNotifications)
	authed.PATCH("/notifications/:id/mark", s.MarkNotificationRead)
	authed.PATCH("/notifications/mark-all", s.MarkAllNotificationsRead)
}

// CreateParcel handles POST /api/v1/parcels - books a new parcel.
func (s *Server) CreateParcel(c echo.Context) error {
	a, ok := actorFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, errs.NewValueIsInvalidError("request body"))
	}

	customerID := a.ID
	if req.CustomerID != "" && a.Role == actor.RoleAdmin {
		id, err := kernel.UUIDFromString(req.CustomerID)
		if err != nil {
			return writeError(c, err)
		}
		customerID = id
	}

	cmd, err := commands.NewCreateBookingCommand(
		kernel.NewUUID(), customerID,
		req.PickupAddress, req.DeliveryAddress,
		req.ParcelType, req.ParcelSize, req.Weight,
		parcel.PaymentType(req.PaymentType), req.CODAmount,
		req.ScheduledPickupAt,
	)
	if err != nil {
		return writeError(c, err)
	}

	created, err := s.handlers.CreateBooking.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, parcelResponseFromAggregate(created))
}

// ListParcels handles GET /api/v1/parcels - lists a customer's parcels.
// Administrators may list any customer via the customerId query parameter.
func (s *Server) ListParcels(c echo.Context) error {
	a, ok := actorFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	customerID := a.ID
	if raw := c.QueryParam("customerId"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return writeError(c, err)
		}
		customerID = id
	}

	dateFrom, err := timeQueryParam(c, "dateFrom")
	if err != nil {
		return writeError(c, err)
	}
	dateTo, err := timeQueryParam(c, "dateTo")
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewListCustomerParcelsQuery(
		customerID, a,
		parcel.Status(c.QueryParam("status")),
		dateFrom, dateTo,
		intQueryParam(c, "page"),
		intQueryParam(c, "pageSize"),
	)
	if err != nil {
		return writeError(c, err)
	}

	result, err := s.handlers.ListParcels.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	items := make([]ParcelResponse, len(result.Items))
	for i, item := range result.Items {
		items[i] = parcelResponseFromSummary(item)
	}

	return c.JSON(http.StatusOK, ParcelListResponse{
		Items:    items,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	})
}

// GetStatusHistory handles GET /api/v1/parcels/:id/status-history.
func (s *Server) GetStatusHistory(c echo.Context) error {
	a, ok := actorFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	parcelID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewGetStatusHistoryQuery(parcelID, a)
	if err != nil {
		return writeError(c, err)
	}

	history, err := s.handlers.StatusHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, historyEntries(history))
}

// GetTrackingFeed handles GET /api/v1/parcels/:id/track.
func (s *Server) GetTrackingFeed(c echo.Context) error {
	a, ok := actorFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	parcelID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewGetTrackingFeedQuery(parcelID, a, intQueryParam(c, "limit"))
	if err != nil {
		return writeError(c, err)
	}

	feed, err := s.handlers.TrackingFeed.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, trackingFeedResponse(feed))
}

// TrackByCode handles GET /api/v1/track/:code - the code-keyed tracking view.
func (s *Server) TrackByCode(c echo.Context) error {
	a, ok := actorFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	query, err := queries.NewGetParcelByTrackingCodeQuery(c.Param("code"), a)
	if err != nil {
		return writeError(c, err)
	}

	view, err := s.handlers.ByTrackingCode.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, TrackingViewResponse{
		Parcel:  parcelResponseFromSummary(view.Parcel),
		History: historyEntries(view.History),
		Feed:    trackingFeedResponse(view.Feed),
	})
}

// ChangeParcelStatus handles PATCH /api/v1/parcels/:id/status.
func (s *Server) ChangeParcelStatus(c echo.Context) error {
	a, ok := actorFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	parcelID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req ChangeStatusRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, errs.NewValueIsInvalidError("request body"))
	}

	cmd, err := commands.NewChangeParcelStatusCommand(parcelID, parcel.Status(req.Status), req.Note, a)
	if err != nil {
		return writeError(c, err)
	}

	updated, err := s.handlers.ChangeStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, parcelResponseFromAggregate(updated))
}

// AssignAgent handles POST /api/v1/parcels/:id/assign-agent.
func (s *Server) AssignAgent(c echo.Context) error {
	a, ok := actorFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	parcelID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req AssignAgentRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, errs.NewValueIsInvalidError("request body"))
	}

	agentID, err := kernel.UUIDFromString(req.AgentID)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewAssignParcelAgentCommand(parcelID, agentID, a)
	if err != nil {
		return writeError(c, err)
	}

	updated, err := s.handlers.AssignAgent.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, parcelResponseFromAggregate(updated))
}

// RecordTrackingPoint handles POST /api/v1/parcels/:id/tracking.
func (s *Server) RecordTrackingPoint(c echo.Context) error {
	a, ok := actorFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}
	if a.Role != actor.RoleAgent {
		return writeError(c, errs.NewAccessForbiddenError("tracking ingestion requires an agent"))
	}

	parcelID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req RecordTrackingRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, errs.NewValueIsInvalidError("request body"))
	}

	position, err := kernel.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewRecordTrackingPointCommand(parcelID, a.ID, position, req.Speed, req.Heading)
	if err != nil {
		return writeError(c, err)
	}

	point, err := s.handlers.RecordTracking.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, TrackingPoint{
		ID:        point.ID().String(),
		AgentID:   point.AgentID().String(),
		Lat:       point.Position().Lat(),
		Lng:       point.Position().Lng(),
		Speed:     point.Speed(),
		Heading:   point.Heading(),
		CreatedAt: point.CreatedAt(),
	})
}

// DeleteParcel handles DELETE /api/v1/parcels/:id - soft delete by an admin.
func (s *Server) DeleteParcel(c echo.Context) error {
	a, ok := actorFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	parcelID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewSoftDeleteParcelCommand(parcelID, a)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.handlers.SoftDelete.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListNotifications handles GET /api/v1/notifications.
func (s *Server) ListNotifications(c echo.Context) error {
	a, ok := actorFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	onlyUnread, _ := strconv.ParseBool(c.QueryParam("onlyUnread"))

	query, err := queries.NewListUserNotificationsQuery(
		a.ID, onlyUnread,
		intQueryParam(c, "page"),
		intQueryParam(c, "pageSize"),
	)
	if err != nil {
		return writeError(c, err)
	}

	result, err := s.handlers.ListNotifications.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, NotificationListResponse{
		Items:       notificationItems(result.Items),
		Total:       result.Total,
		UnreadCount: result.UnreadCount,
		Page:        result.Page,
		PageSize:    result.PageSize,
	})
}

// MarkNotificationRead handles PATCH /api/v1/notifications/:id/mark.
func (s *Server) MarkNotificationRead(c echo.Context) error {
	a, ok := actorFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	notificationID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	payload, err := s.handlers.NotificationInbox.MarkNotificationRead(
		c.Request().Context(), notificationID, a.ID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, payload)
}

// MarkAllNotificationsRead handles PATCH /api/v1/notifications/mark-all.
func (s *Server) MarkAllNotificationsRead(c echo.Context) error {
	a, ok := actorFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	if err := s.handlers.NotificationInbox.MarkAllNotificationsRead(c.Request().Context(), a.ID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// intQueryParam parses an optional integer query parameter, returning zero
// when absent or malformed so the query constructors apply their defaults.
func intQueryParam(c echo.Context, name string) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return value
}

// timeQueryParam parses an optional timestamp query parameter, accepting
// RFC 3339 or a bare date. Absent means nil; malformed is a client error.
func timeQueryParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if value, err := time.Parse(layout, raw); err == nil {
			return &value, nil
		}
	}
	return nil, errs.NewValueIsInvalidError(name)
}
