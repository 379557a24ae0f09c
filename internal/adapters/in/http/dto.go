package http

import (
	"time"

	"parcelflow/internal/core/application/usecases/queries"
	"parcelflow/internal/core/domain/model/parcel"
)

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateBookingRequest is the booking payload. CustomerID is honored for
// administrators only; customers always book for themselves.
type CreateBookingRequest struct {
	CustomerID        string     `json:"customerId,omitempty"`
	PickupAddress     string     `json:"pickupAddress"`
	DeliveryAddress   string     `json:"deliveryAddress"`
	ParcelType        string     `json:"parcelType"`
	ParcelSize        string     `json:"parcelSize"`
	Weight            float64    `json:"weight"`
	PaymentType       string     `json:"paymentType"`
	CODAmount         int64      `json:"codAmount"`
	ScheduledPickupAt *time.Time `json:"scheduledPickupAt,omitempty"`
}

// ChangeStatusRequest asks for one transition of the parcel state machine.
type ChangeStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// AssignAgentRequest assigns a delivery agent to a parcel.
type AssignAgentRequest struct {
	AgentID string `json:"agentId"`
}

// RecordTrackingRequest is one reported location sample.
type RecordTrackingRequest struct {
	Lat     float64  `json:"lat"`
	Lng     float64  `json:"lng"`
	Speed   *float64 `json:"speed,omitempty"`
	Heading *float64 `json:"heading,omitempty"`
}

// ParcelResponse is the JSON view of one parcel.
type ParcelResponse struct {
	ID                string     `json:"id"`
	TrackingCode      string     `json:"trackingCode"`
	CustomerID        string     `json:"customerId,omitempty"`
	Status            string     `json:"status"`
	PickupAddress     string     `json:"pickupAddress"`
	DeliveryAddress   string     `json:"deliveryAddress"`
	ParcelType        string     `json:"parcelType"`
	ParcelSize        string     `json:"parcelSize"`
	Weight            float64    `json:"weight"`
	PaymentType       string     `json:"paymentType"`
	CODAmount         int64      `json:"codAmount"`
	AssignedAgentID   string     `json:"assignedAgentId,omitempty"`
	ScheduledPickupAt *time.Time `json:"scheduledPickupAt,omitempty"`
	DeliveredAt       *time.Time `json:"deliveredAt,omitempty"`
	FailureReason     string     `json:"failureReason,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// StatusHistoryEntry is one transition record in a history response.
type StatusHistoryEntry struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	ChangedBy string    `json:"changedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// TrackingPoint is one location sample in a tracking feed response.
type TrackingPoint struct {
	ID        string    `json:"id"`
	AgentID   string    `json:"agentId"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Speed     *float64  `json:"speed,omitempty"`
	Heading   *float64  `json:"heading,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TrackingFeedResponse carries the latest sample plus the recent feed.
type TrackingFeedResponse struct {
	Latest *TrackingPoint  `json:"latest"`
	Points []TrackingPoint `json:"points"`
}

// ParcelListResponse is one page of parcels.
type ParcelListResponse struct {
	Items    []ParcelResponse `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

// TrackingViewResponse is the code-keyed tracking view: summary, full
// history, and the recent tracking samples for an actor in the parcel's scope.
type TrackingViewResponse struct {
	Parcel  ParcelResponse       `json:"parcel"`
	History []StatusHistoryEntry `json:"history"`
	Feed    TrackingFeedResponse `json:"feed"`
}

// NotificationItem is one in-app notification in a feed response.
type NotificationItem struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Data      map[string]any `json:"data,omitempty"`
	IsRead    bool           `json:"isRead"`
	ReadAt    *time.Time     `json:"readAt,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// NotificationListResponse is one page of the notification feed.
type NotificationListResponse struct {
	Items       []NotificationItem `json:"items"`
	Total       int64              `json:"total"`
	UnreadCount int64              `json:"unreadCount"`
	Page        int                `json:"page"`
	PageSize    int                `json:"pageSize"`
}

func parcelResponseFromAggregate(p *parcel.Parcel) ParcelResponse {
	resp := ParcelResponse{
		ID:                p.ID().String(),
		TrackingCode:      p.TrackingCode().String(),
		CustomerID:        p.CustomerID().String(),
		Status:            p.Status().String(),
		PickupAddress:     p.PickupAddress(),
		DeliveryAddress:   p.DeliveryAddress(),
		ParcelType:        p.ParcelType(),
		ParcelSize:        p.ParcelSize(),
		Weight:            p.Weight(),
		PaymentType:       p.PaymentType().String(),
		CODAmount:         p.CODAmount(),
		ScheduledPickupAt: p.ScheduledPickupAt(),
		DeliveredAt:       p.DeliveredAt(),
		FailureReason:     p.FailureReason(),
		CreatedAt:         p.CreatedAt(),
		UpdatedAt:         p.UpdatedAt(),
	}
	if agentID := p.AssignedAgentID(); agentID != nil {
		resp.AssignedAgentID = agentID.String()
	}
	return resp
}

func parcelResponseFromSummary(s queries.ParcelSummaryResponse) ParcelResponse {
	return ParcelResponse{
		ID:                s.ID.String(),
		TrackingCode:      s.TrackingCode.String(),
		Status:            s.Status.String(),
		PickupAddress:     s.PickupAddress,
		DeliveryAddress:   s.DeliveryAddress,
		ParcelType:        s.ParcelType,
		ParcelSize:        s.ParcelSize,
		Weight:            s.Weight,
		PaymentType:       s.PaymentType.String(),
		CODAmount:         s.CODAmount,
		ScheduledPickupAt: s.ScheduledPickupAt,
		DeliveredAt:       s.DeliveredAt,
		FailureReason:     s.FailureReason,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func historyEntries(entries []queries.StatusHistoryEntryResponse) []StatusHistoryEntry {
	out := make([]StatusHistoryEntry, len(entries))
	for i, e := range entries {
		out[i] = StatusHistoryEntry{
			ID:        e.ID.String(),
			Status:    e.Status.String(),
			Note:      e.Note,
			ChangedBy: e.ChangedByUserID.String(),
			CreatedAt: e.CreatedAt,
		}
	}
	return out
}

func trackingFeedResponse(feed queries.GetTrackingFeedQueryResponse) TrackingFeedResponse {
	points := make([]TrackingPoint, len(feed.Points))
	for i, p := range feed.Points {
		points[i] = trackingPointResponse(p)
	}

	resp := TrackingFeedResponse{Points: points}
	if feed.Latest != nil {
		latest := trackingPointResponse(*feed.Latest)
		resp.Latest = &latest
	}
	return resp
}

func trackingPointResponse(p queries.TrackingPointResponse) TrackingPoint {
	return TrackingPoint{
		ID:        p.ID.String(),
		AgentID:   p.AgentID.String(),
		Lat:       p.Lat,
		Lng:       p.Lng,
		Speed:     p.Speed,
		Heading:   p.Heading,
		CreatedAt: p.CreatedAt,
	}
}

func notificationItems(items []queries.UserNotificationResponse) []NotificationItem {
	out := make([]NotificationItem, len(items))
	for i, n := range items {
		out[i] = NotificationItem{
			ID:        n.ID.String(),
			Type:      n.Type,
			Title:     n.Title,
			Body:      n.Body,
			Data:      n.Data,
			IsRead:    n.IsRead,
			ReadAt:    n.ReadAt,
			CreatedAt: n.CreatedAt,
		}
	}
	return out
}
