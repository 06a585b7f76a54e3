package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/agrolink/agrolink-backend/internal/model"
	"github.com/agrolink/agrolink-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

type NotificationResponse struct {
	ID                uint64  `json:"id"`
	Type              string  `json:"type"`
	Title             string  `json:"title"`
	Body              string  `json:"body"`
	PurchaseRequestID *uint64 `json:"purchaseRequestId,omitempty"`
	ChatRoomID        *uint64 `json:"chatRoomId,omitempty"`
	ReadAt            *string `json:"readAt,omitempty"`
	CreatedAt         string  `json:"createdAt"`
}

func toNotificationResponse(n *model.Notification) NotificationResponse {
	var readAt *string
	if n.ReadAt != nil {
		val := n.ReadAt.Format(time.RFC3339)
		readAt = &val
	}
	return NotificationResponse{
		ID:                n.ID,
		Type:              n.Type,
		Title:             n.Title,
		Body:              n.Body,
		PurchaseRequestID: n.PurchaseRequestID,
		ChatRoomID:        n.ChatRoomID,
		ReadAt:            readAt,
		CreatedAt:         n.CreatedAt.Format(time.RFC3339),
	}
}

func (h *NotificationHandler) ListMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	unreadOnly := c.QueryParam("unread") == "true"
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	list, unread, err := h.svc.List(c.Request().Context(), uid, unreadOnly, limit)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "user not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch notifications"))
		}
	}
	resp := make([]NotificationResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toNotificationResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"notifications": resp,
		"unreadCount":   unread,
	})
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	if err := h.svc.MarkAllRead(c.Request().Context(), uid); err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "user not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to mark notifications read"))
		}
	}
	return c.JSON(http.StatusOK, NewSuccessResponse())
}
