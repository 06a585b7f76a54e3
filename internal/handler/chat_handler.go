package handler

import (
	"net/http"
	"time"

	"github.com/agrolink/agrolink-backend/internal/model"
	"github.com/agrolink/agrolink-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type ChatHandler struct {
	svc service.ChatService
}

func NewChatHandler(svc service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type ChatRoomResponse struct {
	ID                uint64 `json:"id"`
	RoomKey           string `json:"roomKey"`
	FarmerID          uint64 `json:"farmerId"`
	ContractorID      uint64 `json:"contractorId"`
	PurchaseRequestID uint64 `json:"purchaseRequestId"`
	CreatedAt         string `json:"createdAt"`
}

type ChatMessageResponse struct {
	ID        uint64 `json:"id"`
	SenderID  uint64 `json:"senderId"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
}

func toChatRoomResponse(r *model.ChatRoom) ChatRoomResponse {
	return ChatRoomResponse{
		ID:                r.ID,
		RoomKey:           r.RoomKey,
		FarmerID:          r.FarmerID,
		ContractorID:      r.ContractorID,
		PurchaseRequestID: r.PurchaseRequestID,
		CreatedAt:         r.CreatedAt.Format(time.RFC3339),
	}
}

func toChatMessageResponse(m *model.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:        m.ID,
		SenderID:  m.SenderID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}

func (h *ChatHandler) ListRooms(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	rooms, err := h.svc.ListRooms(c.Request().Context(), uid)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "user not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch chat rooms"))
		}
	}
	resp := make([]ChatRoomResponse, 0, len(rooms))
	for i := range rooms {
		resp = append(resp, toChatRoomResponse(&rooms[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	msgs, err := h.svc.ListMessages(c.Request().Context(), uid, c.Param("key"))
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "chat room not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not a participant"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch messages"))
		}
	}
	resp := make([]ChatMessageResponse, 0, len(msgs))
	for i := range msgs {
		resp = append(resp, toChatMessageResponse(&msgs[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) PostMessage(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var body struct {
		Body string `json:"body"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	msg, err := h.svc.PostMessage(c.Request().Context(), uid, c.Param("key"), body.Body)
	if err != nil {
		switch err {
		case service.ErrInvalid:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "message body is required"))
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "chat room not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not a participant"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to post message"))
		}
	}
	return c.JSON(http.StatusCreated, toChatMessageResponse(msg))
}
