package handler

import (
	"net/http"
	"time"

	"github.com/agrolink/agrolink-backend/internal/model"
	"github.com/agrolink/agrolink-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type ListingHandler struct {
	svc service.ListingService
}

func NewListingHandler(svc service.ListingService) *ListingHandler {
	return &ListingHandler{svc: svc}
}

type ListingResponse struct {
	ID              uint64  `json:"id"`
	FarmerProfileID uint64  `json:"farmerProfileId"`
	CropType        string  `json:"cropType"`
	Quantity        float64 `json:"quantity"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
}

func toListingResponse(l *model.SaleListing) ListingResponse {
	return ListingResponse{
		ID:              l.ID,
		FarmerProfileID: l.FarmerProfileID,
		CropType:        l.CropType,
		Quantity:        l.Quantity,
		Status:          string(l.Status),
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
	}
}

func (h *ListingHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var body struct {
		CropType string  `json:"cropType"`
		Quantity float64 `json:"quantity"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	l, err := h.svc.Create(c.Request().Context(), uid, body.CropType, body.Quantity)
	if err != nil {
		switch err {
		case service.ErrInvalid:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "cropType and quantity are required"))
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "farmer profile not found; please complete your profile first"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to create listing"))
		}
	}
	return c.JSON(http.StatusCreated, toListingResponse(l))
}

func (h *ListingHandler) ListMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	list, err := h.svc.ListMine(c.Request().Context(), uid)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "farmer profile not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch listings"))
		}
	}
	resp := make([]ListingResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toListingResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}
