package handler

import (
	"net/http"

	"github.com/agrolink/agrolink-backend/internal/repository"
	"github.com/agrolink/agrolink-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type ContractHandler struct {
	svc service.ContractService
}

func NewContractHandler(svc service.ContractService) *ContractHandler {
	return &ContractHandler{svc: svc}
}

type contractorAnnotation struct {
	UserName    string `json:"userName"`
	CompanyName string `json:"companyName"`
}

// MatchedRequestResponse mirrors the shape the farmer dashboard consumes.
type MatchedRequestResponse struct {
	ID                uint64               `json:"id"`
	CropType          string               `json:"cropType"`
	Quantity          float64              `json:"quantity"`
	PricePerUnit      float64              `json:"pricePerUnit"`
	Status            string               `json:"status"`
	ContractorProfile contractorAnnotation `json:"contractorProfile"`
}

func toMatchedRequestResponse(r *repository.MatchedRequest) MatchedRequestResponse {
	return MatchedRequestResponse{
		ID:           r.ID,
		CropType:     r.CropType,
		Quantity:     r.Quantity,
		PricePerUnit: r.PricePerUnit,
		Status:       string(r.Status),
		ContractorProfile: contractorAnnotation{
			UserName:    r.ContractorName,
			CompanyName: r.CompanyName,
		},
	}
}

// Search lists PENDING requests from contractors in the farmer's own state
// and city, optionally narrowed by cropType substring and maxQuantity.
func (h *ContractHandler) Search(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	rows, err := h.svc.Search(c.Request().Context(), uid, c.QueryParam("cropType"), c.QueryParam("maxQuantity"))
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "farmer not found"))
		case service.ErrInvalid:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid maxQuantity"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch purchase requests"))
		}
	}
	resp := make([]MatchedRequestResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, toMatchedRequestResponse(&rows[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

type ConfirmedContractResponse struct {
	ID                uint64               `json:"id"`
	CropType          string               `json:"cropType"`
	Quantity          float64              `json:"quantity"`
	PricePerUnit      float64              `json:"pricePerUnit"`
	Status            string               `json:"status"`
	ContractorProfile contractorAnnotation `json:"contractorProfile"`
	ChatRoomKey       string               `json:"chatRoomKey"`
}

func (h *ContractHandler) Confirm(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var body struct {
		RequestID uint64 `json:"requestId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	if body.RequestID == 0 {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "requestId is required"))
	}
	confirmed, err := h.svc.Confirm(c.Request().Context(), uid, body.RequestID)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "farmer or purchase request not found"))
		case service.ErrAlreadyConfirmed:
			return c.JSON(http.StatusConflict, NewErrorResponse("already_confirmed", "purchase request is no longer pending"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to confirm contract"))
		}
	}
	return c.JSON(http.StatusOK, ConfirmedContractResponse{
		ID:           confirmed.Request.ID,
		CropType:     confirmed.Request.CropType,
		Quantity:     confirmed.Request.Quantity,
		PricePerUnit: confirmed.Request.PricePerUnit,
		Status:       string(confirmed.Request.Status),
		ContractorProfile: contractorAnnotation{
			UserName:    confirmed.ContractorName,
			CompanyName: confirmed.CompanyName,
		},
		ChatRoomKey: confirmed.Room.RoomKey,
	})
}
