package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/agrolink/agrolink-backend/internal/model"
	"github.com/agrolink/agrolink-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type RequestHandler struct {
	svc service.RequestService
}

func NewRequestHandler(svc service.RequestService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

type RequestResponse struct {
	ID                  uint64  `json:"id"`
	ContractorProfileID uint64  `json:"contractorProfileId"`
	CropType            string  `json:"cropType"`
	Quantity            float64 `json:"quantity"`
	PricePerUnit        float64 `json:"pricePerUnit"`
	Status              string  `json:"status"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

func toRequestResponse(pr *model.PurchaseRequest) RequestResponse {
	return RequestResponse{
		ID:                  pr.ID,
		ContractorProfileID: pr.ContractorProfileID,
		CropType:            pr.CropType,
		Quantity:            pr.Quantity,
		PricePerUnit:        pr.PricePerUnit,
		Status:              string(pr.Status),
		CreatedAt:           pr.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           pr.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *RequestHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "please login to create a purchase request"))
	}
	var body struct {
		CropType     string  `json:"cropType"`
		Quantity     float64 `json:"quantity"`
		PricePerUnit float64 `json:"pricePerUnit"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	pr, err := h.svc.Create(c.Request().Context(), uid, body.CropType, body.Quantity, body.PricePerUnit)
	if err != nil {
		switch err {
		case service.ErrInvalid:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "cropType, quantity and pricePerUnit are required"))
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "contractor profile not found; please complete your profile first"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to create purchase request"))
		}
	}
	return c.JSON(http.StatusCreated, toRequestResponse(pr))
}

func (h *RequestHandler) ListMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	list, err := h.svc.ListForContractor(c.Request().Context(), uid)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "contractor profile not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch purchase requests"))
		}
	}
	resp := make([]RequestResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toRequestResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *RequestHandler) ExpressInterest(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid request id"))
	}
	if err := h.svc.ExpressInterest(c.Request().Context(), uid, requestID); err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "purchase request not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to express interest"))
		}
	}
	return c.JSON(http.StatusOK, NewSuccessResponse())
}

func (h *RequestHandler) ListInterestedFarmers(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	profileIDParam := c.QueryParam("contractorProfileId")
	if profileIDParam == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "contractorProfileId is required"))
	}
	profileID, err := strconv.ParseUint(profileIDParam, 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid contractorProfileId"))
	}
	farmers, err := h.svc.ListInterestedFarmers(c.Request().Context(), uid, profileID)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "contractor profile not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not your contractor profile"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch interested farmers"))
		}
	}
	return c.JSON(http.StatusOK, map[string][]service.FarmerDetail{"interests": farmers})
}
