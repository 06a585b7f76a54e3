package handler

import (
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/agrolink/agrolink-backend/internal/model"
	"github.com/agrolink/agrolink-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	svc        service.UserService
	authClient *auth.Client
}

func NewUserHandler(svc service.UserService, authClient *auth.Client) *UserHandler {
	return &UserHandler{svc: svc, authClient: authClient}
}

type UserResponse struct {
	ID        uint64  `json:"id"`
	UID       string  `json:"uid"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email,omitempty"`
	Role      string  `json:"role"`
	State     string  `json:"state"`
	City      string  `json:"city"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		UID:       u.UID,
		Name:      u.Name,
		Phone:     u.Phone,
		Email:     u.Email,
		Role:      string(u.Role),
		State:     u.State,
		City:      u.City,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *UserHandler) CompleteProfile(c echo.Context) error {
	var body struct {
		UID         string `json:"uid"`
		Name        string `json:"name"`
		Phone       string `json:"phone"`
		Email       string `json:"email"`
		Role        string `json:"role"`
		State       string `json:"state"`
		City        string `json:"city"`
		CompanyName string `json:"companyName"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	u, err := h.svc.CompleteProfile(c.Request().Context(), service.CompleteProfileInput{
		UID:         body.UID,
		Name:        body.Name,
		Phone:       body.Phone,
		Email:       body.Email,
		Role:        body.Role,
		State:       body.State,
		City:        body.City,
		CompanyName: body.CompanyName,
	})
	if err != nil {
		switch err {
		case service.ErrInvalid:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "missing required fields"))
		case service.ErrDuplicate:
			return c.JSON(http.StatusConflict, NewErrorResponse("conflict", "user with this phone number or email already exists"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to complete profile"))
		}
	}
	// Best-effort display-name sync back to the identity provider.
	if h.authClient != nil {
		params := (&auth.UserToUpdate{}).DisplayName(u.Name)
		_, _ = h.authClient.UpdateUser(c.Request().Context(), u.UID, params)
	}
	return c.JSON(http.StatusOK, NewSuccessResponse())
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	uid := c.QueryParam("uid")
	if uid == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "missing uid"))
	}
	u, err := h.svc.GetByUID(c.Request().Context(), uid)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "user not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch profile"))
		}
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) Filter(c echo.Context) error {
	var body struct {
		IDs  []uint64 `json:"ids"`
		Role string   `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	users, err := h.svc.FilterUsers(c.Request().Context(), body.IDs, model.Role(body.Role))
	if err != nil {
		switch err {
		case service.ErrInvalid:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid role"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch users"))
		}
	}
	resp := make([]UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, map[string][]UserResponse{"users": resp})
}

type ContractorAccountResponse struct {
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
}

func (h *UserHandler) GetContractorAccount(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	u, err := h.svc.GetByUID(c.Request().Context(), uid)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "user not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch user"))
		}
	}
	return c.JSON(http.StatusOK, ContractorAccountResponse{Name: u.Name, Email: u.Email})
}

func (h *UserHandler) UpdateContractorAccount(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var body struct {
		Name  string  `json:"name"`
		Email *string `json:"email"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	u, err := h.svc.UpdateContact(c.Request().Context(), uid, body.Name, body.Email)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "user not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update user"))
		}
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) GetFarmer(c echo.Context) error {
	uid := c.QueryParam("uid")
	if uid == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "missing uid"))
	}
	detail, err := h.svc.GetFarmerDetail(c.Request().Context(), uid)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "farmer not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch farmer"))
		}
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *UserHandler) GetContractorProfile(c echo.Context) error {
	uid := c.QueryParam("uid")
	if uid == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "missing uid"))
	}
	profile, err := h.svc.GetContractorProfile(c.Request().Context(), uid)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "contractor profile not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch contractor profile"))
		}
	}
	return c.JSON(http.StatusOK, profile)
}
