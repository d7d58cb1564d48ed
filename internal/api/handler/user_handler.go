package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/visitorgate/visitor-admin/internal/core/ports"
)

// UserHandler serves operator account management. Every route is admin-only.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /v1/users.
//
// @Summary      List operators with live presence
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userListResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserListResponse(list))
}

// Create handles POST /v1/users.
//
// @Summary      Create an operator
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Role:        req.Role,
		Platform:    req.Platform,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(*user))
}

// Update handles PATCH /v1/users/:uid.
//
// @Summary      Change an operator's role or display name
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uid   path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/users/{uid} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	uid, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if req.Role == nil && req.DisplayName == nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "nothing to update")
	}

	target := c.Param("uid")
	if target == uid && req.Role != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "cannot change your own role")
	}

	user, err := h.service.Update(c.Request().Context(), ports.UpdateUserInput{
		UID:         target,
		Role:        req.Role,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(*user))
}

// Delete handles DELETE /v1/users/:uid.
//
// @Summary      Delete an operator
// @Tags         users
// @Security     BearerAuth
// @Param        uid  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{uid} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	uid, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	target := c.Param("uid")
	if target == uid {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "cannot delete your own account")
	}

	if err := h.service.Delete(c.Request().Context(), target); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
