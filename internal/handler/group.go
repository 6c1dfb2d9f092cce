package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/RodrigoAlexander7/linespace/internal/model"
	"github.com/RodrigoAlexander7/linespace/internal/repository"
)

// GroupHandler serves the /v1/groups endpoints.
type GroupHandler struct {
	Groups *repository.GroupRepo
}

func NewGroupHandler(groups *repository.GroupRepo) *GroupHandler {
	if groups == nil {
		panic("nil repository passed to NewGroupHandler")
	}
	return &GroupHandler{Groups: groups}
}

type createGroupReq struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type updateGroupReq struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
}

// ownedGroup runs the NotFound-then-Forbidden gate and returns the
// group when the caller owns it.
func (h *GroupHandler) ownedGroup(ctx context.Context, c echo.Context, id, userID uint64) (*model.Group, error) {
	g, err := h.Groups.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrGroupNotFound {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "group not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if g.UserID != userID {
		return nil, c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}
	return g, nil
}

// Create handles POST /v1/groups. Group names carry no uniqueness rule,
// unlike categories.
func (h *GroupHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createGroupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required (max 100 chars)"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g := &model.Group{UserID: uid, Name: req.Name}
	if err := h.Groups.Create(ctx, g); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create group"})
	}
	return c.JSON(http.StatusCreated, g)
}

// List handles GET /v1/groups: all groups of the caller, newest first,
// each with its note count.
func (h *GroupHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Groups.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /v1/groups/:id and includes the group's notes with
// their categories.
func (h *GroupHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g, errResp := h.ownedGroup(ctx, c, id, uid)
	if g == nil {
		return errResp
	}
	if err := h.Groups.LoadNotes(ctx, g); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, g)
}

// Update handles PATCH /v1/groups/:id.
func (h *GroupHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateGroupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must be 1-100 chars"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g, errResp := h.ownedGroup(ctx, c, id, uid)
	if g == nil {
		return errResp
	}
	if req.Name != nil && *req.Name != g.Name {
		if err := h.Groups.UpdateName(ctx, id, *req.Name); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
		g, err = h.Groups.GetByID(ctx, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
	}
	return c.JSON(http.StatusOK, g)
}

// Delete handles DELETE /v1/groups/:id. The schema cascades the delete
// to the group's notes and their join rows.
func (h *GroupHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g, errResp := h.ownedGroup(ctx, c, id, uid)
	if g == nil {
		return errResp
	}
	if err := h.Groups.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Group deleted successfully"})
}
