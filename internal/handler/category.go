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

// CategoryHandler serves the /v1/categories endpoints.
type CategoryHandler struct {
	Categories *repository.CategoryRepo
}

func NewCategoryHandler(categories *repository.CategoryRepo) *CategoryHandler {
	if categories == nil {
		panic("nil repository passed to NewCategoryHandler")
	}
	return &CategoryHandler{Categories: categories}
}

type createCategoryReq struct {
	Name  string  `json:"name" validate:"required,min=1,max=50"`
	Color *string `json:"color" validate:"omitempty,hexrgb"`
}

type updateCategoryReq struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=50"`
	Color *string `json:"color" validate:"omitempty,hexrgb"`
}

// ownedCategory runs the NotFound-then-Forbidden gate: existence is
// checked first, so probing a foreign id never reveals more than
// whether the id exists.
func (h *CategoryHandler) ownedCategory(ctx context.Context, c echo.Context, id, userID uint64) (*model.Category, error) {
	cat, err := h.Categories.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrCategoryNotFound {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if cat.UserID != userID {
		return nil, c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}
	return cat, nil
}

// Create handles POST /v1/categories. The name must be unique within
// the caller's categories; the pre-insert lookup produces the 409 and
// the composite unique constraint backstops concurrent creates.
func (h *CategoryHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createCategoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required (max 50 chars), color must be a hex color like #FF5733"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	exists, err := h.Categories.ExistsByName(ctx, uid, req.Name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if exists {
		return c.JSON(http.StatusConflict, echo.Map{"error": "category with this name already exists"})
	}

	cat := &model.Category{UserID: uid, Name: req.Name, Color: req.Color}
	if err := h.Categories.Create(ctx, cat); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "category with this name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create category"})
	}
	return c.JSON(http.StatusCreated, cat)
}

// List handles GET /v1/categories: the caller's categories ordered by
// name, each with its note count.
func (h *CategoryHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Categories.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /v1/categories/:id and includes the tagged notes,
// each with its containing group.
func (h *CategoryHandler) Get(c echo.Context) error {
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

	cat, errResp := h.ownedCategory(ctx, c, id, uid)
	if cat == nil {
		return errResp
	}
	if err := h.Categories.LoadNotes(ctx, cat); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, cat)
}

// Update handles PATCH /v1/categories/:id. A rename repeats the
// uniqueness check against the caller's other categories.
func (h *CategoryHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateCategoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must be 1-50 chars, color must be a hex color like #FF5733"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cat, errResp := h.ownedCategory(ctx, c, id, uid)
	if cat == nil {
		return errResp
	}

	if req.Name != nil && *req.Name != cat.Name {
		exists, err := h.Categories.ExistsByName(ctx, uid, *req.Name)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if exists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "category with this name already exists"})
		}
		cat.Name = *req.Name
	}
	if req.Color != nil {
		cat.Color = req.Color
	}

	if err := h.Categories.Update(ctx, cat); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "category with this name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, cat)
}

// Delete handles DELETE /v1/categories/:id. Join rows disappear with
// the category; notes themselves are untouched.
func (h *CategoryHandler) Delete(c echo.Context) error {
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

	cat, errResp := h.ownedCategory(ctx, c, id, uid)
	if cat == nil {
		return errResp
	}
	if err := h.Categories.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Category deleted successfully"})
}
