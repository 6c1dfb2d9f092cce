package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/RodrigoAlexander7/linespace/internal/model"
	"github.com/RodrigoAlexander7/linespace/internal/queue"
	"github.com/RodrigoAlexander7/linespace/internal/repository"
	queuepublisher "github.com/RodrigoAlexander7/linespace/internal/service"
)

// NoteHandler serves the /v1/notes endpoints. Notes have no owner
// column of their own, so every operation here derives ownership from
// the containing group.
type NoteHandler struct {
	Notes      *repository.NoteRepo
	Groups     *repository.GroupRepo
	Categories *repository.CategoryRepo
}

func NewNoteHandler(notes *repository.NoteRepo, groups *repository.GroupRepo, categories *repository.CategoryRepo) *NoteHandler {
	if notes == nil || groups == nil || categories == nil {
		panic("nil repository passed to NewNoteHandler")
	}
	return &NoteHandler{Notes: notes, Groups: groups, Categories: categories}
}

type createNoteReq struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Content     string   `json:"content" validate:"required,min=1"`
	GroupID     uint64   `json:"groupId" validate:"required"`
	CategoryIDs []uint64 `json:"categoryIds"`
}

type updateNoteReq struct {
	Title       *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Content     *string   `json:"content" validate:"omitempty,min=1"`
	Status      *string   `json:"status" validate:"omitempty,oneof=ACTIVE ARCHIVED TRASHED"`
	CategoryIDs *[]uint64 `json:"categoryIds"`
}

// ownedNote runs the note's ownership gate: 404 when the id does not
// exist, 403 when the containing group belongs to someone else.
func (h *NoteHandler) ownedNote(ctx context.Context, c echo.Context, id, userID uint64) (*model.Note, error) {
	n, err := h.Notes.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNoteNotFound {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "note not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if n.Group.UserID != userID {
		return nil, c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}
	return n, nil
}

// checkCategories verifies that every id exists and belongs to the
// caller. Foreign and nonexistent ids are indistinguishable: both push
// the owned count below the requested count.
func (h *NoteHandler) checkCategories(ctx context.Context, userID uint64, ids []uint64) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	n, err := h.Categories.CountOwned(ctx, userID, ids)
	if err != nil {
		return false, err
	}
	return n == int64(len(ids)), nil
}

// publishActivity emits a note lifecycle event on its own goroutine so
// broker trouble never delays or fails the request.
func publishActivity(userID uint64, n *model.Note, action string) {
	ev := queue.NoteActivityEvent{
		NoteID:     n.ID,
		GroupID:    n.GroupID,
		UserID:     userID,
		Title:      n.Title,
		Status:     string(n.Status),
		Action:     action,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queuepublisher.PublishNoteActivity(ctx, ev)
	}()
}

// Create handles POST /v1/notes. Unlike the category and group gates,
// a missing group and a foreign group both collapse into 403 here;
// the two cases are deliberately indistinguishable.
func (h *NoteHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createNoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title (max 200 chars), content and groupId are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g, err := h.Groups.GetByID(ctx, req.GroupID)
	if err != nil {
		if err == repository.ErrGroupNotFound {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if g.UserID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	ok, err := h.checkCategories(ctx, uid, req.CategoryIDs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid category ids"})
	}

	n := &model.Note{GroupID: req.GroupID, Title: req.Title, Content: req.Content}
	if err := h.Notes.Create(ctx, n, req.CategoryIDs); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create note"})
	}
	publishActivity(uid, n, "created")
	return c.JSON(http.StatusCreated, n)
}

// List handles GET /v1/notes with optional status, groupId and
// categoryId query filters, AND-composed, newest update first.
func (h *NoteHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var f repository.NoteFilter
	if s := c.QueryParam("status"); s != "" {
		st := model.NoteStatus(s)
		if !st.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		f.Status = st
	}
	if s := c.QueryParam("groupId"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid groupId"})
		}
		f.GroupID = id
	}
	if s := c.QueryParam("categoryId"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid categoryId"})
		}
		f.CategoryID = id
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Notes.ListByUser(ctx, uid, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /v1/notes/:id.
func (h *NoteHandler) Get(c echo.Context) error {
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

	n, errResp := h.ownedNote(ctx, c, id, uid)
	if n == nil {
		return errResp
	}
	return c.JSON(http.StatusOK, n)
}

// Update handles PATCH /v1/notes/:id. A categoryIds field that is
// present replaces the note's whole tag set (an empty array clears
// it); an omitted field leaves the set untouched. Title, content and
// status are partial updates.
func (h *NoteHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateNoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		req.Title = &trimmed
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid fields"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, errResp := h.ownedNote(ctx, c, id, uid)
	if n == nil {
		return errResp
	}

	if req.CategoryIDs != nil {
		ok, err := h.checkCategories(ctx, uid, *req.CategoryIDs)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if !ok {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid category ids"})
		}
	}

	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Content != nil {
		n.Content = *req.Content
	}
	if req.Status != nil {
		n.Status = model.NoteStatus(*req.Status)
	}

	if err := h.Notes.Update(ctx, n, req.CategoryIDs); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, n)
}

// Archive handles PATCH /v1/notes/:id/archive. The write is
// unconditional, so archiving an archived note succeeds again.
func (h *NoteHandler) Archive(c echo.Context) error {
	return h.setStatus(c, model.NoteStatusArchived, "archived")
}

// Unarchive handles PATCH /v1/notes/:id/unarchive.
func (h *NoteHandler) Unarchive(c echo.Context) error {
	return h.setStatus(c, model.NoteStatusActive, "unarchived")
}

func (h *NoteHandler) setStatus(c echo.Context, status model.NoteStatus, action string) error {
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

	n, errResp := h.ownedNote(ctx, c, id, uid)
	if n == nil {
		return errResp
	}
	if err := h.Notes.SetStatus(ctx, id, status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	n, err = h.Notes.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	publishActivity(uid, n, action)
	return c.JSON(http.StatusOK, n)
}

// Delete handles DELETE /v1/notes/:id.
func (h *NoteHandler) Delete(c echo.Context) error {
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

	n, errResp := h.ownedNote(ctx, c, id, uid)
	if n == nil {
		return errResp
	}
	if err := h.Notes.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	publishActivity(uid, n, "deleted")
	return c.JSON(http.StatusOK, echo.Map{"message": "Note deleted successfully"})
}
