package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/repository"
)

// CommentHandler implements the append-only device comment log.
type CommentHandler struct {
	Comments *repository.CommentRepo
}

func NewCommentHandler(cm *repository.CommentRepo) *CommentHandler {
	return &CommentHandler{Comments: cm}
}

type addCommentReq struct {
	DevicesID    uint64 `json:"devices_id"`
	CommentValue string `json:"comment_value"`
}

// AddComments handles POST /add-comments/.  When the device id does not
// exist, the response is a 200 with a message payload rather than a 404;
// the frontend treats a missing device as an empty outcome, not a failure.
func (h *CommentHandler) AddComments(c echo.Context) error {
	var req addCommentReq
	if err := c.Bind(&req); err != nil || req.DevicesID == 0 || req.CommentValue == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "devices_id/comment_value required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cm, found, err := h.Comments.Add(ctx, req.DevicesID, req.CommentValue)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if !found {
		return c.JSON(http.StatusOK, echo.Map{"message": "Device not found"})
	}
	return c.JSON(http.StatusCreated, cm)
}

// GetComments handles GET /get-comments/?devices_id= and returns the device's
// comments newest first.
func (h *CommentHandler) GetComments(c echo.Context) error {
	id, err := strconv.ParseUint(c.QueryParam("devices_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "devices_id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	out, err := h.Comments.ListByDevice(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteComment handles DELETE /delete-comment/?id=.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := strconv.ParseUint(c.QueryParam("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Comments.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "comment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Comment deleted successfully"})
}
