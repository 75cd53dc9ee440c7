package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "lendhub/internal/handler/dto/request"
	resdto "lendhub/internal/handler/dto/response"
	"lendhub/internal/handler/middleware"
	"lendhub/internal/usecase/commands"
	"lendhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	itemCommands commands.ItemCommands
	itemQueries  queries.ItemQueries
}

func NewItemHandler(itemCommands commands.ItemCommands, itemQueries queries.ItemQueries) *ItemHandler {
	return &ItemHandler{
		itemCommands: itemCommands,
		itemQueries:  itemQueries,
	}
}

// @Summary Create item
// @Description List a new item for rent, optionally in answer to an item request
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Owner user id"
// @Param request body reqdto.CreateItemRequest true "Item"
// @Success 201 {object} resdto.ItemResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateItemRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.itemCommands.Create(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, commands.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item request not found"})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item data"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromItemView(view))
}

// @Summary Update item
// @Description Patch name, description or availability; owner only
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Owner user id"
// @Param itemId path int true "Item ID"
// @Param request body reqdto.UpdateItemRequest true "Fields to update"
// @Success 200 {object} resdto.ItemResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items/{itemId} [patch]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID format"})
		return
	}

	var req reqdto.UpdateItemRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.itemCommands.Update(c.Request.Context(), userID, itemID, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrItemNotFound), errors.Is(err, commands.ErrItemNotOwned):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item data"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromItemView(view))
}

// @Summary Get item
// @Description Get an item with its comments
// @Tags items
// @Produce json
// @Param itemId path int true "Item ID"
// @Success 200 {object} resdto.ItemResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items/{itemId} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID format"})
		return
	}

	view, err := h.itemQueries.GetByID(c.Request.Context(), itemID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromItemView(view))
}

// @Summary List caller's items
// @Description List all items owned by the caller
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header int true "Owner user id"
// @Success 200 {array} resdto.ItemResponse
// @Router /items [get]
func (h *ItemHandler) ListOwnerItems(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	views, err := h.itemQueries.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromItemViews(views))
}

// @Summary Search items
// @Description Search available items by text in name or description
// @Tags items
// @Produce json
// @Param text query string true "Search text"
// @Success 200 {array} resdto.ItemResponse
// @Router /items/search [get]
func (h *ItemHandler) SearchItems(c *gin.Context) {
	views, err := h.itemQueries.Search(c.Request.Context(), c.Query("text"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromItemViews(views))
}

// @Summary Comment on item
// @Description Leave a comment; only users with a finished approved booking of the item may comment
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Author user id"
// @Param itemId path int true "Item ID"
// @Param request body reqdto.CreateCommentRequest true "Comment"
// @Success 200 {object} resdto.CommentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items/{itemId}/comment [post]
func (h *ItemHandler) AddComment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID format"})
		return
	}

	var req reqdto.CreateCommentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.itemCommands.AddComment(c.Request.Context(), userID, itemID, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case errors.Is(err, commands.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, commands.ErrNotRenter):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User has not rented this item"})
		case errors.Is(err, commands.ErrNoApprovedBooking):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User has no confirmed booking of this item"})
		case errors.Is(err, commands.ErrBookingNotFinished):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Booking of this item is not finished yet"})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCommentView(view))
}
