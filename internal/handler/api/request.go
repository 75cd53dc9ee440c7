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

type RequestHandler struct {
	requestCommands commands.RequestCommands
	requestQueries  queries.RequestQueries
}

func NewRequestHandler(requestCommands commands.RequestCommands, requestQueries queries.RequestQueries) *RequestHandler {
	return &RequestHandler{
		requestCommands: requestCommands,
		requestQueries:  requestQueries,
	}
}

// @Summary Create item request
// @Description Ask other users to share an item
// @Tags requests
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Requestor user id"
// @Param request body reqdto.CreateItemRequestRequest true "Item request"
// @Success 201 {object} resdto.ItemRequestResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /requests [post]
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateItemRequestRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.requestCommands.Create(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item request"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromItemRequestView(view))
}

// @Summary List own item requests
// @Description List the caller's item requests with answered items, newest first
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Requestor user id"
// @Success 200 {array} resdto.ItemRequestResponse
// @Failure 404 {object} map[string]string
// @Router /requests [get]
func (h *RequestHandler) ListOwnRequests(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	views, err := h.requestQueries.ListOwn(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromItemRequestViews(views))
}

// @Summary List other users' item requests
// @Description Page through requests made by other users, newest first
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller user id"
// @Param from query int false "Offset" default(0)
// @Param size query int false "Page size" default(50)
// @Success 200 {array} resdto.ItemRequestResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /requests/all [get]
func (h *RequestHandler) ListAllRequests(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	from, err := parseIntQuery(c, "from", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from parameter"})
		return
	}
	size, err := parseIntQuery(c, "size", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid size parameter"})
		return
	}

	views, err := h.requestQueries.ListAll(c.Request.Context(), userID, from, size)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromItemRequestViews(views))
}

// @Summary Get item request
// @Description Get a request with answered items; any registered user may look
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller user id"
// @Param requestId path int true "Request ID"
// @Success 200 {object} resdto.ItemRequestResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /requests/{requestId} [get]
func (h *RequestHandler) GetRequest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	requestID, err := strconv.ParseInt(c.Param("requestId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID format"})
		return
	}

	view, err := h.requestQueries.GetByID(c.Request.Context(), userID, requestID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, queries.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item request not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromItemRequestView(view))
}

func parseIntQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
