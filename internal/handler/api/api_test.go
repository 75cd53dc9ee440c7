//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lendhub/internal/domain/booking"
	"lendhub/internal/domain/item"
	"lendhub/internal/domain/user"
	"lendhub/internal/handler/api"
	"lendhub/internal/handler/middleware"
	"lendhub/internal/infra/memory"
	"lendhub/internal/pkg/clock"
	"lendhub/internal/usecase/commands"
	"lendhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// HandlerTestSuite drives the handlers through a router wired exactly like
// production, with the in-memory store standing in for postgres.
type HandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	store  *memory.Store
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.store = memory.NewStore()

	clk := clock.NewMockClock(now)

	userCommands := commands.NewUserCommands(s.store.Users())
	itemCommands := commands.NewItemCommands(
		s.store.Items(), s.store.Users(), s.store.Bookings(), s.store.Comments(),
		s.store.Requests(), s.store.ItemViews(), nil, clk)
	bookingCommands := commands.NewBookingCommands(
		s.store.Bookings(), s.store.Items(), s.store.Users(), s.store.BookingViews())
	requestCommands := commands.NewRequestCommands(s.store.Requests(), s.store.Users(), clk)

	userQueries := queries.NewUserQueries(s.store.UserViews())
	itemQueries := queries.NewItemQueries(s.store.ItemViews(), s.store.CommentViews(), nil)
	bookingQueries := queries.NewBookingQueries(
		s.store.BookingViews(), s.store.UserViews(), s.store.ItemViews(), clk)
	requestQueries := queries.NewRequestQueries(s.store.RequestViews(), s.store.UserViews())

	userHandler := api.NewUserHandler(userCommands, userQueries)
	itemHandler := api.NewItemHandler(itemCommands, itemQueries)
	bookingHandler := api.NewBookingHandler(bookingCommands, bookingQueries)
	requestHandler := api.NewRequestHandler(requestCommands, requestQueries)

	identified := middleware.RequireUser()

	s.router.POST("/users", userHandler.CreateUser)
	s.router.GET("/users", userHandler.ListUsers)
	s.router.GET("/users/:userId", userHandler.GetUser)
	s.router.PATCH("/users/:userId", userHandler.UpdateUser)
	s.router.DELETE("/users/:userId", userHandler.DeleteUser)

	s.router.GET("/items/search", itemHandler.SearchItems)
	s.router.GET("/items/:itemId", itemHandler.GetItem)
	s.router.POST("/items", identified, itemHandler.CreateItem)
	s.router.GET("/items", identified, itemHandler.ListOwnerItems)
	s.router.PATCH("/items/:itemId", identified, itemHandler.UpdateItem)
	s.router.POST("/items/:itemId/comment", identified, itemHandler.AddComment)

	s.router.POST("/bookings", identified, bookingHandler.CreateBooking)
	s.router.GET("/bookings", identified, bookingHandler.ListBookerBookings)
	s.router.GET("/bookings/owner", identified, bookingHandler.ListOwnerBookings)
	s.router.GET("/bookings/:bookingId", identified, bookingHandler.GetBooking)
	s.router.PATCH("/bookings/:bookingId", identified, bookingHandler.SetApproval)

	s.router.POST("/requests", identified, requestHandler.CreateRequest)
	s.router.GET("/requests", identified, requestHandler.ListOwnRequests)
	s.router.GET("/requests/all", identified, requestHandler.ListAllRequests)
	s.router.GET("/requests/:requestId", identified, requestHandler.GetRequest)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

// perform sends a request; userID 0 means no identity header.
func (s *HandlerTestSuite) perform(method, path string, body any, userID int64) *httptest.ResponseRecorder {
	s.T().Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set(middleware.UserIDHeader, fmt.Sprintf("%d", userID))
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) decode(rec *httptest.ResponseRecorder) map[string]any {
	s.T().Helper()
	var out map[string]any
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (s *HandlerTestSuite) decodeList(rec *httptest.ResponseRecorder) []map[string]any {
	s.T().Helper()
	var out []map[string]any
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (s *HandlerTestSuite) seedUser(name, email string) int64 {
	s.T().Helper()
	u, err := user.NewUser(name, email)
	require.NoError(s.T(), err)
	id, err := s.store.Users().Create(context.Background(), u)
	require.NoError(s.T(), err)
	return id
}

func (s *HandlerTestSuite) seedItem(ownerID int64, name string, available bool) int64 {
	s.T().Helper()
	it, err := item.NewItem(ownerID, name, name+" description", available, nil)
	require.NoError(s.T(), err)
	id, err := s.store.Items().Create(context.Background(), it)
	require.NoError(s.T(), err)
	return id
}

func (s *HandlerTestSuite) seedBooking(itemID, bookerID int64, start, end time.Time, status booking.Status) int64 {
	s.T().Helper()
	period, err := booking.NewPeriod(start, end)
	require.NoError(s.T(), err)
	id, err := s.store.Bookings().Create(context.Background(), booking.Reconstruct(0, itemID, bookerID, period, status))
	require.NoError(s.T(), err)
	return id
}

// ================================================================================
// Users
// ================================================================================

func (s *HandlerTestSuite) TestCreateUser() {
	s.Run("201 for valid request", func() {
		rec := s.perform(http.MethodPost, "/users", gin.H{"name": "alice", "email": "alice@example.com"}, 0)

		s.Equal(http.StatusCreated, rec.Code)
		body := s.decode(rec)
		s.Equal("alice", body["name"])
		s.Equal("alice@example.com", body["email"])
		s.NotZero(body["id"])
	})

	s.Run("409 for duplicate email", func() {
		s.seedUser("carol", "carol@example.com")

		rec := s.perform(http.MethodPost, "/users", gin.H{"name": "carol2", "email": "carol@example.com"}, 0)
		s.Equal(http.StatusConflict, rec.Code)
		s.Contains(rec.Body.String(), "Email is already in use")
	})

	s.Run("400 for malformed email", func() {
		rec := s.perform(http.MethodPost, "/users", gin.H{"name": "alice", "email": "not-an-email"}, 0)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("400 for missing name", func() {
		rec := s.perform(http.MethodPost, "/users", gin.H{"email": "alice2@example.com"}, 0)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerTestSuite) TestGetUser() {
	id := s.seedUser("alice", "alice@example.com")

	s.Run("200 for existing user", func() {
		rec := s.perform(http.MethodGet, fmt.Sprintf("/users/%d", id), nil, 0)

		s.Equal(http.StatusOK, rec.Code)
		s.Equal("alice", s.decode(rec)["name"])
	})

	s.Run("404 for unknown user", func() {
		rec := s.perform(http.MethodGet, "/users/999", nil, 0)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("400 for malformed id", func() {
		rec := s.perform(http.MethodGet, "/users/abc", nil, 0)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerTestSuite) TestUpdateUser() {
	id := s.seedUser("alice", "alice@example.com")
	s.seedUser("bob", "bob@example.com")

	s.Run("200 patches name only", func() {
		rec := s.perform(http.MethodPatch, fmt.Sprintf("/users/%d", id), gin.H{"name": "alicia"}, 0)

		s.Equal(http.StatusOK, rec.Code)
		body := s.decode(rec)
		s.Equal("alicia", body["name"])
		s.Equal("alice@example.com", body["email"])
	})

	s.Run("409 for email taken by another user", func() {
		rec := s.perform(http.MethodPatch, fmt.Sprintf("/users/%d", id), gin.H{"email": "bob@example.com"}, 0)
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("404 for unknown user", func() {
		rec := s.perform(http.MethodPatch, "/users/999", gin.H{"name": "ghost"}, 0)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *HandlerTestSuite) TestDeleteUser() {
	id := s.seedUser("alice", "alice@example.com")

	s.Run("200 deletes", func() {
		rec := s.perform(http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, 0)
		s.Equal(http.StatusOK, rec.Code)

		rec = s.perform(http.MethodGet, fmt.Sprintf("/users/%d", id), nil, 0)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("404 for unknown user", func() {
		rec := s.perform(http.MethodDelete, "/users/999", nil, 0)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *HandlerTestSuite) TestListUsers() {
	s.seedUser("alice", "alice@example.com")
	s.seedUser("bob", "bob@example.com")

	rec := s.perform(http.MethodGet, "/users", nil, 0)

	s.Equal(http.StatusOK, rec.Code)
	users := s.decodeList(rec)
	s.Len(users, 2)
	s.Equal("alice", users[0]["name"])
	s.Equal("bob", users[1]["name"])
}

// ================================================================================
// Items
// ================================================================================

func (s *HandlerTestSuite) TestCreateItem() {
	ownerID := s.seedUser("owner", "owner@example.com")
	valid := gin.H{"name": "drill", "description": "cordless drill", "available": true}

	s.Run("201 for valid request", func() {
		rec := s.perform(http.MethodPost, "/items", valid, ownerID)

		s.Equal(http.StatusCreated, rec.Code)
		body := s.decode(rec)
		s.Equal("drill", body["name"])
		s.Equal(true, body["available"])
		s.NotContains(body, "requestId")
	})

	s.Run("400 without identity header", func() {
		rec := s.perform(http.MethodPost, "/items", valid, 0)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("404 for unknown owner", func() {
		rec := s.perform(http.MethodPost, "/items", valid, 999)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("400 when available is missing", func() {
		rec := s.perform(http.MethodPost, "/items", gin.H{"name": "drill", "description": "d"}, ownerID)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("404 for unknown request reference", func() {
		withRequest := gin.H{"name": "drill", "description": "d", "available": true, "requestId": 999}
		rec := s.perform(http.MethodPost, "/items", withRequest, ownerID)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *HandlerTestSuite) TestUpdateItem() {
	ownerID := s.seedUser("owner", "owner@example.com")
	otherID := s.seedUser("other", "other@example.com")
	itemID := s.seedItem(ownerID, "drill", true)

	s.Run("200 for owner", func() {
		rec := s.perform(http.MethodPatch, fmt.Sprintf("/items/%d", itemID), gin.H{"available": false}, ownerID)

		s.Equal(http.StatusOK, rec.Code)
		s.Equal(false, s.decode(rec)["available"])
	})

	s.Run("404 for non-owner", func() {
		rec := s.perform(http.MethodPatch, fmt.Sprintf("/items/%d", itemID), gin.H{"name": "mine now"}, otherID)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("404 for unknown item", func() {
		rec := s.perform(http.MethodPatch, "/items/999", gin.H{"name": "x"}, ownerID)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *HandlerTestSuite) TestGetItem() {
	ownerID := s.seedUser("owner", "owner@example.com")
	renterID := s.seedUser("renter", "renter@example.com")
	itemID := s.seedItem(ownerID, "drill", true)
	s.seedBooking(itemID, renterID, now.Add(-72*time.Hour), now.Add(-24*time.Hour), booking.StatusApproved)
	rec := s.perform(http.MethodPost, fmt.Sprintf("/items/%d/comment", itemID), gin.H{"text": "great"}, renterID)
	s.Require().Equal(http.StatusOK, rec.Code)

	s.Run("200 without identity header", func() {
		rec := s.perform(http.MethodGet, fmt.Sprintf("/items/%d", itemID), nil, 0)

		s.Equal(http.StatusOK, rec.Code)
		body := s.decode(rec)
		s.Equal("drill", body["name"])
		comments, ok := body["comments"].([]any)
		s.Require().True(ok)
		s.Len(comments, 1)
	})

	s.Run("404 for unknown item", func() {
		rec := s.perform(http.MethodGet, "/items/999", nil, 0)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *HandlerTestSuite) TestListOwnerItems() {
	ownerID := s.seedUser("owner", "owner@example.com")
	s.seedItem(ownerID, "drill", true)
	s.seedItem(ownerID, "saw", false)

	rec := s.perform(http.MethodGet, "/items", nil, ownerID)

	s.Equal(http.StatusOK, rec.Code)
	items := s.decodeList(rec)
	s.Require().Len(items, 2)
	s.Equal("drill", items[0]["name"])
	s.Equal("saw", items[1]["name"])
}

func (s *HandlerTestSuite) TestSearchItems() {
	ownerID := s.seedUser("owner", "owner@example.com")
	s.seedItem(ownerID, "drill", true)
	s.seedItem(ownerID, "broken drill", false)

	s.Run("matches available items only", func() {
		rec := s.perform(http.MethodGet, "/items/search?text=DRILL", nil, 0)

		s.Equal(http.StatusOK, rec.Code)
		items := s.decodeList(rec)
		s.Require().Len(items, 1)
		s.Equal("drill", items[0]["name"])
	})

	s.Run("blank text yields empty list", func() {
		rec := s.perform(http.MethodGet, "/items/search?text=", nil, 0)

		s.Equal(http.StatusOK, rec.Code)
		s.Empty(s.decodeList(rec))
	})
}

func (s *HandlerTestSuite) TestAddComment() {
	ownerID := s.seedUser("owner", "owner@example.com")
	renterID := s.seedUser("renter", "renter@example.com")
	itemID := s.seedItem(ownerID, "drill", true)

	s.Run("400 when user never booked the item", func() {
		rec := s.perform(http.MethodPost, fmt.Sprintf("/items/%d/comment", itemID), gin.H{"text": "nice"}, renterID)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("200 for past renter", func() {
		s.seedBooking(itemID, renterID, now.Add(-72*time.Hour), now.Add(-24*time.Hour), booking.StatusApproved)

		rec := s.perform(http.MethodPost, fmt.Sprintf("/items/%d/comment", itemID), gin.H{"text": "nice"}, renterID)

		s.Equal(http.StatusOK, rec.Code)
		body := s.decode(rec)
		s.Equal("nice", body["text"])
		s.Equal("renter", body["authorName"])
	})

	s.Run("400 for running booking", func() {
		lateID := s.seedUser("late", "late@example.com")
		s.seedBooking(itemID, lateID, now.Add(-time.Hour), now.Add(time.Hour), booking.StatusApproved)

		rec := s.perform(http.MethodPost, fmt.Sprintf("/items/%d/comment", itemID), gin.H{"text": "early"}, lateID)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// Bookings
// ================================================================================

func (s *HandlerTestSuite) TestCreateBooking() {
	ownerID := s.seedUser("owner", "owner@example.com")
	bookerID := s.seedUser("booker", "booker@example.com")
	itemID := s.seedItem(ownerID, "drill", true)
	valid := gin.H{
		"itemId": itemID,
		"start":  now.Add(24 * time.Hour).Format(time.RFC3339),
		"end":    now.Add(48 * time.Hour).Format(time.RFC3339),
	}

	s.Run("201 creates waiting booking", func() {
		rec := s.perform(http.MethodPost, "/bookings", valid, bookerID)

		s.Equal(http.StatusCreated, rec.Code)
		body := s.decode(rec)
		s.Equal("WAITING", body["status"])
		s.Equal("drill", body["item"].(map[string]any)["name"])
		s.Equal("booker", body["booker"].(map[string]any)["name"])
	})

	s.Run("404 when owner books own item", func() {
		rec := s.perform(http.MethodPost, "/bookings", valid, ownerID)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("400 for inverted period", func() {
		inverted := gin.H{
			"itemId": itemID,
			"start":  now.Add(48 * time.Hour).Format(time.RFC3339),
			"end":    now.Add(24 * time.Hour).Format(time.RFC3339),
		}
		rec := s.perform(http.MethodPost, "/bookings", inverted, bookerID)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("400 for unavailable item", func() {
		sawID := s.seedItem(ownerID, "saw", false)
		body := gin.H{
			"itemId": sawID,
			"start":  now.Add(24 * time.Hour).Format(time.RFC3339),
			"end":    now.Add(48 * time.Hour).Format(time.RFC3339),
		}
		rec := s.perform(http.MethodPost, "/bookings", body, bookerID)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerTestSuite) TestSetApproval() {
	ownerID := s.seedUser("owner", "owner@example.com")
	bookerID := s.seedUser("booker", "booker@example.com")
	itemID := s.seedItem(ownerID, "drill", true)
	bookingID := s.seedBooking(itemID, bookerID, now.Add(24*time.Hour), now.Add(48*time.Hour), booking.StatusWaiting)

	s.Run("403 for non-owner", func() {
		rec := s.perform(http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=true", bookingID), nil, bookerID)
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("400 without approved parameter", func() {
		rec := s.perform(http.MethodPatch, fmt.Sprintf("/bookings/%d", bookingID), nil, ownerID)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("200 approves once", func() {
		rec := s.perform(http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=true", bookingID), nil, ownerID)

		s.Equal(http.StatusOK, rec.Code)
		s.Equal("APPROVED", s.decode(rec)["status"])

		rec = s.perform(http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=false", bookingID), nil, ownerID)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("404 for unknown booking", func() {
		rec := s.perform(http.MethodPatch, "/bookings/999?approved=true", nil, ownerID)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *HandlerTestSuite) TestGetBooking() {
	ownerID := s.seedUser("owner", "owner@example.com")
	bookerID := s.seedUser("booker", "booker@example.com")
	strangerID := s.seedUser("stranger", "stranger@example.com")
	itemID := s.seedItem(ownerID, "drill", true)
	bookingID := s.seedBooking(itemID, bookerID, now.Add(24*time.Hour), now.Add(48*time.Hour), booking.StatusWaiting)

	s.Run("200 for booker", func() {
		rec := s.perform(http.MethodGet, fmt.Sprintf("/bookings/%d", bookingID), nil, bookerID)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("200 for item owner", func() {
		rec := s.perform(http.MethodGet, fmt.Sprintf("/bookings/%d", bookingID), nil, ownerID)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("404 for anyone else", func() {
		rec := s.perform(http.MethodGet, fmt.Sprintf("/bookings/%d", bookingID), nil, strangerID)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *HandlerTestSuite) TestListBookings() {
	ownerID := s.seedUser("owner", "owner@example.com")
	bookerID := s.seedUser("booker", "booker@example.com")
	itemID := s.seedItem(ownerID, "drill", true)
	pastID := s.seedBooking(itemID, bookerID, now.Add(-72*time.Hour), now.Add(-48*time.Hour), booking.StatusApproved)
	futureID := s.seedBooking(itemID, bookerID, now.Add(24*time.Hour), now.Add(48*time.Hour), booking.StatusWaiting)

	s.Run("defaults to ALL, newest start first", func() {
		rec := s.perform(http.MethodGet, "/bookings", nil, bookerID)

		s.Equal(http.StatusOK, rec.Code)
		views := s.decodeList(rec)
		s.Require().Len(views, 2)
		s.Equal(float64(futureID), views[0]["id"])
		s.Equal(float64(pastID), views[1]["id"])
	})

	s.Run("filters by state", func() {
		rec := s.perform(http.MethodGet, "/bookings?state=PAST", nil, bookerID)

		views := s.decodeList(rec)
		s.Require().Len(views, 1)
		s.Equal(float64(pastID), views[0]["id"])
	})

	s.Run("400 for unknown state", func() {
		rec := s.perform(http.MethodGet, "/bookings?state=SOMEDAY", nil, bookerID)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("owner endpoint lists bookings of owned items", func() {
		rec := s.perform(http.MethodGet, "/bookings/owner?state=WAITING", nil, ownerID)

		views := s.decodeList(rec)
		s.Require().Len(views, 1)
		s.Equal(float64(futureID), views[0]["id"])
	})

	s.Run("404 for owner without items", func() {
		rec := s.perform(http.MethodGet, "/bookings/owner", nil, bookerID)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("404 for unknown user", func() {
		rec := s.perform(http.MethodGet, "/bookings", nil, 999)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

// ================================================================================
// Item requests
// ================================================================================

func (s *HandlerTestSuite) TestCreateRequest() {
	userID := s.seedUser("alice", "alice@example.com")

	s.Run("201 for valid request", func() {
		rec := s.perform(http.MethodPost, "/requests", gin.H{"description": "need a drill"}, userID)

		s.Equal(http.StatusCreated, rec.Code)
		body := s.decode(rec)
		s.Equal("need a drill", body["description"])
		s.NotNil(body["items"])
	})

	s.Run("404 for unknown user", func() {
		rec := s.perform(http.MethodPost, "/requests", gin.H{"description": "need a drill"}, 999)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("400 for missing description", func() {
		rec := s.perform(http.MethodPost, "/requests", gin.H{}, userID)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerTestSuite) TestListRequests() {
	aliceID := s.seedUser("alice", "alice@example.com")
	bobID := s.seedUser("bob", "bob@example.com")

	rec := s.perform(http.MethodPost, "/requests", gin.H{"description": "need a drill"}, aliceID)
	s.Require().Equal(http.StatusCreated, rec.Code)
	rec = s.perform(http.MethodPost, "/requests", gin.H{"description": "need a saw"}, bobID)
	s.Require().Equal(http.StatusCreated, rec.Code)

	s.Run("own requests only", func() {
		rec := s.perform(http.MethodGet, "/requests", nil, aliceID)

		s.Equal(http.StatusOK, rec.Code)
		views := s.decodeList(rec)
		s.Require().Len(views, 1)
		s.Equal("need a drill", views[0]["description"])
	})

	s.Run("all excludes own", func() {
		rec := s.perform(http.MethodGet, "/requests/all", nil, aliceID)

		views := s.decodeList(rec)
		s.Require().Len(views, 1)
		s.Equal("need a saw", views[0]["description"])
	})

	s.Run("400 for malformed paging", func() {
		rec := s.perform(http.MethodGet, "/requests/all?from=abc", nil, aliceID)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerTestSuite) TestGetRequest() {
	aliceID := s.seedUser("alice", "alice@example.com")
	bobID := s.seedUser("bob", "bob@example.com")

	rec := s.perform(http.MethodPost, "/requests", gin.H{"description": "need a drill"}, aliceID)
	s.Require().Equal(http.StatusCreated, rec.Code)
	requestID := int64(s.decode(rec)["id"].(float64))

	s.Run("200 for any user", func() {
		rec := s.perform(http.MethodGet, fmt.Sprintf("/requests/%d", requestID), nil, bobID)

		s.Equal(http.StatusOK, rec.Code)
		s.Equal("need a drill", s.decode(rec)["description"])
	})

	s.Run("404 for unknown request", func() {
		rec := s.perform(http.MethodGet, "/requests/999", nil, aliceID)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}
