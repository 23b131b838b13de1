//go:build e2e

package booking_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	nethttptest "net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"bookit/internal/handler/dto/response"
	"bookit/tests/common/builder"
	"bookit/tests/common/dbtest"
	"bookit/tests/common/httptest"
	"bookit/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL      = "/api/bookings"
	experiencesURL   = "/api/experiences"
	promoValidateURL = "/api/promo/validate"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

// =============================================================================
// TestCreateBooking - Booking creation API tests
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: booking decrements availability", func() {
		t := s.T()

		expID := dbtest.CreateTestExperience(t, s.DB, "Sunrise Kayaking", 999)
		slotID := dbtest.CreateTestSlot(t, s.DB, expID, 10, 5)

		reqBody := builder.NewBookingBuilder().
			WithSlotID(slotID).
			WithQuantity(2).
			WithFinalPrice(2057).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, "")
		require.Equal(t, http.StatusCreated, w.Code, "should create booking")

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.NotZero(t, created.ID)
		require.Equal(t, slotID, created.SlotID)
		require.Equal(t, "Sunrise Kayaking", created.ExperienceTitle)
		require.Equal(t, int64(2057), created.FinalPrice)

		require.Equal(t, int32(3), dbtest.SlotSpotsAvailable(t, s.DB, slotID))
	})

	s.Run("Normal case: booking is readable afterwards", func() {
		t := s.T()

		expID := dbtest.CreateTestExperience(t, s.DB, "Pottery Workshop", 799)
		slotID := dbtest.CreateTestSlot(t, s.DB, expID, 6, 6)

		reqBody := builder.NewBookingBuilder().
			WithSlotID(slotID).
			WithQuantity(1).
			WithFinalPrice(858).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, "")
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		dw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			bookingsURL+"/"+intToStr(created.ID), nil, "")
		require.Equal(t, http.StatusOK, dw.Code)

		var fetched response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &fetched))
		require.Equal(t, created.ID, fetched.ID)
		require.Equal(t, "asha@example.com", fetched.GuestEmail)
		require.Equal(t, "Pottery Workshop", fetched.ExperienceTitle)
	})

	s.Run("Error case: sold-out slot is rejected with 409", func() {
		t := s.T()

		expID := dbtest.CreateTestExperience(t, s.DB, "Night Trek", 1200)
		slotID := dbtest.CreateTestSlot(t, s.DB, expID, 4, 0)

		reqBody := builder.NewBookingBuilder().
			WithSlotID(slotID).
			WithQuantity(1).
			WithFinalPrice(1259).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, "")
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "spots")

		require.Equal(t, int32(0), dbtest.SlotSpotsAvailable(t, s.DB, slotID))
	})

	s.Run("Error case: quantity above remaining capacity is rejected", func() {
		t := s.T()

		expID := dbtest.CreateTestExperience(t, s.DB, "Wine Tasting", 1500)
		slotID := dbtest.CreateTestSlot(t, s.DB, expID, 10, 2)

		reqBody := builder.NewBookingBuilder().
			WithSlotID(slotID).
			WithQuantity(3).
			WithFinalPrice(4559).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, "")
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "spots")

		require.Equal(t, int32(2), dbtest.SlotSpotsAvailable(t, s.DB, slotID))
	})

	s.Run("Error case: unknown slot returns 404", func() {
		t := s.T()

		reqBody := builder.NewBookingBuilder().
			WithSlotID(999999).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Slot not found")
	})
}

// =============================================================================
// TestConcurrentReservation - row-lock arbitration of simultaneous bookings
// =============================================================================

func (s *BookingSuite) TestConcurrentReservation() {
	s.Run("Normal case: simultaneous bookings for the last spot produce exactly one winner", func() {
		t := s.T()

		expID := dbtest.CreateTestExperience(t, s.DB, "Glassblowing Intro", 700)
		slotID := dbtest.CreateTestSlot(t, s.DB, expID, 5, 1)

		payload, err := json.Marshal(builder.NewBookingBuilder().
			WithSlotID(slotID).
			WithQuantity(1).
			WithFinalPrice(759).
			BuildCreateRequestDTO())
		require.NoError(t, err)

		// PerformRequest asserts through testing.T, which is not safe from
		// spawned goroutines. Each racer drives the router directly and only
		// records its status code.
		const racers = 8
		codes := make([]int, racers)
		start := make(chan struct{})
		var wg sync.WaitGroup
		for i := range codes {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				req := nethttptest.NewRequest(http.MethodPost, bookingsURL, bytes.NewReader(payload))
				req.Header.Set("Content-Type", "application/json")
				rec := nethttptest.NewRecorder()
				<-start
				s.Router.ServeHTTP(rec, req)
				codes[i] = rec.Code
			}(i)
		}
		close(start)
		wg.Wait()

		winners, losers := 0, 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				winners++
			case http.StatusConflict:
				losers++
			}
		}
		require.Equal(t, 1, winners, "status codes: %v", codes)
		require.Equal(t, racers-1, losers, "status codes: %v", codes)
		require.Equal(t, int32(0), dbtest.SlotSpotsAvailable(t, s.DB, slotID))
	})

	s.Run("Normal case: racers on separate slots do not contend", func() {
		t := s.T()

		expID := dbtest.CreateTestExperience(t, s.DB, "Archery Basics", 400)
		slotA := dbtest.CreateTestSlot(t, s.DB, expID, 3, 3)
		slotB := dbtest.CreateTestSlot(t, s.DB, expID, 3, 3)

		payloads := make([][]byte, 2)
		for i, slotID := range []int64{slotA, slotB} {
			p, err := json.Marshal(builder.NewBookingBuilder().
				WithSlotID(slotID).
				WithQuantity(1).
				WithFinalPrice(459).
				BuildCreateRequestDTO())
			require.NoError(t, err)
			payloads[i] = p
		}

		codes := make([]int, 2)
		start := make(chan struct{})
		var wg sync.WaitGroup
		for i := range codes {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				req := nethttptest.NewRequest(http.MethodPost, bookingsURL, bytes.NewReader(payloads[i]))
				req.Header.Set("Content-Type", "application/json")
				rec := nethttptest.NewRecorder()
				<-start
				s.Router.ServeHTTP(rec, req)
				codes[i] = rec.Code
			}(i)
		}
		close(start)
		wg.Wait()

		require.Equal(t, []int{http.StatusCreated, http.StatusCreated}, codes)
		require.Equal(t, int32(2), dbtest.SlotSpotsAvailable(t, s.DB, slotA))
		require.Equal(t, int32(2), dbtest.SlotSpotsAvailable(t, s.DB, slotB))
	})
}

// =============================================================================
// TestIdempotency - Idempotency-Key replay semantics
// =============================================================================

func (s *BookingSuite) TestIdempotency() {
	s.Run("Normal case: replay returns the original booking without a second decrement", func() {
		t := s.T()

		expID := dbtest.CreateTestExperience(t, s.DB, "Cheese Making", 650)
		slotID := dbtest.CreateTestSlot(t, s.DB, expID, 8, 8)

		key := uuid.New().String()
		reqBody := builder.NewBookingBuilder().
			WithSlotID(slotID).
			WithQuantity(2).
			WithFinalPrice(1359).
			BuildCreateRequestDTO()

		first := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, key)
		require.Equal(t, http.StatusCreated, first.Code)

		var firstResp response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, first.Body, &firstResp))

		second := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, key)
		require.Equal(t, http.StatusOK, second.Code, "replay should be 200, not 201")

		var secondResp response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, second.Body, &secondResp))
		require.Equal(t, firstResp.ID, secondResp.ID)

		require.Equal(t, int32(6), dbtest.SlotSpotsAvailable(t, s.DB, slotID))
	})

	s.Run("Error case: same key with a different payload is rejected", func() {
		t := s.T()

		expID := dbtest.CreateTestExperience(t, s.DB, "City Cycle Tour", 450)
		slotID := dbtest.CreateTestSlot(t, s.DB, expID, 8, 8)

		key := uuid.New().String()
		first := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			builder.NewBookingBuilder().WithSlotID(slotID).WithQuantity(1).WithFinalPrice(509).BuildCreateRequestDTO(), key)
		require.Equal(t, http.StatusCreated, first.Code)

		second := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			builder.NewBookingBuilder().WithSlotID(slotID).WithQuantity(2).WithFinalPrice(959).BuildCreateRequestDTO(), key)
		httptest.AssertErrorResponse(t, second, http.StatusConflict, "Duplicate")

		require.Equal(t, int32(7), dbtest.SlotSpotsAvailable(t, s.DB, slotID))
	})
}

// =============================================================================
// TestCatalog - Experience listing reflects availability
// =============================================================================

func (s *BookingSuite) TestCatalog() {
	s.Run("Normal case: slot availability is visible through the catalog", func() {
		t := s.T()

		expID := dbtest.CreateTestExperience(t, s.DB, "Tide Pooling", 550)
		slotID := dbtest.CreateTestSlot(t, s.DB, expID, 5, 5)

		reqBody := builder.NewBookingBuilder().
			WithSlotID(slotID).
			WithQuantity(2).
			WithFinalPrice(1159).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, "")
		require.Equal(t, http.StatusCreated, w.Code)

		dw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			experiencesURL+"/"+intToStr(expID), nil, "")
		require.Equal(t, http.StatusOK, dw.Code)

		var detail response.ExperienceDetailResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &detail))
		require.Equal(t, "Tide Pooling", detail.Title)
		require.Len(t, detail.Slots, 1)
		require.Equal(t, int32(3), detail.Slots[0].SpotsAvailable)
	})

	s.Run("Normal case: search narrows the listing", func() {
		t := s.T()

		dbtest.CreateTestExperience(t, s.DB, "Forest Bathing", 300)
		dbtest.CreateTestExperience(t, s.DB, "Street Food Crawl", 250)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, experiencesURL+"?search=forest", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var list []response.ExperienceResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &list))
		require.Len(t, list, 1)
		require.Equal(t, "Forest Bathing", list[0].Title)
	})
}

// =============================================================================
// TestPromoValidation - Promo validation against the seeded registry
// =============================================================================

func (s *BookingSuite) TestPromoValidation() {
	s.Run("Normal case: recognized code returns its discount", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, promoValidateURL,
			map[string]any{"promoCode": "SAVE10"}, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp response.ValidatePromoResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resp))
		require.True(t, resp.Valid)
		require.NotNil(t, resp.Discount)
		require.Equal(t, "percentage", resp.Discount.Type)
		require.Equal(t, int64(10), resp.Discount.Value)
	})

	s.Run("Normal case: unrecognized code is valid=false with 200", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, promoValidateURL,
			map[string]any{"promoCode": "NOSUCHCODE"}, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp response.ValidatePromoResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resp))
		require.False(t, resp.Valid)
		require.Nil(t, resp.Discount)
	})
}

func intToStr(v int64) string {
	return strconv.FormatInt(v, 10)
}
