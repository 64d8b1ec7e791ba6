package httpgin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/campustix/portal/internal/domain"
	redisrepo "github.com/campustix/portal/internal/repository/redis"
	"github.com/campustix/portal/internal/service"
	"github.com/campustix/portal/internal/service/admin"
	"github.com/campustix/portal/internal/service/booking"
	"github.com/campustix/portal/internal/service/catalog"
	"github.com/campustix/portal/internal/service/checkin"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Catalog
	r.GET("/events", handleListEvents(svcs))
	r.GET("/events/:id", handleGetEvent(svcs))
	r.GET("/events/:id/availability", handleGetAvailability(svcs))
	r.GET("/students/:id/tickets", handleMyTickets(svcs))
	r.GET("/tickets/:id/qr", handleTicketQR())

	// Booking
	r.POST("/events/:id/bookings", handleBookTicket(svcs, idem))

	// Check-in
	r.POST("/checkin/verify", handleVerifyTicket(svcs))
	r.GET("/checkin/history", handleScanHistory(svcs))

	// Organizer API
	// TODO: add organizer auth middleware once the auth provider hookup lands
	adm := r.Group("/admin")
	{
		adm.POST("/events", handleCreateEvent(svcs))
		adm.PUT("/events/:id", handleUpdateEvent(svcs))
		adm.DELETE("/events/:id", handleDeleteEvent(svcs))
		adm.PATCH("/events/:id/sales", handleSetSalesPaused(svcs))
		adm.PATCH("/events/:id/capacity", handleSetCapacity(svcs))
		adm.GET("/events/:id/attendees", handleAttendees(svcs))
		adm.GET("/events/:id/stats", handleEventStats(svcs))
		adm.GET("/events/:id/attendance.pdf", handleAttendancePDF(svcs))
		adm.GET("/organizers/:id/events", handleMyEvents(svcs))
		adm.GET("/dashboard", handleDashboard(svcs))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  List events
// @Param    category  query  string  false  "Hackathon|Symposium|Cultural|Workshop|Seminar"
// @Param    limit     query  int     false  "page size"
// @Param    offset    query  int     false  "offset"
// @Success  200  {array}  domain.Event
// @Router   /events [get]
func handleListEvents(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := parseIntDefault(c.Query("limit"), 100)
		offset := parseIntDefault(c.Query("offset"), 0)

		events, err := svcs.Catalog.ListEvents(
			c.Request.Context(),
			domain.Category(c.Query("category")),
			limit,
			offset,
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, events, "public, max-age=30", true)
	}
}

// @Summary  Get event
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  200  {object}  domain.Event
// @Failure  404  {object}  ErrorResponse
// @Router   /events/{id} [get]
func handleGetEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		e, err := svcs.Catalog.GetEvent(c.Request.Context(), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, e, "public, max-age=60", true)
	}
}

// @Summary  Get availability counters
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  200  {object}  catalog.Availability
// @Router   /events/{id}/availability [get]
func handleGetAvailability(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		avail, err := svcs.Catalog.Availability(c.Request.Context(), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, avail, "public, max-age=15", true)
	}
}

// @Summary  List a student's tickets
// @Param    id  path  string  true  "Student ID (uuid)"
// @Success  200  {array}  domain.TicketWithEvent
// @Router   /students/{id}/tickets [get]
func handleMyTickets(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		studentID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		tickets, err := svcs.Catalog.MyTickets(c.Request.Context(), studentID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, tickets)
	}
}

// @Summary  Ticket QR code
// @Param    id  path  string  true  "Registration ID (uuid)"
// @Produce  png
// @Success  200
// @Router   /tickets/{id}/qr [get]
func handleTicketQR() gin.HandlerFunc {
	return func(c *gin.Context) {
		ticketID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		// The QR payload is exactly what the scanner's manual entry
		// accepts, so camera and keyboard paths converge.
		png, err := qrcode.Encode(ticketID.String(), qrcode.Medium, 256)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.Header("Cache-Control", "public, max-age=86400")
		c.Data(http.StatusOK, "image/png", png)
	}
}

// @Summary  Book a ticket (idempotent)
// @Param    id  path  string  true  "Event ID (uuid)"
// @Param    req body  BookTicketRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} BookTicketResponse
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "sold out / sales paused / duplicate"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /events/{id}/bookings [post]
func handleBookTicket(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req BookTicketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		studentID, err := uuid.Parse(req.StudentID)
		if err != nil {
			badRequest(c, "invalid student_id")
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemBooking(eventID, idemKey)

			if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
				return
			}

			locked, err := idem.AcquireLock(c.Request.Context(), idemStorageKey, 60*time.Second)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
				return
			}
		}

		result, err := svcs.Booking.Book(c.Request.Context(), booking.Request{
			EventID:            eventID,
			StudentID:          studentID,
			StudentName:        req.StudentName,
			RegistrationNumber: req.RegistrationNumber,
			Course:             req.Course,
			StudentEmail:       req.StudentEmail,
			RateKey:            req.StudentID,
		})
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			respondErr(c, err)
			return
		}

		resp := BookTicketResponse{
			TicketID:  result.TicketID,
			EmailSent: result.EmailSent,
		}

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(resp)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, resp)
	}
}

// @Summary  Verify a ticket and check it in
// @Param    req body  VerifyTicketRequest true "payload"
// @Success  200 {object} checkin.Outcome
// @Failure  400 {object} ErrorResponse
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /checkin/verify [post]
func handleVerifyTicket(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyTicketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		outcome, err := svcs.Checkin.Verify(c.Request.Context(), c.ClientIP(), req.Code)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, outcome)
	}
}

// @Summary  Scan history
// @Success  200 {object} ScanHistoryResponse
// @Router   /checkin/history [get]
func handleScanHistory(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorized, rejected := svcs.Checkin.Tally()
		c.JSON(http.StatusOK, ScanHistoryResponse{
			Scans:      svcs.Checkin.History(),
			Authorized: authorized,
			Rejected:   rejected,
		})
	}
}

// @Summary  Create event
// @Param    req body  CreateEventRequest true "payload"
// @Success  201 {object} CreateEventResponse
// @Router   /admin/events [post]
func handleCreateEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		date, err := parseRFC3339(req.EventDate)
		if err != nil {
			badRequest(c, "invalid event_date (RFC3339)")
			return
		}
		organizerID, err := uuid.Parse(req.OrganizerID)
		if err != nil {
			badRequest(c, "invalid organizer_id")
			return
		}

		id, err := svcs.Admin.CreateEvent(c.Request.Context(), &domain.Event{
			Name:          req.EventName,
			Description:   req.Description,
			Category:      domain.Category(req.Category),
			Date:          date,
			Time:          req.EventTime,
			Venue:         req.Venue,
			ImageURL:      req.ImageURL,
			OrganizerID:   organizerID,
			TotalCapacity: req.TotalCapacity,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateEventResponse{EventID: id.String()})
	}
}

// @Summary  Update event
// @Param    id  path  string  true  "Event ID (uuid)"
// @Param    req body  UpdateEventRequest true "payload"
// @Success  204
// @Router   /admin/events/{id} [put]
func handleUpdateEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req UpdateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		date, err := parseRFC3339(req.EventDate)
		if err != nil {
			badRequest(c, "invalid event_date (RFC3339)")
			return
		}

		err = svcs.Admin.UpdateEvent(c.Request.Context(), &domain.Event{
			ID:          eventID,
			Name:        req.EventName,
			Description: req.Description,
			Category:    domain.Category(req.Category),
			Date:        date,
			Time:        req.EventTime,
			Venue:       req.Venue,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Delete event and its registrations
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  204
// @Router   /admin/events/{id} [delete]
func handleDeleteEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		if err := svcs.Admin.DeleteEvent(c.Request.Context(), eventID); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Pause or resume ticket sales
// @Param    id  path  string  true  "Event ID (uuid)"
// @Param    req body  SetSalesPausedRequest true "payload"
// @Success  204
// @Router   /admin/events/{id}/sales [patch]
func handleSetSalesPaused(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req SetSalesPausedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := svcs.Admin.SetSalesPaused(c.Request.Context(), eventID, *req.Paused); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Edit total capacity
// @Param    id  path  string  true  "Event ID (uuid)"
// @Param    req body  SetCapacityRequest true "payload"
// @Success  204
// @Failure  409 {object} ErrorResponse "capacity below booked count"
// @Router   /admin/events/{id}/capacity [patch]
func handleSetCapacity(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req SetCapacityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := svcs.Admin.SetCapacity(c.Request.Context(), eventID, req.TotalCapacity); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  List event attendees
// @Param    id      path   string  true   "Event ID (uuid)"
// @Param    search  query  string  false  "name/registration/course filter"
// @Param    status  query  string  false  "confirmed|used"
// @Success  200 {array} domain.Registration
// @Router   /admin/events/{id}/attendees [get]
func handleAttendees(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		regs, err := svcs.Admin.Attendees(
			c.Request.Context(),
			eventID,
			c.Query("search"),
			domain.RegistrationStatus(c.Query("status")),
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, regs)
	}
}

// @Summary  Event booked/attended counters
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  200 {object} domain.EventStats
// @Router   /admin/events/{id}/stats [get]
func handleEventStats(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		stats, err := svcs.Admin.Stats(c.Request.Context(), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// @Summary  Printable attendance record
// @Param    id  path  string  true  "Event ID (uuid)"
// @Produce  application/pdf
// @Success  200
// @Router   /admin/events/{id}/attendance.pdf [get]
func handleAttendancePDF(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		pdf, err := svcs.Admin.AttendancePDF(c.Request.Context(), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="attendance.pdf"`)
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}

// @Summary  List an organizer's events
// @Param    id  path  string  true  "Organizer ID (uuid)"
// @Success  200 {array} domain.Event
// @Router   /admin/organizers/{id}/events [get]
func handleMyEvents(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		organizerID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		events, err := svcs.Admin.MyEvents(c.Request.Context(), organizerID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, events)
	}
}

// @Summary  Portal-wide dashboard totals
// @Success  200 {object} domain.DashboardTotals
// @Router   /admin/dashboard [get]
func handleDashboard(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		totals, err := svcs.Admin.DashboardTotals(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, totals)
	}
}

// --- Helpers ---

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	v, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return v, true
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// booking service
	case errors.Is(err, booking.ErrIncompleteForm):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: booking.ErrIncompleteForm.Error()})
		return
	case errors.Is(err, booking.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		return
	case errors.Is(err, booking.ErrSoldOut):
		c.JSON(http.StatusConflict, ErrorResponse{Error: booking.ErrSoldOut.Error()})
		return
	case errors.Is(err, booking.ErrSalesPaused):
		c.JSON(http.StatusConflict, ErrorResponse{Error: booking.ErrSalesPaused.Error()})
		return
	case errors.Is(err, booking.ErrAlreadyBooked):
		c.JSON(http.StatusConflict, ErrorResponse{Error: booking.ErrAlreadyBooked.Error()})
		return
	case errors.Is(err, booking.ErrRateLimited):
		c.Header("Retry-After", "60")
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: booking.ErrRateLimited.Error()})
		return
	// checkin service
	case errors.Is(err, checkin.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: checkin.ErrEmptyQuery.Error()})
		return
	case errors.Is(err, checkin.ErrRateLimited):
		c.Header("Retry-After", "60")
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: checkin.ErrRateLimited.Error()})
		return
	// catalog service
	case errors.Is(err, catalog.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		return
	case errors.Is(err, catalog.ErrInvalidCategory):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: catalog.ErrInvalidCategory.Error()})
		return
	// admin service
	case errors.Is(err, admin.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		return
	case errors.Is(err, admin.ErrEventConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "event conflict"})
		return
	case errors.Is(err, admin.ErrInvalidCategory):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: admin.ErrInvalidCategory.Error()})
		return
	case errors.Is(err, admin.ErrInvalidCapacity):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: admin.ErrInvalidCapacity.Error()})
		return
	case errors.Is(err, admin.ErrMissingFields):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: admin.ErrMissingFields.Error()})
		return
	case errors.Is(err, admin.ErrCapacityBelow):
		c.JSON(http.StatusConflict, ErrorResponse{Error: admin.ErrCapacityBelow.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
