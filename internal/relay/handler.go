// Package relay implements the two-route confirmation-email relay: one
// endpoint that accepts booking details and sends a templated email, and a
// health check. The relay is stateless and best-effort from the caller's
// perspective.
package relay

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type SendTicketRequest struct {
	StudentName  string `json:"student_name"`
	EventName    string `json:"event_name"`
	TicketID     string `json:"ticket_id"`
	StudentRegNo string `json:"student_reg_no"`
	StudentEmail string `json:"student_email"`
}

// NewRouter builds the relay's HTTP surface. A nil sender means the SMTP
// credentials were not configured; requests then fail with 500 so the
// portal records "email not sent" instead of hanging.
func NewRouter(sender Sender, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), cors.Default())

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/api/send-ticket", handleSendTicket(sender, logger))

	return r
}

func handleSendTicket(sender Sender, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SendTicketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
			return
		}

		// student_reg_no is the only optional field
		if req.StudentEmail == "" || req.StudentName == "" || req.EventName == "" || req.TicketID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Missing required fields: student_email, student_name, event_name, ticket_id",
			})
			return
		}

		if sender == nil {
			logger.Error("send-ticket called with no SMTP credentials configured")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Email server not configured. Check SMTP_USER and SMTP_PASSWORD.",
			})
			return
		}

		err := sender.Send(c.Request.Context(), Message{
			To:          req.StudentEmail,
			StudentName: req.StudentName,
			EventName:   req.EventName,
			TicketID:    req.TicketID,
			RegNumber:   req.StudentRegNo,
		})
		if err != nil {
			logger.Error("failed to send confirmation email",
				"to", req.StudentEmail, "event", req.EventName, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		logger.Info("confirmation email sent", "to", req.StudentEmail, "event", req.EventName)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
