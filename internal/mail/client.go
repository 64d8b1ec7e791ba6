// Package mail holds the portal-side client for the confirmation-email
// relay service.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Confirmation is the payload of the relay's send-ticket endpoint.
type Confirmation struct {
	StudentName        string `json:"student_name"`
	EventName          string `json:"event_name"`
	TicketID           string `json:"ticket_id"`
	RegistrationNumber string `json:"student_reg_no"`
	StudentEmail       string `json:"student_email"`
}

// Client calls the mail relay over HTTP. It reports failure for any
// non-200 response; deciding that email failure is non-fatal is the
// caller's job.
type Client struct {
	baseURL string
	hc      *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: 10 * time.Second},
	}
}

// SendConfirmation posts the booking details to the relay.
func (c *Client) SendConfirmation(ctx context.Context, conf Confirmation) error {
	const op = "mail.Client.SendConfirmation"

	body, err := json.Marshal(conf)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/api/send-ticket",
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
			return fmt.Errorf("%s: relay returned %d: %s", op, resp.StatusCode, e.Error)
		}
		return fmt.Errorf("%s: relay returned %d", op, resp.StatusCode)
	}

	return nil
}
