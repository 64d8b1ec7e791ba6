package httpgin

type BookTicketRequest struct {
	StudentID          string `json:"student_id" binding:"required,uuid"`
	StudentName        string `json:"student_name" binding:"required"`
	RegistrationNumber string `json:"registration_number" binding:"required"`
	Course             string `json:"course" binding:"required"`
	StudentEmail       string `json:"student_email" binding:"omitempty,email"`
}

type BookTicketResponse struct {
	TicketID  string `json:"ticket_id"`
	EmailSent bool   `json:"email_sent"`
}

type VerifyTicketRequest struct {
	Code string `json:"code" binding:"required"`
}

type ScanHistoryResponse struct {
	Scans      any `json:"scans"`
	Authorized int `json:"authorized"`
	Rejected   int `json:"rejected"`
}

type CreateEventRequest struct {
	EventName     string `json:"event_name" binding:"required"`
	Description   string `json:"description"`
	Category      string `json:"category" binding:"required"`
	EventDate     string `json:"event_date" binding:"required"`
	EventTime     string `json:"event_time"`
	Venue         string `json:"venue" binding:"required"`
	ImageURL      string `json:"image_url"`
	OrganizerID   string `json:"organizer_id" binding:"required,uuid"`
	TotalCapacity int    `json:"total_capacity" binding:"required,gt=0"`
}

type UpdateEventRequest struct {
	EventName   string `json:"event_name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
	EventDate   string `json:"event_date" binding:"required"`
	EventTime   string `json:"event_time"`
	Venue       string `json:"venue" binding:"required"`
	ImageURL    string `json:"image_url"`
}

type SetSalesPausedRequest struct {
	Paused *bool `json:"paused" binding:"required"`
}

type SetCapacityRequest struct {
	TotalCapacity int `json:"total_capacity" binding:"required,gt=0"`
}

type CreateEventResponse struct {
	EventID string `json:"event_id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
