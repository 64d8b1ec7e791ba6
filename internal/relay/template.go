package relay

import (
	"bytes"
	"fmt"
	"html/template"
)

// Confirmation email body. Kept inline: it is the only template this
// service renders.
var emailTmpl = template.Must(template.New("ticket").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8"/>
  <style>
    body { font-family: Arial, sans-serif; background:#f0f0f0; margin:0; padding:0; }
    .wrapper { max-width:560px; margin:40px auto; background:#fff; border-radius:12px; overflow:hidden; }
    .header { background:#FF5722; padding:32px 24px; text-align:center; }
    .header h1 { color:#fff; margin:0; font-size:22px; letter-spacing:1px; }
    .header p  { color:rgba(255,255,255,0.85); margin:6px 0 0; font-size:13px; }
    .body { padding:32px 24px; }
    .body h2 { color:#222; margin-top:0; }
    .info-row { padding:10px 0; border-bottom:1px solid #f0f0f0; font-size:14px; }
    .info-row:last-child { border-bottom:none; }
    .label { color:#888; }
    .value { color:#111; font-weight:600; font-family:monospace; float:right; }
    .ticket-box { margin:24px 0; background:#FFF3E0; border:2px dashed #FF5722; border-radius:8px; padding:16px; text-align:center; }
    .ticket-box .tid { font-size:16px; font-weight:bold; color:#FF5722; letter-spacing:2px; word-break:break-all; }
    .footer { background:#fafafa; border-top:1px solid #eee; padding:16px 24px; text-align:center; font-size:12px; color:#aaa; }
  </style>
</head>
<body>
  <div class="wrapper">
    <div class="header">
      <h1>Campus Events Portal</h1>
      <p>Ticket Booking Confirmation</p>
    </div>
    <div class="body">
      <h2>Hi {{.StudentName}}!</h2>
      <p style="color:#555;font-size:14px;">Your ticket for <strong>{{.EventName}}</strong> has been confirmed. Show this email at the event entrance.</p>

      <div class="info-row"><span class="label">Student Name</span><span class="value">{{.StudentName}}</span></div>
      <div class="info-row"><span class="label">Registration No.</span><span class="value">{{.RegNumber}}</span></div>
      <div class="info-row"><span class="label">Event</span><span class="value">{{.EventName}}</span></div>

      <div class="ticket-box">
        <p style="margin:0 0 6px;font-size:12px;color:#888;text-transform:uppercase;letter-spacing:1px;">Ticket ID</p>
        <div class="tid">{{.TicketID}}</div>
      </div>

      <p style="font-size:13px;color:#888;">This ticket is unique to you. Do not share it with others. Arrive 15 minutes before the event starts.</p>
    </div>
    <div class="footer">
      Campus Events Portal<br/>
      This is an automated email. Please do not reply.
    </div>
  </div>
</body>
</html>`))

type emailData struct {
	StudentName string
	EventName   string
	TicketID    string
	RegNumber   string
}

func renderEmail(d emailData) (string, error) {
	var buf bytes.Buffer
	if err := emailTmpl.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("relay.renderEmail:%w", err)
	}
	return buf.String(), nil
}
