package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// RoomInfo represents a room's number + type for emails / display
type RoomInfo struct {
	Number string // e.g. "101"
	Type   string // e.g. "Deluxe Room"
}

func roomsListText(rooms []RoomInfo) string {
	if len(rooms) == 0 {
		return "  (no rooms)"
	}
	var sb strings.Builder
	for _, r := range rooms {
		sb.WriteString(fmt.Sprintf("  - Room %s (%s)\n", r.Number, r.Type))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func roomsListHTML(rooms []RoomInfo) string {
	if len(rooms) == 0 {
		return "<em>(no rooms)</em>"
	}
	var sb strings.Builder
	sb.WriteString(`<ul class="room-list">`)
	for _, r := range rooms {
		sb.WriteString(fmt.Sprintf(`<li class="room-item">Room %s (%s)</li>`, r.Number, r.Type))
	}
	sb.WriteString("</ul>")
	return sb.String()
}

// SendBookingConfirmationEmail sends the booking number and stay summary to
// the guest once a booking is confirmed. Falls back to a mock log line when
// SMTP is not configured (dev).
func SendBookingConfirmationEmail(
	recipientEmail,
	bookingNumber,
	guestName string,
	rooms []RoomInfo,
	checkInDate,
	checkOutDate string,
	totalAmount float64,
) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := os.Getenv("SMTP_FROM_NAME")

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		log.Printf("[MOCK EMAIL] to:%s booking:%s total:%.2f rooms:%s",
			recipientEmail, bookingNumber, totalAmount, roomsListText(rooms))
		return nil
	}

	safe := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
	}
	guestName = safe(guestName)
	bookingNumber = safe(bookingNumber)
	checkInDate = safe(checkInDate)
	checkOutDate = safe(checkOutDate)

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	to := []string{recipientEmail}
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	subject := fmt.Sprintf("Booking Confirmation - %s", bookingNumber)
	boundary := "----=_GUESTHOUSE_EMAIL_BOUNDARY"

	plainBody := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Thank you for booking with us! Here are your booking details:\n\n"+
			"Booking Number: %s\n"+
			"Rooms:\n%s\n"+
			"Check-In: %s\n"+
			"Check-Out: %s\n"+
			"Total Amount: %.2f\n\n"+
			"If you have any questions, feel free to contact us.\n\n"+
			"Best regards,\n%s",
		guestName, bookingNumber, roomsListText(rooms), checkInDate, checkOutDate, totalAmount, fromName,
	)

	htmlBody := fmt.Sprintf(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Booking Confirmation</title>
<style>
body { background:#f5f7fb; font-family:Arial, Helvetica, sans-serif; color:#222; }
.container { max-width:700px; margin:20px auto; }
.card { background:#fff; border:1px solid #e6eef6; padding:24px; border-radius:8px; }
.label { font-weight:700; width:160px; display:inline-block; vertical-align:top; }
.room-list { margin:12px 0 18px 0; padding-left:18px; }
.room-item { margin:6px 0; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h2>Booking Confirmation</h2>
    <p>Dear %s,</p>
    <p>Thank you for choosing our guest house. Below are your booking details:</p>

    <p><span class="label">Booking Number:</span> %s</p>
    <p><span class="label">Rooms:</span> %s</p>
    <p><span class="label">Check-In:</span> %s</p>
    <p><span class="label">Check-Out:</span> %s</p>
    <p><span class="label">Total Amount:</span> %.2f</p>

    <p>If you have any questions, feel free to contact us.</p>
    <p>Best regards,<br>%s</p>
  </div>
</div>
</body>
</html>`,
		guestName, bookingNumber, roomsListHTML(rooms), checkInDate, checkOutDate, totalAmount, fromName,
	)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", recipientEmail))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	if err := smtp.SendMail(addr, auth, smtpUser, to, []byte(sb.String())); err != nil {
		log.Printf("email send failed to %s: %v", recipientEmail, err)
		return err
	}
	return nil
}
