package notify

import (
	"fmt"
	"html"
	"strings"

	"sos-service/internal/geo"
)

// Message is one composed notification payload. It is built once per alert
// and reused verbatim for every recipient in the batch.
type Message struct {
	Subject  string
	HTMLBody string
	TextBody string
}

// ComposeInput carries everything the composer needs about the alert.
// Phone and Note are optional; their sections are omitted when empty.
type ComposeInput struct {
	RequesterName string
	Phone         string
	Position      geo.Coordinate
	Note          string
}

// Compose builds the alert subject and bodies. Two independently generated
// map links are embedded so a recipient without one map app still gets a
// working link.
func Compose(in ComposeInput) Message {
	note := strings.TrimSpace(in.Note)

	googleLink := fmt.Sprintf("https://www.google.com/maps?q=%f,%f",
		in.Position.Latitude, in.Position.Longitude)
	osmLink := fmt.Sprintf("https://www.openstreetmap.org/?mlat=%f&mlon=%f#map=16/%f/%f",
		in.Position.Latitude, in.Position.Longitude,
		in.Position.Latitude, in.Position.Longitude)

	subject := fmt.Sprintf("SOS: %s needs help", in.RequesterName)

	var text strings.Builder
	fmt.Fprintf(&text, "%s has triggered an emergency alert.\n\n", in.RequesterName)
	fmt.Fprintf(&text, "Last known position: %f, %f\n", in.Position.Latitude, in.Position.Longitude)
	fmt.Fprintf(&text, "Open in Google Maps: %s\n", googleLink)
	fmt.Fprintf(&text, "Open in OpenStreetMap: %s\n", osmLink)
	if in.Phone != "" {
		fmt.Fprintf(&text, "\nPhone: %s\n", in.Phone)
	}
	if note != "" {
		fmt.Fprintf(&text, "\nMessage: %s\n", note)
	}

	// requester name, phone and note are user-controlled; escape them in
	// the HTML part
	var htmlBody strings.Builder
	fmt.Fprintf(&htmlBody, "<h2>%s has triggered an emergency alert.</h2>", html.EscapeString(in.RequesterName))
	fmt.Fprintf(&htmlBody, "<p>Last known position: %f, %f</p>", in.Position.Latitude, in.Position.Longitude)
	fmt.Fprintf(&htmlBody, `<p><a href="%s">Open in Google Maps</a></p>`, googleLink)
	fmt.Fprintf(&htmlBody, `<p><a href="%s">Open in OpenStreetMap</a></p>`, osmLink)
	if in.Phone != "" {
		fmt.Fprintf(&htmlBody, "<p>Phone: %s</p>", html.EscapeString(in.Phone))
	}
	if note != "" {
		fmt.Fprintf(&htmlBody, "<p>Message: %s</p>", html.EscapeString(note))
	}

	return Message{
		Subject:  subject,
		HTMLBody: htmlBody.String(),
		TextBody: text.String(),
	}
}
