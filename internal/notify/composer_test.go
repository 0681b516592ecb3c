package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"sos-service/internal/geo"
)

func TestComposeEmbedsBothMapLinks(t *testing.T) {
	msg := Compose(ComposeInput{
		RequesterName: "Asha",
		Position:      geo.Coordinate{Latitude: 9.59, Longitude: 76.52},
	})

	assert.Contains(t, msg.Subject, "Asha")
	for _, body := range []string{msg.TextBody, msg.HTMLBody} {
		assert.Contains(t, body, "google.com/maps")
		assert.Contains(t, body, "openstreetmap.org")
		assert.Contains(t, body, "9.59")
		assert.Contains(t, body, "76.52")
	}
}

func TestComposeOmitsEmptySections(t *testing.T) {
	msg := Compose(ComposeInput{
		RequesterName: "Asha",
		Position:      geo.Coordinate{Latitude: 9.59, Longitude: 76.52},
	})

	assert.NotContains(t, msg.TextBody, "Phone:")
	assert.NotContains(t, msg.TextBody, "Message:")
	assert.NotContains(t, msg.HTMLBody, "Phone:")
	assert.NotContains(t, msg.HTMLBody, "Message:")
}

func TestComposeIncludesPhoneAndNote(t *testing.T) {
	msg := Compose(ComposeInput{
		RequesterName: "Asha",
		Phone:         "+91 9000000000",
		Position:      geo.Coordinate{Latitude: 9.59, Longitude: 76.52},
		Note:          "trapped near the river",
	})

	assert.Contains(t, msg.TextBody, "+91 9000000000")
	assert.Contains(t, msg.TextBody, "trapped near the river")
	assert.Contains(t, msg.HTMLBody, "trapped near the river")
}

func TestComposeEscapesHTMLInUserFields(t *testing.T) {
	msg := Compose(ComposeInput{
		RequesterName: `Asha <b>"`,
		Phone:         "<i>123</i>",
		Position:      geo.Coordinate{Latitude: 9.59, Longitude: 76.52},
		Note:          `<script>alert(1)</script>`,
	})

	assert.NotContains(t, msg.HTMLBody, "<script>")
	assert.NotContains(t, msg.HTMLBody, "<i>123</i>")
	assert.NotContains(t, msg.HTMLBody, `Asha <b>`)
	assert.Contains(t, msg.HTMLBody, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, msg.HTMLBody, "Asha &lt;b&gt;")

	// the plain-text part carries the note verbatim
	assert.Contains(t, msg.TextBody, "<script>alert(1)</script>")
}

func TestComposeTreatsBlankNoteAsAbsent(t *testing.T) {
	msg := Compose(ComposeInput{
		RequesterName: "Asha",
		Position:      geo.Coordinate{Latitude: 9.59, Longitude: 76.52},
		Note:          "   \t  ",
	})

	assert.NotContains(t, msg.TextBody, "Message:")
	assert.False(t, strings.Contains(msg.HTMLBody, "Message:"))
}
