package mailer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kritikadev/kritika/internal/platform/mailer"
)

/*
TestBuildMessage verifies the RFC 5322 framing of outbound messages.
*/
func TestBuildMessage(t *testing.T) {
	message := string(mailer.BuildMessage(
		"noreply@kritika.app", "alice@example.com", "Your Kritika confirmation code", "Code: ABC123",
	))

	assert.Contains(t, message, "Subject: Your Kritika confirmation code\r\n")
	assert.Contains(t, message, "From: noreply@kritika.app\r\n")
	assert.Contains(t, message, "To: alice@example.com\r\n")

	// Headers and body must be separated by a blank line.
	assert.Contains(t, message, "\r\n\r\nCode: ABC123\r\n")
}
