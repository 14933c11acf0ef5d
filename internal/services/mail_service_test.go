package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"hibiscus/internal/models/db_models"
)

type captureSender struct {
	messages []*gomail.Message
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.messages = append(c.messages, m...)
	return nil
}

func TestSendInquiryNotification(t *testing.T) {
	sender := &captureSender{}
	svc := newSMTPMailService(SMTPConfig{
		Username: "bookings@example.com",
		FromName: "Hibiscus Holidays",
		NotifyTo: "desk@example.com",
	}, sender)

	err := svc.SendInquiryNotification(db_models.Inquiry{
		Name:         "Asha <script>",
		Email:        "asha@example.com",
		TripLocation: "Goa",
		Message:      "Two adults, December",
		Date:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, sender.messages, 1)

	m := sender.messages[0]
	assert.Equal(t, []string{"desk@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"asha@example.com"}, m.GetHeader("Reply-To"))
	assert.Equal(t, []string{"New inquiry from Asha <script> (Goa)"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Two adults, December")
}

func TestNoopMailService(t *testing.T) {
	assert.NoError(t, NewNoopMailService().SendInquiryNotification(db_models.Inquiry{}))
}
