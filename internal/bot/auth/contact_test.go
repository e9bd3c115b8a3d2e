package auth

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactMsg(fromID, contactUserID int64, phone string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: fromID},
		From: &tgbotapi.User{ID: fromID, UserName: "aliev", FirstName: "Алихан", LastName: "Алиев"},
		Contact: &tgbotapi.Contact{
			PhoneNumber: phone,
			UserID:      contactUserID,
		},
	}
}

func TestProfileFromContact(t *testing.T) {
	p, err := ProfileFromContact(contactMsg(42, 42, "77051234567"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.UserID)
	assert.Equal(t, "+77051234567", p.PhoneNumber)
	assert.Equal(t, "aliev", p.Username)
	assert.True(t, p.Authenticated())
}

func TestProfileFromContactKeepsUnknownFormat(t *testing.T) {
	p, err := ProfileFromContact(contactMsg(42, 0, "+380501234567"))
	require.NoError(t, err)
	assert.Equal(t, "+380501234567", p.PhoneNumber)
}

func TestProfileFromForeignContact(t *testing.T) {
	_, err := ProfileFromContact(contactMsg(42, 7, "77051234567"))
	assert.ErrorIs(t, err, ErrForeignContact)

	_, err = ProfileFromContact(&tgbotapi.Message{From: &tgbotapi.User{ID: 1}})
	assert.ErrorIs(t, err, ErrForeignContact)
}
