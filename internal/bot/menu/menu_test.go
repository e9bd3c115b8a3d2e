package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactKeyboard(t *testing.T) {
	kb := ContactKeyboard()
	require.Len(t, kb.Keyboard, 1)
	assert.True(t, kb.Keyboard[0][0].RequestContact)
	assert.True(t, kb.OneTimeKeyboard)
}

func TestAppKeyboardNeedsURL(t *testing.T) {
	_, ok := AppKeyboard("")
	assert.False(t, ok)

	kb, ok := AppKeyboard("https://app.example.kz")
	require.True(t, ok)
	require.NotNil(t, kb.InlineKeyboard[0][0].URL)
	assert.Equal(t, "https://app.example.kz", *kb.InlineKeyboard[0][0].URL)
}

func TestHelpKeyboardAlwaysHasSupport(t *testing.T) {
	kb := HelpKeyboard("")
	require.Len(t, kb.InlineKeyboard, 1)
	require.NotNil(t, kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, CbSupport, *kb.InlineKeyboard[0][0].CallbackData)

	assert.Len(t, HelpKeyboard("https://app.example.kz").InlineKeyboard, 2)
}

func TestOpenAppKeyboard(t *testing.T) {
	kb, ok := OpenAppKeyboard("https://app.example.kz")
	require.True(t, ok)
	assert.Len(t, kb.InlineKeyboard, 2)
}
