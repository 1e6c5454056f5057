package telegram

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineKeyboardShape(t *testing.T) {
	b := Button{}
	markup := b.Keyboard(
		b.Row(b.Data("Yes", "vote:yes"), b.Data("No", "vote:no")),
		b.Row(b.URL("Docs", "https://example.com")),
	)

	require.Len(t, markup.InlineKeyboard, 2)
	require.Len(t, markup.InlineKeyboard[0], 2)
	require.Len(t, markup.InlineKeyboard[1], 1)
	assert.Equal(t, "vote:yes", markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "https://example.com", markup.InlineKeyboard[1][0].URL)
}

func TestSwitchInlineTargets(t *testing.T) {
	b := Button{}

	same := b.SwitchInline("Search here", "cats", true)
	require.NotNil(t, same.SwitchInlineQueryCurrentChat)
	assert.Equal(t, "cats", *same.SwitchInlineQueryCurrentChat)
	assert.Nil(t, same.SwitchInlineQuery)

	other := b.SwitchInline("Search elsewhere", "cats", false)
	require.NotNil(t, other.SwitchInlineQuery)
	assert.Nil(t, other.SwitchInlineQueryCurrentChat)

	// the empty query must survive serialization, it means "just open the picker"
	empty := b.SwitchInline("Pick a chat", "", false)
	data, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"switch_inline_query":""`)
}

func TestReplyKeyboardBuilders(t *testing.T) {
	b := Button{}
	markup := b.ReplyKeyboard(
		b.ReplyRow(b.Text("Menu"), b.Contact("Share phone")),
		b.ReplyRow(b.Location("Share location")),
	)

	require.Len(t, markup.Keyboard, 2)
	assert.True(t, markup.ResizeKeyboard)
	assert.True(t, markup.Keyboard[0][1].RequestContact)
	assert.True(t, markup.Keyboard[1][0].RequestLocation)

	assert.True(t, b.Remove().RemoveKeyboard)
	force := b.Force("Type your answer")
	assert.True(t, force.ForceReply)
	assert.Equal(t, "Type your answer", force.InputFieldPlaceholder)
}

func TestWebAppButton(t *testing.T) {
	btn := Button{}.WebApp("Open", "https://app.example.com")
	require.NotNil(t, btn.WebApp)
	assert.Equal(t, "https://app.example.com", btn.WebApp.URL)
}
