package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawDecodesOkEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot123:test/getMe", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"bot","username":"testbot"}}`))
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{Token: "123:test", APIURL: srv.URL, LogLevel: "disable"})
	require.NoError(t, err)

	me, err := client.GetMe()
	require.NoError(t, err)
	assert.Equal(t, "testbot", me.Username)
	assert.True(t, me.IsBot)
}

func TestRawSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"error_code":429,"description":"Too Many Requests: retry after 12","parameters":{"retry_after":12}}`))
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{Token: "123:test", APIURL: srv.URL, LogLevel: "disable"})
	require.NoError(t, err)

	_, err = client.SendMessage(1, "x")
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 429, apiErr.Code)
	assert.Equal(t, 12, apiErr.RetryAfter)
	assert.Equal(t, "sendMessage", apiErr.Method)
	assert.Contains(t, apiErr.Error(), "Too Many Requests")

	assert.True(t, IsFlood(err))
	assert.True(t, IsRetryable(err))
	assert.True(t, HasDescription(err, "Too Many Requests"))
	assert.False(t, HasDescription(err, "Bad Request"))
}

func TestErrorHelpersOnForeignErrors(t *testing.T) {
	assert.False(t, IsFlood(assert.AnError))
	assert.False(t, IsRetryable(assert.AnError))

	badRequest := &APIError{Method: "sendMessage", Code: 400, Description: "Bad Request: chat not found"}
	assert.False(t, IsRetryable(badRequest))

	serverErr := &APIError{Method: "getMe", Code: 502, Description: "Bad Gateway"}
	assert.True(t, IsRetryable(serverErr))
}

func TestEncodeOptions(t *testing.T) {
	params := map[string]any{"chat_id": int64(1), "text": "hi"}
	encodeOptions(params, &SendMessageOptions{
		ParseMode:        "HTML",
		ReplyToMessageID: 7,
	})

	assert.Equal(t, "HTML", params["parse_mode"])
	assert.Equal(t, int64(7), params["reply_to_message_id"])
	// omitempty zero values stay out of the wire params
	assert.NotContains(t, params, "disable_notification")
	assert.NotContains(t, params, "reply_markup")
	// base params survive the merge
	assert.Equal(t, "hi", params["text"])
}

func TestEncodeOptionsNilAndNonStruct(t *testing.T) {
	params := map[string]any{"a": 1}
	encodeOptions(params, nil)
	encodeOptions(params, (*SendMessageOptions)(nil))
	encodeOptions(params, 42)
	assert.Equal(t, map[string]any{"a": 1}, params)
}

func TestEncodeOptionsMarkupRoundTrips(t *testing.T) {
	b := Button{}
	markup := b.Keyboard(b.Row(b.Data("Yes", "y"), b.URL("Docs", "https://example.com")))

	params := map[string]any{"chat_id": int64(1), "text": "vote"}
	encodeOptions(params, &SendMessageOptions{ReplyMarkup: markup})

	data, err := json.Marshal(params)
	require.NoError(t, err)

	var decoded struct {
		ReplyMarkup InlineKeyboardMarkup `json:"reply_markup"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.ReplyMarkup.InlineKeyboard, 1)
	require.Len(t, decoded.ReplyMarkup.InlineKeyboard[0], 2)
	assert.Equal(t, "y", decoded.ReplyMarkup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "https://example.com", decoded.ReplyMarkup.InlineKeyboard[0][1].URL)
}

func TestRawHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{Token: "123:test", APIURL: srv.URL, LogLevel: "disable"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.Raw(ctx, "getMe", map[string]any{})
	assert.Error(t, err)
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(ClientConfig{})
	assert.Error(t, err)

	_, err = NewClient(ClientConfig{Token: "   "})
	assert.Error(t, err)
}
