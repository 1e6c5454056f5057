package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiCall struct {
	Method string
	Params map[string]any
}

// fakeAPI records Bot API calls and answers every method with an ok envelope.
type fakeAPI struct {
	mu    sync.Mutex
	calls []apiCall
	srv   *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		method := parts[len(parts)-1]

		var params map[string]any
		_ = json.NewDecoder(r.Body).Decode(&params)

		f.mu.Lock()
		f.calls = append(f.calls, apiCall{Method: method, Params: params})
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":100}}`))
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) callsFor(method string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []apiCall
	for _, c := range f.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	cfg := ClientConfig{
		Token:           "123:test",
		LogLevel:        "disable",
		AllowRedelivery: true,
	}
	if api != nil {
		cfg.APIURL = api.srv.URL
	}
	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client
}

func TestRegistrationOrderIsInvocationOrder(t *testing.T) {
	c := newTestClient(t, nil)

	var order []string
	for _, name := range []string{"h1", "h2", "h3"} {
		name := name
		require.NoError(t, c.Register(OnMessage, func(ctx Context) error {
			order = append(order, name)
			return nil
		}))
	}

	c.Dispatch(msgUpdate("hi"))
	assert.Equal(t, []string{"h1", "h2", "h3"}, order)
}

func TestHandlerRunsToCompletionBeforeNext(t *testing.T) {
	c := newTestClient(t, nil)

	var events []string
	require.NoError(t, c.Register(OnMessage, func(ctx Context) error {
		events = append(events, "h1 start")
		time.Sleep(10 * time.Millisecond)
		events = append(events, "h1 end")
		return nil
	}))
	require.NoError(t, c.Register(OnMessage, func(ctx Context) error {
		events = append(events, "h2 start")
		return nil
	}))

	c.Dispatch(msgUpdate("hi"))
	assert.Equal(t, []string{"h1 start", "h1 end", "h2 start"}, events)
}

func TestHandlerFailureIsolation(t *testing.T) {
	c := newTestClient(t, nil)

	var secondCalls int
	require.NoError(t, c.Register(OnMessage, func(ctx Context) error {
		return assert.AnError
	}))
	require.NoError(t, c.Register(OnMessage, func(ctx Context) error {
		secondCalls++
		return nil
	}))

	c.Dispatch(msgUpdate("hi"))
	assert.Equal(t, 1, secondCalls)
}

func TestHandlerPanicIsolation(t *testing.T) {
	c := newTestClient(t, nil)

	var secondCalls int
	require.NoError(t, c.Register(OnMessage, func(ctx Context) error {
		panic("boom")
	}))
	require.NoError(t, c.Register(OnMessage, func(ctx Context) error {
		secondCalls++
		return nil
	}))

	assert.NotPanics(t, func() { c.Dispatch(msgUpdate("hi")) })
	assert.Equal(t, 1, secondCalls)
}

func TestEndGroupStopsPropagation(t *testing.T) {
	c := newTestClient(t, nil)

	var ran []string
	require.NoError(t, c.Register(OnMessage, func(ctx Context) error {
		ran = append(ran, "first")
		return ErrEndGroup
	}))
	require.NoError(t, c.Register(OnMessage, func(ctx Context) error {
		ran = append(ran, "second")
		return nil
	}))

	c.Dispatch(msgUpdate("hi"))
	assert.Equal(t, []string{"first"}, ran)
}

func TestFilterGatesHandler(t *testing.T) {
	c := newTestClient(t, nil)

	var calls int
	require.NoError(t, c.Register(OnMessage, func(ctx Context) error {
		calls++
		return nil
	}, FilterChatType(ChatGroup)))

	c.Dispatch(msgUpdate("hi")) // private chat
	assert.Zero(t, calls)
}

func TestRegisterRejectsIncompatibleFilter(t *testing.T) {
	c := newTestClient(t, nil)

	err := c.Register(OnCallbackQuery, func(ctx Context) error { return nil }, FilterText("hi"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not compatible")

	// untagged filters attach anywhere
	require.NoError(t, c.Register(OnCallbackQuery, func(ctx Context) error { return nil },
		FilterFunc(func(u *Update) bool { return true })))

	// tag checks happen once, at registration, not per dispatch
	require.NoError(t, c.Register(OnMessage, func(ctx Context) error { return nil }, FilterText("hi")))
}

func TestRegisterRejectsNilHandler(t *testing.T) {
	c := newTestClient(t, nil)
	require.Error(t, c.Register(OnMessage, nil))
}

func TestContextSharedAcrossHandlersOfOneUpdate(t *testing.T) {
	c := newTestClient(t, nil)

	var ids []string
	handler := func(ctx Context) error {
		ids = append(ids, ctx.ID())
		return nil
	}
	require.NoError(t, c.Register(OnMessage, handler))
	require.NoError(t, c.Register(OnMessage, handler))

	c.Dispatch(msgUpdate("hi"))
	require.Len(t, ids, 2)
	assert.Equal(t, ids[0], ids[1], "same update shares one context")

	c.Dispatch(msgUpdate("hi again"))
	require.Len(t, ids, 4)
	assert.NotEqual(t, ids[0], ids[2], "different updates get different contexts")
}

func TestMultiplePopulatedFieldsAllDispatch(t *testing.T) {
	c := newTestClient(t, nil)

	var kinds []UpdateKind
	record := func(ctx Context) error {
		kinds = append(kinds, ctx.Kind())
		return nil
	}
	require.NoError(t, c.Register(OnMessage, record))
	require.NoError(t, c.Register(OnCallbackQuery, record))

	// malformed envelope carrying two payloads: both kinds run, one context
	u := msgUpdate("hi")
	u.CallbackQuery = &CallbackQuery{ID: "1", From: &User{ID: 7}, Data: "d"}
	c.Dispatch(u)

	// the shared context is classified by the first populated kind
	assert.Equal(t, []UpdateKind{OnMessage, OnMessage}, kinds)
}

func TestUnknownPayloadFallsBackToGenericContext(t *testing.T) {
	c := newTestClient(t, nil)

	var got Context
	require.NoError(t, c.Register(OnPoll, func(ctx Context) error {
		got = ctx
		return nil
	}))

	c.Dispatch(&Update{UpdateID: 5, Poll: &Poll{ID: "p1"}})
	require.NotNil(t, got)
	_, ok := got.(*GenericContext)
	assert.True(t, ok, "kinds without a dedicated variant get the generic context")
}

func TestEmptyUpdateDispatchesNothing(t *testing.T) {
	c := newTestClient(t, nil)

	var calls int
	require.NoError(t, c.Register(OnMessage, func(ctx Context) error {
		calls++
		return nil
	}))

	assert.NotPanics(t, func() { c.Dispatch(&Update{UpdateID: 3}) })
	assert.Zero(t, calls)
	assert.NotPanics(t, func() { c.Dispatch(nil) })
}

func TestDeduplicatesRedeliveredUpdates(t *testing.T) {
	client, err := NewClient(ClientConfig{Token: "123:test", LogLevel: "disable"})
	require.NoError(t, err)

	var calls int
	require.NoError(t, client.Register(OnMessage, func(ctx Context) error {
		calls++
		return nil
	}))

	u := msgUpdate("hi")
	client.Dispatch(u)
	client.Dispatch(u)
	assert.Equal(t, 1, calls)

	u2 := msgUpdate("hi")
	u2.UpdateID = 99
	client.Dispatch(u2)
	assert.Equal(t, 2, calls)
}

func TestRegisterCommandComposesExtraFilters(t *testing.T) {
	c := newTestClient(t, nil)

	var calls int
	require.NoError(t, c.OnCommand("ban", func(ctx Context) error {
		calls++
		return nil
	}, FilterUserID(7)))

	c.Dispatch(msgUpdate("/ban")) // from user 7
	assert.Equal(t, 1, calls)

	other := msgUpdate("/ban")
	other.UpdateID = 2
	other.Message.From = &User{ID: 8}
	c.Dispatch(other)
	assert.Equal(t, 1, calls)

	notCommand := msgUpdate("ban")
	notCommand.UpdateID = 3
	c.Dispatch(notCommand)
	assert.Equal(t, 1, calls)
}

func TestDispatchRawRejectsGarbage(t *testing.T) {
	c := newTestClient(t, nil)
	assert.Error(t, c.DispatchRaw([]byte("{not json")))
	assert.NoError(t, c.DispatchRaw([]byte(`{"update_id":1,"unknown_field":true}`)))
}

func TestEndToEndPingPong(t *testing.T) {
	api := newFakeAPI(t)
	c := newTestClient(t, api)

	var invocations int
	require.NoError(t, c.OnCommand("ping", func(ctx Context) error {
		invocations++
		m, ok := ctx.(*MessageContext)
		require.True(t, ok)
		assert.Equal(t, int64(42), m.ChatID())
		assert.Equal(t, "ping", m.Command())

		_, err := m.Reply("pong")
		return err
	}))

	require.NoError(t, c.DispatchRaw([]byte(`{
		"update_id": 1,
		"message": {
			"message_id": 10,
			"date": 0,
			"text": "/ping",
			"chat": {"id": 42, "type": "private"},
			"from": {"id": 7, "first_name": "Ann"}
		}
	}`)))

	assert.Equal(t, 1, invocations)

	sends := api.callsFor("sendMessage")
	require.Len(t, sends, 1)
	assert.Equal(t, float64(42), sends[0].Params["chat_id"])
	assert.Equal(t, "pong", sends[0].Params["text"])
	assert.Equal(t, float64(10), sends[0].Params["reply_to_message_id"])
}

func TestHandlerAPIErrorDoesNotAbortDispatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{
		Token: "123:test", APIURL: srv.URL, LogLevel: "disable", AllowRedelivery: true,
	})
	require.NoError(t, err)

	var after int
	require.NoError(t, client.Register(OnMessage, func(ctx Context) error {
		_, err := client.SendMessage(1, "x")
		return err
	}))
	require.NoError(t, client.Register(OnMessage, func(ctx Context) error {
		after++
		return nil
	}))

	client.Dispatch(msgUpdate("hi"))
	assert.Equal(t, 1, after, "API failure inside a handler is just a handler failure")
}
