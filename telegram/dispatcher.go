// Copyright (c) 2024 edgegram

package telegram

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/edgegram/edgegram/internal/utils"
)

// HandlerFunc is invoked with the per-update context when its filters pass.
// Returning ErrEndGroup stops propagation to later handlers of the same kind
// without being reported as a failure; any other error is logged and the
// remaining handlers still run.
type HandlerFunc func(ctx Context) error

// ErrEndGroup ends handler propagation for the current update kind.
var ErrEndGroup = errors.New("end of handler propagation")

type handle struct {
	handler HandlerFunc
	filters []Filter
	name    string
}

// UpdateDispatcher routes inbound updates to registered handlers. Handlers
// are kept per update kind in registration order, which is the invocation
// order. Registration is expected to complete before the first Dispatch; the
// registry is not defended against concurrent mutation mid-dispatch.
type UpdateDispatcher struct {
	sync.RWMutex
	handles   map[UpdateKind][]*handle
	processed *utils.BoundedSet[int64]
	logger    *utils.Logger
	dedup     bool
}

func newUpdateDispatcher(logger *utils.Logger, dedup bool) *UpdateDispatcher {
	return &UpdateDispatcher{
		handles:   make(map[UpdateKind][]*handle),
		processed: utils.NewBoundedSet[int64](1000),
		logger:    logger.WithPrefix("dispatcher"),
		dedup:     dedup,
	}
}

// Register appends a handler for the given kind. Every filter carrying a
// kind tag must declare the kind compatible; a mismatch is a configuration
// error reported here, once, not per dispatch.
func (d *UpdateDispatcher) Register(kind UpdateKind, fn HandlerFunc, filters ...Filter) error {
	if fn == nil {
		return errors.New("register: nil handler")
	}
	for i, f := range filters {
		if f.Check == nil {
			return errors.Errorf("register: filter %d for %q has no predicate", i, kind)
		}
		if !f.compatibleWith(kind) {
			return errors.Errorf("register: filter %d is not compatible with %q updates (compatible: %v)", i, kind, f.CompatibleEvents)
		}
	}

	d.Lock()
	defer d.Unlock()
	d.handles[kind] = append(d.handles[kind], &handle{
		handler: fn,
		filters: filters,
		name:    fmt.Sprintf("%s#%d", kind, len(d.handles[kind])),
	})
	return nil
}

// RegisterCommand registers a message handler gated on /name, composing the
// command filter with any extra filters via FilterAnd restricted to messages.
func (d *UpdateDispatcher) RegisterCommand(name string, fn HandlerFunc, filters ...Filter) error {
	combined := FilterAnd(append([]Filter{FilterCommand(name)}, filters...)...)
	combined.CompatibleEvents = messageKinds
	return d.Register(OnMessage, fn, combined)
}

// Dispatch classifies the update, builds one context shared by every matched
// handler and runs them sequentially in registration order. Handler failures
// are recovered per handler and logged; Dispatch itself never fails on them.
func (c *Client) Dispatch(u *Update) {
	if u == nil {
		return
	}
	d := c.dispatcher

	if d.dedup && !d.processed.Add(u.UpdateID) {
		d.logger.Debug("skipping already processed update: %d", u.UpdateID)
		return
	}

	kinds := u.Kinds()
	if len(kinds) == 0 {
		d.logger.Debug("update %d carries no known payload", u.UpdateID)
	}

	ctx := c.buildContext(u, kinds)

	for _, kind := range kinds {
		d.RLock()
		handles := d.handles[kind]
		d.RUnlock()

		for _, h := range handles {
			if !h.match(u) {
				continue
			}
			if err := h.invoke(ctx); err != nil {
				if errors.Is(err, ErrEndGroup) {
					break
				}
				d.logger.WithError(err).Error("[%s] handler %s failed", kind, h.name)
			}
		}
	}
}

// DispatchRaw decodes one inbound envelope and dispatches it. Only a decode
// failure is reported; handler failures follow Dispatch semantics.
func (c *Client) DispatchRaw(data []byte) error {
	u, err := DecodeUpdate(data)
	if err != nil {
		return err
	}
	c.Dispatch(u)
	return nil
}

// match runs the filter chain against the raw update, never the context.
// Filters AND together, short-circuiting on the first miss.
func (h *handle) match(u *Update) bool {
	for _, f := range h.filters {
		if !f.Check(u) {
			return false
		}
	}
	return true
}

func (h *handle) invoke(ctx Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("handler panic: %v", r)
		}
	}()
	return h.handler(ctx)
}

// Register is client-level sugar over the dispatcher registry.
func (c *Client) Register(kind UpdateKind, fn HandlerFunc, filters ...Filter) error {
	return c.dispatcher.Register(kind, fn, filters...)
}

// OnCommand registers fn for /name messages.
func (c *Client) OnCommand(name string, fn HandlerFunc, filters ...Filter) error {
	return c.dispatcher.RegisterCommand(name, fn, filters...)
}

// OnNewMessage registers a message handler with a typed context.
func (c *Client) OnNewMessage(fn func(m *MessageContext) error, filters ...Filter) error {
	return c.Register(OnMessage, func(ctx Context) error {
		if m, ok := ctx.(*MessageContext); ok {
			return fn(m)
		}
		return nil
	}, filters...)
}

// OnCallback registers a callback-query handler with a typed context.
func (c *Client) OnCallback(fn func(cb *CallbackContext) error, filters ...Filter) error {
	return c.Register(OnCallbackQuery, func(ctx Context) error {
		if cb, ok := ctx.(*CallbackContext); ok {
			return fn(cb)
		}
		return nil
	}, filters...)
}

// OnChatMemberUpdate registers a membership-change handler with a typed context.
func (c *Client) OnChatMemberUpdate(fn func(m *MembershipContext) error, filters ...Filter) error {
	return c.Register(OnChatMember, func(ctx Context) error {
		if m, ok := ctx.(*MembershipContext); ok {
			return fn(m)
		}
		return nil
	}, filters...)
}

// OnInline registers an inline-query handler with a typed context.
func (c *Client) OnInline(fn func(iq *InlineQueryContext) error, filters ...Filter) error {
	return c.Register(OnInlineQuery, func(ctx Context) error {
		if iq, ok := ctx.(*InlineQueryContext); ok {
			return fn(iq)
		}
		return nil
	}, filters...)
}

// registeredKinds lists the kinds having at least one handler, in scan order.
// Used to derive allowed_updates for polling and webhooks.
func (d *UpdateDispatcher) registeredKinds() []string {
	d.RLock()
	defer d.RUnlock()
	var kinds []string
	for _, k := range kindScanOrder {
		if len(d.handles[k]) > 0 {
			kinds = append(kinds, string(k))
		}
	}
	return kinds
}
