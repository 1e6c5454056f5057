// Copyright (c) 2024 edgegram

package telegram

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

type GetUpdatesOptions struct {
	Offset         int64    `json:"offset,omitempty"`
	Limit          int      `json:"limit,omitempty"`
	Timeout        int      `json:"timeout,omitempty"`
	AllowedUpdates []string `json:"allowed_updates,omitempty"`
}

// GetUpdates performs one getUpdates call. Raw bytes of each envelope are
// retained so path filters work on polled updates too.
func (c *Client) GetUpdates(ctx context.Context, opts ...*GetUpdatesOptions) ([]*Update, error) {
	params := map[string]any{}
	encodeOptions(params, firstOption(opts))
	result, err := c.Raw(ctx, "getUpdates", params)
	if err != nil {
		return nil, errors.Wrap(err, "getting updates")
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(result, &raws); err != nil {
		return nil, errors.Wrap(err, "decoding updates")
	}

	updates := make([]*Update, 0, len(raws))
	for _, raw := range raws {
		u, err := DecodeUpdate(raw)
		if err != nil {
			c.Log.WithError(err).Warn("skipping undecodable update")
			continue
		}
		updates = append(updates, u)
	}
	return updates, nil
}

// Start long-polls getUpdates and dispatches everything received, until Stop
// or ctx cancellation. Registrations must be complete before calling Start.
func (c *Client) Start(ctx context.Context) error {
	allowed := c.dispatcher.registeredKinds()
	c.Log.Info("starting long poll, %d update kinds registered", len(allowed))

	for {
		select {
		case <-c.stop:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		updates, err := c.GetUpdates(ctx, &GetUpdatesOptions{
			Offset:         c.offset,
			Timeout:        30,
			AllowedUpdates: allowed,
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !IsRetryable(err) {
				return err
			}
			c.Log.WithError(err).Warn("getUpdates failed, continuing")
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= c.offset {
				c.offset = u.UpdateID + 1
			}
			c.Dispatch(u)
		}
	}
}

// Stop ends a running Start loop after its current batch. Safe to call from
// multiple goroutines.
func (c *Client) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Idle blocks until Stop is called. Mirrors the usual bot main() tail.
func (c *Client) Idle() {
	<-c.stop
}
