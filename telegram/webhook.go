// Copyright (c) 2024 edgegram

package telegram

import (
	"io"
	"net/http"

	"github.com/pkg/errors"
)

type SetWebhookOptions struct {
	MaxConnections     int      `json:"max_connections,omitempty"`
	AllowedUpdates     []string `json:"allowed_updates,omitempty"`
	DropPendingUpdates bool     `json:"drop_pending_updates,omitempty"`
	SecretToken        string   `json:"secret_token,omitempty"`
}

// SetWebhook points the bot at a webhook URL. When AllowedUpdates is not set
// it is derived from the registered handler kinds.
func (c *Client) SetWebhook(url string, opts ...*SetWebhookOptions) error {
	params := map[string]any{"url": url}
	opt := firstOption(opts)
	encodeOptions(params, opt)
	if opt == nil || len(opt.AllowedUpdates) == 0 {
		if kinds := c.dispatcher.registeredKinds(); len(kinds) > 0 {
			params["allowed_updates"] = kinds
		}
	}
	return errors.Wrap(c.invoke("setWebhook", params, nil), "setting webhook")
}

// DeleteWebhook removes the webhook, optionally dropping queued updates.
func (c *Client) DeleteWebhook(dropPending bool) error {
	params := map[string]any{"drop_pending_updates": dropPending}
	return errors.Wrap(c.invoke("deleteWebhook", params, nil), "deleting webhook")
}

// GetWebhookInfo reports the current webhook state.
func (c *Client) GetWebhookInfo() (*WebhookInfo, error) {
	var info WebhookInfo
	if err := c.invoke("getWebhookInfo", map[string]any{}, &info); err != nil {
		return nil, errors.Wrap(err, "getting webhook info")
	}
	return &info, nil
}

// HandleUpdate is the webhook entry point for serverless handlers: decode the
// body, dispatch, respond 200. Handler failures never reach the response;
// only an unreadable or undecodable body yields a 4xx, and Telegram will
// redeliver it (dedup makes that safe).
func (c *Client) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "unreadable body", http.StatusBadRequest)
		return
	}
	if err := c.DispatchRaw(body); err != nil {
		c.Log.WithError(err).Warn("webhook body rejected")
		http.Error(w, "bad update", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
}
