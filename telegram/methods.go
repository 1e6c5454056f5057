// Copyright (c) 2024 edgegram

package telegram

import "github.com/pkg/errors"

// SendMessageOptions mirrors the optional sendMessage parameters.
type SendMessageOptions struct {
	ParseMode             string          `json:"parse_mode,omitempty"`
	Entities              []MessageEntity `json:"entities,omitempty"`
	DisableWebPagePreview bool            `json:"disable_web_page_preview,omitempty"`
	DisableNotification   bool            `json:"disable_notification,omitempty"`
	ProtectContent        bool            `json:"protect_content,omitempty"`
	ReplyToMessageID      int64           `json:"reply_to_message_id,omitempty"`
	MessageThreadID       int64           `json:"message_thread_id,omitempty"`
	ReplyMarkup           any             `json:"reply_markup,omitempty"`
}

type EditMessageOptions struct {
	ParseMode             string                `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool                  `json:"disable_web_page_preview,omitempty"`
	ReplyMarkup           *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

type ForwardOptions struct {
	DisableNotification bool  `json:"disable_notification,omitempty"`
	ProtectContent      bool  `json:"protect_content,omitempty"`
	MessageThreadID     int64 `json:"message_thread_id,omitempty"`
}

type CopyOptions struct {
	Caption             string `json:"caption,omitempty"`
	ParseMode           string `json:"parse_mode,omitempty"`
	DisableNotification bool   `json:"disable_notification,omitempty"`
	ReplyToMessageID    int64  `json:"reply_to_message_id,omitempty"`
}

type AnswerCallbackOptions struct {
	Text      string `json:"text,omitempty"`
	ShowAlert bool   `json:"show_alert,omitempty"`
	URL       string `json:"url,omitempty"`
	CacheTime int    `json:"cache_time,omitempty"`
}

type AnswerInlineOptions struct {
	CacheTime  int    `json:"cache_time,omitempty"`
	IsPersonal bool   `json:"is_personal,omitempty"`
	NextOffset string `json:"next_offset,omitempty"`
}

// GetMe returns the bot account the token belongs to.
func (c *Client) GetMe() (*User, error) {
	var me User
	if err := c.invoke("getMe", map[string]any{}, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

// SendMessage sends text to a chat.
func (c *Client) SendMessage(chatID int64, text string, opts ...*SendMessageOptions) (*Message, error) {
	params := map[string]any{"chat_id": chatID, "text": text}
	encodeOptions(params, firstOption(opts))
	var msg Message
	if err := c.invoke("sendMessage", params, &msg); err != nil {
		return nil, errors.Wrap(err, "sending message")
	}
	return &msg, nil
}

// ForwardMessage forwards one message between chats.
func (c *Client) ForwardMessage(toChatID, fromChatID, messageID int64, opts ...*ForwardOptions) (*Message, error) {
	params := map[string]any{"chat_id": toChatID, "from_chat_id": fromChatID, "message_id": messageID}
	encodeOptions(params, firstOption(opts))
	var msg Message
	if err := c.invoke("forwardMessage", params, &msg); err != nil {
		return nil, errors.Wrap(err, "forwarding message")
	}
	return &msg, nil
}

// CopyMessage copies one message between chats without a forward header.
func (c *Client) CopyMessage(toChatID, fromChatID, messageID int64, opts ...*CopyOptions) (int64, error) {
	params := map[string]any{"chat_id": toChatID, "from_chat_id": fromChatID, "message_id": messageID}
	encodeOptions(params, firstOption(opts))
	var result struct {
		MessageID int64 `json:"message_id"`
	}
	if err := c.invoke("copyMessage", params, &result); err != nil {
		return 0, errors.Wrap(err, "copying message")
	}
	return result.MessageID, nil
}

// EditMessageText rewrites a sent message's text.
func (c *Client) EditMessageText(chatID, messageID int64, text string, opts ...*EditMessageOptions) (*Message, error) {
	params := map[string]any{"chat_id": chatID, "message_id": messageID, "text": text}
	encodeOptions(params, firstOption(opts))
	var msg Message
	if err := c.invoke("editMessageText", params, &msg); err != nil {
		return nil, errors.Wrap(err, "editing message")
	}
	return &msg, nil
}

func (c *Client) editInlineMessageText(inlineMessageID, text string, opts *EditMessageOptions) (*Message, error) {
	params := map[string]any{"inline_message_id": inlineMessageID, "text": text}
	encodeOptions(params, opts)
	// editing an inline message returns True, not the message
	if err := c.invoke("editMessageText", params, nil); err != nil {
		return nil, errors.Wrap(err, "editing inline message")
	}
	return nil, nil
}

// EditMessageReplyMarkup swaps the inline keyboard of a sent message.
func (c *Client) EditMessageReplyMarkup(chatID, messageID int64, markup *InlineKeyboardMarkup) (*Message, error) {
	params := map[string]any{"chat_id": chatID, "message_id": messageID, "reply_markup": markup}
	var msg Message
	if err := c.invoke("editMessageReplyMarkup", params, &msg); err != nil {
		return nil, errors.Wrap(err, "editing reply markup")
	}
	return &msg, nil
}

// DeleteMessage removes one message.
func (c *Client) DeleteMessage(chatID, messageID int64) error {
	params := map[string]any{"chat_id": chatID, "message_id": messageID}
	return errors.Wrap(c.invoke("deleteMessage", params, nil), "deleting message")
}

// DeleteMessages removes up to 100 messages in one call.
func (c *Client) DeleteMessages(chatID int64, messageIDs []int64) error {
	params := map[string]any{"chat_id": chatID, "message_ids": messageIDs}
	return errors.Wrap(c.invoke("deleteMessages", params, nil), "deleting messages")
}

// SendChatAction broadcasts a typing-style status for ~5 seconds.
func (c *Client) SendChatAction(chatID int64, action string) error {
	params := map[string]any{"chat_id": chatID, "action": action}
	return errors.Wrap(c.invoke("sendChatAction", params, nil), "sending chat action")
}

// AnswerCallbackQuery acknowledges a button press.
func (c *Client) AnswerCallbackQuery(queryID string, opts ...*AnswerCallbackOptions) error {
	params := map[string]any{"callback_query_id": queryID}
	encodeOptions(params, firstOption(opts))
	return errors.Wrap(c.invoke("answerCallbackQuery", params, nil), "answering callback query")
}

// AnswerInlineQuery sends results for an inline query. Results may be typed
// structs (InlineQueryResultArticle) or raw maps for other variants.
func (c *Client) AnswerInlineQuery(queryID string, results []any, opts ...*AnswerInlineOptions) error {
	params := map[string]any{"inline_query_id": queryID, "results": results}
	encodeOptions(params, firstOption(opts))
	return errors.Wrap(c.invoke("answerInlineQuery", params, nil), "answering inline query")
}
