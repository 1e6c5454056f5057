// Copyright (c) 2024 edgegram

package telegram

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// UpdateKind identifies which payload field an Update carries.
type UpdateKind string

const (
	OnMessage            UpdateKind = "message"
	OnEditedMessage      UpdateKind = "edited_message"
	OnChannelPost        UpdateKind = "channel_post"
	OnEditedChannelPost  UpdateKind = "edited_channel_post"
	OnCallbackQuery      UpdateKind = "callback_query"
	OnInlineQuery        UpdateKind = "inline_query"
	OnChosenInlineResult UpdateKind = "chosen_inline_result"
	OnChatMember         UpdateKind = "chat_member"
	OnMyChatMember       UpdateKind = "my_chat_member"
	OnChatJoinRequest    UpdateKind = "chat_join_request"
	OnPoll               UpdateKind = "poll"
	OnPollAnswer         UpdateKind = "poll_answer"
)

// kindScanOrder fixes the order in which payload fields are inspected; it is
// also the context-selection priority when an envelope carries more than one.
var kindScanOrder = []UpdateKind{
	OnMessage,
	OnEditedMessage,
	OnChannelPost,
	OnEditedChannelPost,
	OnCallbackQuery,
	OnInlineQuery,
	OnChosenInlineResult,
	OnChatMember,
	OnMyChatMember,
	OnChatJoinRequest,
	OnPoll,
	OnPollAnswer,
}

func (u *Update) has(kind UpdateKind) bool {
	switch kind {
	case OnMessage:
		return u.Message != nil
	case OnEditedMessage:
		return u.EditedMessage != nil
	case OnChannelPost:
		return u.ChannelPost != nil
	case OnEditedChannelPost:
		return u.EditedChannelPost != nil
	case OnCallbackQuery:
		return u.CallbackQuery != nil
	case OnInlineQuery:
		return u.InlineQuery != nil
	case OnChosenInlineResult:
		return u.ChosenInlineResult != nil
	case OnChatMember:
		return u.ChatMember != nil
	case OnMyChatMember:
		return u.MyChatMember != nil
	case OnChatJoinRequest:
		return u.ChatJoinRequest != nil
	case OnPoll:
		return u.Poll != nil
	case OnPollAnswer:
		return u.PollAnswer != nil
	}
	return false
}

// Kinds returns every populated payload field in scan order. A well-formed
// update yields exactly one kind; malformed envelopes with several populated
// fields yield all of them so no registered handler is starved.
func (u *Update) Kinds() []UpdateKind {
	var kinds []UpdateKind
	for _, k := range kindScanOrder {
		if u.has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Raw returns the JSON bytes of the envelope. For updates decoded via
// DecodeUpdate these are the original inbound bytes; for programmatically
// constructed updates they are materialised on first use.
func (u *Update) Raw() json.RawMessage {
	if u.raw == nil {
		if b, err := json.Marshal(u); err == nil {
			u.raw = b
		}
	}
	return u.raw
}

// DecodeUpdate parses one inbound envelope, retaining the raw bytes for
// path-based filters. Unknown fields are tolerated.
func DecodeUpdate(data []byte) (*Update, error) {
	var u Update
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, errors.Wrap(err, "decoding update")
	}
	u.raw = append(json.RawMessage(nil), data...)
	return &u, nil
}

// message returns the message payload regardless of which message-bearing
// kind carries it.
func (u *Update) message() *Message {
	switch {
	case u.Message != nil:
		return u.Message
	case u.EditedMessage != nil:
		return u.EditedMessage
	case u.ChannelPost != nil:
		return u.ChannelPost
	case u.EditedChannelPost != nil:
		return u.EditedChannelPost
	}
	return nil
}

// chat resolves the chat from whichever populated field carries one.
func (u *Update) chat() *Chat {
	if m := u.message(); m != nil {
		return m.Chat
	}
	if u.CallbackQuery != nil && u.CallbackQuery.Message != nil {
		return u.CallbackQuery.Message.Chat
	}
	if u.ChatMember != nil {
		return u.ChatMember.Chat
	}
	if u.MyChatMember != nil {
		return u.MyChatMember.Chat
	}
	if u.ChatJoinRequest != nil {
		return u.ChatJoinRequest.Chat
	}
	return nil
}

// sender resolves the acting user from whichever populated field carries one.
func (u *Update) sender() *User {
	if m := u.message(); m != nil {
		return m.From
	}
	switch {
	case u.CallbackQuery != nil:
		return u.CallbackQuery.From
	case u.InlineQuery != nil:
		return u.InlineQuery.From
	case u.ChosenInlineResult != nil:
		return u.ChosenInlineResult.From
	case u.ChatMember != nil:
		return u.ChatMember.From
	case u.MyChatMember != nil:
		return u.MyChatMember.From
	case u.ChatJoinRequest != nil:
		return u.ChatJoinRequest.From
	}
	return nil
}
