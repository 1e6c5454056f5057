// Copyright (c) 2024 edgegram

package telegram

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Context is the per-update object handed to handlers. It is built once per
// dispatched update and shared by every handler that update matches; its
// identity (ID) is unique per update and never reused.
type Context interface {
	Client() *Client
	Update() *Update
	Kind() UpdateKind
	ID() string
}

type baseContext struct {
	client *Client
	update *Update
	kind   UpdateKind
	id     string
}

func (b *baseContext) Client() *Client  { return b.client }
func (b *baseContext) Update() *Update  { return b.update }
func (b *baseContext) Kind() UpdateKind { return b.kind }
func (b *baseContext) ID() string       { return b.id }

// buildContext selects the context variant by the first populated kind in
// scan order. An update with no recognizable payload gets a GenericContext;
// classification never fails.
func (c *Client) buildContext(u *Update, kinds []UpdateKind) Context {
	base := baseContext{client: c, update: u, id: uuid.NewString()}
	if len(kinds) == 0 {
		base.kind = ""
		return &GenericContext{baseContext: base}
	}
	base.kind = kinds[0]

	switch base.kind {
	case OnMessage, OnEditedMessage, OnChannelPost, OnEditedChannelPost:
		return &MessageContext{baseContext: base, Message: u.message()}
	case OnCallbackQuery:
		return &CallbackContext{baseContext: base, Query: u.CallbackQuery}
	case OnChatMember, OnMyChatMember:
		cm := u.ChatMember
		if cm == nil {
			cm = u.MyChatMember
		}
		return &MembershipContext{baseContext: base, Change: cm}
	case OnInlineQuery:
		return &InlineQueryContext{baseContext: base, Query: u.InlineQuery}
	case OnChosenInlineResult:
		return &ChosenResultContext{baseContext: base, Result: u.ChosenInlineResult}
	}
	return &GenericContext{baseContext: base}
}

// GenericContext exposes only the client and the raw update. It is the
// fallback for kinds without a dedicated variant.
type GenericContext struct {
	baseContext
}

// MessageContext wraps message-bearing updates (new, edited, channel posts).
type MessageContext struct {
	baseContext
	Message *Message
}

func (m *MessageContext) Text() string { return m.Message.Text }

func (m *MessageContext) ChatID() int64 {
	if m.Message.Chat == nil {
		return 0
	}
	return m.Message.Chat.ID
}

func (m *MessageContext) SenderID() int64 {
	if m.Message.From == nil {
		return 0
	}
	return m.Message.From.ID
}

func (m *MessageContext) IsPrivate() bool {
	return m.Message.Chat != nil && m.Message.Chat.IsPrivate()
}

func (m *MessageContext) IsEdited() bool {
	return m.kind == OnEditedMessage || m.kind == OnEditedChannelPost
}

var commandRe = regexp.MustCompile(`^/(\w+)(@\w+)?(?:\s|$)`)

// Command returns the slash command name without the leading slash or bot
// mention, or "" when the message is not a command.
func (m *MessageContext) Command() string {
	match := commandRe.FindStringSubmatch(m.Message.Text)
	if match == nil {
		return ""
	}
	return match[1]
}

// Args returns the text following the command, trimmed.
func (m *MessageContext) Args() string {
	loc := commandRe.FindStringIndex(m.Message.Text)
	if loc == nil {
		return ""
	}
	return strings.TrimSpace(m.Message.Text[loc[1]:])
}

// Reply sends text to the message's chat, quoting the message. The options
// value is copied, never written to; callers may share one across updates.
func (m *MessageContext) Reply(text string, opts ...*SendMessageOptions) (*Message, error) {
	var opt SendMessageOptions
	if o := firstOption(opts); o != nil {
		opt = *o
	}
	if opt.ReplyToMessageID == 0 {
		opt.ReplyToMessageID = m.Message.ID
	}
	return m.client.SendMessage(m.ChatID(), text, &opt)
}

// Respond sends text to the message's chat without quoting.
func (m *MessageContext) Respond(text string, opts ...*SendMessageOptions) (*Message, error) {
	return m.client.SendMessage(m.ChatID(), text, firstOption(opts))
}

// Delete removes the received message.
func (m *MessageContext) Delete() error {
	return m.client.DeleteMessage(m.ChatID(), m.Message.ID)
}

// CallbackContext wraps a button press.
type CallbackContext struct {
	baseContext
	Query *CallbackQuery
}

func (cb *CallbackContext) Data() string { return cb.Query.Data }

func (cb *CallbackContext) ChatID() int64 {
	if cb.Query.Message == nil || cb.Query.Message.Chat == nil {
		return 0
	}
	return cb.Query.Message.Chat.ID
}

func (cb *CallbackContext) SenderID() int64 {
	if cb.Query.From == nil {
		return 0
	}
	return cb.Query.From.ID
}

// Answer acknowledges the callback, optionally with a toast. The options
// value is copied, never written to.
func (cb *CallbackContext) Answer(text string, opts ...*AnswerCallbackOptions) error {
	var opt AnswerCallbackOptions
	if o := firstOption(opts); o != nil {
		opt = *o
	}
	opt.Text = text
	return cb.client.AnswerCallbackQuery(cb.Query.ID, &opt)
}

// EditText rewrites the message the pressed button was attached to.
func (cb *CallbackContext) EditText(text string, opts ...*EditMessageOptions) (*Message, error) {
	if cb.Query.InlineMessageID != "" {
		return cb.client.editInlineMessageText(cb.Query.InlineMessageID, text, firstOption(opts))
	}
	if cb.Query.Message == nil {
		return nil, errEditTargetGone
	}
	return cb.client.EditMessageText(cb.ChatID(), cb.Query.Message.ID, text, firstOption(opts))
}

// MembershipContext wraps a chat_member or my_chat_member change.
type MembershipContext struct {
	baseContext
	Change *ChatMemberUpdated
}

func (m *MembershipContext) ChatID() int64 {
	if m.Change.Chat == nil {
		return 0
	}
	return m.Change.Chat.ID
}

// Subject is the user whose membership changed.
func (m *MembershipContext) Subject() *User {
	if m.Change.NewChatMember == nil {
		return nil
	}
	return m.Change.NewChatMember.User
}

func (m *MembershipContext) Joined() bool {
	return isOutside(m.Change.OldChatMember) && isInside(m.Change.NewChatMember)
}

func (m *MembershipContext) Left() bool {
	return isInside(m.Change.OldChatMember) && m.Change.NewChatMember != nil &&
		m.Change.NewChatMember.Status == MemberLeft
}

func (m *MembershipContext) Kicked() bool {
	return isInside(m.Change.OldChatMember) && m.Change.NewChatMember != nil &&
		m.Change.NewChatMember.Status == MemberKicked
}

func (m *MembershipContext) Promoted() bool { return isPromotion(m.Change) }

func (m *MembershipContext) Demoted() bool { return isDemotion(m.Change) }

// Ban bans the subject from the chat.
func (m *MembershipContext) Ban(opts ...*BanOptions) error {
	subject := m.Subject()
	if subject == nil {
		return errNoSubject
	}
	return m.client.BanChatMember(m.ChatID(), subject.ID, firstOption(opts))
}

// InlineQueryContext wraps an inline query awaiting results.
type InlineQueryContext struct {
	baseContext
	Query *InlineQuery
}

func (iq *InlineQueryContext) Text() string { return iq.Query.Query }

// Answer sends the result set for the query.
func (iq *InlineQueryContext) Answer(results []any, opts ...*AnswerInlineOptions) error {
	return iq.client.AnswerInlineQuery(iq.Query.ID, results, firstOption(opts))
}

// Article builds a text article result for Answer.
func (iq *InlineQueryContext) Article(id, title, text string) *InlineQueryResultArticle {
	return &InlineQueryResultArticle{
		Type:                "article",
		ID:                  id,
		Title:               title,
		InputMessageContent: &InputTextMessage{MessageText: text},
	}
}

// ChosenResultContext wraps the notification that an inline result was picked.
type ChosenResultContext struct {
	baseContext
	Result *ChosenInlineResult
}

func (cr *ChosenResultContext) ResultID() string { return cr.Result.ResultID }

func firstOption[T any](opts []*T) *T {
	if len(opts) > 0 {
		return opts[0]
	}
	return nil
}
