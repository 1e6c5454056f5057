// Copyright (c) 2024 edgegram

package telegram

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/tidwall/gjson"
)

// Filter is a predicate over an inbound Update, optionally tagged with the
// update kinds it is valid for. A nil CompatibleEvents slice means the filter
// is usable with any kind. Filters are immutable once built; combinators
// allocate new values and never touch their operands.
type Filter struct {
	Check            func(u *Update) bool
	CompatibleEvents []UpdateKind
}

// compatibleWith reports whether the filter may be attached to handlers of
// the given kind. Checked once at registration time, never per dispatch.
func (f Filter) compatibleWith(kind UpdateKind) bool {
	return f.CompatibleEvents == nil || slices.Contains(f.CompatibleEvents, kind)
}

var messageKinds = []UpdateKind{OnMessage}

// FilterText matches a message whose text equals s exactly, case-sensitive,
// no trimming.
func FilterText(s string) Filter {
	return Filter{
		Check: func(u *Update) bool {
			return u.Message != nil && u.Message.Text == s
		},
		CompatibleEvents: messageKinds,
	}
}

// FilterTextMatches matches a message whose text matches the pattern.
func FilterTextMatches(pattern *regexp.Regexp) Filter {
	return Filter{
		Check: func(u *Update) bool {
			return u.Message != nil && pattern.MatchString(u.Message.Text)
		},
		CompatibleEvents: messageKinds,
	}
}

// FilterCommand matches "/name", optionally suffixed with an @botusername
// mention, followed by whitespace or end of text.
func FilterCommand(name string) Filter {
	pattern := regexp.MustCompile(`^/` + regexp.QuoteMeta(name) + `(@\w+)?(\s|$)`)
	return Filter{
		Check: func(u *Update) bool {
			return u.Message != nil && pattern.MatchString(u.Message.Text)
		},
		CompatibleEvents: messageKinds,
	}
}

// FilterCallbackData matches a callback query whose data equals s exactly.
func FilterCallbackData(s string) Filter {
	return Filter{
		Check: func(u *Update) bool {
			return u.CallbackQuery != nil && u.CallbackQuery.Data == s
		},
		CompatibleEvents: []UpdateKind{OnCallbackQuery},
	}
}

// FilterCallbackDataMatches matches callback data against the pattern.
func FilterCallbackDataMatches(pattern *regexp.Regexp) Filter {
	return Filter{
		Check: func(u *Update) bool {
			return u.CallbackQuery != nil && pattern.MatchString(u.CallbackQuery.Data)
		},
		CompatibleEvents: []UpdateKind{OnCallbackQuery},
	}
}

var chatBearingKinds = []UpdateKind{OnMessage, OnCallbackQuery, OnChatMember}

// FilterChatType matches when the resolvable chat's type is one of types.
// False when no chat is resolvable from the update.
func FilterChatType(types ...string) Filter {
	return Filter{
		Check: func(u *Update) bool {
			chat := u.chat()
			return chat != nil && slices.Contains(types, chat.Type)
		},
		CompatibleEvents: chatBearingKinds,
	}
}

// FilterChatID matches when the resolvable chat's id is one of ids.
func FilterChatID(ids ...int64) Filter {
	return Filter{
		Check: func(u *Update) bool {
			chat := u.chat()
			return chat != nil && slices.Contains(ids, chat.ID)
		},
		CompatibleEvents: chatBearingKinds,
	}
}

// FilterUserID matches when the acting user's id is one of ids.
func FilterUserID(ids ...int64) Filter {
	return Filter{
		Check: func(u *Update) bool {
			from := u.sender()
			return from != nil && slices.Contains(ids, from.ID)
		},
		CompatibleEvents: chatBearingKinds,
	}
}

// Convenience chat-type wrappers.
func FilterPrivate() Filter     { return FilterChatType(ChatPrivate) }
func FilterGroup() Filter       { return FilterChatType(ChatGroup, ChatSupergroup) }
func FilterChannelChat() Filter { return FilterChatType(ChatChannel) }

// FilterForwarded matches forwarded messages.
func FilterForwarded() Filter {
	return Filter{
		Check: func(u *Update) bool {
			return u.Message != nil && u.Message.IsForwarded()
		},
		CompatibleEvents: messageKinds,
	}
}

// FilterReply matches messages that reply to another message.
func FilterReply() Filter {
	return Filter{
		Check: func(u *Update) bool {
			return u.Message != nil && u.Message.IsReply()
		},
		CompatibleEvents: messageKinds,
	}
}

// FilterHasMedia matches messages carrying any media payload.
func FilterHasMedia() Filter {
	return Filter{
		Check: func(u *Update) bool {
			return u.Message != nil && u.Message.HasMedia()
		},
		CompatibleEvents: messageKinds,
	}
}

// FilterViaBot matches messages sent via an inline bot.
func FilterViaBot() Filter {
	return Filter{
		Check: func(u *Update) bool {
			return u.Message != nil && u.Message.ViaBot != nil
		},
		CompatibleEvents: messageKinds,
	}
}

var memberKinds = []UpdateKind{OnChatMember}

// Membership transition table. An "inside" status is one where the user is a
// participant of the chat: member, administrator, or restricted with
// is_member set. left and kicked are distinct exits: FilterLeftChatMember
// does not match kicks, compose with FilterOr when both are wanted. creator
// never participates in promotion or demotion.
func isInside(m *ChatMember) bool {
	if m == nil {
		return false
	}
	switch m.Status {
	case MemberMember, MemberAdministrator:
		return true
	case MemberRestricted:
		return m.IsMember
	}
	return false
}

func isOutside(m *ChatMember) bool {
	if m == nil {
		return false
	}
	switch m.Status {
	case MemberLeft, MemberKicked:
		return true
	case MemberRestricted:
		return !m.IsMember
	}
	return false
}

func memberFilter(check func(cm *ChatMemberUpdated) bool) Filter {
	return Filter{
		Check: func(u *Update) bool {
			return u.ChatMember != nil && check(u.ChatMember)
		},
		CompatibleEvents: memberKinds,
	}
}

// FilterNewChatMembers matches a transition from outside the chat to inside.
func FilterNewChatMembers() Filter {
	return memberFilter(func(cm *ChatMemberUpdated) bool {
		return isOutside(cm.OldChatMember) && isInside(cm.NewChatMember)
	})
}

// FilterLeftChatMember matches a member leaving on their own.
func FilterLeftChatMember() Filter {
	return memberFilter(func(cm *ChatMemberUpdated) bool {
		return isInside(cm.OldChatMember) && cm.NewChatMember != nil &&
			cm.NewChatMember.Status == MemberLeft
	})
}

// FilterKickedChatMember matches a member being banned.
func FilterKickedChatMember() Filter {
	return memberFilter(func(cm *ChatMemberUpdated) bool {
		return isInside(cm.OldChatMember) && cm.NewChatMember != nil &&
			cm.NewChatMember.Status == MemberKicked
	})
}

func isPromotion(cm *ChatMemberUpdated) bool {
	return cm != nil && cm.OldChatMember != nil && cm.NewChatMember != nil &&
		cm.OldChatMember.Status != MemberAdministrator &&
		cm.OldChatMember.Status != MemberCreator &&
		cm.NewChatMember.Status == MemberAdministrator
}

func isDemotion(cm *ChatMemberUpdated) bool {
	return cm != nil && cm.OldChatMember != nil && cm.NewChatMember != nil &&
		cm.OldChatMember.Status == MemberAdministrator &&
		cm.NewChatMember.Status != MemberAdministrator &&
		cm.NewChatMember.Status != MemberCreator
}

// FilterPromoted matches a non-admin becoming administrator.
func FilterPromoted() Filter {
	return memberFilter(isPromotion)
}

// FilterDemoted matches an administrator losing the admin status without
// becoming creator.
func FilterDemoted() Filter {
	return memberFilter(isDemotion)
}

// PathValue pairs a gjson path with the value expected at it.
type PathValue struct {
	Path  string
	Value any
}

// FilterWhere matches when every (path, value) pair holds against the raw
// update JSON. Numbers compare as float64, booleans as bool, everything else
// by string form.
func FilterWhere(pairs ...PathValue) Filter {
	return Filter{
		Check: func(u *Update) bool {
			raw := u.Raw()
			if raw == nil {
				return false
			}
			for _, p := range pairs {
				res := gjson.GetBytes(raw, p.Path)
				if !res.Exists() || !pathValueEqual(res, p.Value) {
					return false
				}
			}
			return true
		},
	}
}

func pathValueEqual(res gjson.Result, want any) bool {
	switch v := want.(type) {
	case bool:
		return res.IsBool() && res.Bool() == v
	case int:
		return res.Num == float64(v)
	case int64:
		return res.Num == float64(v)
	case float64:
		return res.Num == v
	case string:
		return res.Type == gjson.String && res.Str == v
	}
	return res.String() == fmt.Sprint(want)
}

// unionEvents merges the operands' kind tags. A nil tag on any operand means
// "any kind" and wins the merge.
func unionEvents(filters []Filter) []UpdateKind {
	var union []UpdateKind
	for _, f := range filters {
		if f.CompatibleEvents == nil {
			return nil
		}
		for _, k := range f.CompatibleEvents {
			if !slices.Contains(union, k) {
				union = append(union, k)
			}
		}
	}
	return union
}

// FilterAnd matches when every operand matches, evaluated in argument order
// and short-circuiting on the first miss. With no operands it matches
// everything. The result's kind tag is the union of the operands' tags.
func FilterAnd(filters ...Filter) Filter {
	ops := slices.Clone(filters)
	return Filter{
		Check: func(u *Update) bool {
			for _, f := range ops {
				if !f.Check(u) {
					return false
				}
			}
			return true
		},
		CompatibleEvents: unionEvents(ops),
	}
}

// FilterOr matches when any operand matches, evaluated in argument order and
// short-circuiting on the first hit. With no operands it matches nothing.
func FilterOr(filters ...Filter) Filter {
	ops := slices.Clone(filters)
	return Filter{
		Check: func(u *Update) bool {
			for _, f := range ops {
				if f.Check(u) {
					return true
				}
			}
			return false
		},
		CompatibleEvents: unionEvents(ops),
	}
}

// FilterNot negates a filter. The kind tag passes through unchanged.
func FilterNot(f Filter) Filter {
	inner := f.Check
	return Filter{
		Check:            func(u *Update) bool { return !inner(u) },
		CompatibleEvents: slices.Clone(f.CompatibleEvents),
	}
}

// FilterFunc wraps an arbitrary predicate, usable with any kind.
func FilterFunc(fn func(u *Update) bool) Filter {
	return Filter{Check: fn}
}

// FilterFuncWithEvents wraps an arbitrary predicate tagged with the kinds it
// is valid for; a closure has no inferable kind set, so the caller states it.
func FilterFuncWithEvents(fn func(u *Update) bool, kinds ...UpdateKind) Filter {
	return Filter{Check: fn, CompatibleEvents: slices.Clone(kinds)}
}
