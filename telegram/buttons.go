// Copyright (c) 2024 edgegram

package telegram

// Button is a namespace for keyboard builders:
//
//	markup := Button{}.Keyboard(
//		Button{}.Row(Button{}.Data("Yes", "vote:yes"), Button{}.Data("No", "vote:no")),
//	)
type Button struct{}

func (Button) Data(text, data string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text, CallbackData: data}
}

func (Button) URL(text, url string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text, URL: url}
}

func (Button) WebApp(text, url string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text, WebApp: &WebAppInfo{URL: url}}
}

func (Button) SwitchInline(text, query string, samePeer bool) InlineKeyboardButton {
	if samePeer {
		return InlineKeyboardButton{Text: text, SwitchInlineQueryCurrentChat: &query}
	}
	return InlineKeyboardButton{Text: text, SwitchInlineQuery: &query}
}

func (Button) Row(buttons ...InlineKeyboardButton) []InlineKeyboardButton {
	return buttons
}

func (Button) Keyboard(rows ...[]InlineKeyboardButton) *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

func (Button) Text(text string) KeyboardButton {
	return KeyboardButton{Text: text}
}

func (Button) Contact(text string) KeyboardButton {
	return KeyboardButton{Text: text, RequestContact: true}
}

func (Button) Location(text string) KeyboardButton {
	return KeyboardButton{Text: text, RequestLocation: true}
}

func (Button) ReplyRow(buttons ...KeyboardButton) []KeyboardButton {
	return buttons
}

func (Button) ReplyKeyboard(rows ...[]KeyboardButton) *ReplyKeyboardMarkup {
	return &ReplyKeyboardMarkup{Keyboard: rows, ResizeKeyboard: true}
}

func (Button) Remove() *ReplyKeyboardRemove {
	return &ReplyKeyboardRemove{RemoveKeyboard: true}
}

func (Button) Force(placeholder string) *ForceReply {
	return &ForceReply{ForceReply: true, InputFieldPlaceholder: placeholder}
}
