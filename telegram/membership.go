// Copyright (c) 2024 edgegram

package telegram

import "github.com/pkg/errors"

type BanOptions struct {
	UntilDate      int64 `json:"until_date,omitempty"`
	RevokeMessages bool  `json:"revoke_messages,omitempty"`
}

type RestrictOptions struct {
	UntilDate int64 `json:"until_date,omitempty"`
}

// ChatPermissions is the restriction set applied by RestrictChatMember.
type ChatPermissions struct {
	CanSendMessages     bool `json:"can_send_messages,omitempty"`
	CanSendPhotos       bool `json:"can_send_photos,omitempty"`
	CanSendVideos       bool `json:"can_send_videos,omitempty"`
	CanSendOtherMsgs    bool `json:"can_send_other_messages,omitempty"`
	CanAddWebPreviews   bool `json:"can_add_web_page_previews,omitempty"`
	CanChangeInfo       bool `json:"can_change_info,omitempty"`
	CanInviteUsers      bool `json:"can_invite_users,omitempty"`
	CanPinMessages      bool `json:"can_pin_messages,omitempty"`
	CanManageTopics     bool `json:"can_manage_topics,omitempty"`
	CanSendPolls        bool `json:"can_send_polls,omitempty"`
	CanSendAudios       bool `json:"can_send_audios,omitempty"`
	CanSendDocuments    bool `json:"can_send_documents,omitempty"`
	CanSendVoiceNotes   bool `json:"can_send_voice_notes,omitempty"`
	CanSendVideoNotes   bool `json:"can_send_video_notes,omitempty"`
	CanManageVoiceChats bool `json:"can_manage_voice_chats,omitempty"`
}

// PromoteOptions lists the admin rights granted; all false demotes.
type PromoteOptions struct {
	IsAnonymous         bool `json:"is_anonymous,omitempty"`
	CanManageChat       bool `json:"can_manage_chat,omitempty"`
	CanDeleteMessages   bool `json:"can_delete_messages,omitempty"`
	CanManageVideoChats bool `json:"can_manage_video_chats,omitempty"`
	CanRestrictMembers  bool `json:"can_restrict_members,omitempty"`
	CanPromoteMembers   bool `json:"can_promote_members,omitempty"`
	CanChangeInfo       bool `json:"can_change_info,omitempty"`
	CanInviteUsers      bool `json:"can_invite_users,omitempty"`
	CanPinMessages      bool `json:"can_pin_messages,omitempty"`
	CanManageTopics     bool `json:"can_manage_topics,omitempty"`
}

// GetChat fetches full information about a chat.
func (c *Client) GetChat(chatID int64) (*Chat, error) {
	var chat Chat
	if err := c.invoke("getChat", map[string]any{"chat_id": chatID}, &chat); err != nil {
		return nil, errors.Wrap(err, "getting chat")
	}
	return &chat, nil
}

// GetChatMember fetches one member's status in a chat.
func (c *Client) GetChatMember(chatID, userID int64) (*ChatMember, error) {
	params := map[string]any{"chat_id": chatID, "user_id": userID}
	var member ChatMember
	if err := c.invoke("getChatMember", params, &member); err != nil {
		return nil, errors.Wrap(err, "getting chat member")
	}
	return &member, nil
}

// GetChatMemberCount returns the member count of a chat.
func (c *Client) GetChatMemberCount(chatID int64) (int, error) {
	var count int
	if err := c.invoke("getChatMemberCount", map[string]any{"chat_id": chatID}, &count); err != nil {
		return 0, errors.Wrap(err, "getting chat member count")
	}
	return count, nil
}

// BanChatMember bans a user; in supergroups and channels they cannot return
// on their own until unbanned.
func (c *Client) BanChatMember(chatID, userID int64, opts ...*BanOptions) error {
	params := map[string]any{"chat_id": chatID, "user_id": userID}
	encodeOptions(params, firstOption(opts))
	return errors.Wrap(c.invoke("banChatMember", params, nil), "banning chat member")
}

// UnbanChatMember lifts a ban. onlyIfBanned avoids kicking a present member.
func (c *Client) UnbanChatMember(chatID, userID int64, onlyIfBanned bool) error {
	params := map[string]any{"chat_id": chatID, "user_id": userID, "only_if_banned": onlyIfBanned}
	return errors.Wrap(c.invoke("unbanChatMember", params, nil), "unbanning chat member")
}

// RestrictChatMember applies a permission set to a supergroup member.
func (c *Client) RestrictChatMember(chatID, userID int64, perms ChatPermissions, opts ...*RestrictOptions) error {
	params := map[string]any{"chat_id": chatID, "user_id": userID, "permissions": perms}
	encodeOptions(params, firstOption(opts))
	return errors.Wrap(c.invoke("restrictChatMember", params, nil), "restricting chat member")
}

// PromoteChatMember grants admin rights; passing a zero PromoteOptions demotes.
func (c *Client) PromoteChatMember(chatID, userID int64, opts PromoteOptions) error {
	params := map[string]any{"chat_id": chatID, "user_id": userID}
	encodeOptions(params, &opts)
	return errors.Wrap(c.invoke("promoteChatMember", params, nil), "promoting chat member")
}

// SetChatTitle renames a chat.
func (c *Client) SetChatTitle(chatID int64, title string) error {
	params := map[string]any{"chat_id": chatID, "title": title}
	return errors.Wrap(c.invoke("setChatTitle", params, nil), "setting chat title")
}

// LeaveChat removes the bot from the chat.
func (c *Client) LeaveChat(chatID int64) error {
	return errors.Wrap(c.invoke("leaveChat", map[string]any{"chat_id": chatID}, nil), "leaving chat")
}

// ApproveChatJoinRequest accepts a pending join request.
func (c *Client) ApproveChatJoinRequest(chatID, userID int64) error {
	params := map[string]any{"chat_id": chatID, "user_id": userID}
	return errors.Wrap(c.invoke("approveChatJoinRequest", params, nil), "approving join request")
}

// DeclineChatJoinRequest rejects a pending join request.
func (c *Client) DeclineChatJoinRequest(chatID, userID int64) error {
	params := map[string]any{"chat_id": chatID, "user_id": userID}
	return errors.Wrap(c.invoke("declineChatJoinRequest", params, nil), "declining join request")
}
