// Copyright (c) 2024 edgegram

package telegram

import "github.com/pkg/errors"

type CreateTopicOptions struct {
	IconColor         int    `json:"icon_color,omitempty"`
	IconCustomEmojiID string `json:"icon_custom_emoji_id,omitempty"`
}

type EditTopicOptions struct {
	Name              string `json:"name,omitempty"`
	IconCustomEmojiID string `json:"icon_custom_emoji_id,omitempty"`
}

// CreateForumTopic opens a new topic in a forum supergroup.
func (c *Client) CreateForumTopic(chatID int64, name string, opts ...*CreateTopicOptions) (*ForumTopic, error) {
	params := map[string]any{"chat_id": chatID, "name": name}
	encodeOptions(params, firstOption(opts))
	var topic ForumTopic
	if err := c.invoke("createForumTopic", params, &topic); err != nil {
		return nil, errors.Wrap(err, "creating forum topic")
	}
	return &topic, nil
}

// EditForumTopic renames a topic or swaps its icon.
func (c *Client) EditForumTopic(chatID, threadID int64, opts EditTopicOptions) error {
	params := map[string]any{"chat_id": chatID, "message_thread_id": threadID}
	encodeOptions(params, &opts)
	return errors.Wrap(c.invoke("editForumTopic", params, nil), "editing forum topic")
}

// CloseForumTopic closes a topic for new messages.
func (c *Client) CloseForumTopic(chatID, threadID int64) error {
	params := map[string]any{"chat_id": chatID, "message_thread_id": threadID}
	return errors.Wrap(c.invoke("closeForumTopic", params, nil), "closing forum topic")
}

// ReopenForumTopic reopens a closed topic.
func (c *Client) ReopenForumTopic(chatID, threadID int64) error {
	params := map[string]any{"chat_id": chatID, "message_thread_id": threadID}
	return errors.Wrap(c.invoke("reopenForumTopic", params, nil), "reopening forum topic")
}

// DeleteForumTopic deletes a topic with all its messages.
func (c *Client) DeleteForumTopic(chatID, threadID int64) error {
	params := map[string]any{"chat_id": chatID, "message_thread_id": threadID}
	return errors.Wrap(c.invoke("deleteForumTopic", params, nil), "deleting forum topic")
}

// UnpinAllForumTopicMessages clears pinned messages inside a topic.
func (c *Client) UnpinAllForumTopicMessages(chatID, threadID int64) error {
	params := map[string]any{"chat_id": chatID, "message_thread_id": threadID}
	return errors.Wrap(c.invoke("unpinAllForumTopicMessages", params, nil), "unpinning forum topic messages")
}
