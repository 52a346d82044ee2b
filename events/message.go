// Package events models the gateway dispatch payloads for message
// activity. The gateway connection itself lives outside this library;
// these types only give a dispatched payload a typed shape.
package events

import (
	"encoding/json"

	"github.com/shorebird/cordial"
)

// MessageEvent is any event concerning a single message.
type MessageEvent interface {
	ChannelID() cordial.Snowflake
	MessageID() cordial.Snowflake
}

// GuildEvent is any event bound to a guild.
type GuildEvent interface {
	GuildID() cordial.Snowflake
}

// MessageCreate fires when a message is sent. Message is fully populated.
type MessageCreate struct {
	Message cordial.PartialMessage
}

func (e MessageCreate) ChannelID() cordial.Snowflake { return e.Message.ChannelID }
func (e MessageCreate) MessageID() cordial.Snowflake { return e.Message.ID }

// AuthorID is the id of the user who sent the message.
func (e MessageCreate) AuthorID() cordial.Snowflake {
	if e.Message.Author == nil {
		return 0
	}
	return e.Message.Author.ID
}

// GuildMessageCreate is a MessageCreate in a guild channel.
type GuildMessageCreate struct {
	MessageCreate
}

func (e GuildMessageCreate) GuildID() cordial.Snowflake { return e.Message.GuildID }

// DMMessageCreate is a MessageCreate in a direct message channel.
type DMMessageCreate struct {
	MessageCreate
}

// MessageUpdate fires when a message is edited. Message is arbitrarily
// partial: any field except ID and ChannelID may be absent, meaning
// unchanged.
type MessageUpdate struct {
	Message cordial.PartialMessage
}

func (e MessageUpdate) ChannelID() cordial.Snowflake { return e.Message.ChannelID }
func (e MessageUpdate) MessageID() cordial.Snowflake { return e.Message.ID }

// AuthorID is the id of the message's author, zero if not carried.
func (e MessageUpdate) AuthorID() cordial.Snowflake {
	if e.Message.Author == nil {
		return 0
	}
	return e.Message.Author.ID
}

// GuildMessageUpdate is a MessageUpdate in a guild channel.
type GuildMessageUpdate struct {
	MessageUpdate
}

func (e GuildMessageUpdate) GuildID() cordial.Snowflake { return e.Message.GuildID }

// DMMessageUpdate is a MessageUpdate in a direct message channel.
type DMMessageUpdate struct {
	MessageUpdate
}

// MessageDelete fires when a message is deleted. Only ID, ChannelID and,
// in guilds, GuildID are carried; the message it names no longer exists.
type MessageDelete struct {
	Message cordial.PartialMessage
}

func (e MessageDelete) ChannelID() cordial.Snowflake { return e.Message.ChannelID }
func (e MessageDelete) MessageID() cordial.Snowflake { return e.Message.ID }

// GuildMessageDelete is a MessageDelete in a guild channel.
type GuildMessageDelete struct {
	MessageDelete
}

func (e GuildMessageDelete) GuildID() cordial.Snowflake { return e.Message.GuildID }

// DMMessageDelete is a MessageDelete in a direct message channel.
type DMMessageDelete struct {
	MessageDelete
}

// GuildMessageBulkDelete fires when messages are bulk-deleted from a
// guild channel. There is no DM equivalent of this event.
type GuildMessageBulkDelete struct {
	ChannelID  cordial.Snowflake   `json:"channel_id"`
	GuildID    cordial.Snowflake   `json:"guild_id"`
	MessageIDs []cordial.Snowflake `json:"ids"`
}

// DecodeMessageCreate decodes a MESSAGE_CREATE dispatch, picking the
// guild or DM flavor by the presence of guild_id.
func DecodeMessageCreate(raw json.RawMessage) (MessageEvent, error) {
	var msg cordial.PartialMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, err
	}
	base := MessageCreate{Message: msg}
	if msg.GuildID != 0 {
		return GuildMessageCreate{MessageCreate: base}, nil
	}
	return DMMessageCreate{MessageCreate: base}, nil
}

// DecodeMessageUpdate decodes a MESSAGE_UPDATE dispatch.
func DecodeMessageUpdate(raw json.RawMessage) (MessageEvent, error) {
	var msg cordial.PartialMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, err
	}
	base := MessageUpdate{Message: msg}
	if msg.GuildID != 0 {
		return GuildMessageUpdate{MessageUpdate: base}, nil
	}
	return DMMessageUpdate{MessageUpdate: base}, nil
}

// DecodeMessageDelete decodes a MESSAGE_DELETE dispatch.
func DecodeMessageDelete(raw json.RawMessage) (MessageEvent, error) {
	var msg cordial.PartialMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, err
	}
	base := MessageDelete{Message: msg}
	if msg.GuildID != 0 {
		return GuildMessageDelete{MessageDelete: base}, nil
	}
	return DMMessageDelete{MessageDelete: base}, nil
}

// DecodeMessageBulkDelete decodes a MESSAGE_DELETE_BULK dispatch.
func DecodeMessageBulkDelete(raw json.RawMessage) (GuildMessageBulkDelete, error) {
	var e GuildMessageBulkDelete
	err := json.Unmarshal(raw, &e)
	return e, err
}
