package events_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shorebird/cordial"
	"github.com/shorebird/cordial/events"
)

func TestDecodeMessageCreate_Guild(t *testing.T) {
	event, err := events.DecodeMessageCreate(json.RawMessage(`{
		"id": "456",
		"channel_id": "123",
		"guild_id": "789",
		"author": {"id": "42", "username": "alice", "discriminator": "0001"},
		"content": "hello"
	}`))
	require.NoError(t, err)

	guildEvent, ok := event.(events.GuildMessageCreate)
	require.True(t, ok)
	assert.Equal(t, cordial.Snowflake(456), guildEvent.MessageID())
	assert.Equal(t, cordial.Snowflake(123), guildEvent.ChannelID())
	assert.Equal(t, cordial.Snowflake(789), guildEvent.GuildID())
	assert.Equal(t, cordial.Snowflake(42), guildEvent.AuthorID())
	assert.Equal(t, "hello", guildEvent.Message.Content)
}

func TestDecodeMessageCreate_DM(t *testing.T) {
	event, err := events.DecodeMessageCreate(json.RawMessage(`{
		"id": "456",
		"channel_id": "123",
		"author": {"id": "42", "username": "alice", "discriminator": "0001"}
	}`))
	require.NoError(t, err)

	_, ok := event.(events.DMMessageCreate)
	assert.True(t, ok)
}

func TestDecodeMessageUpdate(t *testing.T) {
	event, err := events.DecodeMessageUpdate(json.RawMessage(`{
		"id": "456",
		"channel_id": "123",
		"guild_id": "789",
		"content": "edited"
	}`))
	require.NoError(t, err)

	update, ok := event.(events.GuildMessageUpdate)
	require.True(t, ok)
	assert.Equal(t, "edited", update.Message.Content)
	// Partial payload: no author carried.
	assert.Zero(t, update.AuthorID())
}

func TestDecodeMessageDelete(t *testing.T) {
	// Deletes carry nothing but ids.
	event, err := events.DecodeMessageDelete(json.RawMessage(`{
		"id": "456",
		"channel_id": "123",
		"guild_id": "789"
	}`))
	require.NoError(t, err)

	del, ok := event.(events.GuildMessageDelete)
	require.True(t, ok)
	assert.Equal(t, cordial.Snowflake(456), del.MessageID())
	assert.Equal(t, cordial.Snowflake(789), del.GuildID())

	event, err = events.DecodeMessageDelete(json.RawMessage(`{"id": "456", "channel_id": "123"}`))
	require.NoError(t, err)
	_, ok = event.(events.DMMessageDelete)
	assert.True(t, ok)
}

func TestDecodeMessageBulkDelete(t *testing.T) {
	event, err := events.DecodeMessageBulkDelete(json.RawMessage(`{
		"channel_id": "123",
		"guild_id": "789",
		"ids": ["1", "2", "3"]
	}`))
	require.NoError(t, err)

	assert.Equal(t, cordial.Snowflake(123), event.ChannelID)
	assert.Equal(t, cordial.Snowflake(789), event.GuildID)
	assert.Equal(t, []cordial.Snowflake{1, 2, 3}, event.MessageIDs)
}
