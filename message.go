package cordial

import "time"

// PartialMessage is the arbitrarily incomplete message shape carried by
// gateway events. Only ID and ChannelID are guaranteed to be present; a
// delete event, for instance, carries nothing else.
type PartialMessage struct {
	ID              Snowflake  `json:"id"`
	ChannelID       Snowflake  `json:"channel_id"`
	GuildID         Snowflake  `json:"guild_id,omitempty"`
	Author          *User      `json:"author,omitempty"`
	Content         string     `json:"content,omitempty"`
	Timestamp       *time.Time `json:"timestamp,omitempty"`
	EditedTimestamp *time.Time `json:"edited_timestamp,omitempty"`
	Pinned          bool       `json:"pinned,omitempty"`
}
