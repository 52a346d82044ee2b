package cordial

// WebhookType discriminates incoming webhooks from channel followers.
type WebhookType int

const (
	WebhookTypeIncoming WebhookType = iota + 1
	WebhookTypeChannelFollower
)

// Webhook is a channel webhook referenced from audit log entries.
type Webhook struct {
	ID        Snowflake   `json:"id"`
	Type      WebhookType `json:"type"`
	GuildID   Snowflake   `json:"guild_id,omitempty"`
	ChannelID Snowflake   `json:"channel_id"`
	User      *User       `json:"user,omitempty"`
	Name      string      `json:"name"`
	Avatar    string      `json:"avatar,omitempty"`
	Token     string      `json:"token,omitempty"`
}
