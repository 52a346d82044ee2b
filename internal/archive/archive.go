package archive

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shorebird/cordial"
	"github.com/shorebird/cordial/auditlog"
)

// Record is one archived audit log entry as stored and re-served. Changes
// and Options hold the typed entry re-encoded as JSON.
type Record struct {
	ID         cordial.Snowflake `json:"id"`
	GuildID    cordial.Snowflake `json:"guild_id"`
	UserID     cordial.Snowflake `json:"user_id"`
	TargetID   cordial.Snowflake `json:"target_id,omitempty"`
	ActionType int               `json:"action_type"`
	Reason     string            `json:"reason,omitempty"`
	Changes    json.RawMessage   `json:"changes,omitempty"`
	Options    json.RawMessage   `json:"options,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

type Stats struct {
	TotalEntries int64      `json:"total_entries"`
	ActorCount   int64      `json:"actor_count"`
	OldestEntry  *time.Time `json:"oldest_entry,omitempty"`
	NewestEntry  *time.Time `json:"newest_entry,omitempty"`
}

type Store interface {
	SaveEntries(ctx context.Context, guildID cordial.Snowflake, entries []auditlog.Entry) error
	ListEntries(ctx context.Context, guildID cordial.Snowflake, limit, offset int) ([]Record, error)

	// LastEntryID returns the newest archived entry id for a guild, zero
	// if nothing is archived yet. Incremental archiving resumes from it.
	LastEntryID(ctx context.Context, guildID cordial.Snowflake) (cordial.Snowflake, error)

	Stats(ctx context.Context, guildID cordial.Snowflake) (*Stats, error)

	Migrate(ctx context.Context) error
	Close() error
}
