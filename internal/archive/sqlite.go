package archive

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "github.com/mattn/go-sqlite3"

	"github.com/shorebird/cordial"
	"github.com/shorebird/cordial/auditlog"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			id INTEGER PRIMARY KEY,
			guild_id INTEGER NOT NULL,
			user_id INTEGER NOT NULL,
			target_id INTEGER NOT NULL DEFAULT 0,
			action_type INTEGER NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			changes TEXT NOT NULL DEFAULT '[]',
			options TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_guild ON entries(guild_id, id)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_actor ON entries(guild_id, user_id)`,
	}

	for _, q := range queries {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveEntries(ctx context.Context, guildID cordial.Snowflake, entries []auditlog.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO entries (id, guild_id, user_id, target_id, action_type, reason, changes, options, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, entry := range entries {
		changes, err := json.Marshal(entry.Changes)
		if err != nil {
			return err
		}
		options := []byte("")
		if entry.Options != nil {
			if options, err = json.Marshal(entry.Options); err != nil {
				return err
			}
		}
		_, err = stmt.ExecContext(ctx,
			int64(entry.ID), int64(guildID), int64(entry.UserID), int64(entry.TargetID),
			int(entry.ActionType), entry.Reason, string(changes), string(options),
			entry.ID.Time(),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) ListEntries(ctx context.Context, guildID cordial.Snowflake, limit, offset int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, guild_id, user_id, target_id, action_type, reason, changes, options, created_at
		 FROM entries WHERE guild_id = ? ORDER BY id DESC LIMIT ? OFFSET ?`,
		int64(guildID), limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec                     Record
			id, guild, user, target int64
			changes, options        string
		)
		if err := rows.Scan(&id, &guild, &user, &target, &rec.ActionType, &rec.Reason, &changes, &options, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.ID = cordial.Snowflake(id)
		rec.GuildID = cordial.Snowflake(guild)
		rec.UserID = cordial.Snowflake(user)
		rec.TargetID = cordial.Snowflake(target)
		rec.Changes = json.RawMessage(changes)
		if options != "" {
			rec.Options = json.RawMessage(options)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) LastEntryID(ctx context.Context, guildID cordial.Snowflake) (cordial.Snowflake, error) {
	var id sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(id) FROM entries WHERE guild_id = ?`, int64(guildID),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	if !id.Valid {
		return 0, nil
	}
	return cordial.Snowflake(id.Int64), nil
}

func (s *SQLiteStore) Stats(ctx context.Context, guildID cordial.Snowflake) (*Stats, error) {
	var (
		stats          Stats
		oldest, newest sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT user_id), MIN(id), MAX(id)
		 FROM entries WHERE guild_id = ?`,
		int64(guildID),
	).Scan(&stats.TotalEntries, &stats.ActorCount, &oldest, &newest)
	if err != nil {
		return nil, err
	}
	// Entry ids embed their creation time, so the id range gives the
	// covered time span.
	if oldest.Valid {
		t := cordial.Snowflake(oldest.Int64).Time()
		stats.OldestEntry = &t
	}
	if newest.Valid {
		t := cordial.Snowflake(newest.Int64).Time()
		stats.NewestEntry = &t
	}
	return &stats, nil
}
