package export_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shorebird/cordial"
	"github.com/shorebird/cordial/auditlog"
	"github.com/shorebird/cordial/internal/archive"
	"github.com/shorebird/cordial/internal/export"
)

type stubStore struct {
	records []archive.Record
	stats   *archive.Stats

	gotGuild  cordial.Snowflake
	gotLimit  int
	gotOffset int
}

func (s *stubStore) SaveEntries(ctx context.Context, guildID cordial.Snowflake, entries []auditlog.Entry) error {
	return nil
}

func (s *stubStore) ListEntries(ctx context.Context, guildID cordial.Snowflake, limit, offset int) ([]archive.Record, error) {
	s.gotGuild = guildID
	s.gotLimit = limit
	s.gotOffset = offset
	return s.records, nil
}

func (s *stubStore) LastEntryID(ctx context.Context, guildID cordial.Snowflake) (cordial.Snowflake, error) {
	return 0, nil
}

func (s *stubStore) Stats(ctx context.Context, guildID cordial.Snowflake) (*archive.Stats, error) {
	return s.stats, nil
}

func (s *stubStore) Migrate(ctx context.Context) error { return nil }
func (s *stubStore) Close() error                      { return nil }

func newTestRouter(store archive.Store) *chi.Mux {
	h := export.NewHandler(store)
	r := chi.NewRouter()
	r.Get("/health", h.Health)
	r.Get("/guilds/{id}/audit-log", h.AuditLog)
	r.Get("/guilds/{id}/stats", h.Stats)
	return r
}

func TestHandler_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&stubStore{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestHandler_AuditLog(t *testing.T) {
	store := &stubStore{records: []archive.Record{
		{ID: 200, GuildID: 42, UserID: 1, ActionType: 74},
	}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guilds/42/audit-log?limit=10&offset=20", nil)
	newTestRouter(store).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, cordial.Snowflake(42), store.gotGuild)
	assert.Equal(t, 10, store.gotLimit)
	assert.Equal(t, 20, store.gotOffset)

	var body struct {
		GuildID cordial.Snowflake `json:"guild_id"`
		Entries []archive.Record  `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, cordial.Snowflake(42), body.GuildID)
	require.Len(t, body.Entries, 1)
	assert.Equal(t, cordial.Snowflake(200), body.Entries[0].ID)
}

func TestHandler_AuditLog_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"bad guild id", "/guilds/abc/audit-log"},
		{"bad limit", "/guilds/42/audit-log?limit=0"},
		{"limit too large", "/guilds/42/audit-log?limit=9999"},
		{"bad offset", "/guilds/42/audit-log?offset=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newTestRouter(&stubStore{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_Stats(t *testing.T) {
	store := &stubStore{stats: &archive.Stats{TotalEntries: 5, ActorCount: 2}}

	rec := httptest.NewRecorder()
	newTestRouter(store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guilds/42/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var stats archive.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(5), stats.TotalEntries)
	assert.Equal(t, int64(2), stats.ActorCount)
}
