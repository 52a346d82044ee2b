package export

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shorebird/cordial"
	"github.com/shorebird/cordial/internal/archive"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 500
)

type Handler struct {
	store archive.Store
}

func NewHandler(store archive.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) AuditLog(w http.ResponseWriter, r *http.Request) {
	guildID, err := cordial.ParseSnowflake(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid guild id")
		return
	}

	limit := defaultPageLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 1 || limit > maxPageLimit {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil || offset < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
	}

	records, err := h.store.ListEntries(r.Context(), guildID, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries")
		return
	}
	if records == nil {
		records = []archive.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"guild_id": guildID,
		"entries":  records,
	})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	guildID, err := cordial.ParseSnowflake(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid guild id")
		return
	}

	stats, err := h.store.Stats(r.Context(), guildID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
