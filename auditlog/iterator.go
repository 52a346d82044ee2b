package auditlog

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/shorebird/cordial"
)

// Done is returned by Iterator.Next once the audit log is exhausted or
// the requested limit has been reached. Exhaustion is permanent: every
// later call returns Done again without touching the endpoint.
var Done = errors.New("auditlog: no more entries")

// pageSize is the endpoint's maximum entries per request.
const pageSize = 100

// FetchQuery is the filter and pagination state for one audit log
// request. Zero-valued fields are left out of the request.
type FetchQuery struct {
	GuildID    cordial.Snowflake
	UserID     cordial.Snowflake
	ActionType EventType
	Before     cordial.Snowflake
	Limit      int
}

// FetchFunc performs one Get Guild Audit Log request and returns the raw
// response body. It is the iterator's only I/O boundary; retry, rate
// limiting and timeouts belong to the implementation behind it.
type FetchFunc func(ctx context.Context, q FetchQuery) ([]byte, error)

// IteratorOptions are the optional filters for NewIterator. The zero
// value means no user filter, no action filter, start from the newest
// entry, and no limit.
type IteratorOptions struct {
	UserID     cordial.Snowflake
	ActionType EventType
	Before     cordial.Snowflake
	Limit      int
}

// Iterator walks a guild's audit log backwards, newest entry first,
// fetching pages lazily through the injected FetchFunc. It is single
// owner: one goroutine drives it at a time.
//
// The Users, Webhooks and Integrations maps fill up as pages are fetched
// with the objects referenced by returned entries.
type Iterator struct {
	fetch        FetchFunc
	dec          *Decoder
	guildID      cordial.Snowflake
	userID       cordial.Snowflake
	actionType   EventType
	before       cordial.Snowflake
	remaining    int // -1 = unbounded
	buf          []json.RawMessage
	done         bool
	users        map[cordial.Snowflake]cordial.User
	webhooks     map[cordial.Snowflake]cordial.Webhook
	integrations map[cordial.Snowflake]cordial.Integration
}

// NewIterator builds an iterator over guildID's audit log using the
// standard decoder.
func NewIterator(fetch FetchFunc, guildID cordial.Snowflake, opts IteratorOptions) *Iterator {
	remaining := opts.Limit
	if remaining <= 0 {
		remaining = -1
	}
	return &Iterator{
		fetch:        fetch,
		dec:          NewDecoder(nil),
		guildID:      guildID,
		userID:       opts.UserID,
		actionType:   opts.ActionType,
		before:       opts.Before,
		remaining:    remaining,
		users:        make(map[cordial.Snowflake]cordial.User),
		webhooks:     make(map[cordial.Snowflake]cordial.Webhook),
		integrations: make(map[cordial.Snowflake]cordial.Integration),
	}
}

// Next yields the next entry, fetching a page when the buffer runs dry.
// It returns Done on exhaustion. A fetch or decode error propagates
// unmodified and does not end the iteration.
func (it *Iterator) Next(ctx context.Context) (*Entry, error) {
	if it.done {
		return nil, Done
	}
	if len(it.buf) == 0 {
		if it.remaining == 0 {
			it.done = true
			return nil, Done
		}
		if err := it.fill(ctx); err != nil {
			return nil, err
		}
		if len(it.buf) == 0 {
			it.done = true
			return nil, Done
		}
	}
	raw := it.buf[len(it.buf)-1]
	it.buf = it.buf[:len(it.buf)-1]
	entry, err := it.dec.DecodeEntry(raw)
	if err != nil {
		return nil, err
	}
	it.before = entry.ID
	return entry, nil
}

func (it *Iterator) fill(ctx context.Context) error {
	limit := pageSize
	if it.remaining > 0 && it.remaining < limit {
		limit = it.remaining
	}
	body, err := it.fetch(ctx, FetchQuery{
		GuildID:    it.guildID,
		UserID:     it.userID,
		ActionType: it.actionType,
		Before:     it.before,
		Limit:      limit,
	})
	if err != nil {
		return err
	}

	var page struct {
		Entries      []json.RawMessage     `json:"audit_log_entries"`
		Users        []cordial.User        `json:"users"`
		Webhooks     []cordial.Webhook     `json:"webhooks"`
		Integrations []cordial.Integration `json:"integrations"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return err
	}

	entries := page.Entries
	// Never buffer more than the remaining limit, even if the server
	// overshoots the requested page size.
	if it.remaining > 0 && len(entries) > it.remaining {
		entries = entries[:it.remaining]
	}
	if it.remaining > 0 {
		it.remaining -= len(entries)
	}
	// The endpoint returns entries newest first. Reversing into the buffer
	// and consuming it from the end preserves that order while leaving the
	// cursor at the oldest entry of the page, so the next request chains
	// onto the page before it.
	for i := len(entries) - 1; i >= 0; i-- {
		it.buf = append(it.buf, entries[i])
	}

	if len(page.Users) > 0 {
		users := make(map[cordial.Snowflake]cordial.User, len(it.users)+len(page.Users))
		for id, u := range it.users {
			users[id] = u
		}
		for _, u := range page.Users {
			users[u.ID] = u
		}
		it.users = users
	}
	if len(page.Webhooks) > 0 {
		webhooks := make(map[cordial.Snowflake]cordial.Webhook, len(it.webhooks)+len(page.Webhooks))
		for id, w := range it.webhooks {
			webhooks[id] = w
		}
		for _, w := range page.Webhooks {
			webhooks[w.ID] = w
		}
		it.webhooks = webhooks
	}
	if len(page.Integrations) > 0 {
		integrations := make(map[cordial.Snowflake]cordial.Integration, len(it.integrations)+len(page.Integrations))
		for id, i := range it.integrations {
			integrations[id] = i
		}
		for _, i := range page.Integrations {
			integrations[i.ID] = i
		}
		it.integrations = integrations
	}
	return nil
}

// Users returns the users referenced by entries seen so far. Merges are
// copy-on-write: the returned map is never mutated by later fetches.
func (it *Iterator) Users() map[cordial.Snowflake]cordial.User {
	return it.users
}

// Webhooks returns the webhooks referenced by entries seen so far.
func (it *Iterator) Webhooks() map[cordial.Snowflake]cordial.Webhook {
	return it.webhooks
}

// Integrations returns the integrations referenced by entries seen so
// far.
func (it *Iterator) Integrations() map[cordial.Snowflake]cordial.Integration {
	return it.integrations
}
