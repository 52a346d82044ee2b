package auditlog

import (
	"encoding/json"
	"fmt"

	"github.com/shorebird/cordial"
)

// Log is one page of a guild's audit log: the entries plus the users,
// webhooks and partial integrations they reference, each keyed by id. The
// four maps are decoded independently; no cross-validation happens here.
type Log struct {
	Entries      map[cordial.Snowflake]Entry
	Integrations map[cordial.Snowflake]cordial.Integration
	Users        map[cordial.Snowflake]cordial.User
	Webhooks     map[cordial.Snowflake]cordial.Webhook
}

// DecodeLog decodes a full audit log endpoint response.
func (d *Decoder) DecodeLog(raw json.RawMessage) (*Log, error) {
	var p struct {
		Entries      []json.RawMessage     `json:"audit_log_entries"`
		Integrations []cordial.Integration `json:"integrations"`
		Users        []cordial.User        `json:"users"`
		Webhooks     []cordial.Webhook     `json:"webhooks"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}

	log := &Log{
		Entries:      make(map[cordial.Snowflake]Entry, len(p.Entries)),
		Integrations: make(map[cordial.Snowflake]cordial.Integration, len(p.Integrations)),
		Users:        make(map[cordial.Snowflake]cordial.User, len(p.Users)),
		Webhooks:     make(map[cordial.Snowflake]cordial.Webhook, len(p.Webhooks)),
	}
	for _, rawEntry := range p.Entries {
		entry, err := d.DecodeEntry(rawEntry)
		if err != nil {
			return nil, fmt.Errorf("auditlog: log: %w", err)
		}
		log.Entries[entry.ID] = *entry
	}
	for _, integration := range p.Integrations {
		log.Integrations[integration.ID] = integration
	}
	for _, user := range p.Users {
		log.Users[user.ID] = user
	}
	for _, webhook := range p.Webhooks {
		log.Webhooks[webhook.ID] = webhook
	}
	return log, nil
}
