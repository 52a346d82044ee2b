// Package auditlog models guild audit logs: entries, their changes and
// type-specific options, plus a lazy iterator over the paginated audit
// log endpoint.
package auditlog

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shorebird/cordial"
)

// Entry is one record in a guild's audit log. Immutable once decoded.
type Entry struct {
	ID         cordial.Snowflake
	TargetID   cordial.Snowflake // zero when the action had no target
	Changes    []Change
	UserID     cordial.Snowflake
	ActionType EventType
	Options    EntryInfo // nil unless the action type carries options
	Reason     string
}

// Decoder turns raw audit log payloads into typed records. The zero value
// is not usable; construct with NewDecoder.
type Decoder struct {
	infos *InfoRegistry
}

// NewDecoder builds a Decoder around the given options registry. Passing
// nil uses the standard registry from NewInfoRegistry.
func NewDecoder(infos *InfoRegistry) *Decoder {
	if infos == nil {
		infos = NewInfoRegistry()
	}
	return &Decoder{infos: infos}
}

// DecodeChange decodes a single change object, converting both values per
// the key's converter. Null values stay nil; unknown keys keep their raw
// decoded values.
func (d *Decoder) DecodeChange(raw json.RawMessage) (Change, error) {
	var p struct {
		Key      string          `json:"key"`
		NewValue json.RawMessage `json:"new_value"`
		OldValue json.RawMessage `json:"old_value"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return Change{}, err
	}
	key := ChangeKey(p.Key)
	newValue, err := convertChangeValue(key, p.NewValue)
	if err != nil {
		return Change{}, fmt.Errorf("change %q: new_value: %w", p.Key, err)
	}
	oldValue, err := convertChangeValue(key, p.OldValue)
	if err != nil {
		return Change{}, fmt.Errorf("change %q: old_value: %w", p.Key, err)
	}
	return Change{Key: key, NewValue: newValue, OldValue: oldValue}, nil
}

// DecodeEntry decodes one audit log entry. The entry id and acting user
// id are required; a payload missing either is malformed and rejected.
func (d *Decoder) DecodeEntry(raw json.RawMessage) (*Entry, error) {
	var p struct {
		ID         cordial.Snowflake `json:"id"`
		TargetID   cordial.Snowflake `json:"target_id"`
		Changes    []json.RawMessage `json:"changes"`
		UserID     cordial.Snowflake `json:"user_id"`
		ActionType EventType         `json:"action_type"`
		Options    json.RawMessage   `json:"options"`
		Reason     string            `json:"reason"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, errors.New("auditlog: entry payload missing id")
	}
	if p.UserID == 0 {
		return nil, errors.New("auditlog: entry payload missing user_id")
	}

	entry := &Entry{
		ID:         p.ID,
		TargetID:   p.TargetID,
		UserID:     p.UserID,
		ActionType: p.ActionType,
		Reason:     p.Reason,
	}
	for _, rawChange := range p.Changes {
		change, err := d.DecodeChange(rawChange)
		if err != nil {
			return nil, fmt.Errorf("auditlog: entry %s: %w", p.ID, err)
		}
		entry.Changes = append(entry.Changes, change)
	}
	if !isNull(p.Options) {
		options, err := d.infos.Decode(p.ActionType, p.Options)
		if err != nil {
			return nil, fmt.Errorf("auditlog: entry %s: options: %w", p.ID, err)
		}
		entry.Options = options
	}
	return entry, nil
}
