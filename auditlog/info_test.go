package auditlog_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shorebird/cordial"
	"github.com/shorebird/cordial/auditlog"
)

func TestInfoRegistry_Routing(t *testing.T) {
	reg := auditlog.NewInfoRegistry()

	tests := []struct {
		name    string
		types   []auditlog.EventType
		payload string
		want    auditlog.EntryInfo
	}{
		{
			name: "channel overwrite",
			types: []auditlog.EventType{
				auditlog.EventChannelOverwriteCreate,
				auditlog.EventChannelOverwriteUpdate,
				auditlog.EventChannelOverwriteDelete,
			},
			payload: `{"id": "115590097100865541", "type": "role", "role_name": "mods"}`,
			want: auditlog.ChannelOverwriteInfo{
				ID:       115590097100865541,
				Type:     cordial.OverwriteTypeRole,
				RoleName: "mods",
			},
		},
		{
			name:    "message pin",
			types:   []auditlog.EventType{auditlog.EventMessagePin, auditlog.EventMessageUnpin},
			payload: `{"channel_id": "123", "message_id": "456"}`,
			want:    auditlog.MessagePinInfo{ChannelID: 123, MessageID: 456},
		},
		{
			name:    "member prune",
			types:   []auditlog.EventType{auditlog.EventMemberPrune},
			payload: `{"delete_member_days": "7", "members_removed": "3"}`,
			want: auditlog.MemberPruneInfo{
				DeleteMemberDays: 7 * 24 * time.Hour,
				MembersRemoved:   3,
			},
		},
		{
			name:    "message bulk delete",
			types:   []auditlog.EventType{auditlog.EventMessageBulkDelete},
			payload: `{"count": "42"}`,
			want:    auditlog.MessageBulkDeleteInfo{Count: 42},
		},
		{
			name:    "message delete",
			types:   []auditlog.EventType{auditlog.EventMessageDelete},
			payload: `{"count": "2", "channel_id": "123"}`,
			want: auditlog.MessageDeleteInfo{
				MessageBulkDeleteInfo: auditlog.MessageBulkDeleteInfo{Count: 2},
				ChannelID:             123,
			},
		},
		{
			name:    "member disconnect",
			types:   []auditlog.EventType{auditlog.EventMemberDisconnect},
			payload: `{"count": "5"}`,
			want:    auditlog.MemberDisconnectInfo{Count: 5},
		},
		{
			name:    "member move",
			types:   []auditlog.EventType{auditlog.EventMemberMove},
			payload: `{"count": "5", "channel_id": "123"}`,
			want: auditlog.MemberMoveInfo{
				MemberDisconnectInfo: auditlog.MemberDisconnectInfo{Count: 5},
				ChannelID:            123,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, eventType := range tt.types {
				info, err := reg.Decode(eventType, json.RawMessage(tt.payload))
				require.NoError(t, err)
				assert.Equal(t, tt.want, info)
			}
		})
	}
}

func TestInfoRegistry_UnrecognizedFallback(t *testing.T) {
	reg := auditlog.NewInfoRegistry()

	// 200 is not a documented action type; all raw fields must survive.
	info, err := reg.Decode(auditlog.EventType(200), json.RawMessage(
		`{"some_field": "value", "count": "3", "nested": {"x": true}}`))
	require.NoError(t, err)

	unrecognized, ok := info.(auditlog.UnrecognizedInfo)
	require.True(t, ok)
	assert.Equal(t, map[string]any{
		"some_field": "value",
		"count":      "3",
		"nested":     map[string]any{"x": true},
	}, unrecognized.Fields)
}

func TestInfoRegistry_Register(t *testing.T) {
	reg := auditlog.NewInfoRegistry()
	reg.Register(func(raw json.RawMessage) (auditlog.EntryInfo, error) {
		return auditlog.MessageBulkDeleteInfo{Count: -1}, nil
	}, auditlog.EventType(90))

	info, err := reg.Decode(auditlog.EventType(90), json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, auditlog.MessageBulkDeleteInfo{Count: -1}, info)
}
