package auditlog

import (
	"encoding/json"
	"time"

	"github.com/shorebird/cordial"
)

// EntryInfo is the tagged union over the type-specific options attached to
// some audit log entries. Which concrete type an options payload decodes
// into is purely a function of the entry's action type.
type EntryInfo interface {
	entryInfo()
}

// ChannelOverwriteInfo accompanies the channel overwrite create, update
// and delete actions.
type ChannelOverwriteInfo struct {
	ID       cordial.Snowflake
	Type     cordial.OverwriteType
	RoleName string
}

// MessagePinInfo accompanies the message pin and unpin actions.
type MessagePinInfo struct {
	ChannelID cordial.Snowflake
	MessageID cordial.Snowflake
}

// MemberPruneInfo accompanies the member prune action.
type MemberPruneInfo struct {
	DeleteMemberDays time.Duration
	MembersRemoved   int
}

// MessageBulkDeleteInfo accompanies the message bulk delete action.
type MessageBulkDeleteInfo struct {
	Count int
}

// MessageDeleteInfo accompanies the single message delete action. It is
// the bulk delete shape plus the channel the message lived in.
type MessageDeleteInfo struct {
	MessageBulkDeleteInfo
	ChannelID cordial.Snowflake
}

// MemberDisconnectInfo accompanies the voice member disconnect action.
type MemberDisconnectInfo struct {
	Count int
}

// MemberMoveInfo accompanies the voice member move action. It is the
// disconnect shape plus the destination channel.
type MemberMoveInfo struct {
	MemberDisconnectInfo
	ChannelID cordial.Snowflake
}

// UnrecognizedInfo holds the options of an action type with no registered
// decoder. Fields is the decoded payload verbatim, unstructured.
type UnrecognizedInfo struct {
	Fields map[string]any
}

func (ChannelOverwriteInfo) entryInfo()  {}
func (MessagePinInfo) entryInfo()        {}
func (MemberPruneInfo) entryInfo()       {}
func (MessageBulkDeleteInfo) entryInfo() {}
func (MessageDeleteInfo) entryInfo()     {}
func (MemberDisconnectInfo) entryInfo()  {}
func (MemberMoveInfo) entryInfo()        {}
func (UnrecognizedInfo) entryInfo()      {}

// InfoDecoderFunc decodes one raw options payload into its variant.
type InfoDecoderFunc func(raw json.RawMessage) (EntryInfo, error)

// InfoRegistry maps action types to options decoders. It is built
// explicitly by NewInfoRegistry and handed to a Decoder; there is no
// process-wide registration.
type InfoRegistry struct {
	decoders map[EventType]InfoDecoderFunc
}

// NewInfoRegistry builds the registry covering every documented
// options-bearing action type.
func NewInfoRegistry() *InfoRegistry {
	r := &InfoRegistry{decoders: make(map[EventType]InfoDecoderFunc)}
	r.Register(decodeChannelOverwriteInfo,
		EventChannelOverwriteCreate, EventChannelOverwriteUpdate, EventChannelOverwriteDelete)
	r.Register(decodeMessagePinInfo, EventMessagePin, EventMessageUnpin)
	r.Register(decodeMemberPruneInfo, EventMemberPrune)
	r.Register(decodeMessageBulkDeleteInfo, EventMessageBulkDelete)
	r.Register(decodeMessageDeleteInfo, EventMessageDelete)
	r.Register(decodeMemberDisconnectInfo, EventMemberDisconnect)
	r.Register(decodeMemberMoveInfo, EventMemberMove)
	return r
}

// Register associates fn with one or more action types, replacing any
// previous association.
func (r *InfoRegistry) Register(fn InfoDecoderFunc, types ...EventType) {
	for _, t := range types {
		r.decoders[t] = fn
	}
}

// Decode routes raw to the decoder registered for t. Unregistered action
// types fall back to UnrecognizedInfo with all raw fields preserved.
func (r *InfoRegistry) Decode(t EventType, raw json.RawMessage) (EntryInfo, error) {
	if fn, ok := r.decoders[t]; ok {
		return fn(raw)
	}
	return decodeUnrecognizedInfo(raw)
}

func decodeChannelOverwriteInfo(raw json.RawMessage) (EntryInfo, error) {
	var p struct {
		ID       cordial.Snowflake     `json:"id"`
		Type     cordial.OverwriteType `json:"type"`
		RoleName string                `json:"role_name"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return ChannelOverwriteInfo{ID: p.ID, Type: p.Type, RoleName: p.RoleName}, nil
}

func decodeMessagePinInfo(raw json.RawMessage) (EntryInfo, error) {
	var p struct {
		ChannelID cordial.Snowflake `json:"channel_id"`
		MessageID cordial.Snowflake `json:"message_id"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return MessagePinInfo{ChannelID: p.ChannelID, MessageID: p.MessageID}, nil
}

func decodeMemberPruneInfo(raw json.RawMessage) (EntryInfo, error) {
	var p struct {
		DeleteMemberDays json.RawMessage `json:"delete_member_days"`
		MembersRemoved   json.RawMessage `json:"members_removed"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	days, err := parseStringedInt(p.DeleteMemberDays)
	if err != nil {
		return nil, err
	}
	removed, err := parseStringedInt(p.MembersRemoved)
	if err != nil {
		return nil, err
	}
	return MemberPruneInfo{
		DeleteMemberDays: time.Duration(days) * 24 * time.Hour,
		MembersRemoved:   removed,
	}, nil
}

func decodeMessageBulkDeleteInfo(raw json.RawMessage) (EntryInfo, error) {
	count, err := decodeCount(raw)
	if err != nil {
		return nil, err
	}
	return MessageBulkDeleteInfo{Count: count}, nil
}

func decodeMessageDeleteInfo(raw json.RawMessage) (EntryInfo, error) {
	count, err := decodeCount(raw)
	if err != nil {
		return nil, err
	}
	var p struct {
		ChannelID cordial.Snowflake `json:"channel_id"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return MessageDeleteInfo{
		MessageBulkDeleteInfo: MessageBulkDeleteInfo{Count: count},
		ChannelID:             p.ChannelID,
	}, nil
}

func decodeMemberDisconnectInfo(raw json.RawMessage) (EntryInfo, error) {
	count, err := decodeCount(raw)
	if err != nil {
		return nil, err
	}
	return MemberDisconnectInfo{Count: count}, nil
}

func decodeMemberMoveInfo(raw json.RawMessage) (EntryInfo, error) {
	count, err := decodeCount(raw)
	if err != nil {
		return nil, err
	}
	var p struct {
		ChannelID cordial.Snowflake `json:"channel_id"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return MemberMoveInfo{
		MemberDisconnectInfo: MemberDisconnectInfo{Count: count},
		ChannelID:            p.ChannelID,
	}, nil
}

func decodeUnrecognizedInfo(raw json.RawMessage) (EntryInfo, error) {
	fields := make(map[string]any)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return UnrecognizedInfo{Fields: fields}, nil
}

func decodeCount(raw json.RawMessage) (int, error) {
	var p struct {
		Count json.RawMessage `json:"count"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return 0, err
	}
	return parseStringedInt(p.Count)
}
