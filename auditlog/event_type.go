package auditlog

// EventType is the action discriminator on an audit log entry. Values not
// listed here are passed through untouched so newer actions added upstream
// still decode.
type EventType int

const (
	EventGuildUpdate EventType = 1

	EventChannelCreate          EventType = 10
	EventChannelUpdate          EventType = 11
	EventChannelDelete          EventType = 12
	EventChannelOverwriteCreate EventType = 13
	EventChannelOverwriteUpdate EventType = 14
	EventChannelOverwriteDelete EventType = 15

	EventMemberKick       EventType = 20
	EventMemberPrune      EventType = 21
	EventMemberBanAdd     EventType = 22
	EventMemberBanRemove  EventType = 23
	EventMemberUpdate     EventType = 24
	EventMemberRoleUpdate EventType = 25
	EventMemberMove       EventType = 26
	EventMemberDisconnect EventType = 27
	EventBotAdd           EventType = 28

	EventRoleCreate EventType = 30
	EventRoleUpdate EventType = 31
	EventRoleDelete EventType = 32

	EventInviteCreate EventType = 40
	EventInviteUpdate EventType = 41
	EventInviteDelete EventType = 42

	EventWebhookCreate EventType = 50
	EventWebhookUpdate EventType = 51
	EventWebhookDelete EventType = 52

	EventEmojiCreate EventType = 60
	EventEmojiUpdate EventType = 61
	EventEmojiDelete EventType = 62

	EventMessageDelete     EventType = 72
	EventMessageBulkDelete EventType = 73
	EventMessagePin        EventType = 74
	EventMessageUnpin      EventType = 75

	EventIntegrationCreate EventType = 80
	EventIntegrationUpdate EventType = 81
	EventIntegrationDelete EventType = 82
)
