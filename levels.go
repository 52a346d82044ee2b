package cordial

// MFALevel is the multi-factor authentication requirement of a guild.
type MFALevel int

const (
	MFALevelNone MFALevel = iota
	MFALevelElevated
)

// VerificationLevel is the member verification requirement of a guild.
type VerificationLevel int

const (
	VerificationLevelNone VerificationLevel = iota
	VerificationLevelLow
	VerificationLevelMedium
	VerificationLevelHigh
	VerificationLevelVeryHigh
)

// ExplicitContentFilterLevel controls whose messages are scanned for
// explicit media.
type ExplicitContentFilterLevel int

const (
	ExplicitContentFilterDisabled ExplicitContentFilterLevel = iota
	ExplicitContentFilterMembersWithoutRoles
	ExplicitContentFilterAllMembers
)

// MessageNotificationsLevel is the default notification setting of a guild.
type MessageNotificationsLevel int

const (
	MessageNotificationsAllMessages MessageNotificationsLevel = iota
	MessageNotificationsOnlyMentions
)

// ExpireBehavior is what happens to a member when their integration
// subscription lapses.
type ExpireBehavior int

const (
	ExpireBehaviorRemoveRole ExpireBehavior = iota
	ExpireBehaviorKick
)

// OverwriteType says whether a permission overwrite targets a role or a
// member.
type OverwriteType string

const (
	OverwriteTypeRole   OverwriteType = "role"
	OverwriteTypeMember OverwriteType = "member"
)
