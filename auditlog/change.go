package auditlog

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/shorebird/cordial"
)

// ChangeKey names the guild/channel/role attribute a Change applies to.
// The constants below cover the documented keys; anything else Discord
// sends survives as the raw string with its values unconverted.
type ChangeKey string

const (
	ChangeKeyName                        ChangeKey = "name"
	ChangeKeyIconHash                    ChangeKey = "icon_hash"
	ChangeKeySplashHash                  ChangeKey = "splash_hash"
	ChangeKeyOwnerID                     ChangeKey = "owner_id"
	ChangeKeyRegion                      ChangeKey = "region"
	ChangeKeyAFKChannelID                ChangeKey = "afk_channel_id"
	ChangeKeyAFKTimeout                  ChangeKey = "afk_timeout"
	ChangeKeyMFALevel                    ChangeKey = "mfa_level"
	ChangeKeyVerificationLevel           ChangeKey = "verification_level"
	ChangeKeyExplicitContentFilter       ChangeKey = "explicit_content_filter"
	ChangeKeyDefaultMessageNotifications ChangeKey = "default_message_notifications"
	ChangeKeyVanityURLCode               ChangeKey = "vanity_url_code"
	ChangeKeyAddRoleToMember             ChangeKey = "$add"
	ChangeKeyRemoveRoleFromMember        ChangeKey = "$remove"
	ChangeKeyPruneDeleteDays             ChangeKey = "prune_delete_days"
	ChangeKeyWidgetEnabled               ChangeKey = "widget_enabled"
	ChangeKeyWidgetChannelID             ChangeKey = "widget_channel_id"
	ChangeKeyPosition                    ChangeKey = "position"
	ChangeKeyTopic                       ChangeKey = "topic"
	ChangeKeyBitrate                     ChangeKey = "bitrate"
	ChangeKeyPermissionOverwrites        ChangeKey = "permission_overwrites"
	ChangeKeyNSFW                        ChangeKey = "nsfw"
	ChangeKeyApplicationID               ChangeKey = "application_id"
	ChangeKeyPermissions                 ChangeKey = "permissions"
	ChangeKeyColor                       ChangeKey = "color"
	ChangeKeyHoist                       ChangeKey = "hoist"
	ChangeKeyMentionable                 ChangeKey = "mentionable"
	ChangeKeyAllow                       ChangeKey = "allow"
	ChangeKeyDeny                        ChangeKey = "deny"
	ChangeKeyInviteCode                  ChangeKey = "code"
	ChangeKeyChannelID                   ChangeKey = "channel_id"
	ChangeKeyInviterID                   ChangeKey = "inviter_id"
	ChangeKeyMaxUses                     ChangeKey = "max_uses"
	ChangeKeyUses                        ChangeKey = "uses"
	ChangeKeyMaxAge                      ChangeKey = "max_age"
	ChangeKeyTemporary                   ChangeKey = "temporary"
	ChangeKeyDeaf                        ChangeKey = "deaf"
	ChangeKeyMute                        ChangeKey = "mute"
	ChangeKeyNick                        ChangeKey = "nick"
	ChangeKeyAvatarHash                  ChangeKey = "avatar_hash"
	ChangeKeyID                          ChangeKey = "id"
	ChangeKeyType                        ChangeKey = "type"
	ChangeKeyEnableEmoticons             ChangeKey = "enable_emoticons"
	ChangeKeyExpireBehavior              ChangeKey = "expire_behavior"
	ChangeKeyExpireGracePeriod           ChangeKey = "expire_grace_period"
	ChangeKeyRateLimitPerUser            ChangeKey = "rate_limit_per_user"
	ChangeKeySystemChannelID             ChangeKey = "system_channel_id"
)

// Change is one attribute mutation recorded on an entry. OldValue and
// NewValue hold the converted typed value for known keys, the decoded raw
// JSON value otherwise, and nil when the side was absent.
type Change struct {
	Key      ChangeKey
	OldValue any
	NewValue any
}

// converterFunc turns one raw change value into its typed form. Converters
// are pure: same input, same output, no shared state.
type converterFunc func(raw json.RawMessage) (any, error)

func snowflakeConverter(raw json.RawMessage) (any, error) {
	var id cordial.Snowflake
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, err
	}
	return id, nil
}

func secondsConverter(raw json.RawMessage) (any, error) {
	var secs float64
	if err := json.Unmarshal(raw, &secs); err != nil {
		return nil, err
	}
	return time.Duration(secs * float64(time.Second)), nil
}

func daysConverter(raw json.RawMessage) (any, error) {
	n, err := parseStringedInt(raw)
	if err != nil {
		return nil, err
	}
	return time.Duration(n) * 24 * time.Hour, nil
}

func intConverter(raw json.RawMessage) (any, error) {
	return parseStringedInt(raw)
}

// The "type" change carries a channel-type integer on channel entries
// and the string "role" or "member" on overwrite entries. Either form
// converts to its string rendering.
func typeConverter(raw json.RawMessage) (any, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	return string(bytes.TrimSpace(raw)), nil
}

func boolConverter(raw json.RawMessage) (any, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, err
	}
	return b, nil
}

func permissionConverter(raw json.RawMessage) (any, error) {
	var p cordial.Permission
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return p, nil
}

func colorConverter(raw json.RawMessage) (any, error) {
	var n uint32
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, err
	}
	return cordial.Color(n), nil
}

func enumConverter[T ~int](raw json.RawMessage) (any, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, err
	}
	return T(n), nil
}

func rolesConverter(raw json.RawMessage) (any, error) {
	var roles []cordial.Role
	if err := json.Unmarshal(raw, &roles); err != nil {
		return nil, err
	}
	m := make(map[cordial.Snowflake]cordial.Role, len(roles))
	for _, r := range roles {
		m[r.ID] = r
	}
	return m, nil
}

func overwritesConverter(raw json.RawMessage) (any, error) {
	var overwrites []cordial.PermissionOverwrite
	if err := json.Unmarshal(raw, &overwrites); err != nil {
		return nil, err
	}
	m := make(map[cordial.Snowflake]cordial.PermissionOverwrite, len(overwrites))
	for _, o := range overwrites {
		m[o.ID] = o
	}
	return m, nil
}

// maxUsesConverter keeps the upstream convention of zero meaning
// unlimited: a positive raw value converts to an int, zero becomes +Inf.
func maxUsesConverter(raw json.RawMessage) (any, error) {
	n, err := parseStringedInt(raw)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return n, nil
	}
	return math.Inf(1), nil
}

// maxAgeConverter maps a zero raw value to nil (an invite that never
// expires) rather than a zero duration. Asymmetric with maxUsesConverter
// on purpose: both match the upstream convention exactly.
func maxAgeConverter(raw json.RawMessage) (any, error) {
	var secs float64
	if err := json.Unmarshal(raw, &secs); err != nil {
		return nil, err
	}
	if secs > 0 {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return nil, nil
}

// changeConverters maps each known key to its value converter. Keys
// without an entry here (topic, nick, nsfw, ...) keep their raw decoded
// value.
var changeConverters = map[ChangeKey]converterFunc{
	ChangeKeyOwnerID:                     snowflakeConverter,
	ChangeKeyAFKChannelID:                snowflakeConverter,
	ChangeKeyAFKTimeout:                  secondsConverter,
	ChangeKeyMFALevel:                    enumConverter[cordial.MFALevel],
	ChangeKeyVerificationLevel:           enumConverter[cordial.VerificationLevel],
	ChangeKeyExplicitContentFilter:       enumConverter[cordial.ExplicitContentFilterLevel],
	ChangeKeyDefaultMessageNotifications: enumConverter[cordial.MessageNotificationsLevel],
	ChangeKeyAddRoleToMember:             rolesConverter,
	ChangeKeyRemoveRoleFromMember:        rolesConverter,
	ChangeKeyPruneDeleteDays:             daysConverter,
	ChangeKeyWidgetChannelID:             snowflakeConverter,
	ChangeKeyPosition:                    intConverter,
	ChangeKeyBitrate:                     intConverter,
	ChangeKeyPermissionOverwrites:        overwritesConverter,
	ChangeKeyApplicationID:               snowflakeConverter,
	ChangeKeyPermissions:                 permissionConverter,
	ChangeKeyColor:                       colorConverter,
	ChangeKeyAllow:                       permissionConverter,
	ChangeKeyDeny:                        permissionConverter,
	ChangeKeyChannelID:                   snowflakeConverter,
	ChangeKeyInviterID:                   snowflakeConverter,
	ChangeKeyMaxUses:                     maxUsesConverter,
	ChangeKeyUses:                        intConverter,
	ChangeKeyMaxAge:                      maxAgeConverter,
	ChangeKeyID:                          snowflakeConverter,
	ChangeKeyType:                        typeConverter,
	ChangeKeyEnableEmoticons:             boolConverter,
	ChangeKeyExpireBehavior:              enumConverter[cordial.ExpireBehavior],
	ChangeKeyExpireGracePeriod:           daysConverter,
	ChangeKeyRateLimitPerUser:            secondsConverter,
	ChangeKeySystemChannelID:             snowflakeConverter,
}

// convertChangeValue applies the converter registered for key, if any.
// Absent values never reach a converter.
func convertChangeValue(key ChangeKey, raw json.RawMessage) (any, error) {
	if isNull(raw) {
		return nil, nil
	}
	if convert, ok := changeConverters[key]; ok {
		return convert(raw)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
