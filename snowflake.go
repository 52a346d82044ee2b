package cordial

import (
	"bytes"
	"strconv"
	"time"
)

// Epoch is the Discord epoch: the first second of 2015 in milliseconds
// since the Unix epoch. Snowflake timestamps count from here.
const Epoch = 1420070400000

// Snowflake is the unique identifier used by every Discord entity. It is a
// 64-bit integer carried as a decimal string on the wire. The zero value
// means "not set".
type Snowflake uint64

// ParseSnowflake parses the canonical decimal string form of an id.
func ParseSnowflake(s string) (Snowflake, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return Snowflake(n), nil
}

func (s Snowflake) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// Time extracts the creation time embedded in the id.
func (s Snowflake) Time() time.Time {
	ms := int64(s>>22) + Epoch
	return time.UnixMilli(ms).UTC()
}

func (s Snowflake) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON accepts both the documented string form and the bare
// integer form some payloads still use.
func (s *Snowflake) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if string(data) == "null" {
		return nil
	}
	n, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return err
	}
	*s = Snowflake(n)
	return nil
}
