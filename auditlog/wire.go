package auditlog

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// parseStringedInt reads an integer that the audit log endpoint may send
// either bare or wrapped in a string ("7" and 7 are both seen).
func parseStringedInt(raw json.RawMessage) (int, error) {
	return strconv.Atoi(string(bytes.Trim(raw, `"`)))
}
