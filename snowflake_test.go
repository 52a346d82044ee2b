package cordial_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shorebird/cordial"
)

func TestParseSnowflake(t *testing.T) {
	id, err := cordial.ParseSnowflake("115590097100865541")
	require.NoError(t, err)
	assert.Equal(t, cordial.Snowflake(115590097100865541), id)
	assert.Equal(t, "115590097100865541", id.String())

	_, err = cordial.ParseSnowflake("not-a-number")
	assert.Error(t, err)
}

func TestSnowflake_Time(t *testing.T) {
	// 115590097100865541 >> 22 = 27558826709 ms past the Discord epoch.
	id := cordial.Snowflake(115590097100865541)
	want := time.UnixMilli(cordial.Epoch + 27558826709).UTC()
	assert.Equal(t, want, id.Time())
}

func TestSnowflake_JSON(t *testing.T) {
	var id cordial.Snowflake
	require.NoError(t, json.Unmarshal([]byte(`"80351110224678912"`), &id))
	assert.Equal(t, cordial.Snowflake(80351110224678912), id)

	// Legacy bare integer form.
	require.NoError(t, json.Unmarshal([]byte(`80351110224678912`), &id))
	assert.Equal(t, cordial.Snowflake(80351110224678912), id)

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"80351110224678912"`, string(data))
}

func TestPermission_JSON(t *testing.T) {
	var p cordial.Permission
	require.NoError(t, json.Unmarshal([]byte(`"2048"`), &p))
	assert.True(t, p.Has(cordial.PermissionSendMessages))
	assert.False(t, p.Has(cordial.PermissionManageGuild))

	require.NoError(t, json.Unmarshal([]byte(`8`), &p))
	assert.True(t, p.Has(cordial.PermissionAdministrator))
}

func TestColor(t *testing.T) {
	c := cordial.ColorFromRGB(255, 0, 0)
	assert.Equal(t, cordial.Color(0xFF0000), c)

	r, g, b := cordial.Color(0x3498DB).RGB()
	assert.Equal(t, uint8(0x34), r)
	assert.Equal(t, uint8(0x98), g)
	assert.Equal(t, uint8(0xDB), b)

	assert.Equal(t, "#FF0000", c.String())
}
