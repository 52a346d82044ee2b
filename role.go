package cordial

// Role is the partial role object seen in audit log change values.
type Role struct {
	ID   Snowflake `json:"id"`
	Name string    `json:"name"`
}
