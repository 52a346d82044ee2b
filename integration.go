package cordial

// IntegrationAccount is the external account an integration is bound to.
type IntegrationAccount struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Integration is the partial integration object attached to audit logs.
type Integration struct {
	ID      Snowflake          `json:"id"`
	Name    string             `json:"name"`
	Type    string             `json:"type"`
	Account IntegrationAccount `json:"account"`
}
