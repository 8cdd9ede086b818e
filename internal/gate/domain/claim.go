package domain

// Claim is a single name/value assertion about an authenticated subject,
// as presented to API consumers.
type Claim struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}
