package types

import "strings"

// IdentityDetails is the user-facing profile attached to an identity. It is
// stored and exchanged as JSON.
type IdentityDetails struct {
	FirstName         string            `json:"first_name"`
	LastName          string            `json:"last_name,omitempty"`
	Company           string            `json:"company,omitempty"`
	Position          string            `json:"position,omitempty"`
	SignedUserDetails string            `json:"signed_user_details,omitempty"`
	CustomFields      map[string]string `json:"custom_fields,omitempty"`
}

// FormatDisplayName returns the name shown for these details.
func (d IdentityDetails) FormatDisplayName() string {
	name := strings.TrimSpace(strings.Join([]string{d.FirstName, d.LastName}, " "))
	switch {
	case name == "":
		return ""
	case d.Company != "" && d.Position != "":
		return name + " (" + d.Position + " @ " + d.Company + ")"
	case d.Company != "":
		return name + " (" + d.Company + ")"
	}
	return name
}

// OwnedIdentityRecord is the non-secret metadata kept for an owned identity.
// The secrets live in a separate passphrase-protected blob.
type OwnedIdentityRecord struct {
	Fingerprint  Fingerprint     `json:"fingerprint"`
	ServerURL    string          `json:"server_url"`
	Identity     []byte          `json:"identity"`
	DisplayName  string          `json:"display_name"`
	Details      IdentityDetails `json:"details"`
	APIKeyStatus APIKeyStatus    `json:"api_key_status"`
	Active       bool            `json:"active"`
	CreatedUTC   int64           `json:"created_utc"`
}
