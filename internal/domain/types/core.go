package types

// Fingerprint is a short identifier for identities presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// APIKeyStatus is the server-side state of the API key bound to an identity.
type APIKeyStatus uint8

// API key states as reported by the server.
const (
	APIKeyStatusUnknown APIKeyStatus = iota
	APIKeyStatusValid
	APIKeyStatusExpired
	APIKeyStatusLicenseExhausted
	APIKeyStatusOpenBetaKey
	APIKeyStatusFreeTrialKey
	APIKeyStatusAwaitingPaymentGracePeriod
	APIKeyStatusAwaitingPaymentOnHold
	APIKeyStatusFreeTrialKeyExpired
)

var apiKeyStatusNames = [...]string{
	"unknown",
	"valid",
	"expired",
	"license-exhausted",
	"open-beta",
	"free-trial",
	"awaiting-payment-grace-period",
	"awaiting-payment-on-hold",
	"free-trial-expired",
}

// String returns a short name for s.
func (s APIKeyStatus) String() string {
	if int(s) < len(apiKeyStatusNames) {
		return apiKeyStatusNames[s]
	}
	return "invalid"
}
