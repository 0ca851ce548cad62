package types

// GeneratedIdentity is one result of a batch generation run.
type GeneratedIdentity struct {
	Index       int         `json:"index"`
	Fingerprint Fingerprint `json:"fingerprint"`
	Identity    []byte      `json:"identity"`
}
