package domain

import (
	interfaces "keystone/internal/domain/interfaces"
	types "keystone/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Fingerprint         = types.Fingerprint
	APIKeyStatus        = types.APIKeyStatus
	IdentityDetails     = types.IdentityDetails
	OwnedIdentityRecord = types.OwnedIdentityRecord
	GeneratedIdentity   = types.GeneratedIdentity
)

// API key states.
const (
	APIKeyStatusUnknown                    = types.APIKeyStatusUnknown
	APIKeyStatusValid                      = types.APIKeyStatusValid
	APIKeyStatusExpired                    = types.APIKeyStatusExpired
	APIKeyStatusLicenseExhausted           = types.APIKeyStatusLicenseExhausted
	APIKeyStatusOpenBetaKey                = types.APIKeyStatusOpenBetaKey
	APIKeyStatusFreeTrialKey               = types.APIKeyStatusFreeTrialKey
	APIKeyStatusAwaitingPaymentGracePeriod = types.APIKeyStatusAwaitingPaymentGracePeriod
	APIKeyStatusAwaitingPaymentOnHold      = types.APIKeyStatusAwaitingPaymentOnHold
	APIKeyStatusFreeTrialKeyExpired        = types.APIKeyStatusFreeTrialKeyExpired
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	IdentityService = interfaces.IdentityService
	MessageService  = interfaces.MessageService
	BatchService    = interfaces.BatchService
	IdentityStore   = interfaces.IdentityStore
)
