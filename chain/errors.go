// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"errors"
)

var (
	// Genesis Correctness
	ErrInvalidMagic      = errors.New("invalid magic")
	ErrInvalidGenesis    = errors.New("invalid genesis parameter")
	ErrBalanceOverflow   = errors.New("balance overflow")
	ErrInvalidAllocation = errors.New("heir allocation percentages must sum to 100")

	// Tx Correctness
	ErrInvalidSender    = errors.New("invalid sender")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrDuplicateTx      = errors.New("duplicate transaction")
	ErrInvalidType      = errors.New("invalid tx type")
	ErrNonActionable    = errors.New("non-actionable transaction")

	// Validation
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrInvalidInactivityPeriod = errors.New("invalid inactivity period")
	ErrInvalidHeir             = errors.New("invalid heir")
	ErrInvalidAsset            = errors.New("invalid asset")
	ErrTooManyHeirs            = errors.New("too many heirs")
	ErrNoHeirs                 = errors.New("no heirs provided")
	ErrTooManyTransfers        = errors.New("too many transfers in batch")
	ErrTooManyTokens           = errors.New("too many token allocations")
	ErrMismatchedArrays        = errors.New("recipients and amounts must have the same length")
	ErrFeeTooHigh              = errors.New("platform fee is too high")
	ErrCustodialRecipient      = errors.New("recipient is a custodial address")

	// Authorization
	ErrUnauthorized      = errors.New("sender is not authorized")
	ErrUnauthorizedAdmin = errors.New("sender is not the platform admin")

	// State
	ErrAlreadyClaimed      = errors.New("assets have already been claimed")
	ErrAlreadyExecuted     = errors.New("inheritance has already been executed")
	ErrOwnerStillActive    = errors.New("owner is still active")
	ErrRecordExists        = errors.New("heir record already exists")
	ErrRecordMissing       = errors.New("heir record missing")
	ErrWalletExists        = errors.New("smart wallet already exists")
	ErrWalletMissing       = errors.New("smart wallet missing")
	ErrProfileExists       = errors.New("user profile already exists")
	ErrProfileMissing      = errors.New("user profile missing")
	ErrPlatformInitialized = errors.New("platform already initialized")
	ErrPlatformMissing     = errors.New("platform not initialized")
	ErrPlatformPaused      = errors.New("platform is paused")

	// Resource
	ErrInsufficientTreasuryBalance = errors.New("insufficient treasury balance")
	ErrInsufficientBalance         = errors.New("insufficient balance")
	ErrInsufficientAccounts        = errors.New("insufficient accounts provided for batch transfer")

	// Subscription
	ErrCustomInactivityNotAllowed = errors.New("custom inactivity periods not allowed for free users")
	ErrPremiumRequired            = errors.New("premium subscription required")
	ErrMaxHeirsReached            = errors.New("maximum number of heirs reached")
	ErrHeirAlreadyExists          = errors.New("heir already exists")
	ErrHeirNotFound               = errors.New("heir not found")
)
