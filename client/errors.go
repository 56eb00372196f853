// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gorilla/rpc/v2/json2"

	"github.com/ava-labs/heirvm/chain"
)

var ErrUnconfirmed = errors.New("transaction not confirmed")

// ledgerErrors are matched against RPC error messages so callers can use
// errors.Is on the client side.
var ledgerErrors = []error{
	chain.ErrInvalidMagic,
	chain.ErrInvalidSignature,
	chain.ErrDuplicateTx,
	chain.ErrNonActionable,
	chain.ErrInvalidAmount,
	chain.ErrInvalidInactivityPeriod,
	chain.ErrInvalidHeir,
	chain.ErrInvalidAsset,
	chain.ErrTooManyHeirs,
	chain.ErrNoHeirs,
	chain.ErrTooManyTransfers,
	chain.ErrTooManyTokens,
	chain.ErrMismatchedArrays,
	chain.ErrFeeTooHigh,
	chain.ErrCustodialRecipient,
	chain.ErrInvalidAllocation,
	chain.ErrUnauthorizedAdmin,
	chain.ErrUnauthorized,
	chain.ErrAlreadyClaimed,
	chain.ErrAlreadyExecuted,
	chain.ErrOwnerStillActive,
	chain.ErrRecordExists,
	chain.ErrRecordMissing,
	chain.ErrWalletExists,
	chain.ErrWalletMissing,
	chain.ErrProfileExists,
	chain.ErrProfileMissing,
	chain.ErrPlatformInitialized,
	chain.ErrPlatformMissing,
	chain.ErrPlatformPaused,
	chain.ErrInsufficientTreasuryBalance,
	chain.ErrInsufficientBalance,
	chain.ErrInsufficientAccounts,
	chain.ErrCustomInactivityNotAllowed,
	chain.ErrPremiumRequired,
	chain.ErrMaxHeirsReached,
	chain.ErrHeirAlreadyExists,
	chain.ErrHeirNotFound,
}

func asLedgerError(err error) error {
	var rpcErr *json2.Error
	if !errors.As(err, &rpcErr) {
		return err
	}
	for _, target := range ledgerErrors {
		if strings.Contains(rpcErr.Message, target.Error()) {
			return fmt.Errorf("%w: %s", target, rpcErr.Message)
		}
	}
	return err
}
