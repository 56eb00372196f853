// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/codec"
	"github.com/ava-labs/avalanchego/codec/linearcodec"
	"github.com/ava-labs/avalanchego/utils/wrappers"
)

// codecVersion is the current default codec version
const codecVersion = 0

var codecManager codec.Manager

// Registration order fixes the type IDs on the wire; append only.
func init() {
	c := linearcodec.NewDefault()
	codecManager = codec.NewDefaultManager()
	errs := wrappers.Errs{}
	errs.Add(
		// Heir records
		c.RegisterType(&CreateHeirTx{}),
		c.RegisterType(&ActivityTx{}),
		c.RegisterType(&ClaimTx{}),
		c.RegisterType(&BatchTransferTx{}),

		// Platform
		c.RegisterType(&InitializePlatformTx{}),
		c.RegisterType(&UpdateFeeTx{}),
		c.RegisterType(&WithdrawTreasuryTx{}),
		c.RegisterType(&PauseTx{}),
		c.RegisterType(&TransferAdminTx{}),

		// Profiles
		c.RegisterType(&CreateProfileTx{}),
		c.RegisterType(&UpgradeTx{}),

		// Smart wallets
		c.RegisterType(&CreateWalletTx{}),
		c.RegisterType(&WalletActivityTx{}),
		c.RegisterType(&DepositTx{}),
		c.RegisterType(&WithdrawTx{}),
		c.RegisterType(&SetPeriodTx{}),
		c.RegisterType(&AddHeirTx{}),
		c.RegisterType(&SetAllocationTx{}),
		c.RegisterType(&SetTokensTx{}),
		c.RegisterType(&ExecuteTx{}),

		codecManager.RegisterCodec(codecVersion, c),
	)
	if errs.Errored() {
		panic(errs.Err)
	}
}

func Marshal(source interface{}) ([]byte, error) {
	return codecManager.Marshal(codecVersion, source)
}

func Unmarshal(source []byte, destination interface{}) (uint16, error) {
	return codecManager.Unmarshal(source, destination)
}
