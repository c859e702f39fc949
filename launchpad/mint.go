// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package launchpad

import (
	"errors"

	"github.com/gagliardetto/solana-go"

	"github.com/blinklabs-io/mint-launchpad/ledger"
	"github.com/blinklabs-io/mint-launchpad/token"
)

// Fee schedules written by the launchpad start at epoch 0
const feeEpoch = 0

// MintAccount is a finalized mint as recorded on the ledger
type MintAccount struct {
	Address         solana.PublicKey
	Owner           solana.PublicKey
	Space           uint64
	Lamports        uint64
	Decimals        uint8
	Supply          uint64
	MintAuthority   solana.PublicKey
	FreezeAuthority *solana.PublicKey
	Extension       ExtensionTag
	// Only set when Extension is ExtensionTagTransferFee
	TransferFee *TransferFeeRecord
	state       *token.State
}

// TransferFeeRecord is the fee schedule recorded on a taxed mint
type TransferFeeRecord struct {
	BasisPoints       uint16
	MaximumFee        uint64
	ConfigAuthority   *solana.PublicKey
	WithdrawAuthority *solana.PublicKey
	WithheldAmount    uint64
}

// NewMintAccount decodes an initialized mint account
func NewMintAccount(acct *ledger.Account) (*MintAccount, error) {
	state, err := token.DecodeMint(acct.Data)
	if err != nil {
		return nil, err
	}
	if state.MintAuthority == nil {
		return nil, errors.New("mint has no mint authority")
	}
	ret := &MintAccount{
		Address:         acct.Address,
		Owner:           acct.Owner,
		Space:           acct.Space(),
		Lamports:        acct.Lamports,
		Decimals:        state.Decimals,
		Supply:          state.Supply,
		MintAuthority:   *state.MintAuthority,
		FreezeAuthority: state.FreezeAuthority,
		state:           state,
	}
	switch {
	case state.TransferFeeConfig != nil && state.NonTransferable:
		return nil, errors.New("mint carries more than one extension")
	case state.TransferFeeConfig != nil:
		cfg := state.TransferFeeConfig
		fee := cfg.Fee(feeEpoch)
		ret.Extension = ExtensionTagTransferFee
		ret.TransferFee = &TransferFeeRecord{
			BasisPoints:       fee.BasisPoints,
			MaximumFee:        fee.MaximumFee,
			ConfigAuthority:   cfg.ConfigAuthority,
			WithdrawAuthority: cfg.WithdrawWithheldAuthority,
			WithheldAmount:    cfg.WithheldAmount,
		}
	case state.NonTransferable:
		ret.Extension = ExtensionTagNonTransferable
	}
	return ret, nil
}

// CheckTransfer reports whether amount tokens of the mint may be
// transferred, and the fee withheld if so. It never moves tokens.
func (m *MintAccount) CheckTransfer(amount uint64) (uint64, error) {
	return token.CheckTransfer(m.state, amount, feeEpoch)
}
