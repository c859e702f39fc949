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
	"github.com/gagliardetto/solana-go"

	"github.com/blinklabs-io/mint-launchpad/token"
)

// ExtensionTag names the extension recorded on a mint
type ExtensionTag uint8

const (
	ExtensionTagNone ExtensionTag = iota
	ExtensionTagTransferFee
	ExtensionTagNonTransferable
)

func (t ExtensionTag) String() string {
	switch t {
	case ExtensionTagNone:
		return "none"
	case ExtensionTagTransferFee:
		return "transfer_fee"
	case ExtensionTagNonTransferable:
		return "non_transferable"
	default:
		return "unknown"
	}
}

// Extension is the optional economic behavior of a mint. It is a closed
// variant: TransferFee and NonTransferable are the only implementations, so
// a request can never carry both.
type Extension interface {
	Tag() ExtensionTag
	tokenType() token.ExtensionType
	failureKind() ErrorKind
	apply(rt Runtime, accts token.Accounts, mint solana.PublicKey, auth Authorities) error
}

// TransferFee withholds BasisPoints of every transfer, capped at MaximumFee.
// The mint authority controls the fee schedule; WithdrawAuthority controls
// the withheld fees.
type TransferFee struct {
	BasisPoints       uint16
	MaximumFee        uint64
	WithdrawAuthority solana.PublicKey
}

func (TransferFee) Tag() ExtensionTag { return ExtensionTagTransferFee }

func (TransferFee) tokenType() token.ExtensionType {
	return token.ExtensionTransferFeeConfig
}

func (TransferFee) failureKind() ErrorKind { return ErrorKindTransferFeeInitFailed }

func (e TransferFee) apply(
	rt Runtime,
	accts token.Accounts,
	mint solana.PublicKey,
	auth Authorities,
) error {
	configAuthority := auth.FeeConfigAuthority()
	return rt.InitTransferFeeConfig(
		accts,
		mint,
		&configAuthority,
		e.WithdrawAuthority.ToPointer(),
		e.BasisPoints,
		e.MaximumFee,
	)
}

// NonTransferable forbids transfers of tokens of the mint. Minting and
// burning remain possible.
type NonTransferable struct{}

func (NonTransferable) Tag() ExtensionTag { return ExtensionTagNonTransferable }

func (NonTransferable) tokenType() token.ExtensionType {
	return token.ExtensionNonTransferable
}

func (NonTransferable) failureKind() ErrorKind {
	return ErrorKindNonTransferableInitFailed
}

func (NonTransferable) apply(
	rt Runtime,
	accts token.Accounts,
	mint solana.PublicKey,
	_ Authorities,
) error {
	return rt.InitNonTransferable(accts, mint)
}

// tagOf returns the tag of ext, treating nil as no extension
func tagOf(ext Extension) ExtensionTag {
	if ext == nil {
		return ExtensionTagNone
	}
	return ext.Tag()
}

// ExtensionConfigurer writes extension state into an allocated mint
type ExtensionConfigurer struct {
	runtime Runtime
}

func NewExtensionConfigurer(rt Runtime) *ExtensionConfigurer {
	return &ExtensionConfigurer{runtime: rt}
}

// Configure attaches ext to mint. Failures are reported with the
// extension's own error kind.
func (c *ExtensionConfigurer) Configure(
	accts token.Accounts,
	mint solana.PublicKey,
	ext Extension,
	auth Authorities,
) error {
	if err := ext.apply(c.runtime, accts, mint, auth); err != nil {
		return reportError(
			ext.failureKind(),
			"configure "+ext.Tag().String()+" extension",
			err,
			map[string]any{"mint": mint.String()},
		)
	}
	return nil
}
