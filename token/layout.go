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

package token

import (
	spltoken "github.com/gagliardetto/solana-go/programs/token"
)

const (
	// MintSize is the length of the base mint layout
	MintSize = spltoken.MINT_SIZE
	// AccountSize is the length of a base token account. Mints carrying
	// extensions are zero padded to this length before the account type.
	AccountSize = 165
	// MultisigSize is the length of a multisig account. Extended mints
	// never take this length.
	MultisigSize = 355

	// AccountTypeMint marks the account type byte of an extended mint
	AccountTypeMint byte = 1

	accountTypeOffset = AccountSize
	tlvOffset         = AccountSize + 1
	tlvHeaderSize     = 4

	// Offset of the is_initialized flag in the base mint layout
	isInitializedOffset = 45

	// MaxFeeBasisPoints is 100%
	MaxFeeBasisPoints = 10000
)

// ExtensionType identifies a TLV entry in an extended mint
type ExtensionType uint16

const (
	ExtensionUninitialized     ExtensionType = 0
	ExtensionTransferFeeConfig ExtensionType = 1
	ExtensionNonTransferable   ExtensionType = 9
)

func (t ExtensionType) String() string {
	switch t {
	case ExtensionUninitialized:
		return "Uninitialized"
	case ExtensionTransferFeeConfig:
		return "TransferFeeConfig"
	case ExtensionNonTransferable:
		return "NonTransferable"
	default:
		return "Unknown"
	}
}

// Size returns the length of the extension value, excluding the TLV header
func (t ExtensionType) Size() int {
	switch t {
	case ExtensionTransferFeeConfig:
		return transferFeeConfigSize
	case ExtensionNonTransferable:
		return 0
	default:
		return -1
	}
}

// MintLen returns the account length needed for a mint carrying exts
func MintLen(exts ...ExtensionType) int {
	if len(exts) == 0 {
		return MintSize
	}
	ret := tlvOffset
	for _, ext := range exts {
		ret += tlvHeaderSize + ext.Size()
	}
	if ret == MultisigSize {
		ret += tlvHeaderSize
	}
	return ret
}
