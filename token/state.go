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
	"fmt"

	bin "github.com/gagliardetto/binary"
	spltoken "github.com/gagliardetto/solana-go/programs/token"
)

// State is a decoded mint account
type State struct {
	spltoken.Mint
	Extensions        []ExtensionType
	TransferFeeConfig *TransferFeeConfig
	NonTransferable   bool
}

// HasExtension reports whether the mint carries ext
func (s *State) HasExtension(ext ExtensionType) bool {
	for _, tmp := range s.Extensions {
		if tmp == ext {
			return true
		}
	}
	return false
}

// DecodeMint parses the data of a mint account, including its extensions
func DecodeMint(data []byte) (*State, error) {
	if len(data) < MintSize || (len(data) > MintSize && len(data) <= AccountSize) {
		return nil, fmt.Errorf(
			"%w: %d bytes is not a mint length",
			ErrInvalidAccountData,
			len(data),
		)
	}
	ret := &State{}
	if err := ret.Mint.UnmarshalWithDecoder(bin.NewBinDecoder(data[:MintSize])); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAccountData, err)
	}
	if !ret.IsInitialized {
		return nil, ErrNotInitialized
	}
	if len(data) == MintSize {
		return ret, nil
	}
	if data[accountTypeOffset] != AccountTypeMint {
		return nil, fmt.Errorf(
			"%w: account type %d is not a mint",
			ErrInvalidAccountData,
			data[accountTypeOffset],
		)
	}
	exts, err := extensionTypes(data)
	if err != nil {
		return nil, err
	}
	ret.Extensions = exts
	for _, ext := range exts {
		switch ext {
		case ExtensionTransferFeeConfig:
			value, err := entryValue(data, ext)
			if err != nil {
				return nil, err
			}
			if ret.TransferFeeConfig, err = decodeTransferFeeConfig(value); err != nil {
				return nil, err
			}
		case ExtensionNonTransferable:
			ret.NonTransferable = true
		}
	}
	return ret, nil
}

// CheckTransfer reports whether amount tokens of the mint may move between
// holders at epoch, and the fee withheld if so
func CheckTransfer(state *State, amount uint64, epoch uint64) (uint64, error) {
	if state.NonTransferable {
		return 0, ErrNonTransferable
	}
	if state.TransferFeeConfig == nil {
		return 0, nil
	}
	return state.TransferFeeConfig.Fee(epoch).Calculate(amount)
}
