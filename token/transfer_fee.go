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
	"bytes"
	"encoding/binary"
	"fmt"
	"math/bits"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// 2 optional authorities + withheld amount + 2 transfer fees
const transferFeeConfigSize = 32 + 32 + 8 + transferFeeSize*2

const transferFeeSize = 8 + 8 + 2

// TransferFee is one epoch-scoped fee schedule
type TransferFee struct {
	Epoch       uint64
	MaximumFee  uint64
	BasisPoints uint16
}

// Calculate returns the fee withheld on a transfer of amount, rounding up
// and capping at MaximumFee
func (f TransferFee) Calculate(amount uint64) (uint64, error) {
	if f.BasisPoints > MaxFeeBasisPoints {
		return 0, ErrTransferFeeExceedsMaximum
	}
	if f.BasisPoints == 0 || amount == 0 {
		return 0, nil
	}
	hi, lo := bits.Mul64(amount, uint64(f.BasisPoints))
	lo, carry := bits.Add64(lo, MaxFeeBasisPoints-1, 0)
	hi += carry
	fee, _ := bits.Div64(hi, lo, MaxFeeBasisPoints)
	return min(fee, f.MaximumFee), nil
}

func (f TransferFee) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteUint64(f.Epoch, binary.LittleEndian); err != nil {
		return err
	}
	if err := enc.WriteUint64(f.MaximumFee, binary.LittleEndian); err != nil {
		return err
	}
	return enc.WriteUint16(f.BasisPoints, binary.LittleEndian)
}

func (f *TransferFee) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	if f.Epoch, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	if f.MaximumFee, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	f.BasisPoints, err = dec.ReadUint16(binary.LittleEndian)
	return err
}

// TransferFeeConfig is the value of the TransferFeeConfig extension
type TransferFeeConfig struct {
	// Optional authority allowed to change the fee schedule
	ConfigAuthority *solana.PublicKey
	// Optional authority allowed to withdraw withheld fees
	WithdrawWithheldAuthority *solana.PublicKey
	WithheldAmount            uint64
	OlderTransferFee          TransferFee
	NewerTransferFee          TransferFee
}

func (c TransferFeeConfig) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := writeOptionalKey(enc, c.ConfigAuthority); err != nil {
		return err
	}
	if err := writeOptionalKey(enc, c.WithdrawWithheldAuthority); err != nil {
		return err
	}
	if err := enc.WriteUint64(c.WithheldAmount, binary.LittleEndian); err != nil {
		return err
	}
	if err := c.OlderTransferFee.MarshalWithEncoder(enc); err != nil {
		return err
	}
	return c.NewerTransferFee.MarshalWithEncoder(enc)
}

func (c *TransferFeeConfig) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	if c.ConfigAuthority, err = readOptionalKey(dec); err != nil {
		return err
	}
	if c.WithdrawWithheldAuthority, err = readOptionalKey(dec); err != nil {
		return err
	}
	if c.WithheldAmount, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	if err := c.OlderTransferFee.UnmarshalWithDecoder(dec); err != nil {
		return err
	}
	return c.NewerTransferFee.UnmarshalWithDecoder(dec)
}

// Fee returns the schedule in force at epoch
func (c TransferFeeConfig) Fee(epoch uint64) TransferFee {
	if epoch >= c.NewerTransferFee.Epoch {
		return c.NewerTransferFee
	}
	return c.OlderTransferFee
}

func (c TransferFeeConfig) encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := c.MarshalWithEncoder(bin.NewBinEncoder(buf)); err != nil {
		return nil, err
	}
	if buf.Len() != transferFeeConfigSize {
		return nil, fmt.Errorf(
			"encoded transfer fee config is %d bytes, expected %d",
			buf.Len(),
			transferFeeConfigSize,
		)
	}
	return buf.Bytes(), nil
}

func decodeTransferFeeConfig(data []byte) (*TransferFeeConfig, error) {
	if len(data) != transferFeeConfigSize {
		return nil, fmt.Errorf(
			"%w: transfer fee config is %d bytes",
			ErrInvalidAccountData,
			len(data),
		)
	}
	ret := &TransferFeeConfig{}
	if err := ret.UnmarshalWithDecoder(bin.NewBinDecoder(data)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAccountData, err)
	}
	return ret, nil
}

// Optional keys are stored as 32 bytes, all zero meaning none
func writeOptionalKey(enc *bin.Encoder, key *solana.PublicKey) error {
	var tmp solana.PublicKey
	if key != nil {
		tmp = *key
	}
	return enc.WriteBytes(tmp[:], false)
}

func readOptionalKey(dec *bin.Decoder) (*solana.PublicKey, error) {
	raw, err := dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return nil, err
	}
	key := solana.PublicKeyFromBytes(raw)
	if key.IsZero() {
		return nil, nil
	}
	return key.ToPointer(), nil
}
