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
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	spltoken "github.com/gagliardetto/solana-go/programs/token"

	"github.com/blinklabs-io/mint-launchpad/ledger"
)

// Token-2022 instruction discriminators not covered by the SPL token builders
const (
	instructionTransferFeeExtension          uint8 = 26
	instructionInitializeTransferFeeConfig   uint8 = 0
	instructionInitializeNonTransferableMint uint8 = 32
)

// Instructions returns the ordered Token-2022 instructions that provision
// req on a live cluster: create the account, initialize the extension, then
// initialize the mint. The rent is computed with rent. The request is
// validated but signatures are not checked, since the cluster does that.
func (l *Launchpad) Instructions(req Request, rent ledger.Rent) ([]solana.Instruction, error) {
	if err := ValidateRequest(req, l.rules); err != nil {
		return nil, err
	}
	programID := l.runtime.ProgramID()
	space := Space(req.Extension)
	createAccount, err := system.NewCreateAccountInstruction(
		rent.MinimumBalance(space),
		space,
		programID,
		req.Payer,
		req.MintAddress,
	).ValidateAndBuild()
	if err != nil {
		return nil, reportAllocateError(err, nil)
	}
	ret := []solana.Instruction{createAccount}
	switch ext := req.Extension.(type) {
	case TransferFee:
		data, err := encodeInitializeTransferFeeConfig(
			req.MintAuthority,
			ext.WithdrawAuthority,
			ext.BasisPoints,
			ext.MaximumFee,
		)
		if err != nil {
			return nil, reportError(ErrorKindTransferFeeInitFailed, "encode transfer fee instruction", err, nil)
		}
		ret = append(ret, mintInstruction(programID, req.MintAddress, data))
	case NonTransferable:
		ret = append(
			ret,
			mintInstruction(
				programID,
				req.MintAddress,
				[]byte{instructionInitializeNonTransferableMint},
			),
		)
	}
	initMint, err := buildInitializeMint2(programID, req)
	if err != nil {
		return nil, reportError(ErrorKindMintFailed, "build initialize mint instruction", err, nil)
	}
	return append(ret, initMint), nil
}

func mintInstruction(programID, mint solana.PublicKey, data []byte) solana.Instruction {
	return solana.NewInstruction(
		programID,
		solana.AccountMetaSlice{solana.Meta(mint).WRITE()},
		data,
	)
}

// buildInitializeMint2 uses the SPL token builder, whose encoding Token-2022
// shares, and rebinds the result to programID
func buildInitializeMint2(programID solana.PublicKey, req Request) (solana.Instruction, error) {
	builder := spltoken.NewInitializeMint2InstructionBuilder().
		SetDecimals(req.Decimals).
		SetMintAuthority(req.MintAuthority).
		SetMintAccount(req.MintAddress)
	if key, ok := req.FreezeAuthority.Key(); ok {
		builder.SetFreezeAuthority(key)
	}
	inst, err := builder.ValidateAndBuild()
	if err != nil {
		return nil, err
	}
	data, err := inst.Data()
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(programID, inst.Accounts(), data), nil
}

func encodeInitializeTransferFeeConfig(
	configAuthority solana.PublicKey,
	withdrawAuthority solana.PublicKey,
	basisPoints uint16,
	maximumFee uint64,
) ([]byte, error) {
	var buf bytes.Buffer
	enc := bin.NewBinEncoder(&buf)
	if err := enc.WriteBytes(
		[]byte{instructionTransferFeeExtension, instructionInitializeTransferFeeConfig},
		false,
	); err != nil {
		return nil, err
	}
	for _, key := range []solana.PublicKey{configAuthority, withdrawAuthority} {
		if err := writeCOptionKey(enc, key); err != nil {
			return nil, err
		}
	}
	if err := enc.WriteUint16(basisPoints, binary.LittleEndian); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(maximumFee, binary.LittleEndian); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeCOptionKey writes the instruction form of an optional key: a one byte
// tag followed by the key when present
func writeCOptionKey(enc *bin.Encoder, key solana.PublicKey) error {
	if key.IsZero() {
		return enc.WriteBytes([]byte{0}, false)
	}
	if err := enc.WriteBytes([]byte{1}, false); err != nil {
		return err
	}
	if err := enc.WriteBytes(key[:], false); err != nil {
		return fmt.Errorf("write authority %s: %w", key, err)
	}
	return nil
}
