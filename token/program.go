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
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	spltoken "github.com/gagliardetto/solana-go/programs/token"

	"github.com/blinklabs-io/mint-launchpad/ledger"
)

// Accounts gives the token program write access to ledger accounts. It is
// satisfied by *ledger.Txn.
type Accounts interface {
	Writable(solana.PublicKey) (*ledger.Account, error)
}

// Program applies token program instructions to mint accounts. It never
// allocates accounts itself; callers create them owned by ProgramID first.
type Program struct {
	programID solana.PublicKey
}

// NewProgram returns a token program that owns accounts under programID
func NewProgram(programID solana.PublicKey) *Program {
	return &Program{programID: programID}
}

// NewToken2022Program returns a token program bound to the Token-2022 id
func NewToken2022Program() *Program {
	return NewProgram(solana.Token2022ProgramID)
}

func (p *Program) ProgramID() solana.PublicKey {
	return p.programID
}

// InitMint writes the base mint record and marks it initialized. For an
// extended mint the account length must match its initialized extensions
// exactly, so every extension must be configured before this call.
func (p *Program) InitMint(
	accts Accounts,
	mint solana.PublicKey,
	mintAuthority solana.PublicKey,
	freezeAuthority *solana.PublicKey,
	decimals uint8,
) error {
	acct, err := p.uninitializedMint(accts, mint)
	if err != nil {
		return err
	}
	data := acct.Data
	if len(data) != MintSize {
		exts, err := extensionTypes(data)
		if err != nil {
			return err
		}
		if expected := MintLen(exts...); expected != len(data) {
			return fmt.Errorf(
				"%w: mint is %d bytes, extensions %v need %d",
				ErrInvalidAccountData,
				len(data),
				exts,
				expected,
			)
		}
	}
	base := spltoken.Mint{
		MintAuthority:   mintAuthority.ToPointer(),
		Decimals:        decimals,
		IsInitialized:   true,
		FreezeAuthority: freezeAuthority,
	}
	buf := new(bytes.Buffer)
	if err := base.MarshalWithEncoder(bin.NewBinEncoder(buf)); err != nil {
		return fmt.Errorf("encode mint %s: %w", mint, err)
	}
	copy(data[:MintSize], buf.Bytes())
	if len(data) > MintSize {
		data[accountTypeOffset] = AccountTypeMint
	}
	return nil
}

// InitTransferFeeConfig attaches the transfer fee extension to an
// uninitialized mint. Both fee schedules start out identical.
func (p *Program) InitTransferFeeConfig(
	accts Accounts,
	mint solana.PublicKey,
	configAuthority *solana.PublicKey,
	withdrawAuthority *solana.PublicKey,
	basisPoints uint16,
	maximumFee uint64,
) error {
	wrap := func(err error) error {
		return ExtensionError{
			Extension: ExtensionTransferFeeConfig,
			Mint:      mint,
			Err:       err,
		}
	}
	if basisPoints > MaxFeeBasisPoints {
		return wrap(ErrTransferFeeExceedsMaximum)
	}
	acct, err := p.uninitializedMint(accts, mint)
	if err != nil {
		return wrap(err)
	}
	fee := TransferFee{MaximumFee: maximumFee, BasisPoints: basisPoints}
	cfg := TransferFeeConfig{
		ConfigAuthority:           configAuthority,
		WithdrawWithheldAuthority: withdrawAuthority,
		OlderTransferFee:          fee,
		NewerTransferFee:          fee,
	}
	encoded, err := cfg.encode()
	if err != nil {
		return wrap(err)
	}
	value, err := allocEntry(acct.Data, ExtensionTransferFeeConfig)
	if err != nil {
		return wrap(err)
	}
	copy(value, encoded)
	return nil
}

// InitNonTransferable marks an uninitialized mint so tokens of it can never
// be transferred. Minting and burning are unaffected.
func (p *Program) InitNonTransferable(
	accts Accounts,
	mint solana.PublicKey,
) error {
	acct, err := p.uninitializedMint(accts, mint)
	if err == nil {
		_, err = allocEntry(acct.Data, ExtensionNonTransferable)
	}
	if err != nil {
		return ExtensionError{
			Extension: ExtensionNonTransferable,
			Mint:      mint,
			Err:       err,
		}
	}
	return nil
}

func (p *Program) uninitializedMint(
	accts Accounts,
	mint solana.PublicKey,
) (*ledger.Account, error) {
	acct, err := accts.Writable(mint)
	if err != nil {
		return nil, err
	}
	if !acct.Owner.Equals(p.programID) {
		return nil, fmt.Errorf(
			"%w: %s is owned by %s",
			ErrIncorrectProgramID,
			mint,
			acct.Owner,
		)
	}
	if len(acct.Data) < MintSize {
		return nil, fmt.Errorf(
			"%w: %d bytes is shorter than a mint",
			ErrInvalidAccountData,
			len(acct.Data),
		)
	}
	if acct.Data[isInitializedOffset] != 0 {
		return nil, ErrAlreadyInitialized
	}
	return acct, nil
}
