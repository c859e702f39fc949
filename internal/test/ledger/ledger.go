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

package test_ledger

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/blinklabs-io/mint-launchpad/ledger"
	"github.com/blinklabs-io/mint-launchpad/token"
)

// NewFundedLedger returns a ledger in which each of accounts holds lamports
func NewFundedLedger(
	lamports uint64,
	accounts ...solana.PublicKey,
) (*ledger.Ledger, error) {
	ret := ledger.New()
	err := ret.Atomic(context.Background(), func(txn *ledger.Txn) error {
		for _, addr := range accounts {
			if err := txn.Credit(addr, lamports); err != nil {
				return fmt.Errorf("fund %s: %w", addr, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// MockRuntime is the canonical internal token runtime mock used by tests.
// Each call is recorded in Calls and, unless the matching Func field is set,
// forwarded to Program, which defaults to the Token-2022 program.
type MockRuntime struct {
	Program *token.Program
	// Names of the primitives invoked, in order
	Calls []string
	// InitMintFunc optionally overrides mint initialization
	InitMintFunc func(mint solana.PublicKey) error
	// InitTransferFeeConfigFunc optionally overrides transfer fee initialization
	InitTransferFeeConfigFunc func(mint solana.PublicKey) error
	// InitNonTransferableFunc optionally overrides non-transferable initialization
	InitNonTransferableFunc func(mint solana.PublicKey) error
}

func (m *MockRuntime) program() *token.Program {
	if m.Program == nil {
		m.Program = token.NewToken2022Program()
	}
	return m.Program
}

func (m *MockRuntime) ProgramID() solana.PublicKey {
	return m.program().ProgramID()
}

func (m *MockRuntime) InitMint(
	accts token.Accounts,
	mint solana.PublicKey,
	mintAuthority solana.PublicKey,
	freezeAuthority *solana.PublicKey,
	decimals uint8,
) error {
	m.Calls = append(m.Calls, "InitMint")
	if m.InitMintFunc != nil {
		return m.InitMintFunc(mint)
	}
	return m.program().InitMint(accts, mint, mintAuthority, freezeAuthority, decimals)
}

func (m *MockRuntime) InitTransferFeeConfig(
	accts token.Accounts,
	mint solana.PublicKey,
	configAuthority *solana.PublicKey,
	withdrawAuthority *solana.PublicKey,
	basisPoints uint16,
	maximumFee uint64,
) error {
	m.Calls = append(m.Calls, "InitTransferFeeConfig")
	if m.InitTransferFeeConfigFunc != nil {
		return m.InitTransferFeeConfigFunc(mint)
	}
	return m.program().InitTransferFeeConfig(
		accts,
		mint,
		configAuthority,
		withdrawAuthority,
		basisPoints,
		maximumFee,
	)
}

func (m *MockRuntime) InitNonTransferable(
	accts token.Accounts,
	mint solana.PublicKey,
) error {
	m.Calls = append(m.Calls, "InitNonTransferable")
	if m.InitNonTransferableFunc != nil {
		return m.InitNonTransferableFunc(mint)
	}
	return m.program().InitNonTransferable(accts, mint)
}
