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
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"

	"github.com/blinklabs-io/mint-launchpad/ledger"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := NewError(ErrorKindMintFailed, "boom", nil, ledger.ErrTxnClosed)
	assert.ErrorIs(t, err, ErrMintFailed)
	assert.NotErrorIs(t, err, ErrInsufficientFunds)
	assert.ErrorIs(t, err, ledger.ErrTxnClosed)
	assert.Equal(t, "mint_failed: boom (transaction already closed)", err.Error())

	wrapped := fmt.Errorf("provision: %w", err)
	assert.Equal(t, ErrorKindMintFailed, KindOf(wrapped))
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
}

func TestReportAllocateError(t *testing.T) {
	addr := solana.NewWallet().PublicKey()
	testDefs := []struct {
		err  error
		kind ErrorKind
	}{
		{ledger.AccountAlreadyInUseError{Address: addr}, ErrorKindAccountAlreadyInUse},
		{ledger.InsufficientFundsError{Account: addr, Required: 10}, ErrorKindInsufficientFunds},
		{ledger.RentNotExemptError{Address: addr, Minimum: 10}, ErrorKindInsufficientFunds},
		{ledger.ErrTxnClosed, ErrorKindMintFailed},
		{NewError(ErrorKindMissingSignature, "x", nil, nil), ErrorKindMissingSignature},
	}
	for _, testDef := range testDefs {
		err := reportAllocateError(testDef.err, nil)
		assert.Equal(t, testDef.kind, KindOf(err), "%v", testDef.err)
		assert.ErrorIs(t, err, testDef.err)
	}
}
