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

package launchpad_test

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/mint-launchpad/launchpad"
	"github.com/blinklabs-io/mint-launchpad/ledger"
	"github.com/blinklabs-io/mint-launchpad/token"
)

func TestStateCanTransition(t *testing.T) {
	states := []launchpad.State{
		launchpad.StateUnallocated,
		launchpad.StateAllocated,
		launchpad.StateExtensionsConfigured,
		launchpad.StateInitialized,
	}
	allowed := map[[2]launchpad.State]bool{
		{launchpad.StateUnallocated, launchpad.StateAllocated}:            true,
		{launchpad.StateAllocated, launchpad.StateExtensionsConfigured}:   true,
		{launchpad.StateExtensionsConfigured, launchpad.StateInitialized}: true,
	}
	for _, from := range states {
		for _, to := range states {
			assert.Equal(
				t,
				allowed[[2]launchpad.State{from, to}],
				from.CanTransition(to),
				"%s -> %s",
				from,
				to,
			)
		}
	}
	assert.Equal(t, "Initialized", launchpad.StateInitialized.String())
}

// initializerFixture drives a MintInitializer inside a single unit
type initializerFixture struct {
	*fixture
	auth launchpad.Authorities
}

func newInitializerFixture(t *testing.T) *initializerFixture {
	f := newFixture(t)
	return &initializerFixture{
		fixture: f,
		auth: launchpad.Authorities{
			MintAuthority:        f.mintAuth.PublicKey(),
			FeeWithdrawAuthority: f.withdraw.PublicKey().ToPointer(),
		},
	}
}

func (f *initializerFixture) unit(t *testing.T, fn func(txn *ledger.Txn, m *launchpad.MintInitializer)) {
	t.Helper()
	err := f.ledger.Atomic(context.Background(), func(txn *ledger.Txn) error {
		fn(txn, launchpad.NewMintInitializer(txn, f.runtime, f.mint.PublicKey(), nil))
		return nil
	})
	require.NoError(t, err)
}

func TestConfigureAfterInitialized(t *testing.T) {
	f := newInitializerFixture(t)
	fee := launchpad.TransferFee{
		BasisPoints:       100,
		MaximumFee:        50,
		WithdrawAuthority: f.withdraw.PublicKey(),
	}
	f.unit(t, func(txn *ledger.Txn, m *launchpad.MintInitializer) {
		require.NoError(t, m.Allocate(f.payer.PublicKey(), launchpad.Space(fee)))
		require.NoError(t, m.Configure(fee, f.auth))
		require.NoError(t, m.Finalize(9, f.mintAuth.PublicKey(), nil))
		assert.Equal(t, launchpad.StateInitialized, m.State())

		before, err := txn.Account(f.mint.PublicKey())
		require.NoError(t, err)
		calls := len(f.runtime.Calls)

		err = m.Configure(launchpad.NonTransferable{}, f.auth)
		assert.ErrorIs(t, err, launchpad.ErrNonTransferableInitFailed)
		assert.ErrorIs(t, err, launchpad.ErrInvalidTransition)

		fee.BasisPoints = 9000
		err = m.Configure(fee, f.auth)
		assert.ErrorIs(t, err, launchpad.ErrTransferFeeInitFailed)
		assert.ErrorIs(t, err, launchpad.ErrInvalidTransition)

		err = m.Finalize(2, f.mintAuth.PublicKey(), nil)
		assert.ErrorIs(t, err, launchpad.ErrMintFailed)

		after, err := txn.Account(f.mint.PublicKey())
		require.NoError(t, err)
		assert.Equal(t, before, after)
		assert.Len(t, f.runtime.Calls, calls, "runtime was invoked")
		assert.Equal(t, launchpad.StateInitialized, m.State())
		assert.Equal(t, launchpad.ExtensionTagTransferFee, m.Extension().Tag())
	})
}

func TestConfigurerRejectsFinalizedMint(t *testing.T) {
	f := newInitializerFixture(t)
	configurer := launchpad.NewExtensionConfigurer(f.runtime)
	f.unit(t, func(txn *ledger.Txn, m *launchpad.MintInitializer) {
		require.NoError(t, m.Allocate(f.payer.PublicKey(), launchpad.Space(launchpad.NonTransferable{})))
		require.NoError(t, m.Configure(launchpad.NonTransferable{}, f.auth))
		require.NoError(t, m.Finalize(0, f.mintAuth.PublicKey(), nil))
		before, err := txn.Account(f.mint.PublicKey())
		require.NoError(t, err)

		// Past the state machine the token program itself refuses
		err = configurer.Configure(txn, f.mint.PublicKey(), launchpad.NonTransferable{}, f.auth)
		assert.ErrorIs(t, err, launchpad.ErrNonTransferableInitFailed)
		assert.ErrorIs(t, err, token.ErrAlreadyInitialized)

		after, err := txn.Account(f.mint.PublicKey())
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestInitializerTransitions(t *testing.T) {
	t.Run("FinalizeUnallocated", func(t *testing.T) {
		f := newInitializerFixture(t)
		f.unit(t, func(txn *ledger.Txn, m *launchpad.MintInitializer) {
			err := m.Finalize(9, f.mintAuth.PublicKey(), nil)
			assert.ErrorIs(t, err, launchpad.ErrMintFailed)
			assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
			assert.Equal(t, launchpad.StateUnallocated, m.State())
			assert.Empty(t, f.runtime.Calls)
		})
	})
	t.Run("ConfigureUnallocated", func(t *testing.T) {
		f := newInitializerFixture(t)
		f.unit(t, func(txn *ledger.Txn, m *launchpad.MintInitializer) {
			err := m.Configure(launchpad.NonTransferable{}, f.auth)
			assert.ErrorIs(t, err, launchpad.ErrNonTransferableInitFailed)
			assert.False(t, txn.Exists(f.mint.PublicKey()))
		})
	})
	t.Run("AllocateTwice", func(t *testing.T) {
		f := newInitializerFixture(t)
		f.unit(t, func(txn *ledger.Txn, m *launchpad.MintInitializer) {
			require.NoError(t, m.Allocate(f.payer.PublicKey(), launchpad.Space(nil)))
			err := m.Allocate(f.payer.PublicKey(), launchpad.Space(nil))
			assert.ErrorIs(t, err, launchpad.ErrAccountAlreadyInUse)
			assert.Equal(t, launchpad.StateAllocated, m.State())
		})
	})
	t.Run("SecondExtension", func(t *testing.T) {
		f := newInitializerFixture(t)
		fee := launchpad.TransferFee{WithdrawAuthority: f.withdraw.PublicKey()}
		f.unit(t, func(txn *ledger.Txn, m *launchpad.MintInitializer) {
			require.NoError(t, m.Allocate(f.payer.PublicKey(), launchpad.Space(fee)))
			require.NoError(t, m.Configure(fee, f.auth))
			err := m.Configure(launchpad.NonTransferable{}, f.auth)
			assert.ErrorIs(t, err, launchpad.ErrNonTransferableInitFailed)
			assert.Equal(t, launchpad.StateExtensionsConfigured, m.State())
		})
	})
	t.Run("FinalizeWithoutExtension", func(t *testing.T) {
		f := newInitializerFixture(t)
		freeze := f.freezeKey.PublicKey()
		f.unit(t, func(txn *ledger.Txn, m *launchpad.MintInitializer) {
			require.NoError(t, m.Allocate(f.payer.PublicKey(), launchpad.Space(nil)))
			require.NoError(t, m.Finalize(3, f.mintAuth.PublicKey(), &freeze))
			assert.Equal(t, launchpad.StateInitialized, m.State())
			acct, err := txn.Account(f.mint.PublicKey())
			require.NoError(t, err)
			mint, err := launchpad.NewMintAccount(acct)
			require.NoError(t, err)
			assert.Equal(t, uint8(3), mint.Decimals)
			assert.Equal(t, &freeze, mint.FreezeAuthority)
		})
	})
	t.Run("FinalizeSkippingConfiguredExtension", func(t *testing.T) {
		f := newInitializerFixture(t)
		f.unit(t, func(txn *ledger.Txn, m *launchpad.MintInitializer) {
			// Space for an extension that is never configured
			require.NoError(t, m.Allocate(f.payer.PublicKey(), launchpad.Space(launchpad.NonTransferable{})))
			err := m.Finalize(0, f.mintAuth.PublicKey(), nil)
			assert.ErrorIs(t, err, launchpad.ErrMintFailed)
			assert.Equal(t, launchpad.StateExtensionsConfigured, m.State())
		})
	})
	t.Run("EmptyConfigure", func(t *testing.T) {
		f := newInitializerFixture(t)
		f.unit(t, func(txn *ledger.Txn, m *launchpad.MintInitializer) {
			require.NoError(t, m.Allocate(f.payer.PublicKey(), launchpad.Space(nil)))
			require.NoError(t, m.Configure(nil, f.auth))
			assert.Nil(t, m.Extension())
			require.ErrorIs(t, m.Configure(nil, f.auth), launchpad.ErrMintFailed)
			require.NoError(t, m.Finalize(0, solana.NewWallet().PublicKey(), nil))
		})
	})
}
