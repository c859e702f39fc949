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
	"errors"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/mint-launchpad/internal/test"
	test_ledger "github.com/blinklabs-io/mint-launchpad/internal/test/ledger"
	"github.com/blinklabs-io/mint-launchpad/launchpad"
	"github.com/blinklabs-io/mint-launchpad/ledger"
	"github.com/blinklabs-io/mint-launchpad/token"
)

const payerFunds = 10_000_000_000

type fixture struct {
	ledger    *ledger.Ledger
	lp        *launchpad.Launchpad
	reg       *prometheus.Registry
	runtime   *test_ledger.MockRuntime
	payer     solana.PrivateKey
	mint      solana.PrivateKey
	mintAuth  solana.PrivateKey
	withdraw  solana.PrivateKey
	freezeKey solana.PrivateKey
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	keys := test.NewKeypairs(5)
	f := &fixture{
		reg:       prometheus.NewRegistry(),
		runtime:   &test_ledger.MockRuntime{},
		payer:     keys[0],
		mint:      keys[1],
		mintAuth:  keys[2],
		withdraw:  keys[3],
		freezeKey: keys[4],
	}
	var err error
	f.ledger, err = test_ledger.NewFundedLedger(payerFunds, f.payer.PublicKey())
	require.NoError(t, err)
	f.lp = launchpad.New(
		f.ledger,
		launchpad.WithRuntime(f.runtime),
		launchpad.WithMetricsRegisterer(f.reg),
	)
	return f
}

func (f *fixture) signers() []launchpad.Signer {
	return []launchpad.Signer{f.payer, f.mint, f.mintAuth, f.withdraw, f.freezeKey}
}

func (f *fixture) taxedParams(bps uint16, maxFee uint64) launchpad.TaxedMintParams {
	return launchpad.TaxedMintParams{
		Decimals:             9,
		FeeBasisPoints:       bps,
		MaximumFee:           maxFee,
		Payer:                f.payer.PublicKey(),
		MintAddress:          f.mint.PublicKey(),
		MintAuthority:        f.mintAuth.PublicKey(),
		FeeWithdrawAuthority: f.withdraw.PublicKey(),
		FreezeAuthority:      launchpad.NoAuthority(),
		Signers:              f.signers(),
	}
}

func (f *fixture) soulboundParams() launchpad.SoulboundMintParams {
	return launchpad.SoulboundMintParams{
		Decimals:        6,
		Payer:           f.payer.PublicKey(),
		MintAddress:     f.mint.PublicKey(),
		MintAuthority:   f.mintAuth.PublicKey(),
		FreezeAuthority: launchpad.AuthorityOf(f.freezeKey.PublicKey()),
		Signers:         f.signers(),
	}
}

func (f *fixture) balance(t *testing.T, addr solana.PublicKey) uint64 {
	t.Helper()
	acct, err := f.ledger.Account(addr)
	require.NoError(t, err)
	return acct.Lamports
}

func TestCreateTaxedMint(t *testing.T) {
	f := newFixture(t)
	mint, err := f.lp.CreateTaxedMint(context.Background(), f.taxedParams(500, 1_000_000))
	require.NoError(t, err)

	rent := ledger.DefaultRent.MinimumBalance(278)
	assert.Equal(t, f.mint.PublicKey(), mint.Address)
	assert.Equal(t, solana.Token2022ProgramID, mint.Owner)
	assert.Equal(t, uint8(9), mint.Decimals)
	assert.Equal(t, uint64(278), mint.Space)
	assert.Equal(t, rent, mint.Lamports)
	assert.Equal(t, uint64(payerFunds)-rent, f.balance(t, f.payer.PublicKey()))
	assert.Equal(t, f.mintAuth.PublicKey(), mint.MintAuthority)
	assert.Nil(t, mint.FreezeAuthority)
	assert.Equal(t, launchpad.ExtensionTagTransferFee, mint.Extension)
	require.NotNil(t, mint.TransferFee)
	assert.Equal(t, uint16(500), mint.TransferFee.BasisPoints)
	assert.Equal(t, uint64(1_000_000), mint.TransferFee.MaximumFee)
	require.NotNil(t, mint.TransferFee.ConfigAuthority)
	assert.Equal(t, f.mintAuth.PublicKey(), *mint.TransferFee.ConfigAuthority)
	require.NotNil(t, mint.TransferFee.WithdrawAuthority)
	assert.Equal(t, f.withdraw.PublicKey(), *mint.TransferFee.WithdrawAuthority)
	assert.Zero(t, mint.TransferFee.WithheldAmount)

	// Transfers are allowed and taxed
	fee, err := mint.CheckTransfer(10_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), fee)
	fee, err = mint.CheckTransfer(1_000_000_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), fee)

	assert.Equal(
		t,
		[]string{"InitTransferFeeConfig", "InitMint"},
		f.runtime.Calls,
	)

	loaded, err := f.lp.Mint(f.mint.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, mint.TransferFee, loaded.TransferFee)
	assert.Equal(t, mint.Space, loaded.Space)

	expected := `
# HELP mint_launchpad_provisioned_total Number of mints provisioned, by extension
# TYPE mint_launchpad_provisioned_total counter
mint_launchpad_provisioned_total{extension="transfer_fee"} 1
`
	require.NoError(
		t,
		testutil.GatherAndCompare(
			f.reg,
			strings.NewReader(expected),
			"mint_launchpad_provisioned_total",
		),
	)
}

func TestCreateSoulboundMint(t *testing.T) {
	f := newFixture(t)
	mint, err := f.lp.CreateSoulboundMint(context.Background(), f.soulboundParams())
	require.NoError(t, err)

	assert.Equal(t, uint8(6), mint.Decimals)
	assert.Equal(t, uint64(170), mint.Space)
	assert.Equal(t, launchpad.ExtensionTagNonTransferable, mint.Extension)
	assert.Nil(t, mint.TransferFee)
	require.NotNil(t, mint.FreezeAuthority)
	assert.Equal(t, f.freezeKey.PublicKey(), *mint.FreezeAuthority)

	for _, amount := range []uint64{0, 1, 1_000_000} {
		_, err := mint.CheckTransfer(amount)
		assert.ErrorIs(t, err, token.ErrNonTransferable)
	}
	assert.Equal(
		t,
		[]string{"InitNonTransferable", "InitMint"},
		f.runtime.Calls,
	)
}

func TestCreateBareMint(t *testing.T) {
	f := newFixture(t)
	req := f.soulboundParams().Request()
	req.Extension = nil
	mint, err := f.lp.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, uint64(token.MintSize), mint.Space)
	assert.Equal(t, launchpad.ExtensionTagNone, mint.Extension)
	fee, err := mint.CheckTransfer(1_000)
	require.NoError(t, err)
	assert.Zero(t, fee)
	assert.Equal(t, []string{"InitMint"}, f.runtime.Calls)
}

func TestMintLengthOrdering(t *testing.T) {
	lengths := map[launchpad.ExtensionTag]uint64{}
	for _, ext := range []launchpad.Extension{
		launchpad.TransferFee{},
		launchpad.NonTransferable{},
		nil,
	} {
		f := newFixture(t)
		req := f.soulboundParams().Request()
		req.Extension = ext
		if fee, ok := ext.(launchpad.TransferFee); ok {
			fee.WithdrawAuthority = f.withdraw.PublicKey()
			req.Extension = fee
		}
		mint, err := f.lp.Create(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, launchpad.Space(ext), mint.Space)
		lengths[mint.Extension] = mint.Space
	}
	assert.Greater(
		t,
		lengths[launchpad.ExtensionTagTransferFee],
		lengths[launchpad.ExtensionTagNonTransferable],
	)
	assert.Greater(
		t,
		lengths[launchpad.ExtensionTagNonTransferable],
		lengths[launchpad.ExtensionTagNone],
	)
}

func TestSameAddressTwiceInOneUnit(t *testing.T) {
	f := newFixture(t)
	before := f.ledger.Hash()
	accounts := f.ledger.Len()
	taxed := f.taxedParams(500, 1_000_000).Request()
	soulbound := f.soulboundParams().Request()

	var second error
	err := f.ledger.Atomic(context.Background(), func(txn *ledger.Txn) error {
		if _, err := f.lp.Provision(txn, taxed); err != nil {
			return err
		}
		_, second = f.lp.Provision(txn, soulbound)
		return second
	})
	require.Error(t, err)
	assert.ErrorIs(t, second, launchpad.ErrAccountAlreadyInUse)
	assert.ErrorIs(t, second, ledger.ErrAccountAlreadyInUse)
	assert.Equal(t, launchpad.ErrorKindAccountAlreadyInUse, launchpad.KindOf(err))

	// Neither mint survives the unit
	assert.Equal(t, before, f.ledger.Hash())
	assert.Equal(t, accounts, f.ledger.Len())
	_, err = f.ledger.Account(f.mint.PublicKey())
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
	assert.Equal(t, uint64(payerFunds), f.balance(t, f.payer.PublicKey()))
}

func TestInvalidFeeConfigPerformsNoMutation(t *testing.T) {
	f := newFixture(t)
	before := f.ledger.Hash()
	_, err := f.lp.CreateTaxedMint(context.Background(), f.taxedParams(10001, 1_000_000))
	require.Error(t, err)
	assert.ErrorIs(t, err, launchpad.ErrInvalidFeeConfig)
	assert.Equal(t, before, f.ledger.Hash())
	assert.Equal(t, uint64(payerFunds), f.balance(t, f.payer.PublicKey()))
	_, err = f.ledger.Account(f.mint.PublicKey())
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
	assert.Empty(t, f.runtime.Calls)

	expected := `
# HELP mint_launchpad_failures_total Number of failed provisioning units, by error kind
# TYPE mint_launchpad_failures_total counter
mint_launchpad_failures_total{kind="invalid_fee_config"} 1
`
	require.NoError(
		t,
		testutil.GatherAndCompare(
			f.reg,
			strings.NewReader(expected),
			"mint_launchpad_failures_total",
		),
	)
}

func TestCreateMintErrors(t *testing.T) {
	testDefs := []struct {
		name   string
		modify func(*fixture, *launchpad.Request)
		setup  func(*testing.T, *fixture)
		kind   error
	}{
		{
			name: "PayerCannotFundRent",
			setup: func(t *testing.T, f *fixture) {
				var err error
				f.ledger, err = test_ledger.NewFundedLedger(1_000, f.payer.PublicKey())
				require.NoError(t, err)
				f.lp = launchpad.New(f.ledger, launchpad.WithRuntime(f.runtime))
			},
			kind: launchpad.ErrInsufficientFunds,
		},
		{
			name: "PayerMissing",
			modify: func(f *fixture, req *launchpad.Request) {
				unfunded := test.NewKeypair()
				req.Payer = unfunded.PublicKey()
				req.Signers = append(req.Signers, unfunded)
			},
			kind: launchpad.ErrInsufficientFunds,
		},
		{
			name: "MintAddressInUse",
			setup: func(t *testing.T, f *fixture) {
				require.NoError(
					t,
					f.ledger.Airdrop(context.Background(), f.mint.PublicKey(), 1),
				)
			},
			kind: launchpad.ErrAccountAlreadyInUse,
		},
		{
			name: "MintAddressIsPayer",
			modify: func(f *fixture, req *launchpad.Request) {
				req.MintAddress = req.Payer
			},
			kind: launchpad.ErrAccountAlreadyInUse,
		},
		{
			name: "PayerDidNotSign",
			modify: func(f *fixture, req *launchpad.Request) {
				req.Signers = []launchpad.Signer{f.mint, f.mintAuth, f.withdraw}
			},
			kind: launchpad.ErrMissingSignature,
		},
		{
			name: "MintAddressDidNotSign",
			modify: func(f *fixture, req *launchpad.Request) {
				req.Signers = []launchpad.Signer{f.payer, f.mintAuth, f.withdraw}
			},
			kind: launchpad.ErrMissingSignature,
		},
		{
			name: "MintAuthorityDidNotSign",
			modify: func(f *fixture, req *launchpad.Request) {
				req.Signers = []launchpad.Signer{f.payer, f.mint, f.withdraw}
			},
			kind: launchpad.ErrMintFailed,
		},
		{
			name: "WithdrawAuthorityDidNotSign",
			modify: func(f *fixture, req *launchpad.Request) {
				req.Signers = []launchpad.Signer{f.payer, f.mint, f.mintAuth}
			},
			kind: launchpad.ErrTransferFeeInitFailed,
		},
		{
			name: "MissingWithdrawAuthority",
			modify: func(f *fixture, req *launchpad.Request) {
				fee := req.Extension.(launchpad.TransferFee)
				fee.WithdrawAuthority = solana.PublicKey{}
				req.Extension = fee
			},
			kind: launchpad.ErrTransferFeeInitFailed,
		},
		{
			name: "FreezeAuthorityDidNotSign",
			modify: func(f *fixture, req *launchpad.Request) {
				req.FreezeAuthority = launchpad.AuthorityOf(test.NewKeypair().PublicKey())
			},
			kind: launchpad.ErrMintFailed,
		},
		{
			name: "FreezeAuthorityUnspecified",
			modify: func(f *fixture, req *launchpad.Request) {
				req.FreezeAuthority = launchpad.OptionalAuthority{}
			},
			kind: launchpad.ErrMintFailed,
		},
		{
			name: "MintAuthorityMissing",
			modify: func(f *fixture, req *launchpad.Request) {
				req.MintAuthority = solana.PublicKey{}
			},
			kind: launchpad.ErrMintFailed,
		},
		{
			name: "TransferFeeRuntimeFailure",
			setup: func(t *testing.T, f *fixture) {
				f.runtime.InitTransferFeeConfigFunc = func(solana.PublicKey) error {
					return token.ErrInvalidAccountData
				}
			},
			kind: launchpad.ErrTransferFeeInitFailed,
		},
		{
			name: "MintRuntimeFailure",
			setup: func(t *testing.T, f *fixture) {
				f.runtime.InitMintFunc = func(solana.PublicKey) error {
					return token.ErrInvalidAccountData
				}
			},
			kind: launchpad.ErrMintFailed,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			f := newFixture(t)
			if testDef.setup != nil {
				testDef.setup(t, f)
			}
			req := f.taxedParams(250, 5_000).Request()
			if testDef.modify != nil {
				testDef.modify(f, &req)
			}
			before := f.ledger.Hash()
			mint, err := f.lp.Create(context.Background(), req)
			require.Error(t, err)
			assert.Nil(t, mint)
			assert.ErrorIs(t, err, testDef.kind)
			var lpErr *launchpad.Error
			require.True(t, errors.As(err, &lpErr))
			assert.NotEmpty(t, lpErr.Message)
			assert.Equal(t, before, f.ledger.Hash(), "ledger was mutated")
		})
	}
}

func TestSoulboundRuntimeFailure(t *testing.T) {
	f := newFixture(t)
	f.runtime.InitNonTransferableFunc = func(solana.PublicKey) error {
		return token.ErrInvalidAccountData
	}
	before := f.ledger.Hash()
	_, err := f.lp.CreateSoulboundMint(context.Background(), f.soulboundParams())
	assert.ErrorIs(t, err, launchpad.ErrNonTransferableInitFailed)
	assert.ErrorIs(t, err, token.ErrInvalidAccountData)
	assert.Equal(t, before, f.ledger.Hash())
}

func TestRuntimePanicRevertsUnit(t *testing.T) {
	f := newFixture(t)
	f.runtime.InitMintFunc = func(solana.PublicKey) error {
		panic("runtime fault")
	}
	before := f.ledger.Hash()
	assert.PanicsWithValue(t, "runtime fault", func() {
		_, _ = f.lp.CreateSoulboundMint(context.Background(), f.soulboundParams())
	})
	assert.Equal(t, before, f.ledger.Hash())
	_, err := f.ledger.Account(f.mint.PublicKey())
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
	assert.Equal(t, uint64(payerFunds), f.balance(t, f.payer.PublicKey()))

	// The same address can be provisioned once the runtime behaves
	f.runtime.InitMintFunc = nil
	_, err = f.lp.CreateSoulboundMint(context.Background(), f.soulboundParams())
	require.NoError(t, err)
}

func TestSharedMetricsRegisterer(t *testing.T) {
	f := newFixture(t)
	var other *launchpad.Launchpad
	require.NotPanics(t, func() {
		other = launchpad.New(
			f.ledger,
			launchpad.WithRuntime(f.runtime),
			launchpad.WithMetricsRegisterer(f.reg),
		)
	})
	_, err := f.lp.CreateSoulboundMint(context.Background(), f.soulboundParams())
	require.NoError(t, err)
	params := f.soulboundParams()
	mint := test.NewKeypair()
	params.MintAddress = mint.PublicKey()
	params.Signers = append(params.Signers, mint)
	_, err = other.CreateSoulboundMint(context.Background(), params)
	require.NoError(t, err)

	expected := `
# HELP mint_launchpad_provisioned_total Number of mints provisioned, by extension
# TYPE mint_launchpad_provisioned_total counter
mint_launchpad_provisioned_total{extension="non_transferable"} 2
`
	require.NoError(
		t,
		testutil.GatherAndCompare(
			f.reg,
			strings.NewReader(expected),
			"mint_launchpad_provisioned_total",
		),
	)
}

func TestMintAuthorityMayBePayer(t *testing.T) {
	f := newFixture(t)
	params := f.soulboundParams()
	params.MintAuthority = f.payer.PublicKey()
	params.Signers = []launchpad.Signer{f.payer, f.mint, f.freezeKey}
	mint, err := f.lp.CreateSoulboundMint(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, f.payer.PublicKey(), mint.MintAuthority)

	// The shared key still has to sign explicitly
	f = newFixture(t)
	params = f.soulboundParams()
	params.MintAuthority = f.payer.PublicKey()
	params.Signers = []launchpad.Signer{f.mint, f.freezeKey}
	_, err = f.lp.CreateSoulboundMint(context.Background(), params)
	assert.ErrorIs(t, err, launchpad.ErrMissingSignature)
}

func TestCreateCanceledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	before := f.ledger.Hash()
	_, err := f.lp.CreateSoulboundMint(ctx, f.soulboundParams())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, launchpad.KindOf(err))
	assert.Equal(t, before, f.ledger.Hash())
}

func TestMintNotOwnedByRuntime(t *testing.T) {
	f := newFixture(t)
	_, err := f.lp.Mint(f.payer.PublicKey())
	assert.ErrorIs(t, err, token.ErrIncorrectProgramID)
	_, err = f.lp.Mint(f.mint.PublicKey())
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}
