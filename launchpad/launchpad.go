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
	"context"
	"log/slog"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/blinklabs-io/mint-launchpad/ledger"
	"github.com/blinklabs-io/mint-launchpad/token"
)

// Request is a single mint provisioning request. It is consumed once and
// never persisted.
type Request struct {
	Decimals uint8
	// At most one extension. Nil provisions a bare mint.
	Extension       Extension
	Payer           solana.PublicKey
	MintAddress     solana.PublicKey
	MintAuthority   solana.PublicKey
	FreezeAuthority OptionalAuthority
	Signers         []Signer
}

// TaxedMintParams are the inputs of CreateTaxedMint
type TaxedMintParams struct {
	Decimals             uint8
	FeeBasisPoints       uint16
	MaximumFee           uint64
	Payer                solana.PublicKey
	MintAddress          solana.PublicKey
	MintAuthority        solana.PublicKey
	FeeWithdrawAuthority solana.PublicKey
	FreezeAuthority      OptionalAuthority
	Signers              []Signer
}

func (p TaxedMintParams) Request() Request {
	return Request{
		Decimals: p.Decimals,
		Extension: TransferFee{
			BasisPoints:       p.FeeBasisPoints,
			MaximumFee:        p.MaximumFee,
			WithdrawAuthority: p.FeeWithdrawAuthority,
		},
		Payer:           p.Payer,
		MintAddress:     p.MintAddress,
		MintAuthority:   p.MintAuthority,
		FreezeAuthority: p.FreezeAuthority,
		Signers:         p.Signers,
	}
}

// SoulboundMintParams are the inputs of CreateSoulboundMint
type SoulboundMintParams struct {
	Decimals        uint8
	Payer           solana.PublicKey
	MintAddress     solana.PublicKey
	MintAuthority   solana.PublicKey
	FreezeAuthority OptionalAuthority
	Signers         []Signer
}

func (p SoulboundMintParams) Request() Request {
	return Request{
		Decimals:        p.Decimals,
		Extension:       NonTransferable{},
		Payer:           p.Payer,
		MintAddress:     p.MintAddress,
		MintAuthority:   p.MintAuthority,
		FreezeAuthority: p.FreezeAuthority,
		Signers:         p.Signers,
	}
}

// Launchpad provisions mints on a ledger. Each entry point runs in its own
// atomic unit of the ledger.
type Launchpad struct {
	ledger  *ledger.Ledger
	runtime Runtime
	rules   []RequestRuleFunc
	logger  *slog.Logger
	reg     prometheus.Registerer
	metrics *metrics
}

type LaunchpadOptionFunc func(*Launchpad)

// WithLogger specifies the logger to use
func WithLogger(logger *slog.Logger) LaunchpadOptionFunc {
	return func(l *Launchpad) {
		l.logger = logger
	}
}

// WithRuntime specifies the token program to drive. The default is the
// Token-2022 program.
func WithRuntime(rt Runtime) LaunchpadOptionFunc {
	return func(l *Launchpad) {
		l.runtime = rt
	}
}

// WithRequestRules replaces the request validation rules
func WithRequestRules(rules ...RequestRuleFunc) LaunchpadOptionFunc {
	return func(l *Launchpad) {
		l.rules = rules
	}
}

// WithMetricsRegisterer specifies where the launchpad counters are
// registered. A private registry is used by default.
func WithMetricsRegisterer(reg prometheus.Registerer) LaunchpadOptionFunc {
	return func(l *Launchpad) {
		l.reg = reg
	}
}

// New returns a launchpad provisioning mints on l
func New(l *ledger.Ledger, opts ...LaunchpadOptionFunc) *Launchpad {
	ret := &Launchpad{
		ledger: l,
		rules:  DefaultRequestRules,
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	if ret.runtime == nil {
		ret.runtime = token.NewToken2022Program()
	}
	if ret.reg == nil {
		ret.reg = prometheus.NewRegistry()
	}
	ret.metrics = newMetrics(ret.reg)
	return ret
}

func (l *Launchpad) Ledger() *ledger.Ledger {
	return l.ledger
}

func (l *Launchpad) Runtime() Runtime {
	return l.runtime
}

// CreateTaxedMint provisions a mint carrying a transfer fee
func (l *Launchpad) CreateTaxedMint(
	ctx context.Context,
	params TaxedMintParams,
) (*MintAccount, error) {
	return l.create(ctx, params.Request())
}

// CreateSoulboundMint provisions a mint whose tokens cannot be transferred
func (l *Launchpad) CreateSoulboundMint(
	ctx context.Context,
	params SoulboundMintParams,
) (*MintAccount, error) {
	return l.create(ctx, params.Request())
}

// Create provisions req in a fresh atomic unit
func (l *Launchpad) Create(ctx context.Context, req Request) (*MintAccount, error) {
	return l.create(ctx, req)
}

func (l *Launchpad) create(ctx context.Context, req Request) (*MintAccount, error) {
	var ret *MintAccount
	err := l.ledger.Atomic(ctx, func(txn *ledger.Txn) error {
		var err error
		ret, err = l.Provision(txn, req)
		return err
	})
	if err != nil {
		l.metrics.failure(err)
		l.logger.Warn(
			"mint provisioning failed",
			"component", "launchpad",
			"mint", req.MintAddress.String(),
			"extension", tagOf(req.Extension).String(),
			"error", err,
		)
		return nil, err
	}
	l.metrics.provisioned(ret.Extension)
	l.logger.Info(
		"mint provisioned",
		"component", "launchpad",
		"mint", ret.Address.String(),
		"extension", ret.Extension.String(),
		"decimals", ret.Decimals,
		"space", ret.Space,
		"lamports", ret.Lamports,
	)
	return ret, nil
}

// Provision runs every step for req inside host, which is usually a unit
// opened by the caller with ledger.Ledger.Atomic. On error the caller must
// abandon the unit so the partial work is rolled back.
func (l *Launchpad) Provision(host Host, req Request) (*MintAccount, error) {
	if err := ValidateRequest(req, l.rules); err != nil {
		return nil, err
	}
	auth, err := ResolveAuthorities(req)
	if err != nil {
		return nil, err
	}
	initializer := NewMintInitializer(host, l.runtime, req.MintAddress, l.logger)
	if err := initializer.Allocate(req.Payer, Space(req.Extension)); err != nil {
		return nil, err
	}
	if req.Extension != nil {
		if err := initializer.Configure(req.Extension, auth); err != nil {
			return nil, err
		}
	}
	if err := initializer.Finalize(req.Decimals, auth.MintAuthority, auth.FreezeAuthority); err != nil {
		return nil, err
	}
	acct, err := host.Account(req.MintAddress)
	if err != nil {
		return nil, reportError(ErrorKindMintFailed, "read finalized mint", err, nil)
	}
	ret, err := NewMintAccount(acct)
	if err != nil {
		return nil, reportError(ErrorKindMintFailed, "decode finalized mint", err, nil)
	}
	return ret, nil
}

// Mint loads the committed mint at addr
func (l *Launchpad) Mint(addr solana.PublicKey) (*MintAccount, error) {
	acct, err := l.ledger.Account(addr)
	if err != nil {
		return nil, err
	}
	if !acct.Owner.Equals(l.runtime.ProgramID()) {
		return nil, token.ErrIncorrectProgramID
	}
	return NewMintAccount(acct)
}
