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

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/blinklabs-io/mint-launchpad/cmd/common"
	"github.com/blinklabs-io/mint-launchpad/config"
	"github.com/blinklabs-io/mint-launchpad/launchpad"
)

type createFlags struct {
	flagset *flag.FlagSet
}

func newCreateFlags() *createFlags {
	f := &createFlags{
		flagset: flag.NewFlagSet("create", flag.ExitOnError),
	}
	return f
}

func createMint(f *common.GlobalFlags) {
	createFlags := newCreateFlags()
	err := createFlags.flagset.Parse(f.Flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if len(createFlags.flagset.Args()) != 1 {
		fmt.Printf("ERROR: you must specify a request file\n")
		os.Exit(1)
	}
	logger := f.Logger()
	file, resolved := loadRequest(createFlags.flagset.Arg(0))
	req := resolved.Request

	ctx, cancel := common.Context()
	defer cancel()

	l, created, err := f.OpenLedger(file.LedgerRent())
	if err != nil {
		common.Fatal("failed to open ledger: %s", err)
	}
	if created && file.AirdropLamports > 0 {
		if err := l.Airdrop(ctx, req.Payer, file.AirdropLamports); err != nil {
			common.Fatal("failed to fund payer: %s", err)
		}
		logger.Info(
			"funded payer on new ledger",
			"payer", req.Payer.String(),
			"lamports", file.AirdropLamports,
		)
	}

	reg := prometheus.NewRegistry()
	lp := launchpad.New(
		l,
		launchpad.WithLogger(logger),
		launchpad.WithMetricsRegisterer(reg),
	)
	var mint *launchpad.MintAccount
	switch ext := req.Extension.(type) {
	case launchpad.TransferFee:
		mint, err = lp.CreateTaxedMint(
			ctx,
			launchpad.TaxedMintParams{
				Decimals:             req.Decimals,
				FeeBasisPoints:       ext.BasisPoints,
				MaximumFee:           ext.MaximumFee,
				Payer:                req.Payer,
				MintAddress:          req.MintAddress,
				MintAuthority:        req.MintAuthority,
				FeeWithdrawAuthority: ext.WithdrawAuthority,
				FreezeAuthority:      req.FreezeAuthority,
				Signers:              req.Signers,
			},
		)
	case launchpad.NonTransferable:
		mint, err = lp.CreateSoulboundMint(
			ctx,
			launchpad.SoulboundMintParams{
				Decimals:        req.Decimals,
				Payer:           req.Payer,
				MintAddress:     req.MintAddress,
				MintAuthority:   req.MintAuthority,
				FreezeAuthority: req.FreezeAuthority,
				Signers:         req.Signers,
			},
		)
	default:
		mint, err = lp.Create(ctx, req)
	}
	logMetrics(logger, reg)
	// A failed unit leaves the ledger as it was, so the snapshot is always
	// safe to write
	if saveErr := f.SaveLedger(l); saveErr != nil {
		common.Fatal("failed to save ledger: %s", saveErr)
	}
	if err != nil {
		common.Fatal("failed to create mint (%s): %s", launchpad.KindOf(err), err)
	}
	if resolved.GeneratedMint {
		fmt.Printf("Generated mint address %s\n", mint.Address)
	}
	printMint(mint)
}

func loadRequest(path string) (*config.RequestFile, *config.Resolved) {
	file, fsys, err := config.Load(path)
	if err != nil {
		common.Fatal("failed to load request: %s", err)
	}
	resolved, err := file.Resolve(fsys)
	if err != nil {
		common.Fatal("failed to resolve request keys: %s", err)
	}
	return file, resolved
}

func logMetrics(logger *slog.Logger, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		logger.Warn("failed to gather metrics", "error", err)
		return
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			attrs := []any{"name", family.GetName()}
			for _, label := range metric.GetLabel() {
				attrs = append(attrs, label.GetName(), label.GetValue())
			}
			attrs = append(attrs, "value", metric.GetCounter().GetValue())
			logger.Debug("metric", attrs...)
		}
	}
}
