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
	"math/big"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gagliardetto/solana-go"

	"github.com/blinklabs-io/mint-launchpad/cmd/common"
	"github.com/blinklabs-io/mint-launchpad/launchpad"
	"github.com/blinklabs-io/mint-launchpad/ledger"
)

type showFlags struct {
	flagset *flag.FlagSet
}

func newShowFlags() *showFlags {
	f := &showFlags{
		flagset: flag.NewFlagSet("show", flag.ExitOnError),
	}
	return f
}

func showMint(f *common.GlobalFlags) {
	showFlags := newShowFlags()
	err := showFlags.flagset.Parse(f.Flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if len(showFlags.flagset.Args()) != 1 {
		fmt.Printf("ERROR: you must specify a mint address\n")
		os.Exit(1)
	}
	addr, err := solana.PublicKeyFromBase58(showFlags.flagset.Arg(0))
	if err != nil {
		common.Fatal("invalid mint address: %s", err)
	}
	l, created, err := f.OpenLedger(ledger.DefaultRent)
	if err != nil {
		common.Fatal("failed to open ledger: %s", err)
	}
	if created {
		common.Fatal("no ledger at %s", f.StatePath)
	}
	mint, err := launchpad.New(l, launchpad.WithLogger(f.Logger())).Mint(addr)
	if err != nil {
		common.Fatal("failed to load mint: %s", err)
	}
	printMint(mint)
}

func printMint(mint *launchpad.MintAccount) {
	fmt.Printf("Mint:               %s\n", mint.Address)
	fmt.Printf("Program:            %s\n", mint.Owner)
	fmt.Printf("Extension:          %s\n", mint.Extension)
	fmt.Printf("Decimals:           %d\n", mint.Decimals)
	fmt.Printf("Space:              %s\n", humanize.IBytes(mint.Space))
	fmt.Printf("Rent:               %s lamports\n", commaUint64(mint.Lamports))
	fmt.Printf("Mint authority:     %s\n", mint.MintAuthority)
	if mint.FreezeAuthority != nil {
		fmt.Printf("Freeze authority:   %s\n", mint.FreezeAuthority)
	} else {
		fmt.Printf("Freeze authority:   none\n")
	}
	if fee := mint.TransferFee; fee != nil {
		fmt.Printf(
			"Transfer fee:       %.2f%% (max %s)\n",
			float64(fee.BasisPoints)/100,
			commaUint64(fee.MaximumFee),
		)
		if fee.WithdrawAuthority != nil {
			fmt.Printf("Withdraw authority: %s\n", fee.WithdrawAuthority)
		}
	}
}

// commaUint64 formats v with thousands separators over the full uint64 range
func commaUint64(v uint64) string {
	return humanize.BigComma(new(big.Int).SetUint64(v))
}
