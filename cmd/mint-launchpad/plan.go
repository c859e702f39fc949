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
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/blinklabs-io/mint-launchpad/cmd/common"
	"github.com/blinklabs-io/mint-launchpad/launchpad"
	"github.com/blinklabs-io/mint-launchpad/ledger"
)

type planFlags struct {
	flagset *flag.FlagSet
}

func newPlanFlags() *planFlags {
	f := &planFlags{
		flagset: flag.NewFlagSet("plan", flag.ExitOnError),
	}
	return f
}

// planMint prints the instructions that would provision the request on a
// live cluster. The ledger is not touched.
func planMint(f *common.GlobalFlags) {
	planFlags := newPlanFlags()
	err := planFlags.flagset.Parse(f.Flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if len(planFlags.flagset.Args()) != 1 {
		fmt.Printf("ERROR: you must specify a request file\n")
		os.Exit(1)
	}
	file, resolved := loadRequest(planFlags.flagset.Arg(0))
	lp := launchpad.New(ledger.New(), launchpad.WithLogger(f.Logger()))
	insts, err := lp.Instructions(resolved.Request, file.LedgerRent())
	if err != nil {
		common.Fatal("failed to plan mint (%s): %s", launchpad.KindOf(err), err)
	}
	for idx, inst := range insts {
		data, err := inst.Data()
		if err != nil {
			common.Fatal("failed to encode instruction %d: %s", idx, err)
		}
		fmt.Printf("Instruction %d: program %s\n", idx, inst.ProgramID())
		for _, acct := range inst.Accounts() {
			fmt.Printf(
				"  account %s signer=%t writable=%t\n",
				acct.PublicKey,
				acct.IsSigner,
				acct.IsWritable,
			)
		}
		fmt.Printf("  data %s\n", hex.EncodeToString(data))
	}
}
