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
	"github.com/gagliardetto/solana-go"

	"github.com/blinklabs-io/mint-launchpad/token"
)

// Runtime is the token program the launchpad drives. It is implemented by
// *token.Program.
type Runtime interface {
	ProgramID() solana.PublicKey
	InitMint(
		accts token.Accounts,
		mint solana.PublicKey,
		mintAuthority solana.PublicKey,
		freezeAuthority *solana.PublicKey,
		decimals uint8,
	) error
	InitTransferFeeConfig(
		accts token.Accounts,
		mint solana.PublicKey,
		configAuthority *solana.PublicKey,
		withdrawAuthority *solana.PublicKey,
		basisPoints uint16,
		maximumFee uint64,
	) error
	InitNonTransferable(accts token.Accounts, mint solana.PublicKey) error
}

var _ Runtime = (*token.Program)(nil)
