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

	"github.com/blinklabs-io/mint-launchpad/ledger"
	"github.com/blinklabs-io/mint-launchpad/token"
)

// Host is the atomic unit the provisioning steps run in. It is implemented
// by *ledger.Txn.
type Host interface {
	token.Accounts
	Rent() ledger.Rent
	Account(solana.PublicKey) (*ledger.Account, error)
	CreateAccount(
		payer solana.PublicKey,
		addr solana.PublicKey,
		owner solana.PublicKey,
		space uint64,
		lamports uint64,
	) error
}

var _ Host = (*ledger.Txn)(nil)

// Space returns the byte length of a mint carrying ext: the base mint layout
// plus the extension layout, if any
func Space(ext Extension) uint64 {
	if ext == nil {
		return uint64(token.MintLen())
	}
	return uint64(token.MintLen(ext.tokenType()))
}

// AccountProvisioner allocates the backing account of a mint
type AccountProvisioner struct{}

// Rent returns the lamports needed to keep space bytes rent exempt on host
func (AccountProvisioner) Rent(host Host, space uint64) uint64 {
	return host.Rent().MinimumBalance(space)
}

// Allocate debits payer for the rent-exempt minimum and creates a zeroed
// account of exactly space bytes at target, owned by owner
func (p AccountProvisioner) Allocate(
	host Host,
	payer solana.PublicKey,
	target solana.PublicKey,
	owner solana.PublicKey,
	space uint64,
) error {
	lamports := p.Rent(host, space)
	details := map[string]any{
		"payer":    payer.String(),
		"address":  target.String(),
		"space":    space,
		"lamports": lamports,
	}
	if err := host.CreateAccount(payer, target, owner, space, lamports); err != nil {
		return reportAllocateError(err, details)
	}
	return nil
}
