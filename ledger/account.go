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

package ledger

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/jinzhu/copier"
)

// Account is a single slot in the ledger, keyed by its address and owned by
// exactly one program
type Account struct {
	Address  solana.PublicKey
	Owner    solana.PublicKey
	Lamports uint64
	Data     []byte
}

// Space returns the number of data bytes held by the account
func (a *Account) Space() uint64 {
	return uint64(len(a.Data))
}

// Clone returns a deep copy of the account that shares no memory with it
func (a *Account) Clone() (*Account, error) {
	ret := &Account{}
	if err := copier.CopyWithOption(ret, a, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("clone account %s: %w", a.Address, err)
	}
	// copier leaves a nil slice for empty data
	if ret.Data == nil {
		ret.Data = []byte{}
	}
	return ret, nil
}
