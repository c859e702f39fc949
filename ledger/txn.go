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
	"math"

	"github.com/gagliardetto/solana-go"
)

// Txn is a single atomic unit over a Ledger. It records the pre-image of
// every account it touches so the unit can be reverted as a whole.
type Txn struct {
	ledger  *Ledger
	journal map[solana.PublicKey]*Account
	order   []solana.PublicKey
	closed  bool
}

func newTxn(l *Ledger) *Txn {
	return &Txn{
		ledger:  l,
		journal: make(map[solana.PublicKey]*Account),
	}
}

// Rent returns the rent parameters of the underlying ledger
func (t *Txn) Rent() Rent {
	return t.ledger.rent
}

// Exists reports whether an account is present at addr. A closed unit
// reports false.
func (t *Txn) Exists(addr solana.PublicKey) bool {
	if t.closed {
		return false
	}
	_, ok := t.ledger.accounts[addr]
	return ok
}

// Account returns a copy of the account at addr as seen by this unit
func (t *Txn) Account(addr solana.PublicKey) (*Account, error) {
	if t.closed {
		return nil, ErrTxnClosed
	}
	acct, ok := t.ledger.accounts[addr]
	if !ok {
		return nil, AccountNotFoundError{Address: addr}
	}
	return acct.Clone()
}

// Writable returns the live account at addr for in-place modification. The
// account is journaled first, so changes are reverted if the unit fails.
func (t *Txn) Writable(addr solana.PublicKey) (*Account, error) {
	if t.closed {
		return nil, ErrTxnClosed
	}
	acct, ok := t.ledger.accounts[addr]
	if !ok {
		return nil, AccountNotFoundError{Address: addr}
	}
	if err := t.touch(addr); err != nil {
		return nil, err
	}
	return acct, nil
}

// CreateAccount moves lamports from payer into a new zero-filled account of
// space bytes at addr owned by owner
func (t *Txn) CreateAccount(
	payer solana.PublicKey,
	addr solana.PublicKey,
	owner solana.PublicKey,
	space uint64,
	lamports uint64,
) error {
	if t.closed {
		return ErrTxnClosed
	}
	if t.Exists(addr) {
		return AccountAlreadyInUseError{Address: addr}
	}
	if minimum := t.ledger.rent.MinimumBalance(space); lamports < minimum {
		return RentNotExemptError{
			Address:  addr,
			Space:    space,
			Lamports: lamports,
			Minimum:  minimum,
		}
	}
	if err := t.debit(payer, lamports); err != nil {
		return err
	}
	if err := t.touch(addr); err != nil {
		return err
	}
	t.ledger.accounts[addr] = &Account{
		Address:  addr,
		Owner:    owner,
		Lamports: lamports,
		Data:     make([]byte, space),
	}
	return nil
}

// Credit adds lamports to addr, creating a system-owned account if needed
func (t *Txn) Credit(addr solana.PublicKey, lamports uint64) error {
	if t.closed {
		return ErrTxnClosed
	}
	if err := t.touch(addr); err != nil {
		return err
	}
	acct, ok := t.ledger.accounts[addr]
	if !ok {
		t.ledger.accounts[addr] = &Account{
			Address:  addr,
			Owner:    solana.SystemProgramID,
			Lamports: lamports,
			Data:     []byte{},
		}
		return nil
	}
	if acct.Lamports > math.MaxUint64-lamports {
		return fmt.Errorf("credit of %d lamports overflows %s", lamports, addr)
	}
	acct.Lamports += lamports
	return nil
}

func (t *Txn) debit(addr solana.PublicKey, lamports uint64) error {
	acct, ok := t.ledger.accounts[addr]
	if !ok {
		return InsufficientFundsError{Account: addr, Required: lamports}
	}
	if acct.Lamports < lamports {
		return InsufficientFundsError{
			Account:  addr,
			Balance:  acct.Lamports,
			Required: lamports,
		}
	}
	if err := t.touch(addr); err != nil {
		return err
	}
	acct.Lamports -= lamports
	return nil
}

// touch records the pre-image of addr the first time the unit modifies it.
// A nil pre-image marks an account created inside the unit.
func (t *Txn) touch(addr solana.PublicKey) error {
	if _, ok := t.journal[addr]; ok {
		return nil
	}
	var pre *Account
	if acct, ok := t.ledger.accounts[addr]; ok {
		var err error
		if pre, err = acct.Clone(); err != nil {
			return err
		}
	}
	t.journal[addr] = pre
	t.order = append(t.order, addr)
	return nil
}

func (t *Txn) rollback() {
	for i := len(t.order) - 1; i >= 0; i-- {
		addr := t.order[i]
		if pre := t.journal[addr]; pre != nil {
			t.ledger.accounts[addr] = pre
		} else {
			delete(t.ledger.accounts, addr)
		}
	}
	t.close()
}

func (t *Txn) commit() {
	t.close()
}

func (t *Txn) close() {
	t.journal = nil
	t.order = nil
	t.closed = true
}
