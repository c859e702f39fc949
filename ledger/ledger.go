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
	"bytes"
	"context"
	"encoding/binary"
	"sort"
	"sync"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/crypto/blake2b"
)

// Ledger is an in-memory account arena. All mutations go through an atomic
// unit opened with Atomic, which either commits every change or none.
type Ledger struct {
	mu       sync.Mutex
	accounts map[solana.PublicKey]*Account
	rent     Rent
}

type LedgerOptionFunc func(*Ledger)

// WithRent overrides the rent parameters used for rent-exempt checks
func WithRent(rent Rent) LedgerOptionFunc {
	return func(l *Ledger) {
		l.rent = rent
	}
}

// New returns an empty ledger
func New(opts ...LedgerOptionFunc) *Ledger {
	l := &Ledger{
		accounts: make(map[solana.PublicKey]*Account),
		rent:     DefaultRent,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Rent returns the rent parameters of the ledger
func (l *Ledger) Rent() Rent {
	return l.rent
}

// Account returns a copy of the committed account at addr
func (l *Ledger) Account(addr solana.PublicKey) (*Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acct, ok := l.accounts[addr]
	if !ok {
		return nil, AccountNotFoundError{Address: addr}
	}
	return acct.Clone()
}

// Len returns the number of accounts in the ledger
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.accounts)
}

// Airdrop credits lamports to addr, creating a system-owned account when
// none exists
func (l *Ledger) Airdrop(
	ctx context.Context,
	addr solana.PublicKey,
	lamports uint64,
) error {
	return l.Atomic(ctx, func(txn *Txn) error {
		return txn.Credit(addr, lamports)
	})
}

// Atomic runs fn inside a single atomic unit. Units are serialized. When fn
// returns an error, or ctx is done by the time fn returns, every change made
// through the unit is reverted and the error is returned. A panic in fn also
// reverts the unit before it is propagated.
func (l *Ledger) Atomic(ctx context.Context, fn func(*Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	txn := newTxn(l)
	defer func() {
		if r := recover(); r != nil {
			txn.rollback()
			panic(r)
		}
	}()
	err := fn(txn)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		txn.rollback()
		return err
	}
	txn.commit()
	return nil
}

// Hash returns a blake2b-256 digest over every account in address order.
// Two ledgers with identical accounts produce the same hash.
func (l *Ledger) Hash() [32]byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	h, _ := blake2b.New256(nil)
	var tmp [8]byte
	for _, addr := range l.sortedAddresses() {
		acct := l.accounts[addr]
		h.Write(acct.Address[:])
		h.Write(acct.Owner[:])
		binary.LittleEndian.PutUint64(tmp[:], acct.Lamports)
		h.Write(tmp[:])
		binary.LittleEndian.PutUint64(tmp[:], uint64(len(acct.Data)))
		h.Write(tmp[:])
		h.Write(acct.Data)
	}
	var ret [32]byte
	copy(ret[:], h.Sum(nil))
	return ret
}

func (l *Ledger) sortedAddresses() []solana.PublicKey {
	ret := make([]solana.PublicKey, 0, len(l.accounts))
	for addr := range l.accounts {
		ret = append(ret, addr)
	}
	sort.Slice(ret, func(i, j int) bool {
		return bytes.Compare(ret[i][:], ret[j][:]) < 0
	})
	return ret
}
