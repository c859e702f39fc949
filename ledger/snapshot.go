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
	"errors"
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"

	"github.com/blinklabs-io/mint-launchpad/cbor"
)

const snapshotVersion = 1

type snapshot struct {
	cbor.StructAsArray
	Version             uint
	LamportsPerByteYear uint64
	// Stored as IEEE 754 bits to keep the encoding integer-only
	ExemptionThreshold uint64
	Accounts           []snapshotAccount
}

type snapshotAccount struct {
	cbor.StructAsArray
	Address  []byte
	Owner    []byte
	Lamports uint64
	Data     []byte
}

// Snapshot returns the CBOR encoding of every committed account and the rent
// parameters. Accounts are written in address order.
func (l *Ledger) Snapshot() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	tmp := snapshot{
		Version:             snapshotVersion,
		LamportsPerByteYear: l.rent.LamportsPerByteYear,
		ExemptionThreshold:  math.Float64bits(l.rent.ExemptionThreshold),
		Accounts:            make([]snapshotAccount, 0, len(l.accounts)),
	}
	for _, addr := range l.sortedAddresses() {
		acct := l.accounts[addr]
		tmp.Accounts = append(
			tmp.Accounts,
			snapshotAccount{
				Address:  acct.Address.Bytes(),
				Owner:    acct.Owner.Bytes(),
				Lamports: acct.Lamports,
				Data:     acct.Data,
			},
		)
	}
	return cbor.Encode(&tmp)
}

// Restore builds a ledger from a snapshot produced by Snapshot
func Restore(data []byte) (*Ledger, error) {
	var tmp snapshot
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return nil, fmt.Errorf("decode ledger snapshot: %w", err)
	}
	if tmp.Version != snapshotVersion {
		return nil, fmt.Errorf(
			"unsupported ledger snapshot version %d",
			tmp.Version,
		)
	}
	l := New(
		WithRent(
			Rent{
				LamportsPerByteYear: tmp.LamportsPerByteYear,
				ExemptionThreshold:  math.Float64frombits(tmp.ExemptionThreshold),
			},
		),
	)
	for _, item := range tmp.Accounts {
		if len(item.Address) != solana.PublicKeyLength ||
			len(item.Owner) != solana.PublicKeyLength {
			return nil, errors.New("malformed account key in ledger snapshot")
		}
		addr := solana.PublicKeyFromBytes(item.Address)
		if _, ok := l.accounts[addr]; ok {
			return nil, fmt.Errorf("duplicate account %s in ledger snapshot", addr)
		}
		acctData := item.Data
		if acctData == nil {
			acctData = []byte{}
		}
		l.accounts[addr] = &Account{
			Address:  addr,
			Owner:    solana.PublicKeyFromBytes(item.Owner),
			Lamports: item.Lamports,
			Data:     acctData,
		}
	}
	return l, nil
}
