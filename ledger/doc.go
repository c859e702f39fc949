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

// Package ledger is an in-memory account arena standing in for the host
// ledger the launchpad provisions mints on.
//
// Every account is a slot keyed by its address, tagged with an owning
// program, a lamport balance and a fixed-size byte buffer. Accounts never
// reference each other by pointer.
//
// All mutations happen inside an atomic unit:
//
//	err := l.Atomic(ctx, func(txn *ledger.Txn) error {
//	    return txn.CreateAccount(payer, addr, owner, space, lamports)
//	})
//
// The unit journals the pre-image of each account it touches. If the
// callback returns an error, every debit, allocation and data write made
// through the unit is reverted before Atomic returns.
package ledger
