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

	"github.com/gagliardetto/solana-go"
)

// Sentinel errors so callers can use errors.Is
var (
	ErrAccountAlreadyInUse = errors.New("account already in use")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrAccountNotFound     = errors.New("account not found")
	ErrRentNotExempt       = errors.New("balance below rent-exempt minimum")
	ErrTxnClosed           = errors.New("transaction already closed")
)

// AccountAlreadyInUseError indicates an attempt to create an account at an
// address that already holds one
type AccountAlreadyInUseError struct {
	Address solana.PublicKey
}

func (e AccountAlreadyInUseError) Error() string {
	return fmt.Sprintf("account %s already in use", e.Address)
}

func (AccountAlreadyInUseError) Is(target error) bool {
	return target == ErrAccountAlreadyInUse
}

// InsufficientFundsError indicates a payer cannot cover a debit
type InsufficientFundsError struct {
	Account  solana.PublicKey
	Balance  uint64
	Required uint64
}

func (e InsufficientFundsError) Error() string {
	return fmt.Sprintf(
		"account %s has %d lamports, %d required",
		e.Account,
		e.Balance,
		e.Required,
	)
}

func (InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// AccountNotFoundError indicates a lookup of an address with no account
type AccountNotFoundError struct {
	Address solana.PublicKey
}

func (e AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %s not found", e.Address)
}

func (AccountNotFoundError) Is(target error) bool {
	return target == ErrAccountNotFound
}

// RentNotExemptError indicates a new account would be funded below the
// rent-exempt minimum for its size
type RentNotExemptError struct {
	Address  solana.PublicKey
	Space    uint64
	Lamports uint64
	Minimum  uint64
}

func (e RentNotExemptError) Error() string {
	return fmt.Sprintf(
		"account %s with %d bytes funded with %d lamports, rent-exempt minimum is %d",
		e.Address,
		e.Space,
		e.Lamports,
		e.Minimum,
	)
}

func (RentNotExemptError) Is(target error) bool {
	return target == ErrRentNotExempt
}
