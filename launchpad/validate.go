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
	"fmt"

	"github.com/blinklabs-io/mint-launchpad/token"
)

// MaxFeeBasisPoints is the largest accepted transfer fee (100%)
const MaxFeeBasisPoints = token.MaxFeeBasisPoints

// ValidateFee checks transfer fee parameters. Any maximum fee is accepted;
// it caps the fee independently of the basis points.
func ValidateFee(basisPoints uint16, maximumFee uint64) error {
	if basisPoints > MaxFeeBasisPoints {
		return NewError(
			ErrorKindInvalidFeeConfig,
			fmt.Sprintf(
				"fee of %d basis points exceeds maximum of %d",
				basisPoints,
				MaxFeeBasisPoints,
			),
			map[string]any{
				"basis_points": basisPoints,
				"maximum_fee":  maximumFee,
			},
			nil,
		)
	}
	return nil
}

// RequestRuleFunc checks one property of a request before any side effect
type RequestRuleFunc func(req Request) error

// DefaultRequestRules are run, in order, on every request
var DefaultRequestRules = []RequestRuleFunc{
	ValidateRequestExtension,
	ValidateRequestFreezeAuthority,
	ValidateRequestAddresses,
}

// ValidateRequest runs rules in order and returns the first failure
func ValidateRequest(req Request, rules []RequestRuleFunc) error {
	for _, rule := range rules {
		if err := rule(req); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRequestExtension checks the parameters of the requested extension
func ValidateRequestExtension(req Request) error {
	if fee, ok := req.Extension.(TransferFee); ok {
		if err := ValidateFee(fee.BasisPoints, fee.MaximumFee); err != nil {
			return err
		}
		if fee.WithdrawAuthority.IsZero() {
			return NewError(
				ErrorKindTransferFeeInitFailed,
				"fee withdraw authority is required",
				nil,
				nil,
			)
		}
	}
	return nil
}

// ValidateRequestFreezeAuthority requires the caller to either name a freeze
// authority or explicitly opt out
func ValidateRequestFreezeAuthority(req Request) error {
	if !req.FreezeAuthority.IsSpecified() {
		return NewError(
			ErrorKindMintFailed,
			"freeze authority must be set or explicitly omitted",
			nil,
			nil,
		)
	}
	if key, ok := req.FreezeAuthority.Key(); ok && key.IsZero() {
		return NewError(ErrorKindMintFailed, "freeze authority is the zero key", nil, nil)
	}
	return nil
}

// ValidateRequestAddresses checks the payer, mint address and mint authority
func ValidateRequestAddresses(req Request) error {
	details := map[string]any{
		"payer":        req.Payer.String(),
		"mint_address": req.MintAddress.String(),
	}
	switch {
	case req.MintAuthority.IsZero():
		return NewError(ErrorKindMintFailed, "mint authority is required", details, nil)
	case req.MintAddress.IsZero():
		return NewError(ErrorKindMintFailed, "mint address is required", details, nil)
	case req.MintAddress.Equals(req.Payer):
		return NewError(ErrorKindAccountAlreadyInUse, "mint address is the payer account", details, nil)
	}
	return nil
}
