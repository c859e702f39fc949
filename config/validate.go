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

package config

import (
	"fmt"
	"reflect"

	"github.com/gagliardetto/solana-go"
	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator with the request file rules registered
func NewValidator() (*validator.Validate, error) {
	v := validator.New()
	err := v.RegisterValidation("keypair", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			panic(fmt.Errorf("%q is not a string", fl.FieldName()))
		}
		s := fl.Field().String()
		if len(s) == 0 || isKeygenFile(s) {
			// allow empty, files are checked on load
			return true
		}
		_, err := solana.PrivateKeyFromBase58(s)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	v.RegisterStructValidation(validateRequestFile, RequestFile{})
	return v, nil
}

// The transfer fee section only belongs to taxed mints
func validateRequestFile(sl validator.StructLevel) {
	r := sl.Current().Interface().(RequestFile)
	if r.Kind != KindTaxed && r.TransferFee != nil {
		sl.ReportError(r.TransferFee, "TransferFee", "transfer_fee", "excluded_unless_taxed", r.Kind)
	}
}
