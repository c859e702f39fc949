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

// Package token implements the mint-side instructions of the Token-2022
// program against accounts held in a ledger.Ledger.
//
// Account layout:
//
//	[0, 82)     base mint (authorities, supply, decimals, initialized flag)
//	[82, 165)   zero padding, only present when extensions are attached
//	165         account type (1 = mint)
//	[166, ...)  extension entries: u16 type, u16 length, value
//
// A mint without extensions is exactly 82 bytes. Extensions are written into
// an allocated but uninitialized account; InitMint then seals the account and
// refuses to run unless every byte of extension space has been claimed.
package token
