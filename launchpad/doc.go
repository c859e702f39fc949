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

// Package launchpad provisions token mints with at most one extension.
//
// A request is validated, its authorities are proven, and then a
// MintInitializer moves the mint address through Unallocated, Allocated,
// ExtensionsConfigured and Initialized inside one atomic unit of the ledger.
// Extensions can only be attached before the mint is initialized. Every
// failure is returned as an *Error classified by ErrorKind, and the unit is
// rolled back so no partial mint is ever committed.
package launchpad
