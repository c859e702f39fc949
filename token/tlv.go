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

package token

import (
	"encoding/binary"
	"fmt"
)

// tlvData returns the extension region of an extended mint account
func tlvData(data []byte) ([]byte, error) {
	if len(data) <= AccountSize {
		return nil, fmt.Errorf(
			"%w: %d bytes leaves no room for extensions",
			ErrInvalidAccountData,
			len(data),
		)
	}
	switch data[accountTypeOffset] {
	case 0, AccountTypeMint:
	default:
		return nil, fmt.Errorf(
			"%w: account type %d is not a mint",
			ErrInvalidAccountData,
			data[accountTypeOffset],
		)
	}
	return data[tlvOffset:], nil
}

// findEntry walks the TLV region looking for extType. When the extension is
// absent it returns the offset of the first free entry instead.
func findEntry(tlv []byte, extType ExtensionType) (int, bool, error) {
	off := 0
	for off+tlvHeaderSize <= len(tlv) {
		entryType := ExtensionType(binary.LittleEndian.Uint16(tlv[off:]))
		entryLen := int(binary.LittleEndian.Uint16(tlv[off+2:]))
		if entryType == ExtensionUninitialized {
			return off, false, nil
		}
		if off+tlvHeaderSize+entryLen > len(tlv) {
			return 0, false, fmt.Errorf(
				"%w: %s entry overruns account",
				ErrInvalidAccountData,
				entryType,
			)
		}
		if entryType == extType {
			return off, true, nil
		}
		off += tlvHeaderSize + entryLen
	}
	return off, false, nil
}

// allocEntry claims space for a new extension and returns its value slice
func allocEntry(data []byte, extType ExtensionType) ([]byte, error) {
	tlv, err := tlvData(data)
	if err != nil {
		return nil, err
	}
	off, found, err := findEntry(tlv, extType)
	if err != nil {
		return nil, err
	}
	if found {
		return nil, ErrExtensionAlreadyInitialized
	}
	size := extType.Size()
	if off+tlvHeaderSize+size > len(tlv) {
		return nil, fmt.Errorf(
			"%w: no space left for %s",
			ErrInvalidAccountData,
			extType,
		)
	}
	binary.LittleEndian.PutUint16(tlv[off:], uint16(extType))
	binary.LittleEndian.PutUint16(tlv[off+2:], uint16(size))
	return tlv[off+tlvHeaderSize : off+tlvHeaderSize+size], nil
}

// entryValue returns the value of extType, or nil when the mint lacks it
func entryValue(data []byte, extType ExtensionType) ([]byte, error) {
	tlv, err := tlvData(data)
	if err != nil {
		return nil, err
	}
	off, found, err := findEntry(tlv, extType)
	if err != nil || !found {
		return nil, err
	}
	entryLen := int(binary.LittleEndian.Uint16(tlv[off+2:]))
	return tlv[off+tlvHeaderSize : off+tlvHeaderSize+entryLen], nil
}

// extensionTypes lists the initialized extensions of a mint in TLV order
func extensionTypes(data []byte) ([]ExtensionType, error) {
	if len(data) == MintSize {
		return nil, nil
	}
	tlv, err := tlvData(data)
	if err != nil {
		return nil, err
	}
	var ret []ExtensionType
	off := 0
	for off+tlvHeaderSize <= len(tlv) {
		entryType := ExtensionType(binary.LittleEndian.Uint16(tlv[off:]))
		if entryType == ExtensionUninitialized {
			break
		}
		entryLen := int(binary.LittleEndian.Uint16(tlv[off+2:]))
		if off+tlvHeaderSize+entryLen > len(tlv) {
			return nil, fmt.Errorf(
				"%w: %s entry overruns account",
				ErrInvalidAccountData,
				entryType,
			)
		}
		ret = append(ret, entryType)
		off += tlvHeaderSize + entryLen
	}
	return ret, nil
}
