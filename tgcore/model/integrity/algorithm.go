/*
   Copyright 2026 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package integrity

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"

	tgerrors "dirpx.dev/tgdf/tgcore/errors"
	"dirpx.dev/tgdf/tgcore/model"
	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

// Algorithm identifies a digest algorithm recognised in the hashes block of
// a metadata envelope.
//
// The zero value AlgorithmUnknown stands for any key the core does not know.
// Unknown keys are tolerated in metadata but never count as the "at least one
// recognised algorithm" the envelope must carry.
type Algorithm uint8

const (
	// AlgorithmUnknown is an unrecognised algorithm key.
	AlgorithmUnknown Algorithm = iota

	// SHA1 produces 40 hex characters.
	SHA1

	// SHA256 produces 64 hex characters.
	SHA256

	// SHA384 produces 96 hex characters.
	SHA384

	// SHA512 produces 128 hex characters.
	SHA512

	// BLAKE2b256 is BLAKE2b with a 32-byte digest, 64 hex characters.
	BLAKE2b256
)

const (
	AlgorithmUnknownStr = "unknown"
	SHA1Str             = "sha1"
	SHA256Str           = "sha256"
	SHA384Str           = "sha384"
	SHA512Str           = "sha512"
	BLAKE2b256Str       = "blake2b_256"
)

// ParseAlgorithm maps a hashes key to its Algorithm.
//
// Keys are matched exactly: metadata keys are flexnames, so "SHA256" is not a
// recognised spelling. An unrecognised key yields AlgorithmUnknown together
// with a *errors.ParseError.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case SHA1Str:
		return SHA1, nil
	case SHA256Str:
		return SHA256, nil
	case SHA384Str:
		return SHA384, nil
	case SHA512Str:
		return SHA512, nil
	case BLAKE2b256Str:
		return BLAKE2b256, nil
	default:
		return AlgorithmUnknown, &tgerrors.ParseError{Type: "Algorithm", Value: s}
	}
}

// String returns the hashes key of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmUnknown:
		return AlgorithmUnknownStr
	case SHA1:
		return SHA1Str
	case SHA256:
		return SHA256Str
	case SHA384:
		return SHA384Str
	case SHA512:
		return SHA512Str
	case BLAKE2b256:
		return BLAKE2b256Str
	default:
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
}

// Redacted returns String; algorithm names are not sensitive.
func (a Algorithm) Redacted() string {
	return a.String()
}

// TypeName returns "Algorithm".
func (a Algorithm) TypeName() string {
	return "Algorithm"
}

// IsZero reports whether a is AlgorithmUnknown.
func (a Algorithm) IsZero() bool {
	return a == AlgorithmUnknown
}

// Validate reports an error for values outside the declared constants.
func (a Algorithm) Validate() error {
	if a > BLAKE2b256 {
		return fmt.Errorf("Algorithm value %d is not a known algorithm (valid range: 0-%d)", uint8(a), uint8(BLAKE2b256))
	}
	return nil
}

// HexSize returns the length of the lowercase hex digest the algorithm
// produces, or 0 for AlgorithmUnknown.
func (a Algorithm) HexSize() int {
	switch a {
	case SHA1:
		return sha1.Size * 2
	case SHA256:
		return sha256.Size * 2
	case SHA384:
		return sha512.Size384 * 2
	case SHA512:
		return sha512.Size * 2
	case BLAKE2b256:
		return blake2b.Size256 * 2
	default:
		return 0
	}
}

// Sum returns the lowercase hex digest of payload. It panics for
// AlgorithmUnknown, which has no digest function.
func (a Algorithm) Sum(payload []byte) string {
	switch a {
	case SHA1:
		sum := sha1.Sum(payload)
		return hex.EncodeToString(sum[:])
	case SHA256:
		sum := sha256.Sum256(payload)
		return hex.EncodeToString(sum[:])
	case SHA384:
		sum := sha512.Sum384(payload)
		return hex.EncodeToString(sum[:])
	case SHA512:
		sum := sha512.Sum512(payload)
		return hex.EncodeToString(sum[:])
	case BLAKE2b256:
		sum := blake2b.Sum256(payload)
		return hex.EncodeToString(sum[:])
	default:
		panic("integrity: no digest function for " + a.String())
	}
}

// MarshalJSON encodes the algorithm as its key string.
func (a Algorithm) MarshalJSON() ([]byte, error) {
	if a.IsZero() || a.Validate() != nil {
		return nil, &tgerrors.MarshalError{Type: "Algorithm", Value: int(a)}
	}
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a key string via ParseAlgorithm.
func (a *Algorithm) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &tgerrors.UnmarshalError{Type: "Algorithm", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseAlgorithm(s)
	if err != nil {
		return &tgerrors.UnmarshalError{Type: "Algorithm", Data: data, Reason: err.Error()}
	}
	*a = parsed
	return nil
}

// MarshalYAML encodes the algorithm as its key string.
func (a Algorithm) MarshalYAML() (interface{}, error) {
	if a.IsZero() || a.Validate() != nil {
		return nil, &tgerrors.MarshalError{Type: "Algorithm", Value: int(a)}
	}
	return a.String(), nil
}

// UnmarshalYAML decodes a key string via ParseAlgorithm.
func (a *Algorithm) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &tgerrors.UnmarshalError{Type: "Algorithm", Reason: err.Error()}
	}
	parsed, err := ParseAlgorithm(s)
	if err != nil {
		return &tgerrors.UnmarshalError{Type: "Algorithm", Reason: err.Error()}
	}
	*a = parsed
	return nil
}

var _ model.Model = (*Algorithm)(nil)
