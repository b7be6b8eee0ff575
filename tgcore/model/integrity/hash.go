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
	"encoding/json"
	"fmt"
	"regexp"

	tgerrors "dirpx.dev/tgdf/tgcore/errors"
	"dirpx.dev/tgdf/tgcore/model"
	"gopkg.in/yaml.v3"
)

// HashShortLen is the digest prefix length shown by Redacted.
const HashShortLen = 7

// DigestRegexp matches a non-empty lowercase hexadecimal string. Length is
// checked separately against the algorithm.
var DigestRegexp = regexp.MustCompile(`^[0-9a-f]+$`)

// Hash is one entry of the hashes block: an algorithm key and its digest.
//
// Digests are opaque to the core. They are never normalised: an upper-case
// digest is malformed, not "equivalent", because the canonical form is
// lowercase.
type Hash struct {
	// Key is the algorithm key exactly as written in the envelope.
	Key string

	// Digest is the hex digest exactly as written in the envelope.
	Digest string
}

// Algorithm returns the recognised algorithm of h, or AlgorithmUnknown.
func (h Hash) Algorithm() Algorithm {
	a, _ := ParseAlgorithm(h.Key)
	return a
}

// Recognized reports whether h uses a recognised algorithm.
func (h Hash) Recognized() bool {
	return h.Algorithm() != AlgorithmUnknown
}

// Short returns the first HashShortLen characters of the digest.
func (h Hash) Short() string {
	if len(h.Digest) < HashShortLen {
		return h.Digest
	}
	return h.Digest[:HashShortLen]
}

// String returns "key:digest".
func (h Hash) String() string {
	return h.Key + ":" + h.Digest
}

// Redacted returns "key:short".
func (h Hash) Redacted() string {
	return h.Key + ":" + h.Short()
}

// TypeName returns "Hash".
func (h Hash) TypeName() string {
	return "Hash"
}

// IsZero reports whether both key and digest are empty.
func (h Hash) IsZero() bool {
	return h.Key == "" && h.Digest == ""
}

// Validate checks the digest: lowercase hex and, for recognised algorithms,
// exactly HexSize characters. Failures are *errors.IntegrityError values of
// kind MalformedDigest.
func (h Hash) Validate() error {
	if h.Key == "" {
		return &tgerrors.IntegrityError{Kind: tgerrors.MalformedDigest, Reason: "empty algorithm key"}
	}
	if !DigestRegexp.MatchString(h.Digest) {
		return &tgerrors.IntegrityError{
			Kind:      tgerrors.MalformedDigest,
			Algorithm: h.Key,
			Reason:    fmt.Sprintf("digest %q must be lowercase hexadecimal [0-9a-f]", h.Digest),
		}
	}
	if size := h.Algorithm().HexSize(); size > 0 && len(h.Digest) != size {
		return &tgerrors.IntegrityError{
			Kind:      tgerrors.MalformedDigest,
			Algorithm: h.Key,
			Reason:    fmt.Sprintf("expected %d hex characters, got %d", size, len(h.Digest)),
		}
	}
	return nil
}

type hashJSON struct {
	Algorithm string `json:"algorithm" yaml:"algorithm"`
	Digest    string `json:"digest" yaml:"digest"`
}

// MarshalJSON encodes a valid Hash as {"algorithm": ..., "digest": ...}.
func (h Hash) MarshalJSON() ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", h.TypeName(), err)
	}
	return json.Marshal(hashJSON{Algorithm: h.Key, Digest: h.Digest})
}

// UnmarshalJSON decodes and validates a Hash.
func (h *Hash) UnmarshalJSON(data []byte) error {
	var raw hashJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return &tgerrors.UnmarshalError{Type: "Hash", Data: data, Reason: err.Error()}
	}
	parsed := Hash{Key: raw.Algorithm, Digest: raw.Digest}
	if err := parsed.Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	*h = parsed
	return nil
}

// MarshalYAML encodes a valid Hash as a mapping.
func (h Hash) MarshalYAML() (interface{}, error) {
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", h.TypeName(), err)
	}
	return hashJSON{Algorithm: h.Key, Digest: h.Digest}, nil
}

// UnmarshalYAML decodes and validates a Hash.
func (h *Hash) UnmarshalYAML(node *yaml.Node) error {
	var raw hashJSON
	if err := node.Decode(&raw); err != nil {
		return &tgerrors.UnmarshalError{Type: "Hash", Reason: err.Error()}
	}
	parsed := Hash{Key: raw.Algorithm, Digest: raw.Digest}
	if err := parsed.Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	*h = parsed
	return nil
}

var _ model.Model = (*Hash)(nil)
