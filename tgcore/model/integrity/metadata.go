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

// Package integrity implements the metadata envelope of custom items: a
// semantic version plus a block of named digests.
//
// The core only checks that an envelope is well-formed (Verify). It never
// recomputes digests on its own, because the bytes a digest covers are
// defined by whoever canonicalises the payload. Such a collaborator can use
// Seal to produce an envelope and VerifyPayload to compare digests against
// the bytes it derived.
package integrity

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	tgerrors "dirpx.dev/tgdf/tgcore/errors"
	"dirpx.dev/tgdf/tgcore/model"
	"dirpx.dev/tgdf/tgcore/model/semver"
	"gopkg.in/yaml.v3"
)

// Metadata is the envelope attached to a custom item:
//
//	{version: semver, integrity: {hashes: {algorithm: hexdigest, ...}}}
type Metadata struct {
	// Version is the semantic version string exactly as written.
	Version string

	// Hashes lists the digest entries in input order.
	Hashes []Hash
}

// Verify checks that md is well-formed:
//
//   - Version parses as a semantic version (an optional "v" prefix is
//     tolerated);
//   - every digest is lowercase hex, of the right length for recognised
//     algorithms;
//   - at least one entry uses a recognised algorithm.
//
// The first failure is returned as an *errors.IntegrityError.
func Verify(md Metadata) error {
	if _, err := semver.ParseVersion(md.Version); err != nil {
		return &tgerrors.IntegrityError{
			Kind:   tgerrors.InvalidVersion,
			Reason: fmt.Sprintf("version %q is not a semantic version", md.Version),
		}
	}

	recognized := false
	for _, h := range md.Hashes {
		if err := h.Validate(); err != nil {
			return err
		}
		if h.Recognized() {
			recognized = true
		}
	}

	if !recognized {
		return &tgerrors.IntegrityError{
			Kind:   tgerrors.NoRecognizedHash,
			Reason: "hashes must contain at least one of " + strings.Join(recognizedKeys(), ", "),
		}
	}
	return nil
}

// VerifyPayload verifies md and then compares every recognised digest with
// the digest of payload. A difference yields an *errors.IntegrityError of
// kind DigestMismatch.
func VerifyPayload(md Metadata, payload []byte) error {
	if err := Verify(md); err != nil {
		return err
	}
	for _, h := range md.Hashes {
		alg := h.Algorithm()
		if alg == AlgorithmUnknown {
			continue
		}
		if got := alg.Sum(payload); got != h.Digest {
			return &tgerrors.IntegrityError{
				Kind:      tgerrors.DigestMismatch,
				Algorithm: h.Key,
				Reason:    fmt.Sprintf("digest %s does not match payload digest %s", h.Short(), got[:HashShortLen]),
			}
		}
	}
	return nil
}

// Seal builds an envelope for payload. Without algorithms it uses SHA256.
func Seal(version string, payload []byte, algs ...Algorithm) (Metadata, error) {
	if _, err := semver.ParseVersion(version); err != nil {
		return Metadata{}, &tgerrors.IntegrityError{
			Kind:   tgerrors.InvalidVersion,
			Reason: fmt.Sprintf("version %q is not a semantic version", version),
		}
	}
	if len(algs) == 0 {
		algs = []Algorithm{SHA256}
	}

	md := Metadata{Version: version}
	for _, alg := range algs {
		if alg == AlgorithmUnknown || alg.Validate() != nil {
			return Metadata{}, &tgerrors.ParseError{Type: "Algorithm", Value: alg.String()}
		}
		md.Hashes = append(md.Hashes, Hash{Key: alg.String(), Digest: alg.Sum(payload)})
	}
	return md, nil
}

func recognizedKeys() []string {
	return []string{SHA1Str, SHA256Str, SHA384Str, SHA512Str, BLAKE2b256Str}
}

// Sorted returns the hashes ordered by key, the order of the canonical form.
func (md Metadata) Sorted() []Hash {
	out := make([]Hash, len(md.Hashes))
	copy(out, md.Hashes)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Digest returns the digest stored under key.
func (md Metadata) Digest(key string) (string, bool) {
	for _, h := range md.Hashes {
		if h.Key == key {
			return h.Digest, true
		}
	}
	return "", false
}

// Validate is Verify(md).
func (md Metadata) Validate() error {
	return Verify(md)
}

// TypeName returns "Metadata".
func (md Metadata) TypeName() string {
	return "Metadata"
}

// IsZero reports whether md carries neither version nor hashes.
func (md Metadata) IsZero() bool {
	return md.Version == "" && len(md.Hashes) == 0
}

// String returns the version and full digests in canonical order.
func (md Metadata) String() string {
	parts := make([]string, 0, len(md.Hashes))
	for _, h := range md.Sorted() {
		parts = append(parts, h.String())
	}
	return "Metadata{version:" + md.Version + ", hashes:[" + strings.Join(parts, " ") + "]}"
}

// Redacted returns the version and abbreviated digests.
func (md Metadata) Redacted() string {
	parts := make([]string, 0, len(md.Hashes))
	for _, h := range md.Sorted() {
		parts = append(parts, h.Redacted())
	}
	return "Metadata{version:" + md.Version + ", hashes:[" + strings.Join(parts, " ") + "]}"
}

type metadataWire struct {
	Version   string        `json:"version" yaml:"version"`
	Integrity integrityWire `json:"integrity" yaml:"integrity"`
}

type integrityWire struct {
	Hashes map[string]string `json:"hashes" yaml:"hashes"`
}

func (md Metadata) wire() metadataWire {
	hashes := make(map[string]string, len(md.Hashes))
	for _, h := range md.Hashes {
		hashes[h.Key] = h.Digest
	}
	return metadataWire{Version: md.Version, Integrity: integrityWire{Hashes: hashes}}
}

func fromWire(w metadataWire) Metadata {
	md := Metadata{Version: w.Version}
	for k, v := range w.Integrity.Hashes {
		md.Hashes = append(md.Hashes, Hash{Key: k, Digest: v})
	}
	md.Hashes = md.Sorted()
	return md
}

// MarshalJSON encodes a valid envelope in its wire shape.
func (md Metadata) MarshalJSON() ([]byte, error) {
	if err := md.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", md.TypeName(), err)
	}
	return json.Marshal(md.wire())
}

// UnmarshalJSON decodes and verifies an envelope.
func (md *Metadata) UnmarshalJSON(data []byte) error {
	var w metadataWire
	if err := json.Unmarshal(data, &w); err != nil {
		return &tgerrors.UnmarshalError{Type: "Metadata", Data: data, Reason: err.Error()}
	}
	parsed := fromWire(w)
	if err := parsed.Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	*md = parsed
	return nil
}

// MarshalYAML encodes a valid envelope in its wire shape.
func (md Metadata) MarshalYAML() (interface{}, error) {
	if err := md.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", md.TypeName(), err)
	}
	return md.wire(), nil
}

// UnmarshalYAML decodes and verifies an envelope.
func (md *Metadata) UnmarshalYAML(node *yaml.Node) error {
	var w metadataWire
	if err := node.Decode(&w); err != nil {
		return &tgerrors.UnmarshalError{Type: "Metadata", Reason: err.Error()}
	}
	parsed := fromWire(w)
	if err := parsed.Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	*md = parsed
	return nil
}

var _ model.Model = (*Metadata)(nil)
