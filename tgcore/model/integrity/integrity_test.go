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

package integrity_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	tgerrors "dirpx.dev/tgdf/tgcore/errors"
	"dirpx.dev/tgdf/tgcore/model/integrity"
	"gopkg.in/yaml.v3"
)

const sha256Empty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input   string
		want    integrity.Algorithm
		wantErr bool
	}{
		{"sha1", integrity.SHA1, false},
		{"sha256", integrity.SHA256, false},
		{"sha384", integrity.SHA384, false},
		{"sha512", integrity.SHA512, false},
		{"blake2b_256", integrity.BLAKE2b256, false},
		{"SHA256", integrity.AlgorithmUnknown, true},
		{"md5", integrity.AlgorithmUnknown, true},
		{"", integrity.AlgorithmUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := integrity.ParseAlgorithm(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAlgorithm(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseAlgorithm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !tt.wantErr && got.String() != tt.input {
				t.Errorf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestAlgorithm_Sum(t *testing.T) {
	for _, alg := range []integrity.Algorithm{integrity.SHA1, integrity.SHA256, integrity.SHA384, integrity.SHA512, integrity.BLAKE2b256} {
		sum := alg.Sum([]byte("payload"))
		if len(sum) != alg.HexSize() {
			t.Errorf("%s: len(Sum) = %d, want %d", alg, len(sum), alg.HexSize())
		}
		if !integrity.DigestRegexp.MatchString(sum) {
			t.Errorf("%s: Sum = %q is not lowercase hex", alg, sum)
		}
	}

	if got := integrity.SHA256.Sum(nil); got != sha256Empty {
		t.Errorf("SHA256.Sum(nil) = %q, want %q", got, sha256Empty)
	}
}

func TestAlgorithm_JSON(t *testing.T) {
	data, err := json.Marshal(integrity.BLAKE2b256)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"blake2b_256"` {
		t.Errorf("Marshal() = %s", data)
	}

	if _, err := json.Marshal(integrity.AlgorithmUnknown); err == nil {
		t.Error("Marshal(AlgorithmUnknown) = nil error, want error")
	}

	var a integrity.Algorithm
	if err := json.Unmarshal([]byte(`"sha512"`), &a); err != nil || a != integrity.SHA512 {
		t.Errorf("Unmarshal() = %v, %v", a, err)
	}
	if err := json.Unmarshal([]byte(`"crc32"`), &a); err == nil {
		t.Error("Unmarshal(crc32) = nil, want error")
	}
}

func TestHash_Validate(t *testing.T) {
	tests := []struct {
		name    string
		hash    integrity.Hash
		wantErr bool
	}{
		{"sha256 ok", integrity.Hash{Key: "sha256", Digest: sha256Empty}, false},
		{"sha256 too short", integrity.Hash{Key: "sha256", Digest: "ab123"}, true},
		{"uppercase", integrity.Hash{Key: "sha256", Digest: strings.ToUpper(sha256Empty)}, true},
		{"non hex", integrity.Hash{Key: "sha1", Digest: strings.Repeat("g", 40)}, true},
		{"unknown algorithm any length", integrity.Hash{Key: "crc32", Digest: "cbf43926"}, false},
		{"unknown algorithm not hex", integrity.Hash{Key: "crc32", Digest: "xyz"}, true},
		{"empty digest", integrity.Hash{Key: "crc32", Digest: ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.hash.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var ierr *tgerrors.IntegrityError
				if !errors.As(err, &ierr) || ierr.Kind != tgerrors.MalformedDigest {
					t.Errorf("Validate() error = %v, want MalformedDigest", err)
				}
			}
		})
	}
}

func TestHash_Redacted(t *testing.T) {
	h := integrity.Hash{Key: "sha256", Digest: sha256Empty}
	if got := h.Redacted(); got != "sha256:e3b0c44" {
		t.Errorf("Redacted() = %q", got)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name     string
		md       integrity.Metadata
		wantKind tgerrors.IntegrityErrorKind
	}{
		{
			name: "valid with v prefix",
			md:   integrity.Metadata{Version: "v0.2.0", Hashes: []integrity.Hash{{Key: "sha256", Digest: sha256Empty}}},
		},
		{
			name: "valid with extra unknown algorithm",
			md: integrity.Metadata{Version: "1.0.0", Hashes: []integrity.Hash{
				{Key: "crc32", Digest: "cbf43926"},
				{Key: "sha256", Digest: sha256Empty},
			}},
		},
		{
			name:     "bad version",
			md:       integrity.Metadata{Version: "version two", Hashes: []integrity.Hash{{Key: "sha256", Digest: sha256Empty}}},
			wantKind: tgerrors.InvalidVersion,
		},
		{
			name:     "no hashes",
			md:       integrity.Metadata{Version: "1.0.0"},
			wantKind: tgerrors.NoRecognizedHash,
		},
		{
			name:     "only unknown algorithms",
			md:       integrity.Metadata{Version: "1.0.0", Hashes: []integrity.Hash{{Key: "crc32", Digest: "cbf43926"}}},
			wantKind: tgerrors.NoRecognizedHash,
		},
		{
			name:     "truncated digest",
			md:       integrity.Metadata{Version: "v0.2.0", Hashes: []integrity.Hash{{Key: "sha256", Digest: "ab123"}}},
			wantKind: tgerrors.MalformedDigest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := integrity.Verify(tt.md)
			if tt.wantKind == 0 {
				if err != nil {
					t.Fatalf("Verify() = %v, want nil", err)
				}
				return
			}
			var ierr *tgerrors.IntegrityError
			if !errors.As(err, &ierr) {
				t.Fatalf("Verify() = %v, want *IntegrityError", err)
			}
			if ierr.Kind != tt.wantKind {
				t.Errorf("Verify() kind = %v, want %v", ierr.Kind, tt.wantKind)
			}
		})
	}
}

func TestSealAndVerifyPayload(t *testing.T) {
	payload := []byte(`{"name":["text","Jane Doe"]}`)

	md, err := integrity.Seal("v0.2.0", payload, integrity.SHA256, integrity.BLAKE2b256)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	if len(md.Hashes) != 2 {
		t.Fatalf("Seal() produced %d hashes, want 2", len(md.Hashes))
	}
	if err := integrity.VerifyPayload(md, payload); err != nil {
		t.Errorf("VerifyPayload() = %v, want nil", err)
	}

	err = integrity.VerifyPayload(md, []byte(`{"name":["text","John Doe"]}`))
	var ierr *tgerrors.IntegrityError
	if !errors.As(err, &ierr) || ierr.Kind != tgerrors.DigestMismatch {
		t.Errorf("VerifyPayload(tampered) = %v, want DigestMismatch", err)
	}

	if _, err := integrity.Seal("two", payload); err == nil {
		t.Error("Seal(bad version) = nil error")
	}

	def, err := integrity.Seal("1.0.0", nil)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	if d, ok := def.Digest("sha256"); !ok || d != sha256Empty {
		t.Errorf("default Seal digest = %q, %v", d, ok)
	}
}

func TestMetadata_Sorted(t *testing.T) {
	md := integrity.Metadata{Version: "1.0.0", Hashes: []integrity.Hash{
		{Key: "sha512", Digest: "aa"},
		{Key: "blake2b_256", Digest: "bb"},
		{Key: "sha256", Digest: "cc"},
	}}
	got := md.Sorted()
	want := []string{"blake2b_256", "sha256", "sha512"}
	for i, h := range got {
		if h.Key != want[i] {
			t.Errorf("Sorted()[%d] = %q, want %q", i, h.Key, want[i])
		}
	}
	if md.Hashes[0].Key != "sha512" {
		t.Error("Sorted() mutated the receiver")
	}
}

func TestMetadata_RoundTrip(t *testing.T) {
	md := integrity.Metadata{Version: "v0.2.0", Hashes: []integrity.Hash{{Key: "sha256", Digest: sha256Empty}}}

	data, err := json.Marshal(md)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	want := `{"version":"v0.2.0","integrity":{"hashes":{"sha256":"` + sha256Empty + `"}}}`
	if string(data) != want {
		t.Errorf("json.Marshal() = %s, want %s", data, want)
	}

	var back integrity.Metadata
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if back.Version != md.Version || len(back.Hashes) != 1 || back.Hashes[0] != md.Hashes[0] {
		t.Errorf("json round trip = %+v", back)
	}

	ydata, err := yaml.Marshal(md)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	var yback integrity.Metadata
	if err := yaml.Unmarshal(ydata, &yback); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if yback.String() != md.String() {
		t.Errorf("yaml round trip = %s, want %s", yback, md)
	}

	if _, err := json.Marshal(integrity.Metadata{Version: "1.0.0"}); err == nil {
		t.Error("json.Marshal(invalid) = nil error")
	}
}

func TestMetadata_Redacted(t *testing.T) {
	md := integrity.Metadata{Version: "1.0.0", Hashes: []integrity.Hash{{Key: "sha256", Digest: sha256Empty}}}
	if got := md.Redacted(); strings.Contains(got, sha256Empty) {
		t.Errorf("Redacted() = %q leaks full digest", got)
	}
}
