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

// Package semver validates the semantic version strings carried by the
// metadata envelope of custom items.
//
// The package wraps github.com/blang/semver/v4 for SemVer 2.0.0 compliance.
// Metadata versions in the wild are commonly written with a leading "v"
// ("v0.2.0"); the prefix is tolerated on input and dropped by String.
package semver

import (
	"encoding/json"
	"fmt"
	"strings"

	tgerrors "dirpx.dev/tgdf/tgcore/errors"
	"dirpx.dev/tgdf/tgcore/model"
	bsemver "github.com/blang/semver/v4"

	"gopkg.in/yaml.v3"
)

// Version is a parsed semantic version:
// Major.Minor.Patch[-Prerelease][+Build].
//
// The zero value is 0.0.0 and is reported by IsZero; it is still a valid
// version.
type Version struct {
	Major int
	Minor int
	Patch int

	// Prerelease holds the dot-separated identifiers after '-', e.g. "rc.1".
	Prerelease string

	// Build holds the dot-separated identifiers after '+'. It does not
	// take part in precedence.
	Build string
}

// ParseVersion parses s into a Version.
//
// An optional leading "v" is stripped before parsing. Surrounding whitespace
// is NOT trimmed: metadata values are checked verbatim.
//
//	ParseVersion("v0.2.0")        -> Version{0, 2, 0, "", ""}
//	ParseVersion("1.0.0-rc.1+b7") -> Version{1, 0, 0, "rc.1", "b7"}
func ParseVersion(s string) (Version, error) {
	bv, err := bsemver.Parse(strings.TrimPrefix(s, "v"))
	if err != nil {
		return Version{}, fmt.Errorf("invalid version format %q: %w", s, err)
	}
	return fromBlangSemver(bv), nil
}

// IsValid reports whether s parses as a semantic version.
func IsValid(s string) bool {
	_, err := ParseVersion(s)
	return err == nil
}

func fromBlangSemver(bv bsemver.Version) Version {
	var prerelease string
	if len(bv.Pre) > 0 {
		parts := make([]string, len(bv.Pre))
		for i, p := range bv.Pre {
			parts[i] = p.String()
		}
		prerelease = strings.Join(parts, ".")
	}

	return Version{
		Major:      int(bv.Major),
		Minor:      int(bv.Minor),
		Patch:      int(bv.Patch),
		Prerelease: prerelease,
		Build:      strings.Join(bv.Build, "."),
	}
}

// String returns the canonical form without the "v" prefix.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}

// Redacted returns String; versions carry no personal data.
func (v Version) Redacted() string {
	return v.String()
}

// TypeName returns "Version".
func (v Version) TypeName() string {
	return "Version"
}

// IsZero reports whether v is exactly 0.0.0 with no prerelease or build.
func (v Version) IsZero() bool {
	return v.Major == 0 && v.Minor == 0 && v.Patch == 0 && v.Prerelease == "" && v.Build == ""
}

// Validate checks that the components form a SemVer 2.0.0 version.
func (v Version) Validate() error {
	if v.Major < 0 || v.Minor < 0 || v.Patch < 0 {
		return fmt.Errorf("version components must be non-negative, got %d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	if _, err := bsemver.Parse(v.String()); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// Compare orders v and other by SemVer precedence and returns -1, 0 or +1.
// Build metadata is ignored. Both versions must be valid.
func (v Version) Compare(other Version) int {
	a, errA := bsemver.Parse(v.String())
	b, errB := bsemver.Parse(other.String())
	if errA != nil || errB != nil {
		return strings.Compare(v.String(), other.String())
	}
	return a.Compare(b)
}

// MarshalJSON encodes a valid Version as a JSON string.
func (v Version) MarshalJSON() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", v.TypeName(), err)
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a JSON string via ParseVersion.
func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &tgerrors.UnmarshalError{Type: "Version", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML encodes a valid Version as a YAML scalar.
func (v Version) MarshalYAML() (interface{}, error) {
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", v.TypeName(), err)
	}
	return v.String(), nil
}

// UnmarshalYAML decodes a YAML scalar via ParseVersion.
func (v *Version) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return &tgerrors.UnmarshalError{Type: "Version", Reason: err.Error()}
	}
	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

var _ model.Model = (*Version)(nil)
