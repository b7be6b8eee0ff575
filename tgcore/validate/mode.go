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

package validate

import (
	tgerrors "dirpx.dev/tgdf/tgcore/errors"
)

// Mode controls how many errors a validation reports.
//
// Both modes walk an item in the same depth-first, declared-field order and
// so report errors in the same sequence. They differ only in when they stop.
type Mode int

const (
	// FailFast stops at the first error. The error is returned as is, so
	// errors.As on the result sees the concrete error type directly.
	FailFast Mode = iota

	// CollectAll keeps walking past failures and returns every error of the
	// item combined into one value. Errors splits it.
	CollectAll
)

const (
	FailFastStr   = "fail-fast"
	CollectAllStr = "collect-all"
)

// String returns "fail-fast" or "collect-all", and "unknown" for values
// outside the constants.
func (m Mode) String() string {
	switch m {
	case FailFast:
		return FailFastStr
	case CollectAll:
		return CollectAllStr
	default:
		return "unknown"
	}
}

// ParseMode converts a textual mode into a Mode. Kebab, snake and Camel
// spellings are accepted:
//
//	"fail-fast", "FailFast", "fail_fast"          -> FailFast
//	"collect-all", "CollectAll", "collect_all"    -> CollectAll
func ParseMode(s string) (Mode, error) {
	switch s {
	case FailFastStr, "FailFast", "fail_fast", "FAIL_FAST":
		return FailFast, nil
	case CollectAllStr, "CollectAll", "collect_all", "COLLECT_ALL":
		return CollectAll, nil
	default:
		return FailFast, &tgerrors.ParseError{Type: "Mode", Value: s}
	}
}

// Valid reports whether m is one of the constants.
func (m Mode) Valid() bool {
	return m == FailFast || m == CollectAll
}

// MarshalText encodes the mode as String. Invalid values yield a
// *errors.MarshalError.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, &tgerrors.MarshalError{Type: "Mode", Value: int(m)}
	}
	return []byte(m.String()), nil
}

// UnmarshalText decodes any spelling ParseMode accepts.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
