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

package model

import (
	"fmt"

	"dirpx.dev/rxmerr"
)

// Checked is the constraint of ValidateAll: anything that validates itself
// and can name its type.
type Checked interface {
	Validatable
	Identifiable
}

// ValidateAll validates every element of values and returns one error that
// aggregates all failures, or nil when every element is valid.
//
// Each failure is wrapped with its zero-based index and type name, so that
// "values[2] (Definition): ..." points straight at the culprit. The whole
// slice is always processed; an early failure never hides later ones.
//
//	if err := model.ValidateAll(defs); err != nil {
//	    return fmt.Errorf("definitions rejected: %w", err)
//	}
func ValidateAll[T Checked](values []T) error {
	c := rxmerr.NewCollector()

	for i, v := range values {
		if err := v.Validate(); err != nil {
			c.Append(fmt.Errorf("values[%d] (%s): %w", i, v.TypeName(), err))
		}
	}

	return c.Err()
}

// SafeString returns the redacted form of v, or the full form when unsafe is
// true. It keeps the decision to log personal data explicit at the call site.
//
//	logger.Debug().Str("item", model.SafeString(it, false)).Msg("rejected")
func SafeString[T Loggable](v T, unsafe bool) string {
	if unsafe {
		return v.String()
	}
	return v.Redacted()
}
