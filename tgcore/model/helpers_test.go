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

package model_test

import (
	"errors"
	"strings"
	"testing"

	"dirpx.dev/tgdf/tgcore/model"
)

// unit is a minimal Checked and Loggable implementation.
type unit struct {
	Name   string
	Secret string
}

func (u unit) Validate() error {
	if u.Name == "" {
		return errors.New("name required")
	}
	return nil
}

func (u unit) TypeName() string { return "unit" }
func (u unit) Redacted() string { return "unit{" + u.Name + ", [REDACTED]}" }
func (u unit) String() string   { return "unit{" + u.Name + ", " + u.Secret + "}" }

func TestValidateAll(t *testing.T) {
	t.Run("all valid", func(t *testing.T) {
		if err := model.ValidateAll([]unit{{Name: "kg"}, {Name: "g"}}); err != nil {
			t.Fatalf("ValidateAll() = %v, want nil", err)
		}
	})

	t.Run("empty slice", func(t *testing.T) {
		if err := model.ValidateAll([]unit(nil)); err != nil {
			t.Fatalf("ValidateAll(nil) = %v, want nil", err)
		}
	})

	t.Run("reports every failure", func(t *testing.T) {
		err := model.ValidateAll([]unit{{Name: "kg"}, {}, {Name: "g"}, {}})
		if err == nil {
			t.Fatal("ValidateAll() = nil, want error")
		}
		msg := err.Error()
		for _, want := range []string{"values[1] (unit)", "values[3] (unit)", "name required"} {
			if !strings.Contains(msg, want) {
				t.Errorf("ValidateAll() error %q does not mention %q", msg, want)
			}
		}
		if strings.Contains(msg, "values[0]") || strings.Contains(msg, "values[2]") {
			t.Errorf("ValidateAll() error %q mentions a valid element", msg)
		}
	})
}

func TestSafeString(t *testing.T) {
	u := unit{Name: "kg", Secret: "hunter2"}

	if got := model.SafeString(u, false); strings.Contains(got, "hunter2") {
		t.Errorf("SafeString(unsafe=false) = %q, leaks secret", got)
	}
	if got := model.SafeString(u, true); !strings.Contains(got, "hunter2") {
		t.Errorf("SafeString(unsafe=true) = %q, want full form", got)
	}
}
