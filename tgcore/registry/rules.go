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

package registry

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"dirpx.dev/tgdf/tgcore/item"
	"github.com/cockroachdb/apd/v3"
	"golang.org/x/text/currency"
)

// Rule is the predicate of a primitive type. Check returns nil when s is
// acceptable and otherwise an error whose message explains the violation.
type Rule interface {
	Check(s string) error
}

// RuleFunc adapts a function to Rule.
type RuleFunc func(s string) error

// Check calls f(s).
func (f RuleFunc) Check(s string) error { return f(s) }

// UnitSet is the set of units a quantity type permits.
type UnitSet interface {
	Contains(unit string) bool
	Len() int
	String() string
}

type unitList struct {
	units []string
	set   map[string]struct{}
}

// Units returns a fixed unit set in the given order.
func Units(units ...string) UnitSet {
	l := &unitList{units: append([]string(nil), units...), set: make(map[string]struct{}, len(units))}
	for _, u := range units {
		l.set[u] = struct{}{}
	}
	return l
}

func (l *unitList) Contains(unit string) bool {
	_, ok := l.set[unit]
	return ok
}

func (l *unitList) Len() int { return len(l.units) }

func (l *unitList) String() string { return "{" + strings.Join(l.units, ", ") + "}" }

type iso4217 struct{}

// ISO4217 is the unit set of currency amounts: recognised upper-case ISO
// 4217 codes such as "EUR" or "USD".
func ISO4217() UnitSet { return iso4217{} }

func (iso4217) Contains(unit string) bool {
	if len(unit) != 3 || strings.ToUpper(unit) != unit {
		return false
	}
	_, err := currency.ParseISO(unit)
	return err == nil
}

// Len reports a non-empty set; the codes are not enumerated.
func (iso4217) Len() int { return 1 }

func (iso4217) String() string { return "ISO 4217 codes" }

var numberRegexp = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?$`)

// Rules of the built-in primitives.
var (
	TextRule     Rule = RuleFunc(checkText)
	NumberRule   Rule = RuleFunc(checkNumber)
	DateRule     Rule = RuleFunc(checkDate)
	InstantRule  Rule = RuleFunc(checkInstant)
	EmailRule    Rule = RuleFunc(checkEmail)
	FlexnameRule Rule = RuleFunc(checkFlexname)
)

func checkText(s string) error {
	if s == "" {
		return errors.New("text must not be empty")
	}
	if strings.TrimSpace(s) != s {
		return fmt.Errorf("%q has leading or trailing whitespace", s)
	}
	return nil
}

func checkNumber(s string) error {
	if !numberRegexp.MatchString(s) {
		return fmt.Errorf("%q is not a number", s)
	}
	return nil
}

func checkDate(s string) error {
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return fmt.Errorf("%q is not a calendar date (YYYY-MM-DD)", s)
	}
	return nil
}

func checkInstant(s string) error {
	if !strings.HasSuffix(s, "Z") {
		return fmt.Errorf("%q is not a UTC instant", s)
	}
	if _, err := time.Parse(time.RFC3339, s); err != nil {
		return fmt.Errorf("%q is not an RFC 3339 timestamp", s)
	}
	return nil
}

func checkEmail(s string) error {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return fmt.Errorf("%q is not an email address", s)
	}
	return nil
}

func checkFlexname(s string) error {
	if !item.IsFlexname(s) {
		return fmt.Errorf("%q is not a flexname", s)
	}
	return nil
}

// Range returns a rule accepting numbers in the closed interval [lo, hi].
// Bounds are compared as exact decimals. Range panics if a bound is not a
// decimal literal.
func Range(lo, hi string) Rule {
	lower, upper := mustDecimal(lo), mustDecimal(hi)
	return RuleFunc(func(s string) error {
		if err := checkNumber(s); err != nil {
			return err
		}
		d, _, err := apd.NewFromString(s)
		if err != nil {
			return fmt.Errorf("%q is not a number", s)
		}
		if d.Cmp(lower) < 0 || d.Cmp(upper) > 0 {
			return fmt.Errorf("%s is outside [%s, %s]", s, lo, hi)
		}
		return nil
	})
}

func mustDecimal(s string) *apd.Decimal {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		panic("registry: bad decimal bound " + s)
	}
	return d
}

// Pattern returns a rule accepting scalars matched by re.
func Pattern(re *regexp.Regexp) Rule {
	return RuleFunc(func(s string) error {
		if !re.MatchString(s) {
			return fmt.Errorf("%q does not match %s", s, re)
		}
		return nil
	})
}
