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

// Names of the built-in types.
const (
	Text          = "text"
	Number        = "number"
	Date          = "date"
	Instant       = "instant"
	Email         = "email"
	Flexname      = "flexname"
	Latitude      = "latitude"
	Longitude     = "longitude"
	Altitude      = "altitude"
	Weight        = "weight"
	Distance      = "distance"
	Volume        = "volume"
	Temperature   = "temperature"
	Area          = "area"
	Speed         = "speed"
	Duration      = "duration"
	Currency      = "currency"
	YesNo         = "yesno"
	PersonName    = "person_name"
	FullName      = "full_person_name"
	Contact       = "contact"
	Person        = "person"
	EarthLocation = "earth_location"
)

// Builtins returns fresh definitions of the built-in catalogue in
// registration order.
func Builtins() []*Type {
	return []*Type{
		Primitive(Text, TextRule),
		Primitive(Number, NumberRule),
		Primitive(Date, DateRule),
		Primitive(Instant, InstantRule),
		Primitive(Email, EmailRule),
		Primitive(Flexname, FlexnameRule),
		Primitive(Latitude, Range("-90", "90")),
		Primitive(Longitude, Range("-180", "180")),
		Primitive(Altitude, NumberRule),

		Quantity(Weight, Units("kg", "g", "mg", "lb", "oz", "stone")),
		Quantity(Distance, Units("km", "m", "cm", "mm", "mi", "yd", "ft", "in")),
		Quantity(Volume, Units("l", "ml", "gal", "qt", "pt", "cup", "fl_oz", "tbsp", "tsp", "m3", "cm3")),
		Quantity(Temperature, Units("celsius", "fahrenheit", "kelvin")),
		Quantity(Area, Units("m2", "km2", "hectare", "acre", "sq_ft", "sq_mi", "sq_in")),
		Quantity(Speed, Units("km_h", "m_s", "mph", "knot")),
		Quantity(Duration, Units("seconds", "minutes", "hours", "days", "weeks", "months", "years")),
		Quantity(Currency, ISO4217()),

		Enum(YesNo, "yes", "no"),

		Composite(PersonName,
			Required("first", Text),
			Required("last", Text),
		),
		Composite(FullName,
			Required("first_name", Text),
			Optional("middle_names", Text),
			Optional("maiden_name", Text),
			Required("last_name", Text),
		),
		Composite(Contact,
			Optional("email", Email),
			Optional("phone", Text),
			Optional("address", Text),
		),
		Composite(Person,
			Required("name", Text),
			Optional("birth_date", Date),
			Required("contact", Contact),
		),
		Composite(EarthLocation,
			Required("latitude", Latitude),
			Required("longitude", Longitude),
			Optional("altitude", Altitude),
		),
	}
}

// NewBuiltin returns a registry holding the built-in catalogue.
func NewBuiltin() *Registry {
	r := New()
	for _, t := range Builtins() {
		r.MustRegister(t)
	}
	return r
}
