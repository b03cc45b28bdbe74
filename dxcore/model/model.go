/*
   Copyright 2025 The DIRPX Authors

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

// Package model defines the contracts shared by every dxenigma configuration
// value: letters, wirings, plugboard pairs, rotor specifications, machine
// settings and the settings schema version.
//
// A machine key (rotor order, ring settings, start positions, plugboard) is
// secret material in the domain this package models, so the contracts keep a
// strict split between String, which MAY reveal the key and is intended for
// tests and local debugging, and Redacted, which MUST hide it and is the only
// representation that may reach a log.
//
// Configuration values are immutable value types. The runtime machine parts
// built from them (rotor.Rotor, machine.Machine) are not models: they carry
// mutable mechanical state and are never serialized.
//
// The generic helpers in this package take the value form of a model
// (ValidateAll, MustValidate, SafeString, ToJSON, ToYAML) or a pointer to it
// (FromJSON, FromYAML).
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the root interface combining all contracts required for dxenigma
// configuration values.
//
// Implementations MUST satisfy every embedded interface. Validatable keeps
// invalid keys from ever reaching a machine constructor; Serializable gives
// round-trip JSON and YAML for settings documents; Loggable keeps keys out of
// logs; Identifiable supplies a constant type name for diagnostics; and
// ZeroCheckable lets optional settings (such as a notch override) be
// omitted.
//
// Example implementation:
//
//	type Indicator struct {
//	    Letters string
//	}
//
//	func (i Indicator) Validate() error      { ... }
//	func (i Indicator) TypeName() string     { return "Indicator" }
//	func (i Indicator) IsZero() bool         { return i.Letters == "" }
//	func (i Indicator) Redacted() string     { return "Indicator{[REDACTED]}" }
//	func (i Indicator) String() string       { return "Indicator{" + i.Letters + "}" }
//	// ... MarshalJSON, UnmarshalJSON, MarshalYAML, UnmarshalYAML
//
//	var _ model.Model = (*Indicator)(nil)
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Value is the part of Model a type implements on its value receiver.
// Decoders need a pointer, so a value type such as Settings satisfies
// Value while only *Settings satisfies Model. The read-side helpers take
// a Value.
type Value interface {
	Validatable
	Loggable
	Identifiable
	ZeroCheckable
}

// Decodable is satisfied by *T when *T implements Model. FromJSON and
// FromYAML use it to decode into a value type through its pointer.
type Decodable[T any] interface {
	*T
	Model
}

// Validatable is implemented by values that can check their own invariants.
//
// Validate MUST return nil if and only if the value can be handed to a
// machine constructor. Violations SHOULD be reported with the typed errors
// from dxcore/errors so that callers can match them with errors.Is:
// ErrInvalidLetter for range violations, ErrInvalidPermutation for table
// structure violations, ErrConfigurationMismatch for cross-field
// inconsistencies.
//
// Validate MUST be fast, deterministic and free of side effects. It MUST NOT
// mutate the receiver.
type Validatable interface {
	// Validate checks that the value satisfies all invariants.
	Validate() error
}

// Serializable is implemented by values that round-trip through JSON and
// YAML settings documents.
//
// Marshal methods MUST refuse to encode an invalid value, so an invalid key
// never reaches a file. Unmarshal methods MUST validate what they decoded
// and return the validation error; the receiver MUST NOT be used after an
// unmarshal error.
//
// Implementations SHOULD use the local "type alias" pattern to avoid
// recursing into their own methods:
//
//	func (s Spec) MarshalJSON() ([]byte, error) {
//	    if err := s.Validate(); err != nil {
//	        return nil, err
//	    }
//	    type alias Spec
//	    return json.Marshal(alias(s))
//	}
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable is implemented by values with a key-safe string form.
//
// Redacted MUST hide every element of a machine key: start positions, ring
// settings and plugboard pairs. It MAY show non-secret structure such as
// the type name or the number of plugboard pairs. String MAY show
// everything and MUST NOT be used for production logging.
type Loggable interface {
	// Redacted returns a representation that is safe to log.
	Redacted() string

	// String returns a full representation that may reveal key material.
	String() string
}

// Identifiable is implemented by values that report a constant CamelCase
// type name without a package prefix (for example, "Letter" or "Settings").
type Identifiable interface {
	// TypeName returns the canonical name of this model type.
	TypeName() string
}

// ZeroCheckable is implemented by values that can report an unset state.
//
// A zero Letter (0) is never a valid letter; it is used as "not given" by
// optional settings such as a notch override. IsZero MUST be fast and MUST
// NOT allocate.
type ZeroCheckable interface {
	// IsZero reports whether the value is in its zero (unset) state.
	IsZero() bool
}

// Comparable is an optional contract for values with a typed equality.
type Comparable[T any] interface {
	// Equal reports whether the receiver and other hold the same value.
	Equal(other T) bool
}

// Cloneable is an optional contract for values that can produce an
// independent deep copy.
type Cloneable[T any] interface {
	// Clone returns a copy that shares no mutable state with the receiver.
	Clone() T
}
