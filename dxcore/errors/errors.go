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

// Package errors provides the error types shared by every dxenigma package.
//
// Two families live here. The first family reports failures of the
// machine itself and maps one-to-one onto the machine's error taxonomy:
//
//   - LetterError (matches ErrInvalidLetter)
//     Returned when an operation receives a value outside [1,26] where a
//     letter is expected. Letters are never clamped or wrapped silently,
//     because silent wraparound would corrupt ciphertext.
//
//   - PermutationError (matches ErrInvalidPermutation)
//     Returned at construction time when a wiring, reflector or plugboard
//     table violates its structural invariant (not a bijection, has a fixed
//     point, is not an involution, overlapping swap pairs).
//
//   - ConfigurationError (matches ErrConfigurationMismatch)
//     Returned when a configuration is internally inconsistent: an unknown
//     catalog name, a rotor given both by name and by wiring, an
//     incompatible settings schema version.
//
// The second family is carried over from the model layer and reports
// failures of parsing, marshaling and unmarshaling typed values:
//
//   - ParseError, MarshalError, UnmarshalError, ValidationError.
//
// All errors are simple value carriers with stable message formats. Callers
// SHOULD match the machine family through the standard library:
//
//	if errors.Is(err, dxerrors.ErrInvalidLetter) {
//	    // skip the offending character
//	}
//
// and MAY use errors.As to reach the carrier for field-level details.
package errors

import (
	stderrors "errors"
	"strconv"
)

// Sentinel errors for the machine error taxonomy.
//
// The typed carriers below report themselves as these sentinels through
// their Is methods, so errors.Is works even when the carrier is wrapped
// several times with fmt.Errorf("...: %w", err).
var (
	// ErrInvalidLetter marks a value outside [1,26] where a letter was
	// expected.
	ErrInvalidLetter = stderrors.New("dxenigma: invalid letter")

	// ErrInvalidPermutation marks a substitution table that fails its
	// structural invariant.
	ErrInvalidPermutation = stderrors.New("dxenigma: invalid permutation")

	// ErrConfigurationMismatch marks an inconsistent machine configuration.
	ErrConfigurationMismatch = stderrors.New("dxenigma: configuration mismatch")
)

// LetterError is returned when a value outside [1,26] is presented where a
// letter is expected.
//
// Op names the operation that rejected the value (for example,
// "rotor.Forward" or "plugboard.Apply"), and Value is the rejected integer.
// A LetterError always indicates a caller or configuration bug: the machine
// alphabet is closed, so a well-behaved caller never produces one.
type LetterError struct {
	// Op is the operation that rejected the value.
	Op string

	// Value is the out-of-range integer.
	Value int
}

// Error implements the error interface for LetterError.
//
// The error message format is:
//
//	"dxenigma: {Op}: invalid letter {Value}, want 1..26"
func (e *LetterError) Error() string {
	return "dxenigma: " + e.Op + ": invalid letter " + strconv.Itoa(e.Value) + ", want 1..26"
}

// Is reports whether target is ErrInvalidLetter.
func (e *LetterError) Is(target error) bool {
	return target == ErrInvalidLetter
}

// PermutationError is returned when a substitution table fails its
// structural invariant.
//
// Type names the table kind ("Wiring", "Reflector", "Plugboard"), Reason
// describes the violated rule, and Letter optionally identifies the first
// offending letter (zero when not applicable).
type PermutationError struct {
	// Type is the logical name of the table being checked.
	Type string

	// Reason is a short, human-readable description of the violation.
	Reason string

	// Letter is the first offending letter in 1..26, or 0.
	Letter int
}

// Error implements the error interface for PermutationError.
//
// The error message format is:
//
//	"dxenigma: invalid {Type} permutation: {Reason}"
//	"dxenigma: invalid {Type} permutation: {Reason} (letter {Letter})"
func (e *PermutationError) Error() string {
	msg := "dxenigma: invalid " + e.Type + " permutation: " + e.Reason
	if e.Letter != 0 {
		msg += " (letter " + strconv.Itoa(e.Letter) + ")"
	}
	return msg
}

// Is reports whether target is ErrInvalidPermutation.
func (e *PermutationError) Is(target error) bool {
	return target == ErrInvalidPermutation
}

// ConfigurationError is returned when a machine configuration cannot be
// resolved into a consistent machine.
//
// Field is the dotted path of the offending setting (for example,
// "Left.Name" or "Version") and Reason explains the inconsistency.
type ConfigurationError struct {
	// Field is the dotted path of the offending setting. May be empty.
	Field string

	// Reason is a short, human-readable explanation.
	Reason string
}

// Error implements the error interface for ConfigurationError.
//
// The error message format is:
//
//	"dxenigma: configuration mismatch at {Field}: {Reason}"
//	"dxenigma: configuration mismatch: {Reason}" (when Field is empty)
func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return "dxenigma: configuration mismatch at " + e.Field + ": " + e.Reason
	}
	return "dxenigma: configuration mismatch: " + e.Reason
}

// Is reports whether target is ErrConfigurationMismatch.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfigurationMismatch
}

// ParseError is returned when parsing a string into a strongly typed value
// fails.
//
// Type identifies the logical type being parsed (for example, "Letter",
// "Pair", "RotorOrder"), and Value contains the exact string that could not
// be interpreted.
type ParseError struct {
	// Type is the logical name of the type being parsed (for example, "Letter").
	Type string

	// Value is the invalid textual representation that was provided.
	Value string
}

// Error implements the error interface for ParseError.
//
// The error message format is:
//
//	"dxenigma: invalid {Type} value: {Value}"
func (e *ParseError) Error() string {
	return "dxenigma: invalid " + e.Type + " value: " + e.Value
}

// MarshalError is returned when marshaling a typed value fails because the
// value is outside its valid domain.
//
// In most cases a MarshalError indicates a programming error (for example,
// a zero Letter that was never validated).
type MarshalError struct {
	// Type is the logical name of the type being marshaled (for example, "Letter").
	Type string

	// Value is the underlying numeric representation that could not be
	// marshaled.
	Value int
}

// Error implements the error interface for MarshalError.
//
// The error message format is:
//
//	"dxenigma: cannot marshal invalid {Type} value: {Value}"
//
// where Value is rendered as a decimal integer.
func (e *MarshalError) Error() string {
	return "dxenigma: cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// UnmarshalError is returned when unmarshaling data into a typed value fails.
//
// Type identifies the logical type being populated, Data contains the
// original raw payload, and Reason provides a human-readable description of
// what went wrong.
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	//
	// Reason SHOULD describe what went wrong rather than repeating the type
	// name; the type name is already reflected in Error().
	Reason string
}

// Error implements the error interface for UnmarshalError.
//
// The error message format is:
//
//	"dxenigma: cannot unmarshal {Type}: {Reason}"
//
// The Data field is intentionally not included in the formatted message.
func (e *UnmarshalError) Error() string {
	return "dxenigma: cannot unmarshal " + e.Type + ": " + e.Reason
}

// ValidationError is returned when validation of a model type fails for a
// reason that is neither a letter range violation nor a permutation
// violation (for example, an empty name or a malformed version).
type ValidationError struct {
	// Type is the logical name of the type being validated.
	Type string

	// Field is the name of the field that failed validation.
	// May be empty if the error applies to the entire type.
	Field string

	// Reason is a short, human-readable explanation of why validation failed.
	Reason string

	// Value optionally contains the invalid value.
	Value any
}

// Error implements the error interface for ValidationError.
//
// The error message format is:
//
//	"dxenigma: invalid {Type}.{Field}: {Reason}" (when Field is specified)
//	"dxenigma: invalid {Type}: {Reason}" (when Field is empty)
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "dxenigma: invalid " + e.Type + "." + e.Field + ": " + e.Reason
	}
	return "dxenigma: invalid " + e.Type + ": " + e.Reason
}
