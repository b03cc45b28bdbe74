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

// Package semver provides the schema version carried by dxenigma settings
// documents.
//
// The version follows Semantic Versioning 2.0.0 and is parsed and compared
// by github.com/blang/semver/v4. Only the major component is binding: a
// document written for a different major version than Current is rejected
// with a configuration mismatch, while minor and patch differences are
// accepted in both directions.
package semver

import (
	"encoding/json"
	"fmt"
	"strings"

	dxerrors "dirpx.dev/dxenigma/dxcore/errors"
	"dirpx.dev/dxenigma/dxcore/model"
	bsemver "github.com/blang/semver/v4"

	"gopkg.in/yaml.v3"
)

// Current is the settings schema version written by this module.
var Current = Version{Major: 1}

// Version is a SemVer 2.0.0 version: Major.Minor.Patch[-Prerelease][+Metadata].
//
// The zero value (0.0.0) means "not given". Settings documents without a
// version field decode to it and are read as Current.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	Metadata   string
}

// ParseVersion parses a SemVer string. A leading "v" and missing minor or
// patch components are accepted, so "1" and "v1.0" both read as 1.0.0.
//
//	ParseVersion("1.2.0")       -> Version{Major: 1, Minor: 2}
//	ParseVersion("v1.0.0-rc.1") -> Version{Major: 1, Prerelease: "rc.1"}
func ParseVersion(s string) (Version, error) {
	bv, err := bsemver.ParseTolerant(s)
	if err != nil {
		return Version{}, &dxerrors.ParseError{Type: "Version", Value: s}
	}
	return fromBlang(bv), nil
}

// MustParseVersion is like ParseVersion but panics on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func fromBlang(bv bsemver.Version) Version {
	var pre string
	if len(bv.Pre) > 0 {
		parts := make([]string, len(bv.Pre))
		for i, p := range bv.Pre {
			parts[i] = p.String()
		}
		pre = strings.Join(parts, ".")
	}

	return Version{
		Major:      int(bv.Major),
		Minor:      int(bv.Minor),
		Patch:      int(bv.Patch),
		Prerelease: pre,
		Metadata:   strings.Join(bv.Build, "."),
	}
}

func (v Version) toBlang() (bsemver.Version, error) {
	return bsemver.Parse(v.String())
}

// String returns the canonical form, for example "1.0.0" or "1.1.0-rc.1".
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	if v.Metadata != "" {
		s += "+" + v.Metadata
	}
	return s
}

// Redacted returns String; a schema version is not key material.
func (v Version) Redacted() string {
	return v.String()
}

// TypeName returns "Version".
func (v Version) TypeName() string {
	return "Version"
}

// IsZero reports whether v is exactly 0.0.0 with no prerelease or metadata.
func (v Version) IsZero() bool {
	return v == Version{}
}

// Validate rejects negative components and malformed identifiers.
func (v Version) Validate() error {
	if v.Major < 0 || v.Minor < 0 || v.Patch < 0 {
		return &dxerrors.ValidationError{Type: "Version", Reason: "negative component", Value: v.String()}
	}
	if _, err := v.toBlang(); err != nil {
		return &dxerrors.ValidationError{Type: "Version", Reason: err.Error(), Value: v.String()}
	}
	return nil
}

// Compare returns -1, 0 or +1 by SemVer precedence. Metadata is ignored.
// An invalid operand compares by its numeric core only.
func (v Version) Compare(other Version) int {
	a, errA := v.toBlang()
	b, errB := other.toBlang()
	if errA == nil && errB == nil {
		return a.Compare(b)
	}
	for _, d := range [...]int{v.Major - other.Major, v.Minor - other.Minor, v.Patch - other.Patch} {
		switch {
		case d < 0:
			return -1
		case d > 0:
			return 1
		}
	}
	return 0
}

// Equal reports whether both versions have the same precedence.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// Less reports whether v precedes other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// OrCurrent returns Current for the zero version and v otherwise.
func (v Version) OrCurrent() Version {
	if v.IsZero() {
		return Current
	}
	return v
}

// CheckCompatible returns a *errors.ConfigurationError when a document
// written with schema version v cannot be read by a reader at version
// reader. The zero version is read as Current.
func (v Version) CheckCompatible(reader Version) error {
	doc := v.OrCurrent()
	if err := doc.Validate(); err != nil {
		return err
	}
	if doc.Major != reader.Major {
		return &dxerrors.ConfigurationError{
			Field:  "Version",
			Reason: fmt.Sprintf("schema version %s is not compatible with %s", doc, reader),
		}
	}
	return nil
}

// MarshalJSON encodes a valid version as a JSON string.
func (v Version) MarshalJSON() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a JSON string through ParseVersion.
func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &dxerrors.UnmarshalError{Type: "Version", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML encodes a valid version as a scalar.
func (v Version) MarshalYAML() (any, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v.String(), nil
}

// UnmarshalYAML decodes a scalar through ParseVersion.
func (v *Version) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return &dxerrors.UnmarshalError{Type: "Version", Data: []byte(node.Value), Reason: "want a version string"}
	}
	parsed, err := ParseVersion(node.Value)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

var _ model.Model = (*Version)(nil)
var _ model.Comparable[Version] = Version{}
