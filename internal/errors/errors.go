// Copyright 2023 SAP SE
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	"errors"
)

var (
	ErrGeometryParse        = errors.New("failed to parse geometry")
	ErrGeometryTypeMismatch = errors.New("geometry type mismatch")
	ErrPatternMismatch      = errors.New("value does not match the expected pattern")
	ErrMissingDimension     = errors.New("missing dimension")
	ErrEmptyRegconfig       = errors.New("regconfig mapping has no language tags")
	ErrInvalidAlphabet      = errors.New("invalid nanoid alphabet")
	ErrInvalidLength        = errors.New("invalid nanoid length")
	ErrUnknownKind          = errors.New("unknown column kind")
	ErrUnknownGeometryType  = errors.New("unknown geometry type")
)
