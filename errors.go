// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spayd

import (
	"errors"
	"fmt"
)

// Errors returned by the package.
var (
	ErrInvalidField                = errors.New("spayd: invalid field")
	ErrCouldNotAddKeyWithValue     = errors.New("spayd: could not add key with value")
	ErrCouldNotSerializeDescriptor = errors.New("spayd: could not serialize descriptor")
	ErrMalformedDescriptor         = errors.New("spayd: malformed descriptor")
	ErrChecksumMismatch            = errors.New("spayd: checksum mismatch")
)

func invalidField(key, format string, args ...any) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidField, key, fmt.Sprintf(format, args...))
}

func couldNotAdd(key string, err error) error {
	return fmt.Errorf("%w %q: %w", ErrCouldNotAddKeyWithValue, key, err)
}

func couldNotSerialize(err error) error {
	return fmt.Errorf("%w: %w", ErrCouldNotSerializeDescriptor, err)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedDescriptor, fmt.Sprintf(format, args...))
}

// IsInputError reports whether err was caused by invalid caller input
// rather than by a failure further down the pipeline.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidField) ||
		errors.Is(err, ErrMalformedDescriptor) ||
		errors.Is(err, ErrChecksumMismatch)
}
