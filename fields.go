// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spayd

import (
	"strings"
	"unicode/utf8"
)

// A Field is a key-value pair of a descriptor.
type Field struct {
	Key   string
	Value string
}

// A FieldMap is an ordered, immutable mapping from field keys to values.
// The zero value is an empty map ready to use.
//
// Set on a key already present replaces its value and moves the key to
// the end, so the order of a FieldMap is the order in which keys were
// last set.
type FieldMap struct {
	f []Field
}

// NewFieldMap returns an empty FieldMap.
func NewFieldMap() FieldMap {
	return FieldMap{}
}

// Set returns a copy of m with key set to value.
func (m FieldMap) Set(key, value string) (FieldMap, error) {
	if err := checkField(key, value); err != nil {
		return m, err
	}
	f := make([]Field, 0, len(m.f)+1)
	for _, v := range m.f {
		if v.Key != key {
			f = append(f, v)
		}
	}
	return FieldMap{append(f, Field{key, value})}, nil
}

// Remove returns a copy of m without key.
// Removing a missing key returns m unchanged.
func (m FieldMap) Remove(key string) FieldMap {
	i := m.index(key)
	if i < 0 {
		return m
	}
	f := make([]Field, 0, len(m.f)-1)
	f = append(f, m.f[:i]...)
	return FieldMap{append(f, m.f[i+1:]...)}
}

// Get returns the value of key.
func (m FieldMap) Get(key string) (string, bool) {
	if i := m.index(key); i >= 0 {
		return m.f[i].Value, true
	}
	return "", false
}

// Len returns the number of fields in m.
func (m FieldMap) Len() int {
	return len(m.f)
}

// Entries returns the fields of m in order.
func (m FieldMap) Entries() []Field {
	return append([]Field(nil), m.f...)
}

func (m FieldMap) index(key string) int {
	for i, v := range m.f {
		if v.Key == key {
			return i
		}
	}
	return -1
}

// checkField validates a key-value pair.  Keys may not contain the
// key-value separator or the field terminator of either format.
func checkField(key, value string) error {
	switch {
	case key == "":
		return invalidField(key, "empty key")
	case strings.ContainsAny(key, ":*%"):
		return invalidField(key, "key contains a separator")
	case !utf8.ValidString(key):
		return invalidField(key, "key is not valid UTF-8")
	case !utf8.ValidString(value):
		return invalidField(key, "value is not valid UTF-8")
	}
	return nil
}
