// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spayd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSet(t *testing.T, m FieldMap, key, value string) FieldMap {
	t.Helper()
	m, err := m.Set(key, value)
	require.NoError(t, err)
	return m
}

func TestFieldMapOrder(t *testing.T) {
	var zero FieldMap
	assert.Equal(t, 0, zero.Len())
	assert.Empty(t, zero.Entries())

	m := NewFieldMap()
	m = mustSet(t, m, "AM", "1.00")
	m = mustSet(t, m, "CC", "CZK")
	m = mustSet(t, m, "MSG", "hello")
	assert.Equal(t, []Field{{"AM", "1.00"}, {"CC", "CZK"}, {"MSG", "hello"}},
		m.Entries())

	// Setting an existing key replaces the value and moves it last.
	m2 := mustSet(t, m, "AM", "2.00")
	assert.Equal(t, []Field{{"CC", "CZK"}, {"MSG", "hello"}, {"AM", "2.00"}},
		m2.Entries())
	assert.Equal(t, 3, m2.Len())
	v, ok := m2.Get("AM")
	assert.True(t, ok)
	assert.Equal(t, "2.00", v)

	// The parent is unchanged.
	v, _ = m.Get("AM")
	assert.Equal(t, "1.00", v)
	assert.Equal(t, "AM", m.Entries()[0].Key)
}

func TestFieldMapRemove(t *testing.T) {
	m := mustSet(t, mustSet(t, mustSet(t, FieldMap{}, "A", "1"), "B", "2"), "C", "3")
	r := m.Remove("B")
	assert.Equal(t, []Field{{"A", "1"}, {"C", "3"}}, r.Entries())
	assert.Equal(t, 3, m.Len())
	_, ok := r.Get("B")
	assert.False(t, ok)

	assert.Equal(t, m.Entries(), m.Remove("missing").Entries())
	assert.Equal(t, 0, FieldMap{}.Remove("A").Len())
}

func TestFieldMapEntriesCopy(t *testing.T) {
	m := mustSet(t, FieldMap{}, "A", "1")
	e := m.Entries()
	e[0].Value = "changed"
	v, _ := m.Get("A")
	assert.Equal(t, "1", v)
}

func TestFieldMapSharing(t *testing.T) {
	// Two children of one parent do not see each other's fields.
	p := mustSet(t, mustSet(t, FieldMap{}, "A", "1"), "B", "2")
	c1 := mustSet(t, p, "C", "x")
	c2 := mustSet(t, p, "D", "y")
	assert.Equal(t, []Field{{"A", "1"}, {"B", "2"}, {"C", "x"}}, c1.Entries())
	assert.Equal(t, []Field{{"A", "1"}, {"B", "2"}, {"D", "y"}}, c2.Entries())
}

func TestFieldMapInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"", "x"},
		{"A:B", "x"},
		{"A*B", "x"},
		{"A%2AB", "x"},
		{"\xff", "x"},
		{"MSG", "\xff\xfe"},
	}
	m := mustSet(t, FieldMap{}, "A", "1")
	for _, tt := range tests {
		m2, err := m.Set(tt.key, tt.value)
		assert.ErrorIs(t, err, ErrInvalidField, "%q=%q", tt.key, tt.value)
		assert.Equal(t, m.Entries(), m2.Entries())
	}
}
