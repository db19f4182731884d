// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package egl

// withNone returns attribs terminated by None. A nil or empty list stays
// empty so that it is passed to EGL as NULL.
func withNone(attribs []Int) []Int {
	if len(attribs) == 0 {
		return nil
	}
	if len(attribs)%2 == 1 && attribs[len(attribs)-1] == None {
		return attribs
	}
	out := make([]Int, len(attribs), len(attribs)+1)
	copy(out, attribs)
	return append(out, None)
}

// Lookup returns the value paired with key in an attribute list of
// key/value pairs, stopping at None.
func Lookup(attribs []Int, key Int) (Int, bool) {
	for i := 0; i+1 < len(attribs); i += 2 {
		if attribs[i] == None {
			break
		}
		if attribs[i] == key {
			return attribs[i+1], true
		}
	}
	return 0, false
}
