// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm canonicalizes free-form profile text before it is stored.
//
// # Usage
//
// Names and biographies typed on different keyboards can encode the same
// visible text with different code points ("é" vs "e" + combining acute).
// Storing the NFC form keeps equal-looking values byte-equal.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Clean returns s in Unicode NFC form, with control characters removed and
// surrounding whitespace trimmed. Line breaks and tabs are kept.
func Clean(s string) string {
	t := transform.Chain(norm.NFC, transform.RemoveFunc(isStrippable))
	result, _, err := transform.String(t, s)
	if err != nil {
		result = norm.NFC.String(s)
	}
	return strings.TrimSpace(result)
}

// Line behaves like [Clean] and also collapses every run of whitespace,
// including line breaks, into a single space. It suits single-line fields.
func Line(s string) string {
	return strings.Join(strings.Fields(Clean(s)), " ")
}

// isStrippable reports whether r is a control or format character other than
// ordinary whitespace.
func isStrippable(r rune) bool {
	if r == '\n' || r == '\t' || r == '\r' {
		return false
	}
	return unicode.IsControl(r) || unicode.Is(unicode.Cf, r)
}
