// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug derives ASCII product slugs such as "cafe-creme-250g".
//
// Cart entries whose product arrived without a slug get one from the product
// name, so the storefront can link back to the product page.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength bounds the length of a generated slug.
const MaxLength = 80

// stripMarks decomposes accented letters and drops the accents: é → e.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

/*
From converts s into a lowercase slug of ASCII letters, digits and single
hyphens, at most [MaxLength] bytes long.

Characters without an ASCII form (e.g. Bengali script) act as separators, so
the result may be empty.
*/
func From(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}

	var builder strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(folded) {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			pendingHyphen = true
			continue
		}

		hyphen := pendingHyphen && builder.Len() > 0
		width := 1
		if hyphen {
			width++
		}
		if builder.Len()+width > MaxLength {
			break
		}

		if hyphen {
			builder.WriteByte('-')
		}
		pendingHyphen = false
		builder.WriteRune(r)
	}

	return builder.String()
}
