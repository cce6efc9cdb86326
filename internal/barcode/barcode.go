// Package barcode bridges UPC-A/EAN-13/EAN-8 representation inconsistencies.
// The same product can appear as "722776004623" or "0722776004623" depending
// on which system emitted the code, so lookups try every plausible form.
package barcode

import "strings"

// Canonical returns the canonical 13-digit zero-padded (EAN-13) form used as
// a product's stable identifier. Non-digit input is returned unchanged.
func Canonical(code string) string {
	if code == "" || !isDigits(code) {
		return code
	}
	if len(code) >= 13 {
		return code
	}
	return strings.Repeat("0", 13-len(code)) + code
}

// Normalize generates an ordered, duplicate-free list of candidate forms to
// try against a lookup. Non-digit input fails open as a single-element list.
func Normalize(code string) []string {
	if code == "" || !isDigits(code) {
		return []string{code}
	}

	stripped := strings.TrimLeft(code, "0")
	if stripped == "" {
		// All zeros; nothing sensible to derive.
		return []string{code}
	}

	variants := []string{code}
	if stripped != code {
		variants = append(variants, stripped)
	}

	switch length := len(code); {
	case length == 12:
		// UPC-A -> EAN-13 with a leading zero.
		variants = append(variants, "0"+code)
	case length == 13:
		// EAN-13 -> UPC-A, only when the leading zero is actually there.
		if code[0] == '0' {
			variants = append(variants, code[1:])
		}
	case length < 8:
		variants = append(variants, zeroPad(stripped, 8), zeroPad(stripped, 12), zeroPad(stripped, 13))
	case length == 8:
		// EAN-8 -> padded UPC-A and EAN-13 forms.
		variants = append(variants, zeroPad(stripped, 12), zeroPad(stripped, 13))
	case length < 12:
		variants = append(variants, zeroPad(stripped, 12), zeroPad(stripped, 13))
	case length > 13:
		variants = append(variants, zeroPad(stripped, 13), zeroPad(stripped, 12))
	}

	return dedupe(variants)
}

func zeroPad(code string, width int) string {
	if len(code) >= width {
		return code
	}
	return strings.Repeat("0", width-len(code)) + code
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

func dedupe(variants []string) []string {
	seen := make(map[string]bool, len(variants))
	result := make([]string, 0, len(variants))
	for _, v := range variants {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
