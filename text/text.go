// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package text is a catalog of string leaf ops.
//
// Every op is [ops.Pure]. Positions and lengths count runes, not bytes:
// Len("héllo") is 5 and Slice("héllo", 1, 2) is "é". Locale-sensitive
// ops take a BCP 47 language tag such as "tr" or "de-DE"; the empty tag
// selects the root locale.
package text

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"code.hybscloud.com/ops"
)

var (
	// ErrCodePoint reports an invalid Unicode code point.
	ErrCodePoint = errors.New("text: invalid code point")
	// ErrIndex reports a position outside the string.
	ErrIndex = errors.New("text: index out of range")
	// ErrCount reports a negative repeat count.
	ErrCount = errors.New("text: invalid count")
	// ErrForm reports an unknown normalization form.
	ErrForm = errors.New("text: unknown normalization form")
	// ErrLocale reports a malformed language tag.
	ErrLocale = errors.New("text: invalid language tag")
	// ErrPattern reports a regular expression that does not compile.
	ErrPattern = errors.New("text: invalid pattern")
)

// Len yields the number of runes.
func Len[C any]() ops.Op[C, int] { return ops.Pure1[C](utf8.RuneCountInString) }

// FromCodePoint builds a string from int code points.
// It fails with [ErrCodePoint].
func FromCodePoint[C any]() ops.Op[C, string] { return ops.PartialV[C](fromCodePoint) }

func fromCodePoint(cps ...int) (string, error) {
	var b strings.Builder
	for _, cp := range cps {
		if cp < 0 || cp > unicode.MaxRune || (cp >= 0xD800 && cp <= 0xDFFF) {
			return "", fmt.Errorf("%w: %#x", ErrCodePoint, cp)
		}
		b.WriteRune(rune(cp))
	}
	return b.String(), nil
}

// CodePointAt yields the code point at rune position i.
// It fails with [ErrIndex].
func CodePointAt[C any]() ops.Op[C, int] {
	return ops.Partial2[C](func(s string, i int) (int, error) {
		rs := []rune(s)
		if i < 0 || i >= len(rs) {
			return 0, fmt.Errorf("%w: %d of %d", ErrIndex, i, len(rs))
		}
		return int(rs[i]), nil
	})
}

// CharAt yields the rune at position i as a string, or "" when i is out of
// range.
func CharAt[C any]() ops.Op[C, string] {
	return ops.Pure2[C](func(s string, i int) string {
		rs := []rune(s)
		if i < 0 || i >= len(rs) {
			return ""
		}
		return string(rs[i])
	})
}

// Concat joins any number of strings.
func Concat[C any]() ops.Op[C, string] {
	return ops.PureV[C](func(ss ...string) string { return strings.Join(ss, "") })
}

func Includes[C any]() ops.Op[C, bool]   { return ops.Pure2[C](strings.Contains) }
func StartsWith[C any]() ops.Op[C, bool] { return ops.Pure2[C](strings.HasPrefix) }
func EndsWith[C any]() ops.Op[C, bool]   { return ops.Pure2[C](strings.HasSuffix) }

// IndexOf yields the rune position of the first occurrence of the second
// operand, or -1.
func IndexOf[C any]() ops.Op[C, int] {
	return ops.Pure2[C](func(s, sub string) int { return runeIndex(s, strings.Index(s, sub)) })
}

// LastIndexOf yields the rune position of the last occurrence of the
// second operand, or -1.
func LastIndexOf[C any]() ops.Op[C, int] {
	return ops.Pure2[C](func(s, sub string) int { return runeIndex(s, strings.LastIndex(s, sub)) })
}

func runeIndex(s string, byteIndex int) int {
	if byteIndex < 0 {
		return -1
	}
	return utf8.RuneCountInString(s[:byteIndex])
}

// Slice yields the runes from start up to end. Negative positions count
// from the end; positions are clamped to the string, and an empty string
// results when start is not before end.
func Slice[C any]() ops.Op[C, string] {
	return ops.Pure3[C](func(s string, start, end int) string {
		rs := []rune(s)
		from, to := relative(start, len(rs)), relative(end, len(rs))
		if from >= to {
			return ""
		}
		return string(rs[from:to])
	})
}

func relative(i, n int) int {
	if i < 0 {
		return max(n+i, 0)
	}
	return min(i, n)
}

// Substring yields the runes between two positions, clamped to the string
// and swapped when given in reverse order.
func Substring[C any]() ops.Op[C, string] {
	return ops.Pure3[C](func(s string, start, end int) string {
		rs := []rune(s)
		from, to := clamp(start, len(rs)), clamp(end, len(rs))
		if from > to {
			from, to = to, from
		}
		return string(rs[from:to])
	})
}

func clamp(i, n int) int { return max(0, min(i, n)) }

// Repeat yields n copies of its operand. It fails with [ErrCount].
func Repeat[C any]() ops.Op[C, string] {
	return ops.Partial2[C](func(s string, n int) (string, error) {
		if n < 0 {
			return "", fmt.Errorf("%w: %d", ErrCount, n)
		}
		return strings.Repeat(s, n), nil
	})
}

// PadStart pads its first operand on the left with the third, repeated and
// truncated, up to the rune length given by the second.
func PadStart[C any]() ops.Op[C, string] {
	return ops.Pure3[C](func(s string, n int, pad string) string { return padding(s, n, pad) + s })
}

// PadEnd pads on the right.
func PadEnd[C any]() ops.Op[C, string] {
	return ops.Pure3[C](func(s string, n int, pad string) string { return s + padding(s, n, pad) })
}

func padding(s string, n int, pad string) string {
	missing := n - utf8.RuneCountInString(s)
	if missing <= 0 || pad == "" {
		return ""
	}
	ps := []rune(strings.Repeat(pad, missing/utf8.RuneCountInString(pad)+1))
	return string(ps[:missing])
}

func Trim[C any]() ops.Op[C, string] { return ops.Pure1[C](strings.TrimSpace) }

func TrimStart[C any]() ops.Op[C, string] {
	return ops.Pure1[C](func(s string) string { return strings.TrimLeftFunc(s, unicode.IsSpace) })
}

func TrimEnd[C any]() ops.Op[C, string] {
	return ops.Pure1[C](func(s string) string { return strings.TrimRightFunc(s, unicode.IsSpace) })
}

func Lower[C any]() ops.Op[C, string] { return ops.Pure1[C](strings.ToLower) }
func Upper[C any]() ops.Op[C, string] { return ops.Pure1[C](strings.ToUpper) }

// LocaleLower lower-cases its first operand with the rules of the
// language tag given by the second. It fails with [ErrLocale].
func LocaleLower[C any]() ops.Op[C, string] {
	return ops.Partial2[C](func(s, tag string) (string, error) {
		t, err := parseTag(tag)
		if err != nil {
			return "", err
		}
		return cases.Lower(t).String(s), nil
	})
}

// LocaleUpper upper-cases with the rules of the given language tag.
// It fails with [ErrLocale].
func LocaleUpper[C any]() ops.Op[C, string] {
	return ops.Partial2[C](func(s, tag string) (string, error) {
		t, err := parseTag(tag)
		if err != nil {
			return "", err
		}
		return cases.Upper(t).String(s), nil
	})
}

// LocaleCompare orders its first two operands with the collation of the
// language tag given by the third: -1, 0 or 1. It fails with [ErrLocale].
func LocaleCompare[C any]() ops.Op[C, int] {
	return ops.Partial3[C](func(a, b, tag string) (int, error) {
		t, err := parseTag(tag)
		if err != nil {
			return 0, err
		}
		return collate.New(t).CompareString(a, b), nil
	})
}

func parseTag(tag string) (language.Tag, error) {
	if tag == "" {
		return language.Und, nil
	}
	t, err := language.Parse(tag)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q: %w", ErrLocale, tag, err)
	}
	return t, nil
}

// Normalize yields the Unicode normalization of its first operand in the
// form named by the second: "NFC" (also ""), "NFD", "NFKC" or "NFKD".
// It fails with [ErrForm].
func Normalize[C any]() ops.Op[C, string] {
	return ops.Partial2[C](func(s, form string) (string, error) {
		f, ok := forms[form]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrForm, form)
		}
		return f.String(s), nil
	})
}

var forms = map[string]norm.Form{
	"":     norm.NFC,
	"NFC":  norm.NFC,
	"NFD":  norm.NFD,
	"NFKC": norm.NFKC,
	"NFKD": norm.NFKD,
}

// Match yields the leftmost match of the pattern given by the second
// operand and its submatches, or nil when there is none.
// It fails with [ErrPattern].
func Match[C any]() ops.Op[C, []string] {
	return ops.Partial2[C](func(s, pattern string) ([]string, error) {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPattern, err)
		}
		return re.FindStringSubmatch(s), nil
	})
}

// Split cuts its first operand around each instance of the second.
// An empty separator splits after each rune.
func Split[C any]() ops.Op[C, []string] { return ops.Pure2[C](strings.Split) }

// ReplaceAll replaces every non-overlapping instance of the second operand
// with the third.
func ReplaceAll[C any]() ops.Op[C, string] { return ops.Pure3[C](strings.ReplaceAll) }
