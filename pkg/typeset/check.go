// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package typeset

import (
	"regexp"
	"strings"
)

var leftRightRegexp = regexp.MustCompile(`\\(left|right)\b`)

// CheckBalanced returns a *SyntaxError if text has unbalanced braces, unbalanced `\left`/`\right` pairs
// or math delimiters (`$`), which can't be part of a math expression.
//
// Escaped characters (like `\{`) are not counted.
func CheckBalanced(text string) error {
	var braces []int
	leftRight := 0
	for ii := 0; ii < len(text); ii++ {
		switch text[ii] {
		case '\\':
			if loc := leftRightRegexp.FindStringIndex(text[ii:]); loc != nil && loc[0] == 0 {
				if strings.HasPrefix(text[ii:], `\left`) {
					leftRight++
				} else {
					leftRight--
					if leftRight < 0 {
						return &SyntaxError{Text: text, Pos: ii, Msg: `\right without a matching \left`}
					}
				}
			}
			ii++ // Skip the escaped character.
		case '{':
			braces = append(braces, ii)
		case '}':
			if len(braces) == 0 {
				return &SyntaxError{Text: text, Pos: ii, Msg: "unexpected '}'"}
			}
			braces = braces[:len(braces)-1]
		case '$':
			return &SyntaxError{Text: text, Pos: ii, Msg: "math delimiters are not allowed"}
		}
	}
	if len(braces) > 0 {
		return &SyntaxError{Text: text, Pos: braces[len(braces)-1], Msg: "missing '}'"}
	}
	if leftRight > 0 {
		return &SyntaxError{Text: text, Pos: -1, Msg: `\left without a matching \right`}
	}
	return nil
}
