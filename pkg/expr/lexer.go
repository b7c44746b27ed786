// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package expr

import (
	"fmt"
	"strings"
	"text/scanner"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of expression"
	}
	return fmt.Sprintf("%q", t.text)
}

// multiCharOps are the operators made of more than one character, longest first.
var multiCharOps = []string{"===", "!==", "**", "<=", ">=", "==", "!="}

// tokenize splits text into tokens, using text/scanner for numbers and identifiers.
// It panics with a *positionedError on invalid input.
func tokenize(text string) []token {
	var sc scanner.Scanner
	sc.Init(strings.NewReader(text))
	sc.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	var scanErr *positionedError
	sc.Error = func(s *scanner.Scanner, msg string) {
		if scanErr == nil {
			scanErr = &positionedError{pos: s.Position.Offset, err: fmt.Errorf("%s", msg)}
		}
	}

	var tokens []token
	for {
		r := sc.Scan()
		if r == scanner.Int || r == scanner.Float {
			// Number literals are validated by parseNumber, which also accepts "08".
			scanErr = nil
		}
		if scanErr != nil {
			panic(scanErr)
		}
		pos := sc.Position.Offset
		switch r {
		case scanner.EOF:
			tokens = append(tokens, token{kind: tokEOF, pos: len(text)})
			return tokens
		case scanner.Int, scanner.Float:
			tokens = append(tokens, token{kind: tokNumber, text: sc.TokenText(), pos: pos})
		case scanner.Ident:
			tokens = append(tokens, token{kind: tokIdent, text: sc.TokenText(), pos: pos})
		default:
			op := sc.TokenText()
			for _, candidate := range multiCharOps {
				if strings.HasPrefix(text[pos:], candidate) {
					op = candidate
					break
				}
			}
			if !strings.ContainsRune("+-*/%^()<>=!?:,.", r) {
				throwAt(pos, "unexpected character %q", r)
			}
			for range len(op) - 1 {
				sc.Next()
			}
			tokens = append(tokens, token{kind: tokOp, text: op, pos: pos})
		}
	}
}
