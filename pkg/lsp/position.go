package lsp

import (
	lsp "github.com/sourcegraph/go-lsp"

	"src.simple-lang.dev/pkg/diag"
)

// Protocol positions count lines and UTF-16 code units within a line. "\r",
// "\n" and "\r\n" all end a line.

func rangeOf(s string, r diag.Ranger) lsp.Range {
	rg := r.Range()
	return lsp.Range{Start: positionOf(s, rg.From), End: positionOf(s, rg.To)}
}

// Returns the position of the byte offset idx in s.
func positionOf(s string, idx int) lsp.Position {
	var p lsp.Position
	for i, r := range s {
		if i >= idx {
			break
		}
		p = advance(s, i, r, p)
	}
	return p
}

// Returns the byte offset of the first rune at or after pos, or len(s) if
// there is none.
func offsetOf(s string, pos lsp.Position) int {
	var p lsp.Position
	for i, r := range s {
		if p.Line > pos.Line || p.Line == pos.Line && p.Character >= pos.Character {
			return i
		}
		p = advance(s, i, r, p)
	}
	return len(s)
}

// Returns the position after the rune r found at s[i:], which is at p.
func advance(s string, i int, r rune, p lsp.Position) lsp.Position {
	switch {
	case r == '\n' && i > 0 && s[i-1] == '\r':
	case r == '\r' || r == '\n':
		p.Line++
		p.Character = 0
	default:
		p.Character += utf16RuneLen(r)
	}
	return p
}

// utf16RuneLen mirrors unicode/utf16.RuneLen (Go 1.23+) for older toolchains.
func utf16RuneLen(r rune) int {
	switch {
	case 0 <= r && r < 0xd800, 0xe000 <= r && r < 0x10000:
		return 1
	case 0x10000 <= r && r <= 0x10ffff:
		return 2
	default:
		return -1
	}
}
