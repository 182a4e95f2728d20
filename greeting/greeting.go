// Package greeting spells out text from individually held characters.
package greeting

import (
	"context"
	"strings"
)

// CharacterProvider yields a single character.
type CharacterProvider interface {
	Character() rune
}

// TextProvider yields a complete piece of text.
type TextProvider interface {
	Text() string
}

// Refresher is implemented by text providers whose source must be reloaded
// before each read. The processor calls Refresh ahead of Text when present.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// StaticCharacter is a CharacterProvider that always returns itself.
type StaticCharacter rune

// Character returns the held character.
func (c StaticCharacter) Character() rune {
	return rune(c)
}

// Assembler concatenates an ordered, fixed sequence of characters.
type Assembler struct {
	chars []CharacterProvider
}

// NewAssembler returns an Assembler over chars. The slice is copied so the
// caller cannot reorder or extend the sequence afterwards.
func NewAssembler(chars ...CharacterProvider) *Assembler {
	cp := make([]CharacterProvider, len(chars))
	copy(cp, chars)
	return &Assembler{chars: cp}
}

// NewHelloWorld returns the Assembler for "Hello, World!".
func NewHelloWorld() *Assembler {
	return NewAssembler(
		StaticCharacter('H'), StaticCharacter('e'),
		StaticCharacter('l'), StaticCharacter('l'),
		StaticCharacter('o'), StaticCharacter(','),
		StaticCharacter(' '), StaticCharacter('W'),
		StaticCharacter('o'), StaticCharacter('r'),
		StaticCharacter('l'), StaticCharacter('d'),
		StaticCharacter('!'),
	)
}

// Text concatenates every character in sequence order.
func (a *Assembler) Text() string {
	var sb strings.Builder
	for _, c := range a.chars {
		sb.WriteRune(c.Character())
	}
	return sb.String()
}
