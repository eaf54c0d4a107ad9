package binarytree

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mode selects a traversal order.
type Mode int

const (
	PreOrder Mode = iota
	InOrder
	PostOrder
)

var modeNames = map[Mode]string{
	PreOrder:  "preorder",
	InOrder:   "inorder",
	PostOrder: "postorder",
}

var modeAliases = map[string]Mode{
	"pre":        PreOrder,
	"preorder":   PreOrder,
	"pre-order":  PreOrder,
	"in":         InOrder,
	"inorder":    InOrder,
	"in-order":   InOrder,
	"post":       PostOrder,
	"postorder":  PostOrder,
	"post-order": PostOrder,
}

// Casers keep state, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// Title is the label a host shows for the mode, e.g. "Preorder Traversal".
func (m Mode) Title() string {
	return cases.Title(language.English).String(m.String() + " traversal")
}

// ParseMode accepts pre, in, post and their long forms, in any case.
func ParseMode(s string) (Mode, error) {
	key := fold(s)
	if mode, ok := modeAliases[key]; ok {
		return mode, nil
	}
	return 0, fmt.Errorf("%w: %q (must be one of: pre, in, post)", ErrUnsupportedMode, s)
}

func ListModes() []string {
	return []string{PreOrder.String(), InOrder.String(), PostOrder.String()}
}

// ParseSide accepts left, right, l and r, in any case.
func ParseSide(s string) (Side, error) {
	switch fold(s) {
	case "l", "left":
		return Left, nil
	case "r", "right":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown side %q (must be left or right)", s)
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	side, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = side
	return nil
}
