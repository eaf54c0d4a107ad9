package binarytree

import "errors"

var (
	ErrThreaded        = errors.New("tree is threaded")
	ErrNotThreaded     = errors.New("tree is not threaded")
	ErrModeMismatch    = errors.New("tree is threaded in a different mode")
	ErrUnsupportedMode = errors.New("unsupported traversal mode")
)
