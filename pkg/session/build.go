package session

import (
	"fmt"
	"strings"

	"github.com/mholzen/threadtree/pkg/binarytree"
)

// Attachment is one "parent:side" step, e.g. "V0:left".
type Attachment struct {
	Parent string
	Side   binarytree.Side
}

func ParseAttachment(raw string) (Attachment, error) {
	parent, side, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok || strings.TrimSpace(parent) == "" {
		return Attachment{}, fmt.Errorf("attachment must look like <parent>:<left|right>, got %q", raw)
	}
	s, err := binarytree.ParseSide(side)
	if err != nil {
		return Attachment{}, fmt.Errorf("cannot parse attachment %q: %w", raw, err)
	}
	return Attachment{Parent: strings.TrimSpace(parent), Side: s}, nil
}

// ParseAttachments accepts a mix of single attachments and comma separated lists.
func ParseAttachments(raw []string) ([]Attachment, error) {
	var attachments []Attachment
	for _, r := range raw {
		for _, token := range strings.Split(r, ",") {
			if strings.TrimSpace(token) == "" {
				continue
			}
			a, err := ParseAttachment(token)
			if err != nil {
				return nil, err
			}
			attachments = append(attachments, a)
		}
	}
	return attachments, nil
}

// Build creates a session with a root V0 and applies the attachments in order.
func Build(attachments []Attachment, opts ...Option) (*Session, error) {
	s := New(opts...)
	if _, err := s.AddRoot(); err != nil {
		return nil, err
	}
	for i, a := range attachments {
		if _, err := s.Attach(a.Parent, a.Side); err != nil {
			return nil, fmt.Errorf("cannot apply attachment %d: %w", i+1, err)
		}
	}
	return s, nil
}
