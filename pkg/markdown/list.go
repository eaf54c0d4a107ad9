package markdown

import (
	"fmt"
	"strings"
)

type ListGenerator struct {
	prefix PrefixGenerator
}

type PrefixGenerator func(int) string

func GenerateList(items []string, generator ListGenerator) string {
	if len(items) == 0 {
		return ""
	}
	res := generator.prefix(0) + items[0]
	for i, item := range items[1:] {
		res += "\n" + generator.prefix(i+1) + item
	}
	return res
}

func NewListGenerator(prefix PrefixGenerator) ListGenerator {
	return ListGenerator{prefix: prefix}
}

// GenerateOL numbers the items in visit order.
func GenerateOL(items []string) string {
	generator := NewListGenerator(func(i int) string { return fmt.Sprintf("%d. ", i+1) })
	return GenerateList(items, generator)
}

func GenerateUL(items []string) string {
	generator := NewListGenerator(func(int) string { return "- " })
	return GenerateList(items, generator)
}

// Sequence joins a visit order on one line: "V1 -> V0 -> V2".
func Sequence(items []string) string {
	return strings.Join(items, " -> ")
}
