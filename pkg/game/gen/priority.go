package gen

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Priority orders generation steps. It is a dotted list of integers
// compared level by level ("1" < "1.5" < "2"); missing levels count as 0.
type Priority []int

// NewPriority creates a priority from its levels
func NewPriority(levels ...int) Priority {
	return Priority(append([]int(nil), levels...))
}

// Compare returns -1, 0 or 1
func (p Priority) Compare(o Priority) int {
	n := max(len(p), len(o))
	for i := 0; i < n; i++ {
		a, b := p.level(i), o.level(i)
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
	}
	return 0
}

// Equal returns true if both priorities compare equal
func (p Priority) Equal(o Priority) bool {
	return p.Compare(o) == 0
}

func (p Priority) level(i int) int {
	if i < len(p) {
		return p[i]
	}
	return 0
}

func (p Priority) String() string {
	if len(p) == 0 {
		return "0"
	}
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ".")
}

// ParsePriority parses the dotted form produced by String
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty priority")
	}
	parts := strings.Split(s, ".")
	p := make(Priority, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid priority %q: %w", s, err)
		}
		p[i] = v
	}
	return p, nil
}

// MarshalYAML writes the priority as a dotted string
func (p Priority) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// UnmarshalYAML accepts either an integer or a dotted string
func (p *Priority) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: priority must be a scalar", value.Line)
	}
	parsed, err := ParsePriority(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*p = parsed
	return nil
}
