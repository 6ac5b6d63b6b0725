package primitive

import (
	"fmt"
	"strconv"
	"strings"
)

// objectIdentifier backs OBJECT IDENTIFIER: a well-formed dotted-decimal
// string with at least one component, each a non-negative integer. Unlike the OID
// primary key used throughout internal/mib (which only needs component-wise
// comparison), this type exists to validate and canonically render an OID
// carried as an SNMP value.
type objectIdentifier struct {
	components []int64
}

func newObjectIdentifier(initial string) (*objectIdentifier, error) {
	p := &objectIdentifier{}
	if err := p.Set(initial); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *objectIdentifier) Tag() Tag { return TagObjectIdentifier }

func (p *objectIdentifier) Printable() string {
	parts := make([]string, len(p.components))
	for i, c := range p.components {
		parts[i] = strconv.FormatInt(c, 10)
	}
	return strings.Join(parts, ".")
}

func (p *objectIdentifier) Set(printable string) error {
	parts := strings.Split(printable, ".")
	if len(parts) == 0 || (len(parts) == 1 && parts[0] == "") {
		return &ParseError{Tag: TagObjectIdentifier, Value: printable, Err: fmt.Errorf("must have at least one component")}
	}
	components := make([]int64, len(parts))
	for i, part := range parts {
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return &ParseError{Tag: TagObjectIdentifier, Value: printable, Err: err}
		}
		if n < 0 {
			return &ParseError{Tag: TagObjectIdentifier, Value: printable, Err: fmt.Errorf("component %d must be non-negative", n)}
		}
		components[i] = n
	}
	p.components = components
	return nil
}
