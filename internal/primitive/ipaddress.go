package primitive

import (
	"fmt"
	"strconv"
	"strings"
)

// ipAddress backs IPADDRESS: exactly four dot-separated octets, each in
// [0, 255]. Stored as the four raw bytes so Printable always re-renders
// the canonical dotted-quad form regardless of how the input was padded.
type ipAddress struct {
	octets [4]byte
}

func newIPAddress(initial string) (*ipAddress, error) {
	p := &ipAddress{}
	if err := p.Set(initial); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *ipAddress) Tag() Tag { return TagIPAddress }

func (p *ipAddress) Printable() string {
	return fmt.Sprintf("%d.%d.%d.%d", p.octets[0], p.octets[1], p.octets[2], p.octets[3])
}

func (p *ipAddress) Set(printable string) error {
	parts := strings.Split(printable, ".")
	if len(parts) != 4 {
		return &ParseError{Tag: TagIPAddress, Value: printable, Err: fmt.Errorf("expected 4 dot-separated octets, got %d", len(parts))}
	}
	var octets [4]byte
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return &ParseError{Tag: TagIPAddress, Value: printable, Err: err}
		}
		if n < 0 || n > 255 {
			return &ParseError{Tag: TagIPAddress, Value: printable, Err: fmt.Errorf("octet %d out of range [0,255]", n)}
		}
		octets[i] = byte(n)
	}
	p.octets = octets
	return nil
}
