package primitive

// octetString backs OCTET STRING: any byte sequence, stored verbatim.
// There is no validation rule beyond "is a string" — per spec.md §4.B,
// OCTET STRING accepts any byte sequence.
type octetString struct {
	value string
}

func newOctetString(initial string) (*octetString, error) {
	return &octetString{value: initial}, nil
}

func (p *octetString) Tag() Tag          { return TagOctetString }
func (p *octetString) Printable() string { return p.value }

func (p *octetString) Set(printable string) error {
	p.value = printable
	return nil
}
