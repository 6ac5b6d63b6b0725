package primitive

// sequence backs SEQUENCE, the structural marker for a table or container
// node. It holds no value: Printable is always empty and Set is always a
// successful no-op, per spec.md §3/§4.B.
type sequence struct{}

func newSequence() *sequence { return &sequence{} }

func (p *sequence) Tag() Tag          { return TagSequence }
func (p *sequence) Printable() string { return "" }
func (p *sequence) Set(string) error  { return nil }
