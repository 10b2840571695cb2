package diag

// Ranger wraps the Range method.
type Ranger interface {
	// Range returns the range associated with the value.
	Range() Ranging
}

// Ranging represents a range [From, To) of byte offsets within a source. Structs
// can embed Ranging to satisfy the [Ranger] interface.
type Ranging struct {
	From int
	To   int
}

// Range returns the Ranging itself.
func (r Ranging) Range() Ranging { return r }

// PointRanging returns a zero-width Ranging at the given offset.
func PointRanging(p int) Ranging {
	return Ranging{p, p}
}

// Span returns a Ranging covering both a and b.
func Span(a, b Ranger) Ranging {
	ra, rb := a.Range(), b.Range()
	from, to := ra.From, rb.To
	if rb.From < from {
		from = rb.From
	}
	if ra.To > to {
		to = ra.To
	}
	return Ranging{from, to}
}
