package units

import (
	"fmt"
	"time"

	"github.com/rshade/baghouse/internal/field"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrUnknownQuantity indicates a catalog lookup for a name that does not exist.
const ErrUnknownQuantity = constError("unknown quantity")

// DefaultGuardWindow is how long a propagated write blocks updates on the
// side it was written to.
const DefaultGuardWindow = 50 * time.Millisecond

// Side selects one representation of a Pair.
type Side int

const (
	// SideA is the first unit (metric for every catalog quantity).
	SideA Side = iota
	// SideB is the second unit.
	SideB
)

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// String returns a human-readable representation of the Side.
func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Listener observes derived writes made by a Pair. A form layer uses it to
// push the value into the opposite field; if that push re-enters Update on
// the same Pair the guard suppresses it.
type Listener func(side Side, v field.Value)

// Result reports what an Update did.
type Result struct {
	// Side is the side the caller asked to update.
	Side Side

	// Suppressed is true when the update was dropped by the re-entrancy guard.
	Suppressed bool

	// Value is the value stored on Side (Empty after a parse failure).
	Value field.Value

	// Derived is the value written to the opposite side. It is only
	// meaningful when Propagated is true.
	Derived    field.Value
	Propagated bool

	// Err is the parse error, if any. It is advisory: state has already
	// been updated to reflect the failure.
	Err error
}

// Pair holds two linked representations of one Quantity.
//
// Exactly one side is authoritative at a time: the side most recently
// written by the caller. The other side is always derived from it.
// Pair is not safe for concurrent use; a calculation session owns it.
type Pair struct {
	q      Quantity
	values [2]field.Value
	auth   Side

	window   time.Duration
	now      func() time.Time
	guard    Side
	guardEnd time.Time
	guarded  bool

	// propagating is set while the listener runs, so the guard holds for the
	// synchronous call stack even with a zero window.
	propagating bool

	listener Listener
}

// Option configures a Pair.
type Option func(*Pair)

// WithGuardWindow sets the re-entrancy guard window. Non-positive values
// keep the guard only for the duration of the synchronous propagation.
func WithGuardWindow(d time.Duration) Option {
	return func(p *Pair) { p.window = d }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Pair) { p.now = now }
}

// WithListener registers the derived-write listener.
func WithListener(l Listener) Option {
	return func(p *Pair) { p.listener = l }
}

// NewPair creates an empty Pair for q with side A authoritative.
func NewPair(q Quantity, opts ...Option) *Pair {
	p := &Pair{
		q:      q,
		auth:   SideA,
		window: DefaultGuardWindow,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetListener replaces the derived-write listener.
func (p *Pair) SetListener(l Listener) { p.listener = l }

// Quantity returns the quantity this pair converts.
func (p *Pair) Quantity() Quantity { return p.q }

// A returns the A-side value.
func (p *Pair) A() field.Value { return p.values[SideA] }

// B returns the B-side value.
func (p *Pair) B() field.Value { return p.values[SideB] }

// Value returns the value on side.
func (p *Pair) Value(side Side) field.Value { return p.values[side] }

// Authoritative returns the side the caller last wrote.
func (p *Pair) Authoritative() Side { return p.auth }

// Guarded reports whether updates on side are currently suppressed.
func (p *Pair) Guarded(side Side) bool {
	if !p.guarded || p.guard != side {
		return false
	}
	if p.propagating || p.now().Before(p.guardEnd) {
		return true
	}
	p.guarded = false
	return false
}

// Reset clears the re-entrancy guard. Values are kept.
func (p *Pair) Reset() {
	p.guarded = false
	p.guardEnd = time.Time{}
}

// Clear empties both sides and the guard.
func (p *Pair) Clear() {
	p.values = [2]field.Value{}
	p.auth = SideA
	p.Reset()
}

// Update parses raw and stores it on side, then derives the opposite side.
//
//   - While side is guarded by a recent propagation the request is dropped.
//   - Unparseable text clears side to Empty, leaves the opposite side
//     untouched and reports the parse error.
//   - Blank text empties both sides.
//   - A number is stored as typed; the opposite side receives the converted
//     value rounded to its display precision.
func (p *Pair) Update(side Side, raw string) Result {
	if p.Guarded(side) {
		return Result{Side: side, Suppressed: true, Value: p.values[side]}
	}

	v, err := field.Parse(raw)
	if err != nil {
		p.values[side] = field.Empty()
		p.auth = side
		return Result{Side: side, Value: p.values[side], Err: err}
	}
	return p.apply(side, v)
}

// Set stores an already-parsed value on side and derives the opposite side.
// It obeys the same guard as Update.
func (p *Pair) Set(side Side, v field.Value) Result {
	if p.Guarded(side) {
		return Result{Side: side, Suppressed: true, Value: p.values[side]}
	}
	return p.apply(side, v)
}

func (p *Pair) apply(side Side, v field.Value) Result {
	other := side.Other()

	derived := field.Empty()
	if v.IsSet() {
		derived = field.Number(p.q.Convert(side, v.Float())).Round(p.q.Precision(other))
	}

	// Both sides change in one step, then the guard goes up before anyone
	// is told about the derived write.
	p.values[side] = v
	p.values[other] = derived
	p.auth = side
	p.guard = other
	p.guarded = true
	p.guardEnd = p.now().Add(p.window)

	if p.listener != nil {
		p.propagating = true
		p.listener(other, derived)
		p.propagating = false
	}

	if p.window <= 0 {
		p.guarded = false
	}

	return Result{Side: side, Value: v, Derived: derived, Propagated: true}
}
