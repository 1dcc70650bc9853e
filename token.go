// token.go
//
// This file implements the Token (game piece) model and the
// per-type beam interaction rules.

package lasermaze

import "fmt"

// TokenType identifies one of the six piece types. The set is closed,
// so beam interactions are dispatched with a plain switch rather than
// an interface hierarchy.
type TokenType int8

// The six piece types
const (
	Laser TokenType = iota
	TargetMirror
	BeamSplitter
	DoubleMirror
	Checkpoint
	CellBlocker
)

// TokenTypes lists every piece type
var TokenTypes = [...]TokenType{
	Laser, TargetMirror, BeamSplitter, DoubleMirror, Checkpoint, CellBlocker,
}

var tokenTypeNames = [...]string{
	"Laser", "TargetMirror", "BeamSplitter", "DoubleMirror", "Checkpoint", "CellBlocker",
}

// String returns the name of a TokenType
func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenTypeNames) {
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
	return tokenTypeNames[t]
}

// MarshalJSON encodes a TokenType as its name
func (t TokenType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON decodes a TokenType from its name
func (t *TokenType) UnmarshalJSON(b []byte) error {
	s := string(b)
	for i, name := range tokenTypeNames {
		if s == `"`+name+`"` {
			*t = TokenType(i)
			return nil
		}
	}
	return fmt.Errorf("invalid token type %s", s)
}

// OrientationRange returns the distinct rotation ordinals for a piece
// type, considering its rotational symmetry: the splitter, double
// mirror and checkpoint have 180° symmetry, the blocker is fully
// symmetric, and the laser and target mirror have none.
func (t TokenType) OrientationRange() []int {
	switch t {
	case BeamSplitter, DoubleMirror, Checkpoint:
		return []int{0, 1}
	case CellBlocker:
		return []int{0}
	default:
		return []int{0, 1, 2, 3}
	}
}

// Token is a single game piece: its type, an optional orientation
// (nil while the piece is still unrotated during the search), the lit
// state produced by beam simulation, and the target-specific fields.
// TargetLit is non-nil only for TargetMirror pieces.
type Token struct {
	Kind      TokenType    `json:"type"`
	Facing    *Orientation `json:"orientation"`
	Lit       bool         `json:"lit"`
	TargetLit *bool        `json:"target_lit"`
	MustLight bool         `json:"must_light"`
}

// Facing is a convenience for building an oriented token in place
func Facing(o Orientation) *Orientation {
	return &o
}

// NewToken constructs a Token with its type-specific defaults:
// only a TargetMirror keeps a must-light flag or a target-lit state,
// a CellBlocker is always oriented North (it has no rotational degrees
// of freedom), and blockers and lasers start out lit.
func NewToken(kind TokenType, facing *Orientation, mustLight bool) *Token {
	t := &Token{Kind: kind, Facing: facing}
	if kind == TargetMirror {
		t.MustLight = mustLight
		lit := false
		t.TargetLit = &lit
	}
	if kind == CellBlocker {
		t.Facing = Facing(North)
	}
	t.Lit = kind == CellBlocker || kind == Laser
	return t
}

// Clone returns an independent deep copy of a Token
func (t *Token) Clone() *Token {
	c := *t
	if t.Facing != nil {
		f := *t.Facing
		c.Facing = &f
	}
	if t.TargetLit != nil {
		tl := *t.TargetLit
		c.TargetLit = &tl
	}
	return &c
}

// Reset restores the lit state to its construction-time default, so
// that a board can be re-simulated without the tainted state of a
// previous pass
func (t *Token) Reset() {
	t.Lit = t.Kind == CellBlocker || t.Kind == Laser
	if t.TargetLit != nil {
		*t.TargetLit = false
	}
}

// ToggleMustLight flips the must-light flag; a no-op on anything but
// a TargetMirror
func (t *Token) ToggleMustLight() {
	if t.Kind == TargetMirror {
		t.MustLight = !t.MustLight
	}
}

// IsTargetLit reports whether the token is a target that has been lit
func (t *Token) IsTargetLit() bool {
	return t.TargetLit != nil && *t.TargetLit
}

// BeamResult is the outcome of one outbound beam slot of a piece
// interaction: either a world-frame direction, or a termination.
// A valid termination absorbs the beam legitimately (a target face,
// or the beam returning into the emitter); an invalid one means the
// beam hit a solid side, which disqualifies the configuration.
type BeamResult struct {
	Direction Orientation
	Outbound  bool
	Valid     bool
}

func outBeam(o Orientation) BeamResult {
	return BeamResult{Direction: o, Outbound: true, Valid: true}
}

func noBeam(valid bool) BeamResult {
	return BeamResult{Valid: valid}
}

// OutboundBeams computes the piece's response to a beam arriving from
// the given world-frame direction, marking the piece lit as a side
// effect. The inbound direction is rotated into the piece's local
// frame, looked up in the reference table (which assumes the piece
// faces North), and the results are rotated back out.
//
// Calling this on a token with no orientation set is a fatal
// precondition violation: the search never offers unoriented pieces
// to the simulator, so it panics rather than guessing.
func (t *Token) OutboundBeams(inbound Orientation) [2]BeamResult {
	if t.Facing == nil {
		panic("lasermaze: beam interaction on a token with no orientation set")
	}
	local := t.Facing.ReorientInbound(inbound)
	results := t.referenceOutboundBeams(local)
	for i, r := range results {
		if r.Outbound {
			results[i].Direction = t.Facing.ReorientOutbound(r.Direction)
		}
	}
	return results
}

// referenceOutboundBeams is the interaction table with every piece
// assumed to face North. Only the BeamSplitter fills both slots: the
// first is the reflection, the second the transmitted beam.
func (t *Token) referenceOutboundBeams(inbound Orientation) [2]BeamResult {
	switch t.Kind {
	case Laser:
		// A beam returning into the emitter after a full loop is a
		// valid self-intersection; a beam hitting any other side of
		// the laser is illegal
		if inbound == South {
			return [2]BeamResult{noBeam(true), noBeam(true)}
		}
		return [2]BeamResult{noBeam(false), noBeam(false)}

	case Checkpoint:
		// Transmissive along the north-south axis, solid east-west
		switch inbound {
		case North, South:
			t.Lit = true
			return [2]BeamResult{outBeam(inbound), noBeam(true)}
		default:
			return [2]BeamResult{noBeam(false), noBeam(false)}
		}

	case TargetMirror:
		t.Lit = true
		switch inbound {
		case North:
			return [2]BeamResult{outBeam(West), noBeam(true)}
		case West:
			// The mirror's back
			return [2]BeamResult{noBeam(false), noBeam(false)}
		case South:
			// The absorbing target face
			*t.TargetLit = true
			return [2]BeamResult{noBeam(true), noBeam(true)}
		default: // East
			return [2]BeamResult{outBeam(South), noBeam(true)}
		}

	case DoubleMirror:
		// Reference orientation `\`: North<->West, South<->East
		t.Lit = true
		switch inbound {
		case North:
			return [2]BeamResult{outBeam(West), noBeam(true)}
		case West:
			return [2]BeamResult{outBeam(North), noBeam(true)}
		case South:
			return [2]BeamResult{outBeam(East), noBeam(true)}
		default: // East
			return [2]BeamResult{outBeam(South), noBeam(true)}
		}

	case CellBlocker:
		// Acts as empty space for the beam; it only occupies the cell
		return [2]BeamResult{outBeam(inbound), noBeam(true)}

	default: // BeamSplitter
		// Reflects like the double mirror and also transmits
		t.Lit = true
		switch inbound {
		case North:
			return [2]BeamResult{outBeam(West), outBeam(inbound)}
		case West:
			return [2]BeamResult{outBeam(North), outBeam(inbound)}
		case South:
			return [2]BeamResult{outBeam(East), outBeam(inbound)}
		default: // East
			return [2]BeamResult{outBeam(South), outBeam(inbound)}
		}
	}
}

// tokenGlyphs are the single-character board-rendering glyphs,
// indexed by TokenType
var tokenGlyphs = [...]byte{'L', 'T', 'S', 'M', 'C', 'B'}

// orientationGlyphs are the facing markers, indexed by ordinal
var orientationGlyphs = [...]byte{'^', '>', 'v', '<'}

// String renders a Token as a two-character glyph: the piece letter
// and its facing marker ('?' while unrotated)
func (t *Token) String() string {
	if t == nil {
		return ". "
	}
	glyph := tokenGlyphs[t.Kind]
	facing := byte('?')
	if t.Facing != nil {
		facing = orientationGlyphs[t.Facing.Index()]
	}
	return string([]byte{glyph, facing})
}
