// Package direction implements the combined direction pointer and codel chooser state.
package direction

// Pointer is the travel direction of the direction pointer.
type Pointer uint8

// Direction pointer values in clockwise order.
const (
	Right Pointer = iota
	Down
	Left
	Up
)

// Chooser is the side of the travel direction that the codel chooser points to.
type Chooser uint8

// Codel chooser values.
const (
	ChooseLeft Chooser = iota
	ChooseRight
)

// State combines a direction pointer with a codel chooser. The name of each state
// describes the exit codel it selects: RightTop is the topmost codel of the rightmost edge.
type State uint8

// All 8 states.
const (
	RightTop    State = iota // DP right, CC left
	RightBottom              // DP right, CC right
	BottomRight              // DP down, CC left
	BottomLeft               // DP down, CC right
	LeftBottom               // DP left, CC left
	LeftTop                  // DP left, CC right
	TopLeft                  // DP up, CC left
	TopRight                 // DP up, CC right
)

// Count is the number of direction states.
const Count = 8

// States lists all direction states in declaration order.
var States = [Count]State{RightTop, RightBottom, BottomRight, BottomLeft, LeftBottom, LeftTop, TopLeft, TopRight}

var stateNames = [Count]string{
	"right-top", "right-bottom", "bottom-right", "bottom-left",
	"left-bottom", "left-top", "top-left", "top-right",
}

// New returns the state for a direction pointer and codel chooser combination.
func New(dp Pointer, cc Chooser) State {
	return State(uint8(dp%4)*2 + uint8(cc%2))
}

// Pointer returns the travel direction of the state.
func (s State) Pointer() Pointer {
	return Pointer(s / 2)
}

// Chooser returns the codel chooser side of the state.
func (s State) Chooser() Chooser {
	return Chooser(s % 2)
}

// Next returns the state to try after the exit of this state was blocked. The successor
// function forms a single cycle that alternates between toggling the codel chooser and
// rotating the direction pointer clockwise:
// right-top, right-bottom, bottom-left, bottom-right, left-bottom, left-top, top-right, top-left.
func (s State) Next() State {
	if uint8(s.Chooser()) == uint8(s.Pointer())%2 {
		return s.Switch()
	}
	return s.Turn()
}

// Turn rotates the direction pointer clockwise by 90 degrees and keeps the codel chooser.
func (s State) Turn() State {
	return New(s.Pointer().Clockwise(), s.Chooser())
}

// Switch toggles the codel chooser and keeps the direction pointer.
func (s State) Switch() State {
	return New(s.Pointer(), 1-s.Chooser())
}

// Flip is the orientation change used when sliding through white codels is blocked:
// the codel chooser is toggled and the direction pointer rotated clockwise.
func (s State) Flip() State {
	return s.Next().Next()
}

// String returns the name of the state.
func (s State) String() string {
	if s >= Count {
		return "invalid"
	}
	return stateNames[s]
}

// Clockwise returns the direction rotated clockwise by 90 degrees.
func (p Pointer) Clockwise() Pointer {
	return (p + 1) % 4
}

// Delta returns the row and column offsets of a single step into the direction.
func (p Pointer) Delta() (row, column int) {
	switch p {
	case Right:
		return 0, 1
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	default:
		return -1, 0
	}
}

// String returns the name of the direction.
func (p Pointer) String() string {
	switch p {
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "up"
	}
}
