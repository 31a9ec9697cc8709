package game

// Command is a discrete player input.
type Command int

const (
	CmdNone Command = iota
	CmdLeft
	CmdRight
	CmdDown
	CmdRotate
)

func (c Command) String() string {
	switch c {
	case CmdLeft:
		return "left"
	case CmdRight:
		return "right"
	case CmdDown:
		return "down"
	case CmdRotate:
		return "rotate"
	default:
		return "none"
	}
}
