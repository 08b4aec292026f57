package player

type State int

const (
	Idle State = iota
	Loading
	LoadFailed
	LoadedPaused
	Playing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case LoadFailed:
		return "load failed"
	case LoadedPaused:
		return "paused"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}

// Ready reports whether a pattern is loaded and may be played.
func (s State) Ready() bool {
	return s == LoadedPaused || s == Playing
}
