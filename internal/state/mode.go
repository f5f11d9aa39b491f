package state

// DisplayMode is what the renderer shows for a Result.
type DisplayMode int

const (
	ModeSpinner DisplayMode = iota
	ModeError
	ModeEmpty
	ModeGrid
)

// ModeOf maps a Result to its display mode. Idle renders like Loading since a
// fetch is always issued on startup.
func ModeOf(r Result) DisplayMode {
	switch r.Phase {
	case PhaseError:
		return ModeError
	case PhaseSuccess:
		if len(r.Books) == 0 {
			return ModeEmpty
		}
		return ModeGrid
	default:
		return ModeSpinner
	}
}
