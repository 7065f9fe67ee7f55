package session

// Stage is the view-routing state tied 1:1 to the three routed paths. It
// drives which outputs are visible and nothing else.
type Stage int

const (
	StageHome Stage = iota
	StageList
	StageDone
)

// Path returns the routed path for the stage.
func (s Stage) Path() string {
	switch s {
	case StageList:
		return "/list"
	case StageDone:
		return "/done"
	default:
		return "/"
	}
}

func (s Stage) String() string {
	switch s {
	case StageList:
		return "list"
	case StageDone:
		return "done"
	default:
		return "home"
	}
}

// StageFromPath maps a routed path back to its stage. Unknown paths land on
// Home.
func StageFromPath(path string) Stage {
	switch path {
	case "/list":
		return StageList
	case "/done":
		return StageDone
	default:
		return StageHome
	}
}
