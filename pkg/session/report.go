package session

import "fmt"

// Level is the severity of a Report, matching the host's message levels.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Outcome tells apart the ways an operation can finish without doing
// anything, so hosts do not have to match on message text.
type Outcome int

const (
	OutcomeDone Outcome = iota
	OutcomeNoGroups
	OutcomeNoOverlaps
	OutcomeNothingSelected
	OutcomeEmptyUnion
	OutcomeFailed
)

// Report is the user-facing result of a session operation.
type Report struct {
	Level   Level
	Outcome Outcome
	Message string
}

func (r Report) String() string {
	return r.Level.String() + ": " + r.Message
}

func info(format string, args ...any) Report {
	return Report{Level: LevelInfo, Outcome: OutcomeDone, Message: fmt.Sprintf(format, args...)}
}

func warning(o Outcome, msg string) Report {
	return Report{Level: LevelWarning, Outcome: o, Message: msg}
}

func failure(err error) Report {
	return Report{Level: LevelError, Outcome: OutcomeFailed, Message: err.Error()}
}
