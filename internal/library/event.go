package library

// EventLevel indicates the severity/type of a library event.
type EventLevel int

const (
	LevelInfo EventLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// Event is a human-readable progress update emitted by the Manager. The
// UI layers render these as a log tail; none of them demand a response,
// and in particular a failed background sync never escalates beyond a
// warning event.
type Event struct {
	Message string
	Level   EventLevel
}
