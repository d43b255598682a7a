package digiscope

// Logger receives the scope's diagnostic messages. Messages are plain
// strings so the TinyGo build never pulls in fmt.
//
// Only foreground calls log: NewWithHardware, Start and Close. The edge
// handler and the callbacks it invokes never do, so a Logger may block or
// allocate freely. On a board the messages share the serial line with the
// DATA report and must not contain line breaks.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

var globalLogger Logger = discard{}

// SetLogger replaces the logger used by every scope. nil silences them.
func SetLogger(l Logger) {
	if l == nil {
		l = discard{}
	}
	globalLogger = l
}

type discard struct{}

func (discard) Debug(string) {}
func (discard) Info(string)  {}
func (discard) Warn(string)  {}
func (discard) Error(string) {}
