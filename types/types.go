package types

// OutputMode selects how the responder frames what it writes to stdout.
type OutputMode int

const (
	OutputModeCGI OutputMode = iota + 1
	OutputModeHTTP
)

func (m OutputMode) String() string {
	switch m {
	case OutputModeCGI:
		return "cgi"
	case OutputModeHTTP:
		return "http"
	default:
		return "unknown"
	}
}
