package connection

const (
	CodeSessionID uint8 = iota

	// The bot read the map and announced its start cell
	CodeMatchStart

	// One per turn, also sent on request with the latest state
	CodeSnapshot

	CodeMatchEnd
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
