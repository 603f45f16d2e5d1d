package dialogue

// State is the derived dialogue state. It is a pure function of the
// message history and is never persisted: replaying the same history
// always yields the same state.
type State int

const (
	// StateEmptyHistory is terminal; the orchestrator answers with the
	// fallback prompt and consults neither the catalog nor a provider.
	StateEmptyHistory State = iota
	StateNewQuery
	StateAwaitingClarification
	StateAwaitingPlatform
	StateAwaitingDeviceFlowChoice
	StateAwaitingDeviceSelection
)

func (s State) String() string {
	switch s {
	case StateEmptyHistory:
		return "empty-history"
	case StateNewQuery:
		return "new-query"
	case StateAwaitingClarification:
		return "awaiting-clarification"
	case StateAwaitingPlatform:
		return "awaiting-platform"
	case StateAwaitingDeviceFlowChoice:
		return "awaiting-device-flow-choice"
	case StateAwaitingDeviceSelection:
		return "awaiting-device-selection"
	}
	return "unknown"
}
