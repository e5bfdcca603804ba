package session

// StudyMode selects how the active card is presented to the learner.
type StudyMode string

// Supported study modes.
const (
	ModeRecognition StudyMode = "recognition"
	ModeRecall      StudyMode = "recall"
	ModeListening   StudyMode = "listening"
	ModeMixed       StudyMode = "mixed"
)

// mixedRotation is the deterministic mode cycle used by ModeMixed.
var mixedRotation = [...]StudyMode{ModeRecognition, ModeRecall, ModeListening}

// IsValid reports whether the mode is one of the supported study modes.
func (m StudyMode) IsValid() bool {
	switch m {
	case ModeRecognition, ModeRecall, ModeListening, ModeMixed:
		return true
	default:
		return false
	}
}

// EffectiveMode resolves the mode actually presented for the current card.
// Non-mixed selections pass through unchanged. Mixed rotates through
// recognition, recall and listening keyed by the number of completed
// reviews this session, so consecutive reviews always see different modes.
func EffectiveMode(selected StudyMode, historyLen int) StudyMode {
	if selected != ModeMixed {
		return selected
	}
	if historyLen < 0 {
		historyLen = 0
	}
	return mixedRotation[historyLen%len(mixedRotation)]
}
