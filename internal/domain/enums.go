package domain

// ProgressStatus is the coarse lifecycle bucket of an item's memory state.
type ProgressStatus string

const (
	ProgressStatusNew      ProgressStatus = "NEW"
	ProgressStatusLearning ProgressStatus = "LEARNING"
	ProgressStatusReview   ProgressStatus = "REVIEW"
	ProgressStatusHard     ProgressStatus = "HARD"
)

func (s ProgressStatus) String() string { return string(s) }

func (s ProgressStatus) IsValid() bool {
	switch s {
	case ProgressStatusNew, ProgressStatusLearning, ProgressStatusReview, ProgressStatusHard:
		return true
	}
	return false
}

// Outcome classifies one answer.
type Outcome string

const (
	OutcomeCorrect   Outcome = "CORRECT"
	OutcomeVague     Outcome = "VAGUE"
	OutcomeIncorrect Outcome = "INCORRECT"
)

func (o Outcome) String() string { return string(o) }

// SessionStatus represents the state of a persisted study session.
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "ACTIVE"
	SessionStatusCompleted SessionStatus = "COMPLETED"
)

func (s SessionStatus) String() string { return string(s) }

func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusActive, SessionStatusCompleted:
		return true
	}
	return false
}

// LearningMode is the activity an item is practised with. Progress rows and
// the one-active-session rule are keyed by it.
type LearningMode string

const (
	LearningModeFlashcard LearningMode = "flashcard"
	LearningModeQuiz      LearningMode = "quiz"
	LearningModeTyping    LearningMode = "typing"
	LearningModeListening LearningMode = "listening"
	LearningModeSpeaking  LearningMode = "speaking"
)

func (m LearningMode) String() string { return string(m) }

func (m LearningMode) IsValid() bool {
	switch m {
	case LearningModeFlashcard, LearningModeQuiz, LearningModeTyping,
		LearningModeListening, LearningModeSpeaking:
		return true
	}
	return false
}

// ModeID identifies a selection strategy. It is persisted on the session
// record as mode_config_id.
type ModeID string

const (
	ModeNew             ModeID = "new"
	ModeDue             ModeID = "due"
	ModeHard            ModeID = "hard"
	ModeAllReview       ModeID = "all_review"
	ModeMixed           ModeID = "mixed"
	ModePronunciation   ModeID = "pronunciation"
	ModeWriting         ModeID = "writing"
	ModeQuizPractice    ModeID = "quiz"
	ModeEssay           ModeID = "essay"
	ModeListening       ModeID = "listening"
	ModeSpeaking        ModeID = "speaking"
	ModeAutoplayAll     ModeID = "autoplay_all"
	ModeAutoplayLearned ModeID = "autoplay_learned"
)

func (m ModeID) String() string { return string(m) }

// Capability is a closed set of practice capabilities an item or container declares.
type Capability string

const (
	CapabilityPronunciation Capability = "pronunciation"
	CapabilityWriting       Capability = "writing"
	CapabilityQuiz          Capability = "quiz"
	CapabilityEssay         Capability = "essay"
	CapabilityListening     Capability = "listening"
	CapabilitySpeaking      Capability = "speaking"
)

func (c Capability) String() string { return string(c) }

func (c Capability) IsValid() bool {
	switch c {
	case CapabilityPronunciation, CapabilityWriting, CapabilityQuiz,
		CapabilityEssay, CapabilityListening, CapabilitySpeaking:
		return true
	}
	return false
}

// CapabilityForMode returns the capability a practice mode filters on.
func CapabilityForMode(m ModeID) (Capability, bool) {
	switch m {
	case ModePronunciation:
		return CapabilityPronunciation, true
	case ModeWriting:
		return CapabilityWriting, true
	case ModeQuizPractice:
		return CapabilityQuiz, true
	case ModeEssay:
		return CapabilityEssay, true
	case ModeListening:
		return CapabilityListening, true
	case ModeSpeaking:
		return CapabilitySpeaking, true
	}
	return "", false
}

// CapabilitySet is a set of capabilities. Item sets are resolved against
// their container's set once at read time.
type CapabilitySet map[Capability]struct{}

// NewCapabilitySet builds a set, dropping unknown values.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	s := make(CapabilitySet, len(caps))
	for _, c := range caps {
		if c.IsValid() {
			s[c] = struct{}{}
		}
	}
	return s
}

// Has reports whether c is in the set.
func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// Union returns item capabilities OR container capabilities.
func (s CapabilitySet) Union(other CapabilitySet) CapabilitySet {
	out := make(CapabilitySet, len(s)+len(other))
	for c := range s {
		out[c] = struct{}{}
	}
	for c := range other {
		out[c] = struct{}{}
	}
	return out
}
