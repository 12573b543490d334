package core

type SubjectName = string

const (
	PollsSubjectBase   SubjectName = "polls"
	PollCreatedSubject SubjectName = PollsSubjectBase + ".created"
	PollUpdatedSubject SubjectName = PollsSubjectBase + ".updated"
)

// PollType is the voting modality of a poll.
type PollType string

const (
	PollTypeAnalog          PollType = "analog"
	PollTypeNamed           PollType = "named"
	PollTypePseudoanonymous PollType = "pseudoanonymous"
)

func (t PollType) Valid() bool {
	switch t {
	case PollTypeAnalog, PollTypeNamed, PollTypePseudoanonymous:
		return true
	}

	return false
}

// PollMethod determines which result categories a poll has.
type PollMethod string

const (
	PollMethodY   PollMethod = "Y"
	PollMethodYN  PollMethod = "YN"
	PollMethodYNA PollMethod = "YNA"
	PollMethodN   PollMethod = "N"
)

func (m PollMethod) Valid() bool {
	switch m {
	case PollMethodY, PollMethodYN, PollMethodYNA, PollMethodN:
		return true
	}

	return false
}

// PercentBase is the denominator used to turn vote counts into percentages.
// The zero value means "not set".
type PercentBase string

const (
	PercentBaseNone     PercentBase = ""
	PercentBaseY        PercentBase = "Y"
	PercentBaseYN       PercentBase = "YN"
	PercentBaseYNA      PercentBase = "YNA"
	PercentBaseValid    PercentBase = "valid"
	PercentBaseCast     PercentBase = "cast"
	PercentBaseEntitled PercentBase = "entitled"
	PercentBaseDisabled PercentBase = "disabled"
)

func (b PercentBase) Valid() bool {
	switch b {
	case PercentBaseY, PercentBaseYN, PercentBaseYNA, PercentBaseValid,
		PercentBaseCast, PercentBaseEntitled, PercentBaseDisabled:
		return true
	}

	return false
}

type MajorityMethod string

const (
	MajorityMethodSimple        MajorityMethod = "simple"
	MajorityMethodTwoThirds     MajorityMethod = "two_thirds"
	MajorityMethodThreeQuarters MajorityMethod = "three_quarters"
	MajorityMethodDisabled      MajorityMethod = "disabled"
)

func (m MajorityMethod) Valid() bool {
	switch m {
	case MajorityMethodSimple, MajorityMethodTwoThirds, MajorityMethodThreeQuarters, MajorityMethodDisabled:
		return true
	}

	return false
}

type PollState int

const (
	PollStateCreated   PollState = iota + 1
	PollStateStarted
	PollStateFinished
	PollStatePublished
)

type PollEventKind string

const (
	PollEventCreated PollEventKind = "created"
	PollEventUpdated PollEventKind = "updated"
)
