package polls

import (
	"fmt"
	"strings"

	"github.com/zhulik/pollcfg/internal/core"
)

const (
	detailRequired = "This field is required."
	detailBlank    = "This field may not be blank."
)

// ValidateType checks that the requested poll type is allowed. Only analog
// polls may be created or switched to while electronic voting is disabled.
func ValidateType(requested core.PollType, electronicVotingEnabled bool) error {
	if requested != core.PollTypeAnalog && !electronicVotingEnabled {
		return core.NewValidationError(core.ElectronicVotingDisabledDetail)
	}

	return nil
}

// NormalizeBase returns the 100%-base that has to be stored instead of
// requested, or false when requested can be kept.
//
// The only combination corrected here is an analog poll with the "entitled"
// base: analog polls can not track entitled users. previous is the base
// stored before an update, PercentBaseNone on creation. Other invalid
// (method, base) combinations are not detected and stay the caller's
// responsibility.
func NormalizeBase(requested core.PercentBase, _ core.PollMethod, pollType core.PollType, previous core.PercentBase) (core.PercentBase, bool) { //nolint:lll
	if pollType != core.PollTypeAnalog || requested != core.PercentBaseEntitled {
		return core.PercentBaseNone, false
	}

	if previous != core.PercentBaseNone && previous != core.PercentBaseEntitled {
		return previous, true
	}

	return core.PercentBaseCast, true
}

// ValidateCandidate checks the shape of a poll about to be created. The type
// permission is checked separately with ValidateType.
func ValidateCandidate(poll core.Poll) error {
	if strings.TrimSpace(poll.Title) == "" {
		return core.NewFieldValidationError("title", detailBlank)
	}

	if poll.Type == "" {
		return core.NewFieldValidationError("type", detailRequired)
	}

	if poll.PollMethod == "" {
		return core.NewFieldValidationError("pollmethod", detailRequired)
	}

	if poll.OnehundredPercentBase == core.PercentBaseNone {
		return core.NewFieldValidationError("onehundred_percent_base", detailRequired)
	}

	return validateChoices(poll.Type, poll.PollMethod, poll.OnehundredPercentBase, poll.MajorityMethod)
}

// ValidateChanges checks the shape of the present fields of a partial update.
func ValidateChanges(changes core.PollChanges) error {
	if changes.Title != nil && strings.TrimSpace(*changes.Title) == "" {
		return core.NewFieldValidationError("title", detailBlank)
	}

	var (
		pollType       core.PollType
		method         core.PollMethod
		base           core.PercentBase
		majorityMethod core.MajorityMethod
	)

	if changes.Type != nil {
		if *changes.Type == "" {
			return core.NewFieldValidationError("type", detailRequired)
		}

		pollType = *changes.Type
	}

	if changes.PollMethod != nil {
		if *changes.PollMethod == "" {
			return core.NewFieldValidationError("pollmethod", detailRequired)
		}

		method = *changes.PollMethod
	}

	if changes.OnehundredPercentBase != nil {
		if *changes.OnehundredPercentBase == core.PercentBaseNone {
			return core.NewFieldValidationError("onehundred_percent_base", detailRequired)
		}

		base = *changes.OnehundredPercentBase
	}

	if changes.MajorityMethod != nil {
		majorityMethod = *changes.MajorityMethod
	}

	return validateChoices(pollType, method, base, majorityMethod)
}

// validateChoices rejects unknown enum values. Empty values are skipped.
func validateChoices(pollType core.PollType, method core.PollMethod, base core.PercentBase, majorityMethod core.MajorityMethod) error { //nolint:lll
	if pollType != "" && !pollType.Valid() {
		return invalidChoice("type", pollType)
	}

	if method != "" && !method.Valid() {
		return invalidChoice("pollmethod", method)
	}

	if base != core.PercentBaseNone && !base.Valid() {
		return invalidChoice("onehundred_percent_base", base)
	}

	if majorityMethod != "" && !majorityMethod.Valid() {
		return invalidChoice("majority_method", majorityMethod)
	}

	return nil
}

func invalidChoice[T ~string](field string, value T) error {
	return core.NewFieldValidationError(field, fmt.Sprintf("%q is not a valid choice.", value))
}
