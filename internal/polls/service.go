package polls

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/pollcfg/internal/core"
)

// Service runs poll creation and updates through validation and 100%-base
// normalization before handing them to storage.
//
// Update writes twice when the base needs a correction. The second write is
// checked against the revision of the first one, so a concurrent writer makes
// it fail with core.ErrConcurrentUpdate. The first write is not rolled back:
// the requested changes are stored even though an error is returned, and an
// analog poll may stay stored with the entitled base until it is updated
// again. Callers must serialize updates of the same poll.
type Service struct {
	logger    logrus.FieldLogger
	repo      core.PollsRepo
	settings  core.VotingSettings
	publisher core.Publisher

	now func() time.Time
}

func NewService(injector *do.Injector) (*Service, error) {
	logger, err := do.Invoke[logrus.FieldLogger](injector)
	if err != nil {
		return nil, err
	}

	repo, err := do.Invoke[core.PollsRepo](injector)
	if err != nil {
		return nil, err
	}

	settings, err := do.Invoke[core.VotingSettings](injector)
	if err != nil {
		return nil, err
	}

	publisher, err := do.Invoke[core.Publisher](injector)
	if err != nil {
		return nil, err
	}

	return &Service{
		logger:    logger.WithField("component", "polls.Service"),
		repo:      repo,
		settings:  settings,
		publisher: publisher,
		now:       time.Now,
	}, nil
}

func (s Service) Get(ctx context.Context, id string) (core.Poll, error) {
	poll, _, err := s.repo.Get(ctx, id)
	if err != nil {
		return core.Poll{}, err //nolint:wrapcheck
	}

	return poll, nil
}

func (s Service) List(ctx context.Context) ([]core.Poll, error) {
	return s.repo.List(ctx) //nolint:wrapcheck
}

func (s Service) Create(ctx context.Context, candidate core.Poll) (core.Poll, error) {
	err := ValidateCandidate(candidate)
	if err != nil {
		return core.Poll{}, err
	}

	err = s.validateType(ctx, candidate.Type)
	if err != nil {
		return core.Poll{}, err
	}

	poll := candidate
	poll.ID = uuid.NewString()
	poll.State = core.PollStateCreated

	if poll.MajorityMethod == "" {
		poll.MajorityMethod = core.MajorityMethodSimple
	}

	poll.Groups = lo.Uniq(poll.Groups)
	poll.CreatedAt = s.now()
	poll.UpdatedAt = poll.CreatedAt

	newBase, changed := NormalizeBase(poll.OnehundredPercentBase, poll.PollMethod, poll.Type, core.PercentBaseNone)
	if changed {
		s.logBaseCorrection(poll, newBase)
		poll.OnehundredPercentBase = newBase
	}

	poll.IsPseudoanonymized = poll.Type == core.PollTypePseudoanonymous

	_, err = s.repo.Create(ctx, poll)
	if err != nil {
		return core.Poll{}, fmt.Errorf("failed to store poll: %w", err)
	}

	s.publish(ctx, core.PollCreatedSubject, core.PollEventCreated, poll)

	return poll, nil
}

func (s Service) Update(ctx context.Context, id string, changes core.PollChanges) (core.Poll, error) {
	existing, revision, err := s.repo.Get(ctx, id)
	if err != nil {
		return core.Poll{}, err //nolint:wrapcheck
	}

	err = ValidateChanges(changes)
	if err != nil {
		return core.Poll{}, err
	}

	if changes.Type != nil {
		err = s.validateType(ctx, *changes.Type)
		if err != nil {
			return core.Poll{}, err
		}

		changes.IsPseudoanonymized = lo.ToPtr(*changes.Type == core.PollTypePseudoanonymous)
	}

	oldBase := existing.OnehundredPercentBase

	if changes.Groups != nil {
		changes.Groups = lo.ToPtr(lo.Uniq(*changes.Groups))
	}

	updated := existing.Apply(changes)
	updated.UpdatedAt = s.now()

	revision, err = s.repo.Update(ctx, updated, revision)
	if err != nil {
		return core.Poll{}, fmt.Errorf("failed to store poll: %w", err)
	}

	newBase, changed := NormalizeBase(updated.OnehundredPercentBase, updated.PollMethod, updated.Type, oldBase)
	if changed {
		s.logBaseCorrection(updated, newBase)
		updated.OnehundredPercentBase = newBase

		_, err = s.repo.Update(ctx, updated, revision)
		if err != nil {
			return core.Poll{}, fmt.Errorf("failed to store corrected percent base: %w", err)
		}
	}

	s.publish(ctx, core.PollUpdatedSubject, core.PollEventUpdated, updated)

	return updated, nil
}

// validateType reads the setting on every call, it may be switched at runtime.
func (s Service) validateType(ctx context.Context, pollType core.PollType) error {
	enabled, err := s.settings.ElectronicVotingEnabled(ctx)
	if err != nil {
		return fmt.Errorf("failed to read electronic voting setting: %w", err)
	}

	return ValidateType(pollType, enabled)
}

func (s Service) logBaseCorrection(poll core.Poll, newBase core.PercentBase) {
	s.logger.WithFields(logrus.Fields{
		"pollID":     poll.ID,
		"type":       poll.Type,
		"pollmethod": poll.PollMethod,
		"from":       poll.OnehundredPercentBase,
		"to":         newBase,
	}).Debug("Correcting 100% base")
}

// publish failures are logged only, the poll is already stored.
func (s Service) publish(ctx context.Context, subject string, kind core.PollEventKind, poll core.Poll) {
	err := s.publisher.Publish(ctx, subject, core.PollEvent{Kind: kind, Poll: poll})
	if err != nil {
		s.logger.WithError(err).WithField("pollID", poll.ID).Warn("Failed to publish poll event")
	}
}
