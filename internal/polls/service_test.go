package polls_test

import (
	"context"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/zhulik/pollcfg/internal/core"
	"github.com/zhulik/pollcfg/internal/polls"
	"github.com/zhulik/pollcfg/internal/repo"
	"github.com/zhulik/pollcfg/testhelpers"
)

type countingRepo struct {
	core.PollsRepo

	creates int
	updates int

	afterFirstUpdate func(ctx context.Context, poll core.Poll, revision uint64)
}

func (r *countingRepo) Create(ctx context.Context, poll core.Poll) (uint64, error) {
	r.creates++

	return r.PollsRepo.Create(ctx, poll) //nolint:wrapcheck
}

func (r *countingRepo) Update(ctx context.Context, poll core.Poll, revision uint64) (uint64, error) {
	r.updates++

	newRevision, err := r.PollsRepo.Update(ctx, poll, revision)
	if err == nil && r.updates == 1 && r.afterFirstUpdate != nil {
		r.afterFirstUpdate(ctx, poll, newRevision)
	}

	return newRevision, err //nolint:wrapcheck
}

type recordingPublisher struct {
	mu     sync.Mutex
	events map[string][]core.PollEvent
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, msg any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events[subject] = append(p.events[subject], msg.(core.PollEvent)) //nolint:forcetypeassert

	return nil
}

func (p *recordingPublisher) HealthCheck() error { return nil }
func (p *recordingPublisher) Shutdown() error    { return nil }

var _ = Describe("Service", func() {
	var (
		injector  *do.Injector
		service   *polls.Service
		settings  core.VotingSettings
		pollsRepo *countingRepo
		publisher *recordingPublisher
	)

	analogYN := core.Poll{
		Title:                 "Motion A1",
		Type:                  core.PollTypeAnalog,
		PollMethod:            core.PollMethodYN,
		OnehundredPercentBase: core.PercentBaseEntitled,
	}

	createPoll := func(ctx context.Context, poll core.Poll) core.Poll {
		created, err := service.Create(ctx, poll)
		Expect(err).ToNot(HaveOccurred())

		pollsRepo.creates = 0
		pollsRepo.updates = 0

		return created
	}

	BeforeEach(func() {
		injector = testhelpers.NewInjector()

		pollsRepo = &countingRepo{PollsRepo: lo.Must(repo.NewPollsRepo(injector))}
		publisher = &recordingPublisher{events: map[string][]core.PollEvent{}}

		do.OverrideValue[core.PollsRepo](injector, pollsRepo)
		do.OverrideValue[core.Publisher](injector, publisher)

		service = do.MustInvoke[*polls.Service](injector)
		settings = do.MustInvoke[core.VotingSettings](injector)
	})

	Describe("Create", func() {
		Context("when an analog poll uses the entitled base", func() {
			It("stores cast instead", func(ctx SpecContext) {
				poll, err := service.Create(ctx, analogYN)

				Expect(err).ToNot(HaveOccurred())
				Expect(poll.OnehundredPercentBase).To(Equal(core.PercentBaseCast))

				stored := lo.Must(service.Get(ctx, poll.ID))
				Expect(stored.OnehundredPercentBase).To(Equal(core.PercentBaseCast))
				Expect(stored.IsPseudoanonymized).To(BeFalse())
				Expect(stored.State).To(Equal(core.PollStateCreated))
				Expect(stored.MajorityMethod).To(Equal(core.MajorityMethodSimple))
				Expect(pollsRepo.creates).To(Equal(1))
			})
		})

		Context("when electronic voting is disabled", func() {
			It("rejects a named poll and stores nothing", func(ctx SpecContext) {
				_, err := service.Create(ctx, core.Poll{
					Title:                 "Election",
					Type:                  core.PollTypeNamed,
					PollMethod:            core.PollMethodYNA,
					OnehundredPercentBase: core.PercentBaseEntitled,
				})

				Expect(err).To(MatchError(core.ErrValidation))
				Expect(err).To(MatchError(core.ElectronicVotingDisabledDetail))
				Expect(pollsRepo.creates).To(BeZero())
				Expect(lo.Must(service.List(ctx))).To(BeEmpty())
				Expect(publisher.events).To(BeEmpty())
			})
		})

		Context("when electronic voting is enabled at runtime", func() {
			BeforeEach(func(ctx SpecContext) {
				lo.Must0(settings.SetElectronicVotingEnabled(ctx, true))
			})

			It("keeps the entitled base of a named poll", func(ctx SpecContext) {
				poll, err := service.Create(ctx, core.Poll{
					Title:                 "Election",
					Type:                  core.PollTypeNamed,
					PollMethod:            core.PollMethodYNA,
					OnehundredPercentBase: core.PercentBaseEntitled,
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(poll.OnehundredPercentBase).To(Equal(core.PercentBaseEntitled))
				Expect(poll.IsPseudoanonymized).To(BeFalse())
			})

			It("marks pseudoanonymous polls as pseudoanonymized", func(ctx SpecContext) {
				poll, err := service.Create(ctx, core.Poll{
					Title:                 "Secret ballot",
					Type:                  core.PollTypePseudoanonymous,
					PollMethod:            core.PollMethodY,
					OnehundredPercentBase: core.PercentBaseValid,
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(poll.IsPseudoanonymized).To(BeTrue())
				Expect(lo.Must(service.Get(ctx, poll.ID)).IsPseudoanonymized).To(BeTrue())
			})

			It("rejects named polls again once disabled", func(ctx SpecContext) {
				lo.Must0(settings.SetElectronicVotingEnabled(ctx, false))

				_, err := service.Create(ctx, core.Poll{
					Title:                 "Election",
					Type:                  core.PollTypeNamed,
					PollMethod:            core.PollMethodYN,
					OnehundredPercentBase: core.PercentBaseValid,
				})

				Expect(err).To(MatchError(core.ElectronicVotingDisabledDetail))
			})
		})

		It("publishes a created event", func(ctx SpecContext) {
			poll := lo.Must(service.Create(ctx, analogYN))

			Expect(publisher.events[core.PollCreatedSubject]).To(HaveLen(1))
			Expect(publisher.events[core.PollCreatedSubject][0].Kind).To(Equal(core.PollEventCreated))
			Expect(publisher.events[core.PollCreatedSubject][0].Poll.ID).To(Equal(poll.ID))
		})

		It("rejects malformed polls before touching storage", func(ctx SpecContext) {
			_, err := service.Create(ctx, core.Poll{Title: "", Type: core.PollTypeAnalog})

			Expect(err).To(MatchError(core.ErrValidation))
			Expect(pollsRepo.creates).To(BeZero())
		})
	})

	Describe("Update", func() {
		Context("when only the pollmethod of an analog poll changes", func() {
			It("keeps the base", func(ctx SpecContext) {
				poll := createPoll(ctx, core.Poll{
					Title:                 "Motion A2",
					Type:                  core.PollTypeAnalog,
					PollMethod:            core.PollMethodYN,
					OnehundredPercentBase: core.PercentBaseValid,
				})

				updated, err := service.Update(ctx, poll.ID, core.PollChanges{PollMethod: lo.ToPtr(core.PollMethodYNA)})

				Expect(err).ToNot(HaveOccurred())
				Expect(updated.PollMethod).To(Equal(core.PollMethodYNA))
				Expect(updated.OnehundredPercentBase).To(Equal(core.PercentBaseValid))
				Expect(pollsRepo.updates).To(Equal(1))
			})
		})

		Context("when a named poll with the entitled base becomes analog", func() {
			It("corrects the base to cast with a second write", func(ctx SpecContext) {
				lo.Must0(settings.SetElectronicVotingEnabled(ctx, true))

				poll := createPoll(ctx, core.Poll{
					Title:                 "Election",
					Type:                  core.PollTypeNamed,
					PollMethod:            core.PollMethodYN,
					OnehundredPercentBase: core.PercentBaseEntitled,
				})

				updated, err := service.Update(ctx, poll.ID, core.PollChanges{Type: lo.ToPtr(core.PollTypeAnalog)})

				Expect(err).ToNot(HaveOccurred())
				Expect(updated.Type).To(Equal(core.PollTypeAnalog))
				Expect(updated.OnehundredPercentBase).To(Equal(core.PercentBaseCast))
				Expect(pollsRepo.updates).To(Equal(2))

				stored := lo.Must(service.Get(ctx, poll.ID))
				Expect(stored.OnehundredPercentBase).To(Equal(core.PercentBaseCast))
			})
		})

		Context("when an analog poll is switched to the entitled base", func() {
			It("restores the previous base", func(ctx SpecContext) {
				poll := createPoll(ctx, core.Poll{
					Title:                 "Motion A3",
					Type:                  core.PollTypeAnalog,
					PollMethod:            core.PollMethodYNA,
					OnehundredPercentBase: core.PercentBaseYNA,
				})

				updated, err := service.Update(ctx, poll.ID, core.PollChanges{
					OnehundredPercentBase: lo.ToPtr(core.PercentBaseEntitled),
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(updated.OnehundredPercentBase).To(Equal(core.PercentBaseYNA))
				Expect(lo.Must(service.Get(ctx, poll.ID)).OnehundredPercentBase).To(Equal(core.PercentBaseYNA))
			})
		})

		Context("when the type changes", func() {
			BeforeEach(func(ctx SpecContext) {
				lo.Must0(settings.SetElectronicVotingEnabled(ctx, true))
			})

			It("keeps is_pseudoanonymized in sync", func(ctx SpecContext) {
				poll := createPoll(ctx, analogYN)
				Expect(poll.IsPseudoanonymized).To(BeFalse())

				updated := lo.Must(service.Update(ctx, poll.ID, core.PollChanges{Type: lo.ToPtr(core.PollTypePseudoanonymous)}))
				Expect(updated.IsPseudoanonymized).To(BeTrue())

				updated = lo.Must(service.Update(ctx, poll.ID, core.PollChanges{Title: lo.ToPtr("Renamed")}))
				Expect(updated.IsPseudoanonymized).To(BeTrue())

				updated = lo.Must(service.Update(ctx, poll.ID, core.PollChanges{Type: lo.ToPtr(core.PollTypeNamed)}))
				Expect(updated.IsPseudoanonymized).To(BeFalse())
				Expect(lo.Must(service.Get(ctx, poll.ID)).IsPseudoanonymized).To(BeFalse())
			})
		})

		Context("when electronic voting is disabled", func() {
			It("rejects switching to a named poll without writing", func(ctx SpecContext) {
				poll := createPoll(ctx, analogYN)

				_, err := service.Update(ctx, poll.ID, core.PollChanges{Type: lo.ToPtr(core.PollTypeNamed)})

				Expect(err).To(MatchError(core.ElectronicVotingDisabledDetail))
				Expect(pollsRepo.updates).To(BeZero())
				Expect(lo.Must(service.Get(ctx, poll.ID)).Type).To(Equal(core.PollTypeAnalog))
			})

			It("skips the type check when the type is not changed", func(ctx SpecContext) {
				lo.Must0(settings.SetElectronicVotingEnabled(ctx, true))
				poll := createPoll(ctx, core.Poll{
					Title:                 "Election",
					Type:                  core.PollTypeNamed,
					PollMethod:            core.PollMethodYN,
					OnehundredPercentBase: core.PercentBaseValid,
				})
				lo.Must0(settings.SetElectronicVotingEnabled(ctx, false))

				updated, err := service.Update(ctx, poll.ID, core.PollChanges{Title: lo.ToPtr("Board election")})

				Expect(err).ToNot(HaveOccurred())
				Expect(updated.Title).To(Equal("Board election"))
				Expect(updated.Type).To(Equal(core.PollTypeNamed))
			})
		})

		Context("when the poll does not exist", func() {
			It("returns an error", func(ctx SpecContext) {
				_, err := service.Update(ctx, "missing", core.PollChanges{Title: lo.ToPtr("Title")})

				Expect(err).To(MatchError(core.ErrPollNotFound))
			})

			It("reports the missing poll before checking the type", func(ctx SpecContext) {
				_, err := service.Update(ctx, "missing", core.PollChanges{Type: lo.ToPtr(core.PollTypeNamed)})

				Expect(err).To(MatchError(core.ErrPollNotFound))
				Expect(err).ToNot(MatchError(core.ErrValidation))
			})
		})

		Context("when the poll is modified between the two writes", func() {
			It("keeps the first write and the concurrent change, leaving the base uncorrected", func(ctx SpecContext) {
				lo.Must0(settings.SetElectronicVotingEnabled(ctx, true))

				poll := createPoll(ctx, core.Poll{
					Title:                 "Election",
					Type:                  core.PollTypeNamed,
					PollMethod:            core.PollMethodYN,
					OnehundredPercentBase: core.PercentBaseEntitled,
				})

				pollsRepo.afterFirstUpdate = func(ctx context.Context, poll core.Poll, revision uint64) {
					poll.Title = "Concurrent title"
					lo.Must(pollsRepo.PollsRepo.Update(ctx, poll, revision))
				}

				_, err := service.Update(ctx, poll.ID, core.PollChanges{Type: lo.ToPtr(core.PollTypeAnalog)})

				Expect(err).To(MatchError(core.ErrConcurrentUpdate))

				stored := lo.Must(service.Get(ctx, poll.ID))
				Expect(stored.Title).To(Equal("Concurrent title"))
				Expect(stored.Type).To(Equal(core.PollTypeAnalog))
				Expect(stored.OnehundredPercentBase).To(Equal(core.PercentBaseEntitled))
				Expect(publisher.events[core.PollUpdatedSubject]).To(BeEmpty())
			})
		})

		It("publishes an updated event with the corrected poll", func(ctx SpecContext) {
			lo.Must0(settings.SetElectronicVotingEnabled(ctx, true))

			poll := createPoll(ctx, core.Poll{
				Title:                 "Election",
				Type:                  core.PollTypeNamed,
				PollMethod:            core.PollMethodYN,
				OnehundredPercentBase: core.PercentBaseEntitled,
			})

			lo.Must(service.Update(ctx, poll.ID, core.PollChanges{Type: lo.ToPtr(core.PollTypeAnalog)}))

			events := publisher.events[core.PollUpdatedSubject]
			Expect(events).To(HaveLen(1))
			Expect(events[0].Poll.OnehundredPercentBase).To(Equal(core.PercentBaseCast))
		})
	})
})
