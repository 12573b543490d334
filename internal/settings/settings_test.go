package settings_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/zhulik/pollcfg/internal/config"
	"github.com/zhulik/pollcfg/internal/core"
	"github.com/zhulik/pollcfg/internal/settings"
	"github.com/zhulik/pollcfg/testhelpers"
)

var _ = Describe("KVSettings", func() {
	newSettings := func(defaultEnabled bool) *settings.KVSettings {
		return lo.Must(settings.NewKVSettings(testhelpers.NewInjectorWithConfig(config.Config{
			BackendName:            config.BackendMemory,
			Loglevel:               "warn",
			EnableElectronicVoting: defaultEnabled,
		})))
	}

	Describe("ElectronicVotingEnabled", func() {
		Context("when nothing is stored", func() {
			It("returns the config default", func(ctx SpecContext) {
				Expect(newSettings(false).ElectronicVotingEnabled(ctx)).To(BeFalse())
				Expect(newSettings(true).ElectronicVotingEnabled(ctx)).To(BeTrue())
			})
		})

		Context("when a value is stored", func() {
			It("returns the stored value on every call", func(ctx SpecContext) {
				s := newSettings(false)

				lo.Must0(s.SetElectronicVotingEnabled(ctx, true))
				Expect(s.ElectronicVotingEnabled(ctx)).To(BeTrue())

				lo.Must0(s.SetElectronicVotingEnabled(ctx, false))
				Expect(s.ElectronicVotingEnabled(ctx)).To(BeFalse())
			})
		})

		Context("when the stored value is garbage", func() {
			It("returns an error", func(ctx SpecContext) {
				injector := testhelpers.NewInjector()
				s := lo.Must(settings.NewKVSettings(injector))

				bucket := lo.Must(do.MustInvoke[core.KV](injector).Bucket(ctx, core.BucketNameSettings))
				lo.Must(bucket.Put(ctx, core.SettingKeyElectronicVoting, []byte("maybe")))

				_, err := s.ElectronicVotingEnabled(ctx)

				Expect(err).To(HaveOccurred())
			})
		})
	})
})
