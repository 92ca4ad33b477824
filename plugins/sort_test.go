package plugins_test

import (
	"slices"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"

	"github.com/louiss0/craft-packages/plugins"
)

func names(records []plugins.Record) []string {
	return lo.Map(records, func(r plugins.Record, _ int) string { return r.Name })
}

var _ = Describe("Sort", func() {
	var (
		assertT *assert.Assertions
		base    time.Time
		records []plugins.Record
	)

	BeforeEach(func() {
		assertT = assert.New(GinkgoT())
		base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		records = []plugins.Record{
			{Name: "a", Downloads: 10, Favers: 1, Dependents: 7, Updated: base.Add(48 * time.Hour)},
			{Name: "b", Downloads: 30, Favers: 5, Dependents: 7, Updated: base},
			{Name: "c", Downloads: 20, Favers: 5, Dependents: 2, Updated: base.Add(24 * time.Hour)},
			{Name: "d", Downloads: 10, Favers: 3, Dependents: 9, Updated: base.Add(72 * time.Hour)},
		}
	})

	DescribeTable("descending by default",
		func(field string, expected []string) {
			assertT.Equal(expected, names(plugins.Sort(records, field, false)))
		},
		Entry("downloads", plugins.FieldDownloads, []string{"b", "c", "a", "d"}),
		Entry("favers", plugins.FieldFavers, []string{"b", "c", "d", "a"}),
		Entry("dependents", plugins.FieldDependents, []string{"d", "a", "b", "c"}),
		Entry("updated", plugins.FieldUpdated, []string{"d", "a", "c", "b"}),
	)

	DescribeTable("ascending",
		func(field string, expected []string) {
			assertT.Equal(expected, names(plugins.Sort(records, field, true)))
		},
		Entry("downloads", plugins.FieldDownloads, []string{"a", "d", "c", "b"}),
		Entry("favers", plugins.FieldFavers, []string{"a", "d", "b", "c"}),
		Entry("dependents", plugins.FieldDependents, []string{"c", "a", "b", "d"}),
		Entry("updated", plugins.FieldUpdated, []string{"b", "c", "a", "d"}),
	)

	It("should return a permutation of the input", func() {
		for _, field := range plugins.SortFields {
			Expect(plugins.Sort(records, field, false)).To(ConsistOf(records))
		}
	})

	It("should reverse the order of distinct keys when ascending", func() {
		distinct := []plugins.Record{{Name: "x", Downloads: 3}, {Name: "y", Downloads: 1}, {Name: "z", Downloads: 2}}

		desc := names(plugins.Sort(distinct, plugins.FieldDownloads, false))
		asc := names(plugins.Sort(distinct, plugins.FieldDownloads, true))

		slices.Reverse(desc)
		assertT.Equal(desc, asc)
	})

	It("should keep input order for equal keys in both directions", func() {
		tied := []plugins.Record{{Name: "first", Favers: 4}, {Name: "second", Favers: 4}, {Name: "third", Favers: 4}}

		assertT.Equal([]string{"first", "second", "third"}, names(plugins.Sort(tied, plugins.FieldFavers, false)))
		assertT.Equal([]string{"first", "second", "third"}, names(plugins.Sort(tied, plugins.FieldFavers, true)))
	})

	It("should not modify the input slice", func() {
		before := names(records)
		plugins.Sort(records, plugins.FieldDownloads, true)
		assertT.Equal(before, names(records))
	})

	It("should leave the order unchanged for an unknown field", func() {
		assertT.Equal(names(records), names(plugins.Sort(records, "stars", false)))
	})

	It("should only accept known sort fields", func() {
		assertT.True(plugins.IsSortField(plugins.FieldUpdated))
		assertT.False(plugins.IsSortField("stars"))
	})
})
