package render

import (
	"testing"

	"github.com/mediathek-cli/mediathek/source"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func summaries(titles ...string) []*source.ItemSummary {
	return lo.Map(titles, func(title string, _ int) *source.ItemSummary {
		return &source.ItemSummary{ID: title, Publisher: source.ZDF, Title: title}
	})
}

func titles(items []*source.ItemSummary) []string {
	return lo.Map(items, func(item *source.ItemSummary, _ int) string { return item.Title })
}

func TestParseSelector(t *testing.T) {
	Convey("Given a feed of four items", t, func() {
		items := summaries("Der Ozean", "Die Wüste", "Der Wald", "Das Eis")

		apply := func(description string) []string {
			selector, err := ParseSelector(description)
			So(err, ShouldBeNil)
			return titles(selector(items))
		}

		Convey("all and the empty selector keep everything", func() {
			So(apply("all"), ShouldHaveLength, 4)
			So(apply(""), ShouldHaveLength, 4)
		})

		Convey("first and last pick one end", func() {
			So(apply("first"), ShouldResemble, []string{"Der Ozean"})
			So(apply("last"), ShouldResemble, []string{"Das Eis"})
		})

		Convey("a position picks one item", func() {
			So(apply("2"), ShouldResemble, []string{"Der Wald"})
			So(apply("9"), ShouldBeEmpty)
		})

		Convey("a range is inclusive and clamped", func() {
			So(apply("1-2"), ShouldResemble, []string{"Die Wüste", "Der Wald"})
			So(apply("2-10"), ShouldResemble, []string{"Der Wald", "Das Eis"})
			So(apply("3-1"), ShouldBeEmpty)
		})

		Convey("a substring matches titles case-insensitively", func() {
			So(apply("@der@"), ShouldResemble, []string{"Der Ozean", "Der Wald"})
		})

		Convey("garbage is rejected", func() {
			_, err := ParseSelector("sometimes")
			So(err, ShouldNotBeNil)
			_, err = ParseSelector("-1")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given an empty feed", t, func() {
		for _, description := range []string{"first", "last", "0", "0-3", "@x@"} {
			selector, err := ParseSelector(description)
			So(err, ShouldBeNil)
			So(selector([]*source.ItemSummary{}), ShouldBeEmpty)
		}
	})
}
