package util

import (
	"regexp"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "program", "programs"), ShouldEqual, "1 program")
		So(Quantify(0, "program", "programs"), ShouldEqual, "0 programs")
		So(Quantify(12, "item", "items"), ShouldEqual, "12 items")
	})
}

func TestReGroups(t *testing.T) {
	Convey("ReGroups", t, func() {
		re := regexp.MustCompile(`^(?P<from>\d+)-(?P<to>\d+)$`)

		Convey("Should map named groups", func() {
			groups := ReGroups(re, "3-7")
			So(groups["from"], ShouldEqual, "3")
			So(groups["to"], ShouldEqual, "7")
		})

		Convey("Should return an empty map when nothing matches", func() {
			So(ReGroups(re, "last"), ShouldBeEmpty)
		})
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
		So(Max[int](), ShouldEqual, 0)
	})
}
