package urn

import (
	"errors"
	"testing"

	"github.com/mediathek-cli/mediathek/source"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given well-formed urns", t, func() {
		Convey("Each part is decoded", func() {
			u, err := Parse("urn:mediathek:zdf:item:heute-journal-vom-1-maerz-2021-100")
			So(err, ShouldBeNil)
			So(u.Publisher, ShouldEqual, source.ZDF)
			So(u.Kind, ShouldEqual, source.KindItem)
			So(u.ID, ShouldEqual, "heute-journal-vom-1-maerz-2021-100")
		})

		Convey("Colons inside the id survive", func() {
			u, err := Parse("urn:mediathek:srf:item:a:b")
			So(err, ShouldBeNil)
			So(u.ID, ShouldEqual, "a:b")
		})

		Convey("Rendering round-trips exactly", func() {
			for _, s := range []string{
				"urn:mediathek:ard:program:Y3JpZDovL2Rhc2Vyc3RlLmRlL3RhdG9ydA",
				"urn:mediathek:3sat:item:dokumentation-100",
				"urn:mediathek:arte:item:101938-000-A_fr",
			} {
				u, err := Parse(s)
				So(err, ShouldBeNil)
				So(u.String(), ShouldEqual, s)
			}
		})
	})

	Convey("Given malformed urns", t, func() {
		for _, s := range []string{
			"",
			"urn:mediathek:ard:item",
			"urn:other:ard:item:1",
			"https://www.zdf.de/",
			"urn:mediathek:bbc:item:1",
			"urn:mediathek:ard:episode:1",
			"urn:mediathek:ard:item:",
		} {
			_, err := Parse(s)
			So(errors.Is(err, source.ErrScheme), ShouldBeTrue)
		}
	})

	Convey("Given a kind expectation", t, func() {
		_, err := ParseAs("urn:mediathek:ard:item:1", source.KindProgram)
		So(source.KindOf(err), ShouldEqual, source.SchemeError)

		u, err := ParseAs("urn:mediathek:ard:program:1", source.KindProgram)
		So(err, ShouldBeNil)
		So(u, ShouldResemble, New(source.ARD, source.KindProgram, "1"))
	})
}
