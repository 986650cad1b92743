package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/mediathek-cli/mediathek/source"
	"github.com/mediathek-cli/mediathek/urn"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleItem() *source.Item {
	item := source.NewItem(source.SRF, "6f5d1c8e")
	item.Title = "Tagesschau vom 1.3.2021"
	item.Description = "Die wichtigsten Nachrichten des Tages."
	item.Broadcasts = lo.ToPtr(int64(1614631500))
	item.Duration = lo.ToPtr(int64(900))
	item.Geoblocked = lo.ToPtr(true)
	item.Program = &source.ProgramRef{ID: "p1", Name: "Tagesschau"}
	item.Media = []source.Media{{URL: "https://cdn.example/master.m3u8", Type: "application/x-mpegURL", Comment: "streaming quality"}}
	item.Subtitles = []source.Subtitle{{Format: "webvtt", Language: "de", URL: "https://cdn.example/de.vtt"}}
	item.URN = urn.New(source.SRF, source.KindItem, "6f5d1c8e").String()
	return item.Finish()
}

func TestItem(t *testing.T) {
	Convey("Given an item", t, func() {
		item := sampleItem()
		var buf bytes.Buffer

		Convey("JSON output is the record itself", func() {
			So(Item(&buf, item, Options{JSON: true}), ShouldBeNil)

			var decoded map[string]any
			So(json.Unmarshal(buf.Bytes(), &decoded), ShouldBeNil)
			So(decoded["id"], ShouldEqual, "6f5d1c8e")
			So(decoded["publisher"], ShouldEqual, "srf")
			So(decoded["urn"], ShouldEqual, "urn:mediathek:srf:item:6f5d1c8e")
			So(decoded["media"], ShouldHaveLength, 1)
		})

		Convey("compact JSON fits on one line", func() {
			So(Item(&buf, item, Options{JSON: true}), ShouldBeNil)
			So(bytes.Count(buf.Bytes(), []byte("\n")), ShouldEqual, 1)
		})

		Convey("pretty JSON is indented", func() {
			So(Item(&buf, item, Options{JSON: true, Pretty: true}), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "\n  \"id\": \"6f5d1c8e\"")
		})

		Convey("text output lists the essentials", func() {
			So(Item(&buf, item, Options{Wrap: 40}), ShouldBeNil)
			out := buf.String()
			So(out, ShouldContainSubstring, "Tagesschau vom 1.3.2021")
			So(out, ShouldContainSubstring, "urn:mediathek:srf:item:6f5d1c8e")
			So(out, ShouldContainSubstring, "15m0s")
			So(out, ShouldContainSubstring, "geoblocked")
			So(out, ShouldContainSubstring, "https://cdn.example/master.m3u8")
			So(out, ShouldContainSubstring, "https://cdn.example/de.vtt")
		})
	})
}

func TestPrograms(t *testing.T) {
	Convey("Given a program list", t, func() {
		programs := []*source.Program{
			{ID: "a", Publisher: source.ARD, Name: "Abenteuer Erde", URN: "urn:mediathek:ard:program:a"},
			{ID: "b", Publisher: source.ARD, Name: "Brisant", URN: "urn:mediathek:ard:program:b"},
		}
		var buf bytes.Buffer

		Convey("text output has one line per program and a count", func() {
			So(Programs(&buf, programs, Options{Wrap: 80}), ShouldBeNil)
			out := buf.String()
			So(out, ShouldContainSubstring, "Abenteuer Erde")
			So(out, ShouldContainSubstring, "urn:mediathek:ard:program:b")
			So(out, ShouldContainSubstring, "2 programs")
		})

		Convey("JSON output is an array", func() {
			So(Programs(&buf, programs, Options{JSON: true}), ShouldBeNil)
			var decoded []map[string]any
			So(json.Unmarshal(buf.Bytes(), &decoded), ShouldBeNil)
			So(decoded, ShouldHaveLength, 2)
		})
	})
}

func TestFeed(t *testing.T) {
	Convey("Given a feed", t, func() {
		feed := &source.Feed{Items: []*source.ItemSummary{
			{ID: "x1", Publisher: source.Arte, Title: "Folge 1"},
			{ID: "x2", Publisher: source.Arte, Title: "Folge 2"},
		}}
		var buf bytes.Buffer

		Convey("text output numbers items and prints their URNs", func() {
			So(Feed(&buf, feed, Options{Wrap: 80}), ShouldBeNil)
			out := buf.String()
			So(out, ShouldContainSubstring, "Folge 2")
			So(out, ShouldContainSubstring, "urn:mediathek:arte:item:x2")
			So(out, ShouldContainSubstring, "2 items")
		})

		Convey("an empty feed encodes an empty list", func() {
			So(Feed(&buf, &source.Feed{Items: []*source.ItemSummary{}}, Options{JSON: true}), ShouldBeNil)
			So(buf.String(), ShouldEqual, "{\"items\":[]}\n")
		})
	})
}

func TestLine(t *testing.T) {
	Convey("Given a URN", t, func() {
		u := urn.New(source.ZDF, source.KindProgram, "terra-x")
		var buf bytes.Buffer

		Convey("text output is the bare value", func() {
			So(Line(&buf, "urn", u, Options{}), ShouldBeNil)
			So(buf.String(), ShouldEqual, "urn:mediathek:zdf:program:terra-x\n")
		})

		Convey("JSON output wraps it in an object", func() {
			So(Line(&buf, "urn", u, Options{JSON: true}), ShouldBeNil)
			So(buf.String(), ShouldEqual, "{\"urn\":\"urn:mediathek:zdf:program:terra-x\"}\n")
		})
	})
}
