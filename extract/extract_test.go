package extract

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBetween(t *testing.T) {
	Convey("Given a document with delimited sections", t, func() {
		doc := "<item><title>One</title></item><item><title>Two</title></item>"

		Convey("The first section is found from offset zero", func() {
			m, ok := Between(doc, "<title>", "</title>", 0)
			So(ok, ShouldBeTrue)
			So(m.Text, ShouldEqual, "One")
			So(doc[m.End:m.End+7], ShouldEqual, "</item>")
		})

		Convey("Walking with End visits every section", func() {
			So(All(doc, "<item>", "</item>"), ShouldResemble, []string{
				"<title>One</title>",
				"<title>Two</title>",
			})
		})

		Convey("A missing suffix is not found", func() {
			_, ok := Between("<title>broken", "<title>", "</title>", 0)
			So(ok, ShouldBeFalse)
		})

		Convey("Offsets out of range are not found", func() {
			_, ok := Between(doc, "<item>", "</item>", len(doc)+1)
			So(ok, ShouldBeFalse)
			_, ok = Between(doc, "<item>", "</item>", -1)
			So(ok, ShouldBeFalse)
		})

		Convey("Text wraps the result in an option", func() {
			So(Text(doc, "<title>", "</title>").MustGet(), ShouldEqual, "One")
			So(Text(doc, "<link>", "</link>").IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestDecodeEntities(t *testing.T) {
	Convey("Given text with character references", t, func() {
		So(DecodeEntities("Tom &amp; Jerry"), ShouldEqual, "Tom & Jerry")
		So(DecodeEntities("&quot;Tatort&quot;"), ShouldEqual, `"Tatort"`)
		So(DecodeEntities("Stra&#223;e &#x41;"), ShouldEqual, "Straße A")
		So(DecodeEntities("&amp;quot;"), ShouldEqual, "&quot;")
		So(DecodeEntities("&#0; stays"), ShouldEqual, "&#0; stays")
	})
}

func TestStripCDATA(t *testing.T) {
	Convey("Given CDATA-wrapped text", t, func() {
		So(StripCDATA(" <![CDATA[Hallo]]> "), ShouldEqual, "Hallo")
		So(StripCDATA("plain"), ShouldEqual, "plain")
	})
}
