package srf

import (
	"context"
	"errors"
	"testing"

	"github.com/mediathek-cli/mediathek/network/nettest"
	"github.com/mediathek-cli/mediathek/source"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	videoID = "8d56e7ed-1ae2-4b20-9a52-51da7a4b9827"
	itemURL = integrationLayer + videoID + ".json?onlyChapters=true&vector=portalplay"
)

func TestReadItem(t *testing.T) {
	ctx := context.Background()

	Convey("Given a media composition", t, func() {
		transport := nettest.New().OK(itemURL, `{
			"episode": {"title": "Tagesschau Gebärdensprache"},
			"show": {"id": "ff969c14", "title": "Tagesschau"},
			"chapterList": [{
				"lead": "Die Nachrichten",
				"description": "vom Abend",
				"duration": 1800500,
				"date": "2021-03-01T19:30:00+01:00",
				"playableAbroad": false,
				"imageUrl": "https://www.srf.ch/static/cms/images/960w/abc.jpg",
				"imageTitle": "Studio",
				"resourceList": [{"url": "https://srf-vod.akamaized.net/x.m3u8", "mimeType": "application/x-mpegURL", "streaming": "HLS", "quality": "HD"}]
			}]
		}`)

		item, err := New(transport).ReadItemByID(ctx, videoID)
		So(err, ShouldBeNil)

		Convey("The first chapter describes the item", func() {
			So(item.Title, ShouldEqual, "Tagesschau Gebärdensprache")
			So(*item.IncludesSignLanguage, ShouldBeTrue)
			So(item.Description, ShouldEqual, "Die Nachrichten vom Abend")
			So(*item.Duration, ShouldEqual, 1800)
			So(*item.Broadcasts, ShouldEqual, 1614623400)
			So(item.Expires, ShouldBeNil)
			So(*item.Geoblocked, ShouldBeTrue)
			So(item.WebpageURL, ShouldEqual, "https://www.srf.ch/play/tv/_/video/_?id="+videoID)
			So(item.Program, ShouldResemble, &source.ProgramRef{ID: "ff969c14", Name: "Tagesschau"})
		})

		Convey("Images are scaled at fixed widths", func() {
			So(item.Image.Variants, ShouldResemble, []source.ImageVariant{
				{URL: "https://www.srf.ch/static/cms/images/960w/abc.jpg", Width: 1280, Height: 720},
				{URL: "https://www.srf.ch/static/cms/images/960w/abc.jpg/scale/width/688", Width: 688, Height: 387},
				{URL: "https://www.srf.ch/static/cms/images/960w/abc.jpg/scale/width/220", Width: 220, Height: 124},
			})
		})

		Convey("Resources become media", func() {
			So(item.Media, ShouldResemble, []source.Media{
				{URL: "https://srf-vod.akamaized.net/x.m3u8", Type: "application/x-mpegURL", Comment: "HLS HD"},
			})
			So(item.Subtitles, ShouldBeEmpty)
		})
	})

	Convey("Given a composition without chapters", t, func() {
		transport := nettest.New().OK(itemURL, `{"episode": {"title": "Nur Titel"}, "chapterList": []}`)
		item, err := New(transport).ReadItemByID(ctx, videoID)

		So(err, ShouldBeNil)
		So(item.Title, ShouldEqual, "Nur Titel")
		So(item.Media, ShouldNotBeNil)
		So(item.Geoblocked, ShouldBeNil)
	})

	Convey("Given a non-200 status", t, func() {
		transport := nettest.New().Reply(itemURL, 500, "")
		_, err := New(transport).ReadItemByID(ctx, videoID)
		So(errors.Is(err, source.ErrNetwork), ShouldBeTrue)
	})

	Convey("Given a page URL with an SRF urn", t, func() {
		transport := nettest.New().OK(itemURL, `{"episode": {"title": "x"}}`)
		item, err := New(transport).ReadItemByPageURL(ctx, "https://www.srf.ch/play/tv/tagesschau/video/x?urn=urn:srf:video:"+videoID)
		So(err, ShouldBeNil)
		So(item.ID, ShouldEqual, videoID)

		_, err = New(transport).ReadItemByPageURL(ctx, "https://www.srf.ch/play/tv/sendungen")
		So(errors.Is(err, source.ErrScheme), ShouldBeTrue)
	})

	Convey("Given a page URL on a foreign host", t, func() {
		transport := nettest.New().OK(itemURL, `{"episode": {"title": "x"}}`)
		_, err := New(transport).ReadItemByPageURL(ctx, "https://evil.example.com/anything?id="+videoID)
		So(errors.Is(err, source.ErrScheme), ShouldBeTrue)
		So(transport.Calls(), ShouldBeEmpty)
	})
}

const showJSON = `{"id": "ff969c14", "title": "Tagesschau", "lead": "kurz", "description": "lang",
	"imageUrl": "https://img/ts.jpg", "posterImageUrl": "https://img/poster.jpg"}`

func TestPrograms(t *testing.T) {
	ctx := context.Background()

	Convey("Given a show detail", t, func() {
		transport := nettest.New().OK(playAPI+"show-detail/ff969c14", `{"data": `+showJSON+`}`)
		program, err := New(transport).ReadProgram(ctx, "ff969c14")

		So(err, ShouldBeNil)
		So(program.Name, ShouldEqual, "Tagesschau")
		So(*program.DescriptionShort, ShouldEqual, "kurz")
		So(program.Image, ShouldHaveLength, 7)
		So(program.Image[0], ShouldResemble, source.ImageVariant{
			URL: "https://il.srgssr.ch/images/?imageUrl=https%3A%2F%2Fimg%2Fts.jpg&format=jpg&width=240", Width: 240, Height: 135,
		})
		So(program.Image[5].Height, ShouldEqual, 1080)
		So(program.Image[6].Width, ShouldEqual, 480)
		So(program.Image[6].Height, ShouldEqual, 720)
	})

	Convey("Given the show list", t, func() {
		transport := nettest.New().OK(playAPI+"shows", `{"data": [`+showJSON+`, {"id": "x", "title": "Ohne Bild"}]}`)
		programs, err := New(transport).ReadListOfPrograms(ctx)

		So(err, ShouldBeNil)
		So(programs, ShouldHaveLength, 2)
		So(programs[1].Image, ShouldBeEmpty)
		So(programs[1].Description, ShouldBeNil)
	})

	Convey("Given a response without data", t, func() {
		transport := nettest.New().OK(playAPI+"shows", `{}`).OK(playAPI+"show-detail/x", `{}`)

		_, err := New(transport).ReadListOfPrograms(ctx)
		So(errors.Is(err, source.ErrParse), ShouldBeTrue)

		_, err = New(transport).ReadProgram(ctx, "x")
		So(errors.Is(err, source.ErrParse), ShouldBeTrue)
	})
}

func TestFeed(t *testing.T) {
	ctx := context.Background()

	Convey("Given the videos of a show", t, func() {
		transport := nettest.New().OK(playAPI+"videos-by-show-id?showId=ff969c14", `{"data": {"data": [
			{"id": "v1", "title": "Tagesschau vom 01.03.2021", "lead": "Nachrichten", "duration": 1800000,
			 "imageUrl": "https://img/v1", "absoluteDetailUrl": "https://www.srf.ch/play/tv/x", "playableAbroad": true}
		]}}`)
		src := New(transport)

		descriptor, _ := src.FeedDescriptorForProgram(ctx, "ff969c14")
		items, err := src.ReadProgramFeed(ctx, descriptor)

		So(err, ShouldBeNil)
		So(items, ShouldHaveLength, 1)
		So(*items[0].Description, ShouldEqual, "Nachrichten")
		So(*items[0].Duration, ShouldEqual, 1800)
		So(*items[0].Geoblocked, ShouldBeFalse)
		So(items[0].Image.Variants[0].URL, ShouldEqual, "https://img/v1/scale/width/600")
	})

	Convey("Given a descriptor of another publisher", t, func() {
		_, err := New(nettest.New()).ReadProgramFeed(ctx, &source.FeedDescriptor{Publisher: source.Arte, ProgramID: "x"})
		So(errors.Is(err, source.ErrParse), ShouldBeTrue)
	})
}
