package ard

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mediathek-cli/mediathek/network/nettest"
	"github.com/mediathek-cli/mediathek/source"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	itemID  = "Y3JpZDovL2Rhc2Vyc3RlLmRlL3RhZ2VzdGhlbWVuLzIwMjEtMDMtMDE"
	itemURL = gateway + "pages/ard/item/" + itemID + "?embedded=false&mcV6=true"
)

const itemPageJSON = `{"widgets": [{
	"title": "tagesthemen",
	"synopsis": "Themen des Tages",
	"publicationService": {"name": "SWR Baden-Württemberg"},
	"broadcastedOn": "2021-03-01T21:45:00Z",
	"availableTo": "2021-03-08T21:45:00Z",
	"geoblocked": false,
	"maturityContentRating": "FSK0",
	"show": {"id": "Y3JpZDovL2Rhc2Vyc3RlLmRlL3RhZ2VzdGhlbWVu", "title": "tagesthemen"},
	"image": {"src": "https://api.ardmediathek.de/image-service/images/urn:ard:image:1?w={width}", "alt": "Moderator", "producerName": "ARD"},
	"mediaCollection": {
		"embedded": {
			"meta": {"durationSeconds": 1800},
			"streams": [{"media": [
				{"url": "https://download.media.tagesschau.de/video/tt.webl.h264.mp4", "mimeType": "video/mp4", "maxHResolutionPx": 1920, "maxVResolutionPx": 1080},
				{"url": "https://adaptive.tagesschau.de/i/master.m3u8", "mimeType": "application/vnd.apple.mpegurl", "isAdaptiveQualitySelectable": true, "isHighDynamicRange": false},
				{"url": "https://other.ard.de/x.mp4", "mimeType": "video/mp4"}
			]}]
		},
		"_subtitleUrl": "https://classic.ardmediathek.de/subtitle/1",
		"_subtitleOffset": 0
	}
}]}`

func TestReadItem(t *testing.T) {
	ctx := context.Background()

	Convey("Given an item page", t, func() {
		transport := nettest.New().OK(itemURL, itemPageJSON)
		item, err := New(transport).ReadItemByID(ctx, itemID)
		So(err, ShouldBeNil)

		Convey("Metadata is normalized", func() {
			So(item.Publisher, ShouldEqual, source.ARD)
			So(*item.Originator, ShouldEqual, "SWR")
			So(item.Title, ShouldEqual, "tagesthemen vom 1.3.2021")
			So(item.Description, ShouldEqual, "Themen des Tages")
			So(*item.Duration, ShouldEqual, 1800)
			So(*item.Broadcasts, ShouldEqual, 1614635100)
			So(*item.Geoblocked, ShouldBeFalse)
			So(string(item.RatingInfo), ShouldEqual, `"FSK0"`)
			So(item.WebpageURL, ShouldEqual, "https://www.ardmediathek.de/video/"+itemID)
			So(item.Program.Name, ShouldEqual, "tagesthemen")
		})

		Convey("The image template is expanded at the item widths", func() {
			So(*item.Image.Description, ShouldEqual, "Moderator")
			So(item.Image.Variants, ShouldHaveLength, 4)
			So(item.Image.Variants[0], ShouldResemble, source.ImageVariant{
				URL: "https://api.ardmediathek.de/image-service/images/urn:ard:image:1?w=1984", Width: 1984, Height: 1116,
			})
		})

		Convey("Media comments and download flags are derived", func() {
			So(item.Media, ShouldHaveLength, 3)
			So(item.Media[0].Comment, ShouldEqual, "Resolution: 1920x1080")
			So(item.Media[0].DownloadAllowed, ShouldBeTrue)
			So(item.Media[0].Bitrate, ShouldBeNil)
			So(item.Media[1].Comment, ShouldEqual, "Adaptive quality")
			So(*item.Media[1].IsHDR, ShouldBeFalse)
			So(item.Media[2].Comment, ShouldEqual, "Unknown quality")
			So(*item.DownloadAllowed, ShouldBeTrue)
		})

		Convey("A zero subtitle offset is omitted", func() {
			So(item.Subtitles, ShouldResemble, []source.Subtitle{
				{Format: "ttml", Language: "de", URL: "https://classic.ardmediathek.de/subtitle/1"},
			})
		})
	})

	Convey("Given broken responses", t, func() {
		transport := nettest.New().
			OK(gateway+"pages/ard/item/empty?embedded=false&mcV6=true", "").
			OK(gateway+"pages/ard/item/html?embedded=false&mcV6=true", "<html></html>").
			OK(gateway+"pages/ard/item/none?embedded=false&mcV6=true", `{"widgets": []}`)
		src := New(transport)

		_, err := src.ReadItemByID(ctx, "empty")
		So(errors.Is(err, source.ErrNotFound), ShouldBeTrue)

		_, err = src.ReadItemByID(ctx, "html")
		So(errors.Is(err, source.ErrParse), ShouldBeTrue)

		_, err = src.ReadItemByID(ctx, "none")
		So(errors.Is(err, source.ErrNotFound), ShouldBeTrue)

		_, err = src.ReadItemByID(ctx, "unscripted")
		So(errors.Is(err, source.ErrNetwork), ShouldBeTrue)
	})

	Convey("Given an item page URL", t, func() {
		transport := nettest.New().OK(itemURL, itemPageJSON)
		item, err := New(transport).ReadItemByPageURL(ctx, "https://www.ardmediathek.de/video/tagesthemen/tagesthemen-21-45-uhr/das-erste/"+itemID)
		So(err, ShouldBeNil)
		So(item.ID, ShouldEqual, itemID)

		_, err = New(transport).ReadItemByPageURL(ctx, "https://www.ardmediathek.de/sendung/tagesthemen/Y3JpZA")
		So(errors.Is(err, source.ErrScheme), ShouldBeTrue)
	})
}

func TestNormalization(t *testing.T) {
	Convey("Contributors are shortened", t, func() {
		for in, want := range map[string]string{
			"Das Erste Fernsehen": "Das Erste",
			"MDR Sachsen":         "MDR",
			"mdr.de":              "MDR",
			"swr.de":              "SWR",
			"hr-fernsehen":        "hr",
			"Radio Bremen TV":     "Radio Bremen",
			"NDR":                 "NDR",
			"SWR Fernsehen":       "SWR",
			"BR Fernsehen":        "BR",
		} {
			So(*contributor(in), ShouldEqual, want)
		}
		So(contributor(""), ShouldBeNil)
	})

	Convey("Generic titles are rewritten", t, func() {
		ts := int64(1614635100)
		So(title("tagesthemen", &ts, ""), ShouldEqual, "tagesthemen vom 1.3.2021")
		So(title("tagesthemen", nil, ""), ShouldEqual, "tagesthemen")
		So(title("Die Sendung vom 01.03.2021", nil, "Panorama"), ShouldEqual, "Panorama vom")
		So(title("Die Sendung vom 01.03.2021", nil, ""), ShouldEqual, "Die Sendung vom 01.03.2021")
		So(title("Die Sendung vom 3.Mai", nil, "Tagesschau"), ShouldEqual, "Tagesschau vom")

		jan := int64(1704448800) // 2024-01-05 10:00 UTC
		So(title("tagesthemen", &jan, ""), ShouldEqual, "tagesthemen vom 5.1.2024")

		late := int64(1614641400) // 23:30 UTC is already the next day in Berlin
		So(title("tagesthemen", &late, ""), ShouldEqual, "tagesthemen vom 2.3.2021")
	})
}

func TestProgram(t *testing.T) {
	ctx := context.Background()
	const groupingURL = gateway + "pages/ard/grouping/show1?embedded=false&seasoned=true"

	Convey("Given a grouping with named crops", t, func() {
		transport := nettest.New().OK(groupingURL, `{
			"title":               "Panorama",
			"synopsis":            "Politikmagazin",
			"publicationService": {"name": "NDR Fernsehen"},
			"links": {"homepage": {"href": "https://daserste.ndr.de/panorama"}},
			"images": {
				"aspect1x1": {"src": "https://img/sq?w={width}"},
				"aspect16x9": {"src": "https://img/wide?w={width}"},
				"aspectbroken": {"src": "https://img/x"}
			}
		}`)
		program, err := New(transport).ReadProgram(ctx, "show1")

		So(err, ShouldBeNil)
		So(program.Name, ShouldEqual, "Panorama")
		So(*program.Originator, ShouldEqual, "NDR")
		So(*program.Homepage, ShouldEqual, "https://daserste.ndr.de/panorama")
		So(program.Image, ShouldResemble, []source.ImageVariant{
			{URL: "https://img/wide?w=320", Width: 320, Height: 180},
			{URL: "https://img/wide?w=768", Width: 768, Height: 432},
			{URL: "https://img/sq?w=320", Width: 320, Height: 320},
			{URL: "https://img/sq?w=768", Width: 768, Height: 768},
		})
	})

	Convey("Given a grouping without title", t, func() {
		transport := nettest.New().OK(groupingURL, `{"synopsis": "x"}`)
		_, err := New(transport).ReadProgram(ctx, "show1")
		So(errors.Is(err, source.ErrNotFound), ShouldBeTrue)
	})
}

func TestFeed(t *testing.T) {
	ctx := context.Background()

	Convey("Given the asset widget of a program", t, func() {
		transport := nettest.New().OK(gateway+"widgets/ard/asset/show1?pageNumber=0&pageSize=12", `{"teasers": [
			{"id": "e1", "longTitle": "Folge 1 (AD)", "duration": 1500, "broadcastedOn": "2021-03-01T20:15:00Z",
			 "images": {"aspect16x9": {"src": "https://img/e1?w={width}"}}},
			{"id": "e2", "longTitle": "tagesthemen", "broadcastedOn": "2021-03-01T21:45:00Z"}
		]}`)
		src := New(transport)

		descriptor, err := src.FeedDescriptorForProgram(ctx, "show1")
		So(err, ShouldBeNil)

		items, err := src.ReadProgramFeed(ctx, descriptor)
		So(err, ShouldBeNil)
		So(items, ShouldHaveLength, 2)
		So(*items[0].Duration, ShouldEqual, 1500)
		So(*items[0].IncludesAudioDescription, ShouldBeTrue)
		So(items[0].Image.Variants, ShouldResemble, []source.ImageVariant{{URL: "https://img/e1?w=256", Width: 256, Height: 144}})
		So(items[1].Title, ShouldEqual, "tagesthemen vom 1.3.2021")
		So(items[1].Image, ShouldBeNil)
	})

	Convey("Given a widget without teasers", t, func() {
		transport := nettest.New().OK(gateway+"widgets/ard/asset/show1?pageNumber=0&pageSize=12", `{"title": "x"}`)
		_, err := New(transport).ReadProgramFeed(ctx, &source.FeedDescriptor{Publisher: source.ARD, ProgramID: "show1"})
		So(errors.Is(err, source.ErrParse), ShouldBeTrue)
	})
}

func letterURL(pageID string, page int) string {
	return fmt.Sprintf("%swidgets/ard/editorials/%s?pageSize=100&pageNumber=%d", gateway, pageID, page)
}

func teasers(total int, ids ...string) string {
	body := `{"pagination": {"totalElements": ` + fmt.Sprint(total) + `}, "teasers": [`
	for i, id := range ids {
		if i > 0 {
			body += ","
		}
		body += `{"longTitle": "` + id + `", "links": {"target": {"id": "` + id + `"}}, "image": {"src": "https://img/` + id + `?w={width}"}}`
	}
	return body + "]}"
}

func TestProgramList(t *testing.T) {
	ctx := context.Background()

	Convey("Given every letter page scripted", t, func() {
		transport := nettest.New().
			OK(letterURL("QVJELmE", 0), teasers(150, "a1")).
			OK(letterURL("QVJELmE", 1), teasers(150, "a2"))
		for _, pageID := range letterPages[1:] {
			transport.OK(letterURL(pageID, 0), teasers(1, pageID))
		}

		programs, err := New(transport).ReadListOfPrograms(ctx)

		Convey("All pages of all letters are walked in order", func() {
			So(err, ShouldBeNil)
			So(programs, ShouldHaveLength, 28)
			So(programs[0].ID, ShouldEqual, "a1")
			So(programs[1].ID, ShouldEqual, "a2")
			So(programs[27].ID, ShouldEqual, "QVJELiM")
			So(programs[0].Image, ShouldHaveLength, 2)
			So(transport.Calls(), ShouldHaveLength, 28)
		})
	})

	Convey("Given a letter page reporting no elements", t, func() {
		transport := nettest.New().OK(letterURL("QVJELmE", 0), `{"teasers": []}`)
		programs, err := New(transport).ReadListOfPrograms(ctx)
		So(errors.Is(err, source.ErrParse), ShouldBeTrue)
		So(programs, ShouldBeNil)
	})
}
