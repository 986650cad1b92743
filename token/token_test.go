package token

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mediathek-cli/mediathek/filesystem"
	"github.com/mediathek-cli/mediathek/key"
	"github.com/mediathek-cli/mediathek/network/nettest"
	"github.com/mediathek-cli/mediathek/source"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

func init() {
	filesystem.SetMemMapFs()
}

const seedPage = `<script>
var config = { apiToken: 'short', x: 1 };
var player = { apiToken: "aa7bc51f47b27e1a3f0a1d2b4c8e9f00", appId: "web" };
var other = { apiToken: "zz9999999999999999999999", appId: "web" };
</script>`

func TestScrape(t *testing.T) {
	Convey("Given a page embedding several tokens", t, func() {
		Convey("Short candidates are skipped and order is kept", func() {
			So(Candidates(seedPage), ShouldResemble, []string{
				"aa7bc51f47b27e1a3f0a1d2b4c8e9f00",
				"zz9999999999999999999999",
			})
		})

		Convey("The first valid candidate wins", func() {
			tok, err := Scrape(seedPage)
			So(err, ShouldBeNil)
			So(tok, ShouldEqual, "aa7bc51f47b27e1a3f0a1d2b4c8e9f00")
		})
	})

	Convey("Given a page without tokens", t, func() {
		_, err := Scrape("<html>nothing here</html>")
		So(errors.Is(err, source.ErrAuth), ShouldBeTrue)

		_, err = Scrape(`apiToken: "abc"`)
		So(errors.Is(err, source.ErrAuth), ShouldBeTrue)
	})
}

func TestStores(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore("/config/tokens.json"),
	}

	for name, store := range stores {
		Convey("Given the "+name+" store", t, func() {
			Convey("Absent tokens are reported as such", func() {
				_, ok := store.Get("api.zdf.de")
				So(ok, ShouldBeFalse)
			})

			Convey("Tokens can be set, read and deleted", func() {
				So(store.Set("api.zdf.de", "abc"), ShouldBeNil)
				v, ok := store.Get("api.zdf.de")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, "abc")

				So(store.Delete("api.zdf.de"), ShouldBeNil)
				_, ok = store.Get("api.zdf.de")
				So(ok, ShouldBeFalse)
			})
		})
	}

	Convey("Given the keyring store", t, func() {
		keyring.MockInit()
		store := NewKeyringStore()

		So(store.Set("api.3sat.de", "xyz"), ShouldBeNil)
		v, ok := store.Get("api.3sat.de")
		So(ok, ShouldBeTrue)
		So(v, ShouldEqual, "xyz")
		So(store.Delete("api.3sat.de"), ShouldBeNil)
		So(store.Delete("api.3sat.de"), ShouldBeNil)
	})

	Convey("Given the configured backend", t, func() {
		viper.Set(key.TokenStore, BackendFile)
		defer viper.Set(key.TokenStore, BackendMemory)

		store, err := FromConfig()
		So(err, ShouldBeNil)
		So(store, ShouldHaveSameTypeAs, &FileStore{})

		viper.Set(key.TokenStore, "vault")
		_, err = FromConfig()
		So(err, ShouldNotBeNil)
	})
}

func TestManager(t *testing.T) {
	const seed = "https://www.zdf.de/magazine/heute-journal-104"
	ctx := context.Background()

	Convey("Given a seed page with a token", t, func() {
		transport := nettest.New().OK(seed, seedPage)
		store := NewMemoryStore()
		manager := NewManager(store, transport)

		Convey("Refresh stores the scraped token", func() {
			tok, err := manager.Refresh(ctx, "api.zdf.de", seed)
			So(err, ShouldBeNil)
			So(tok, ShouldEqual, "aa7bc51f47b27e1a3f0a1d2b4c8e9f00")

			current, ok := manager.Current("api.zdf.de")
			So(ok, ShouldBeTrue)
			So(current, ShouldEqual, tok)
		})

		Convey("Renew scrapes when the stored token is the rejected one", func() {
			_ = store.Set("api.zdf.de", "rejectedtoken12345")
			tok, err := manager.Renew(ctx, "api.zdf.de", seed, "rejectedtoken12345")
			So(err, ShouldBeNil)
			So(tok, ShouldEqual, "aa7bc51f47b27e1a3f0a1d2b4c8e9f00")
			So(transport.CallsTo(seed), ShouldEqual, 1)
		})

		Convey("Renew keeps a token another caller already stored", func() {
			_ = store.Set("api.zdf.de", "newertoken12345678")
			tok, err := manager.Renew(ctx, "api.zdf.de", seed, "rejectedtoken12345")
			So(err, ShouldBeNil)
			So(tok, ShouldEqual, "newertoken12345678")
			So(transport.CallsTo(seed), ShouldEqual, 0)
		})

		Convey("Concurrent renewals of one rejected token scrape once", func() {
			_ = store.Set("api.zdf.de", "rejectedtoken12345")
			var wg sync.WaitGroup
			results := make([]string, 4)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i], _ = manager.Renew(ctx, "api.zdf.de", seed, "rejectedtoken12345")
				}(i)
			}
			wg.Wait()

			So(transport.CallsTo(seed), ShouldEqual, 1)
			for _, tok := range results {
				So(tok, ShouldEqual, "aa7bc51f47b27e1a3f0a1d2b4c8e9f00")
			}
		})
	})

	Convey("Given an unreachable seed page", t, func() {
		manager := NewManager(NewMemoryStore(), nettest.New().Fail(seed))

		Convey("Refresh fails with an auth error", func() {
			_, err := manager.Refresh(ctx, "api.zdf.de", seed)
			So(source.KindOf(err), ShouldEqual, source.AuthError)
		})
	})
}
