package livescore_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/wicketml/gully/internal/adapters/livescore"
)

const scoresPage = `<html><body>
<div class="cb-mtch-lst">
  <div class="cb-lv-scrs-col">
    <span>IND 245/3</span> <span>(42.1 ov)</span>
  </div>
  <div class="cb-lv-scrs-col"><span>AUS 180/9</span></div>
</div>
</body></html>`

func TestFetch(t *testing.T) {
	Convey("Given a scores page with live matches", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(scoresPage))
		}))
		defer srv.Close()

		client := livescore.NewClient(srv.URL)
		text, err := client.Fetch(context.Background())

		Convey("Then the first score snippet is returned trimmed", func() {
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "IND 245/3 (42.1 ov)")
		})
	})

	Convey("Given a page without score nodes", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html><body><p>rain delay</p></body></html>"))
		}))
		defer srv.Close()

		client := livescore.NewClient(srv.URL)
		_, err := client.Fetch(context.Background())

		Convey("Then ErrNoMatches is reported", func() {
			So(err, ShouldEqual, livescore.ErrNoMatches)
		})
	})

	Convey("Given an upstream failure status", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		client := livescore.NewClient(srv.URL)
		_, err := client.Fetch(context.Background())

		Convey("Then the failure is surfaced as an error", func() {
			So(err, ShouldWrap, livescore.ErrFetchFailed)
		})
	})

	Convey("Given a server slower than the timeout", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		client := livescore.NewClient(srv.URL, livescore.WithTimeout(20*time.Millisecond))
		start := time.Now()
		_, err := client.Fetch(context.Background())

		Convey("Then the fetch degrades quickly instead of blocking", func() {
			So(err, ShouldNotBeNil)
			So(time.Since(start), ShouldBeLessThan, time.Second)
		})
	})
}
