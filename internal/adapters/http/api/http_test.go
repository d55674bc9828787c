package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/wicketml/gully/internal/adapters/http/api"
	service "github.com/wicketml/gully/internal/app"
	"github.com/wicketml/gully/internal/domain/model"
	"github.com/wicketml/gully/internal/domain/namematch"
)

// fakeDeps is a scripted Dependencies implementation.
type fakeDeps struct {
	board           []model.LeaderboardEntry
	boardErr        error
	retrainErr      error
	retrainInfo     model.SnapshotInfo
	lastQuery       string
	lastBoardLimit  int
	lastPlayerLimit int
}

func (f *fakeDeps) Query(_ context.Context, text string) string {
	f.lastQuery = text
	return "answered: " + text
}

func (f *fakeDeps) Leaderboard(_ context.Context, limit int) ([]model.LeaderboardEntry, error) {
	f.lastBoardLimit = limit
	return f.board, f.boardErr
}

func (f *fakeDeps) RoleStats(context.Context) (map[model.Role]float64, error) {
	return map[model.Role]float64{model.RoleBatsman: 6.5}, nil
}

func (f *fakeDeps) FindPlayers(_ context.Context, q string, limit int) ([]namematch.Match, error) {
	f.lastPlayerLimit = limit
	return []namematch.Match{{Player: "A Kale", Score: 100}}, nil
}

func (f *fakeDeps) Retrain(context.Context) (model.SnapshotInfo, error) {
	return f.retrainInfo, f.retrainErr
}

func (f *fakeDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestServer(deps *fakeDeps) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(deps, 50).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func TestChatEndpoint(t *testing.T) {
	Convey("Given the chat endpoint", t, func() {
		deps := &fakeDeps{}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When posting a question", func() {
			resp, err := http.Post(srv.URL+"/chat", "application/json",
				strings.NewReader(`{"query":"recommend a batsman"}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the routed answer comes back with CORS headers", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(resp.Header.Get("Access-Control-Allow-Origin"), ShouldEqual, "*")

				var body map[string]string
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body["response"], ShouldEqual, "answered: recommend a batsman")
				So(deps.lastQuery, ShouldEqual, "recommend a batsman")
			})
		})

		Convey("When posting an empty question", func() {
			resp, err := http.Post(srv.URL+"/chat", "application/json",
				strings.NewReader(`{"query":"  "}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When posting a malformed body", func() {
			resp, err := http.Post(srv.URL+"/chat", "application/json",
				strings.NewReader(`{`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When sending a CORS preflight", func() {
			req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/chat", nil)
			resp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusNoContent)
			So(resp.Header.Get("Access-Control-Allow-Methods"), ShouldContainSubstring, "POST")
		})
	})
}

func TestLeaderboardEndpoint(t *testing.T) {
	Convey("Given the leaderboard endpoint", t, func() {
		deps := &fakeDeps{board: []model.LeaderboardEntry{
			{Player: "R Patel", AvgPoints: 25},
			{Player: "A Kale", AvgPoints: 3.4},
		}}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When fetching without a limit", func() {
			resp, err := http.Get(srv.URL + "/leaderboard")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the default limit applies", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(deps.lastBoardLimit, ShouldEqual, 10)

				var entries []model.LeaderboardEntry
				So(json.NewDecoder(resp.Body).Decode(&entries), ShouldBeNil)
				So(entries, ShouldHaveLength, 2)
				So(entries[0].Player, ShouldEqual, "R Patel")
			})
		})

		Convey("When the limit is not a number", func() {
			resp, err := http.Get(srv.URL + "/leaderboard?limit=abc")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the limit exceeds the maximum", func() {
			resp, err := http.Get(srv.URL + "/leaderboard?limit=500")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the service is not ready", func() {
			deps.boardErr = service.ErrNotReady
			resp, err := http.Get(srv.URL + "/leaderboard")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusServiceUnavailable)
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given the stats endpoint", t, func() {
		srv := newTestServer(&fakeDeps{})
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/stats")
		So(err, ShouldBeNil)
		defer resp.Body.Close()

		Convey("Then service stats include role averages", func() {
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var stats map[string]any
			So(json.NewDecoder(resp.Body).Decode(&stats), ShouldBeNil)
			So(stats["started"], ShouldEqual, true)
			So(stats, ShouldContainKey, "role_averages")
		})
	})
}

func TestPlayersEndpoint(t *testing.T) {
	Convey("Given the players endpoint", t, func() {
		deps := &fakeDeps{}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When searching with a query", func() {
			resp, err := http.Get(srv.URL + "/players?q=kale&limit=3")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then matches are returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(deps.lastPlayerLimit, ShouldEqual, 3)

				var matches []namematch.Match
				So(json.NewDecoder(resp.Body).Decode(&matches), ShouldBeNil)
				So(matches, ShouldHaveLength, 1)
				So(matches[0].Player, ShouldEqual, "A Kale")
			})
		})

		Convey("When the query is missing", func() {
			resp, err := http.Get(srv.URL + "/players")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestRetrainEndpoint(t *testing.T) {
	Convey("Given the retrain endpoint", t, func() {
		deps := &fakeDeps{retrainInfo: model.SnapshotInfo{
			SnapshotID: "snap-1",
			TrainedAt:  time.Now().UTC(),
			Players:    42,
		}}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When a retrain succeeds", func() {
			resp, err := http.Post(srv.URL+"/retrain", "application/json", nil)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then 202 carries the new snapshot info", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusAccepted)

				var info model.SnapshotInfo
				So(json.NewDecoder(resp.Body).Decode(&info), ShouldBeNil)
				So(info.SnapshotID, ShouldEqual, "snap-1")
				So(info.Players, ShouldEqual, 42)
			})
		})

		Convey("When a retrain is already in flight", func() {
			deps.retrainErr = service.ErrRetrainInFlight
			resp, err := http.Post(srv.URL+"/retrain", "application/json", nil)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusConflict)
		})

		Convey("When retrain is requested with GET", func() {
			resp, err := http.Get(srv.URL + "/retrain")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}
