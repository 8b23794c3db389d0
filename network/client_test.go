package network

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mangasan-cli/mangasan/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClientUserAgent(t *testing.T) {
	Convey("Client", t, func() {
		var received string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			received = r.Header.Get("User-Agent")
		}))
		defer server.Close()

		Convey("Should fill in the default User-Agent when none is set", func() {
			req, err := http.NewRequest(http.MethodGet, server.URL, nil)
			So(err, ShouldBeNil)

			resp, err := Client.Do(req)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(received, ShouldEqual, constant.UserAgent)
		})

		Convey("Should keep an explicit User-Agent untouched", func() {
			req, err := http.NewRequest(http.MethodGet, server.URL, nil)
			So(err, ShouldBeNil)
			req.Header.Set("User-Agent", "custom-agent/1.0")

			resp, err := Client.Do(req)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(received, ShouldEqual, "custom-agent/1.0")
		})
	})
}
