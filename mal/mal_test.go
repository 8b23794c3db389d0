package mal

import (
	"testing"

	"github.com/mangasan-cli/mangasan/filesystem"
	"github.com/mangasan-cli/mangasan/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestGenerateCodeVerifier(t *testing.T) {
	Convey("GenerateCodeVerifier", t, func() {
		Convey("Should generate a valid PKCE code verifier", func() {
			verifier, err := GenerateCodeVerifier()
			So(err, ShouldBeNil)
			So(verifier, ShouldNotBeEmpty)
			// PKCE verifiers must be between 43 and 128 characters
			So(len(verifier), ShouldBeGreaterThanOrEqualTo, 20)
		})

		Convey("Should generate unique values on each call", func() {
			v1, _ := GenerateCodeVerifier()
			v2, _ := GenerateCodeVerifier()
			So(v1, ShouldNotEqual, v2)
		})
	})
}

func TestGetAuthURL(t *testing.T) {
	Convey("GetAuthURL", t, func() {
		Convey("Should generate a valid MAL auth URL", func() {
			viper.Set(key.MALClientID, "test-client-id")
			defer viper.Set(key.MALClientID, "")

			url := GetAuthURL("test-verifier")
			So(url, ShouldContainSubstring, "https://myanimelist.net/v1/oauth2/authorize")
			So(url, ShouldContainSubstring, "client_id=test-client-id")
			So(url, ShouldContainSubstring, "code_challenge=test-verifier")
			So(url, ShouldContainSubstring, "response_type=code")
		})

		Convey("Should use the bundled client ID when none is configured", func() {
			viper.Set(key.MALClientID, "")

			url := GetAuthURL("test-verifier")
			So(url, ShouldContainSubstring, "client_id="+defaultClientID)
		})
	})
}

func TestStructTypes(t *testing.T) {
	Convey("Data Structures", t, func() {
		Convey("Token should have correct zero values", func() {
			var token Token
			So(token.AccessToken, ShouldBeEmpty)
			So(token.RefreshToken, ShouldBeEmpty)
			So(token.ExpiresIn, ShouldEqual, 0)
		})

		Convey("Manga should have correct zero values", func() {
			var manga Manga
			So(manga.ID, ShouldEqual, 0)
			So(manga.Title, ShouldBeEmpty)
			So(manga.Genres, ShouldBeEmpty)
		})

		Convey("Manga URL should point at the public page", func() {
			manga := Manga{ID: 42}
			So(manga.URL(), ShouldEqual, "https://myanimelist.net/manga/42")
		})
	})
}
