package provider

import (
	"path/filepath"
	"testing"

	"github.com/mangasan-cli/mangasan/filesystem"
	"github.com/mangasan-cli/mangasan/where"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestGet(t *testing.T) {
	Convey("When trying to get an invalid provider", t, func() {
		_, ok := Get("kek")
		Convey("Then ok should be false", func() {
			So(ok, ShouldBeFalse)
		})
	})

	Convey("When getting a built-in provider", t, func() {
		Convey("Lookup works by name and by ID", func() {
			byName, ok := Get("ComicK")
			So(ok, ShouldBeTrue)
			So(byName.ID, ShouldEqual, "comick")
			So(byName.IsCustom, ShouldBeFalse)

			byID, ok := Get("mangapill")
			So(ok, ShouldBeTrue)
			So(byID.Name, ShouldEqual, "Mangapill")
		})

		Convey("Its source can be constructed", func() {
			p, ok := Get("comick")
			So(ok, ShouldBeTrue)

			src, err := p.CreateSource()
			So(err, ShouldBeNil)
			So(src.ID(), ShouldEqual, "comick")
		})
	})
}

func TestCustomProviders(t *testing.T) {
	Convey("Given a sources directory with scripts", t, func() {
		dir := where.Sources()

		So(filesystem.API().WriteFile(filepath.Join(dir, "common.lua"), []byte("-- shared helpers"), 0o644), ShouldBeNil)
		So(filesystem.API().WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a script"), 0o644), ShouldBeNil)
		So(filesystem.API().WriteFile(filepath.Join(dir, "tortuga.lua"), []byte("function SearchManga(query) return {} end"), 0o644), ShouldBeNil)

		providers, err := CustomProviders()
		So(err, ShouldBeNil)

		Convey("Only standalone Lua scripts are listed", func() {
			So(providers, ShouldHaveLength, 1)
			So(providers[0].Name, ShouldEqual, "tortuga")
			So(providers[0].IsCustom, ShouldBeTrue)
			So(providers[0].UsesHeadless, ShouldBeFalse)
		})

		Convey("They are reachable through Get", func() {
			p, ok := Get("tortuga")
			So(ok, ShouldBeTrue)
			So(p.ID, ShouldEqual, "tortuga custom")
		})
	})
}
