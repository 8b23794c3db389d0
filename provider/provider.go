// Package provider manages built-in and custom scraping providers.
package provider

import (
	"bytes"
	"path/filepath"

	"github.com/mangasan-cli/mangasan/filesystem"
	"github.com/mangasan-cli/mangasan/provider/comick"
	"github.com/mangasan-cli/mangasan/provider/custom"
	"github.com/mangasan-cli/mangasan/provider/mangapill"
	"github.com/mangasan-cli/mangasan/scraper"
	"github.com/mangasan-cli/mangasan/source"
	"github.com/mangasan-cli/mangasan/util"
	"github.com/mangasan-cli/mangasan/where"
)

// CustomProviderExtension is the file extension of custom provider scripts.
const CustomProviderExtension = ".lua"

// Provider represents a source provider.
type Provider struct {
	ID           string
	Name         string
	UsesHeadless bool // Indicates whether the provider requires a headless browser.
	IsCustom     bool // Reserved for Lua-based providers.
	CreateSource func() (source.Source, error)
}

func (p *Provider) String() string {
	return p.Name
}

// Builtins returns built-in providers.
func Builtins() []*Provider {
	return []*Provider{
		{
			ID:   comick.ID,
			Name: comick.Name,
			CreateSource: func() (source.Source, error) {
				return comick.New(scraper.DefaultOptions()), nil
			},
		},
		{
			ID:   mangapill.ID,
			Name: mangapill.Name,
			CreateSource: func() (source.Source, error) {
				return mangapill.New(scraper.DefaultOptions()), nil
			},
		},
	}
}

// Customs returns all available Lua providers.
func Customs() []*Provider {
	providers, _ := CustomProviders()
	return providers
}

// Get finds a provider by name or ID, built-ins first.
func Get(name string) (*Provider, bool) {
	for _, p := range append(Builtins(), Customs()...) {
		if p.Name == name || p.ID == name {
			return p, true
		}
	}
	return nil, false
}

func CustomProviders() ([]*Provider, error) {
	files, err := filesystem.API().ReadDir(where.Sources())
	if err != nil {
		return nil, err
	}

	var providers []*Provider
	for _, f := range files {
		if filepath.Ext(f.Name()) != CustomProviderExtension {
			continue
		}

		if f.Name() == "common.lua" {
			continue
		}

		path := filepath.Join(where.Sources(), f.Name())
		name := util.FileStem(f.Name())

		providers = append(providers, &Provider{
			ID:           custom.IDfromName(name),
			Name:         name,
			UsesHeadless: isHeadless(path),
			IsCustom:     true,
			CreateSource: func() (source.Source, error) {
				return custom.LoadSource(path)
			},
		})
	}

	return providers, nil
}

// Helpers

func isHeadless(path string) bool {
	content, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}

	match := [][]byte{
		[]byte("require(\"headless\")"),
		[]byte("require('headless')"),
	}

	for _, m := range match {
		if bytes.Contains(content, m) {
			return true
		}
	}
	return false
}
