package provider

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/mangasan-cli/mangasan/filesystem"
	"github.com/mangasan-cli/mangasan/log"
	"github.com/mangasan-cli/mangasan/network"
	"github.com/mangasan-cli/mangasan/where"
)

// RepoRawURL points at the bundled scraper scripts in the project repository.
const RepoRawURL = "https://raw.githubusercontent.com/mangasan-cli/mangasan/main/config/sources/"

// UpdateScrapers refreshes every installed Lua script (common.lua included)
// from the project repository, using SHA-256 hash checks to avoid redundant
// disk writes. It returns the names of the scripts that changed. A script
// that fails to download is skipped, not fatal; scripts the repository does
// not carry simply come back 404 and are left alone.
func UpdateScrapers(ctx context.Context) ([]string, error) {
	files, err := filesystem.API().ReadDir(where.Sources())
	if err != nil {
		return nil, err
	}

	var updated []string
	for _, f := range files {
		if filepath.Ext(f.Name()) != CustomProviderExtension {
			continue
		}

		changed, err := updateScript(ctx, f.Name())
		if err != nil {
			log.Warnf("Scraper update for %s failed: %v", f.Name(), err)
			continue
		}

		if changed {
			log.Infof("Updated scraper script: %s", f.Name())
			updated = append(updated, f.Name())
		}
	}

	return updated, nil
}

func updateScript(ctx context.Context, filename string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, RepoRawURL+filename, nil)
	if err != nil {
		return false, err
	}

	resp, err := network.Client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	remote, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}

	return applyUpdate(filepath.Join(where.Sources(), filename), remote)
}

// applyUpdate writes remote content over the local script unless the two
// already hash identically. The write goes through a temp file and a rename,
// so a failure mid-write never leaves a truncated script behind.
func applyUpdate(path string, remote []byte) (bool, error) {
	local, err := filesystem.API().ReadFile(path)
	if err == nil && sha256.Sum256(local) == sha256.Sum256(remote) {
		return false, nil
	}

	tmp := path + ".tmp"
	if err := filesystem.API().WriteFile(tmp, remote, 0o644); err != nil {
		return false, err
	}

	if err := filesystem.API().Rename(tmp, path); err != nil {
		_ = filesystem.API().Remove(tmp)
		return false, err
	}

	return true, nil
}
