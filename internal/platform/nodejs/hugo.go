package nodejs

import (
	"log/slog"
	"path"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/platdetect/internal/platform"
	"github.com/thoreinstein/platdetect/internal/repo"
)

// HugoConfigDir is the directory holding split Hugo configuration.
const HugoConfigDir = "config"

// hugoKeys are top-level settings that mark a Hugo site configuration.
var hugoKeys = []string{"baseURL", "title", "languageCode", "theme"}

// IsHugoSite reports whether the tree holds a Hugo static-site
// configuration. Candidates are checked in order: config.toml and hugo.toml
// at the root, config/config.toml, any *.toml below config/, then
// config.yaml and hugo.yaml at the root.
func IsHugoSite(r repo.SourceRepo, logger *slog.Logger) bool {
	for _, name := range []string{"config.toml", "hugo.toml", path.Join(HugoConfigDir, "config.toml")} {
		if r.FileExists(name) && hasHugoKeys(r, name, decodeTOML, logger) {
			return true
		}
	}

	if r.DirExists(HugoConfigDir) {
		files, err := r.EnumerateFiles("*.toml", true, HugoConfigDir)
		if err != nil {
			logger.Debug("cannot list hugo config directory", "error", err)
		}
		for _, name := range files {
			if hasHugoKeys(r, name, decodeTOML, logger) {
				return true
			}
		}
	}

	for _, name := range []string{"config.yaml", "hugo.yaml"} {
		if r.FileExists(name) && hasHugoKeys(r, name, decodeYAML, logger) {
			return true
		}
	}
	return false
}

type decodeFunc func(text string) (map[string]any, error)

func decodeTOML(text string) (map[string]any, error) {
	var doc map[string]any
	err := toml.Unmarshal([]byte(text), &doc)
	return doc, err
}

func decodeYAML(text string) (map[string]any, error) {
	var doc map[string]any
	err := yaml.Unmarshal([]byte(text), &doc)
	return doc, err
}

// hasHugoKeys decodes the file and looks for a Hugo key at the top level,
// ignoring case. Undecodable files are scanned line by line for a key at the
// start of a trimmed line.
func hasHugoKeys(r repo.SourceRepo, name string, decode decodeFunc, logger *slog.Logger) bool {
	text, err := r.ReadFile(name)
	if err != nil {
		logger.Debug("cannot read hugo config", "file", name, "error", err)
		return false
	}

	doc, err := decode(text)
	if err != nil {
		logger.Warn("hugo config is malformed, scanning lines", "file", name, "error", platform.Malformed(err, name))
		return scanHugoKeys(repo.SplitLines(text))
	}

	for key := range doc {
		for _, want := range hugoKeys {
			if strings.EqualFold(key, want) {
				return true
			}
		}
	}
	return false
}

func scanHugoKeys(lines []string) bool {
	for _, line := range lines {
		line = strings.TrimLeft(line, " \t")
		for _, key := range hugoKeys {
			if strings.HasPrefix(line, key) {
				return true
			}
		}
	}
	return false
}
