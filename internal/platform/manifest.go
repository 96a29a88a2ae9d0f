package platform

import (
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/thoreinstein/platdetect/internal/errors"
	"github.com/thoreinstein/platdetect/internal/repo"
)

// JSONField returns the string at a dotted path (gjson syntax) in a JSON
// manifest at the root of r. A missing file, missing field, unreadable file,
// invalid JSON or non-string value all yield "". Anything but a missing file
// or field is logged at warn level.
func JSONField(r repo.SourceRepo, file, field string, logger *slog.Logger) string {
	if !r.FileExists(file) {
		return ""
	}

	text, err := r.ReadFile(file)
	if err != nil {
		logger.Warn("cannot read manifest", "file", file, "error", err)
		return ""
	}
	if !gjson.Valid(text) {
		logger.Warn("ignoring malformed manifest", "file", file,
			"error", Malformed(errors.New("invalid JSON"), file))
		return ""
	}

	value := gjson.Get(text, field)
	switch {
	case !value.Exists():
		return ""
	case value.Type != gjson.String:
		logger.Warn("ignoring non-string manifest field", "file", file,
			"error", Malformed(errors.Newf("%s is %s", field, value.Type), file))
		return ""
	}
	return strings.TrimSpace(value.String())
}
