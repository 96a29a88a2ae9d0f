package commands

import (
	"strings"

	"github.com/thoreinstein/platdetect/internal/errors"
	"github.com/thoreinstein/platdetect/internal/paths"
)

// validatePlatformArg rejects names without a detector.
func validatePlatformArg(name string) error {
	if paths.ValidPlatform(name) {
		return nil
	}
	return errors.NewUserError(
		errors.Newf("unknown platform %q", name),
		"Valid platforms: "+strings.Join(paths.Platforms(), ", "))
}
