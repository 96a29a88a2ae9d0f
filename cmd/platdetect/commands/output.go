package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/thoreinstein/platdetect/internal/errors"
	"github.com/thoreinstein/platdetect/internal/logging"
)

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding output")
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// painter returns a color writer following --color for w.
func painter(w io.Writer, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if logging.ColorEnabled(w, colorMode) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
