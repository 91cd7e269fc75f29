package style

import (
	"github.com/heroku/color"
)

// Symbol formats a value as a symbol, e.g. 'some-value'.
var Symbol = func(value string) string {
	if color.Enabled() {
		return Key(value)
	}
	return "'" + value + "'"
}

var Key = color.HiBlueString

var Warn = color.New(color.FgYellow, color.Bold).SprintfFunc()

var Error = color.New(color.FgRed, color.Bold).SprintfFunc()
