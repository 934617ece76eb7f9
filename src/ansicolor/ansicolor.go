package ansicolor

import (
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
)

// See this file for a good color reference:
// https://github.com/fatih/color/blob/master/color.go

var Reset = "\033[0m"
var Bold = "\033[1m"

var Red = "\033[31m"
var Green = "\033[32m"
var Yellow = "\033[33m"
var Blue = "\033[34m"
var Gray = "\033[37m"

var BgRed = "\033[41m"
var BgYellow = "\033[43m"
var BgBlue = "\033[44m"

func init() {
	if runtime.GOOS == "windows" || os.Getenv("NO_COLOR") != "" || !isatty.IsTerminal(os.Stdout.Fd()) {
		Disable()
	}
}

// Disable blanks every escape sequence, so output written afterwards is plain text.
func Disable() {
	for _, c := range []*string{&Reset, &Bold, &Red, &Green, &Yellow, &Blue, &Gray, &BgRed, &BgYellow, &BgBlue} {
		*c = ""
	}
}

// Paint wraps s in the given color codes.
func Paint(s string, codes ...string) string {
	if Reset == "" {
		return s
	}
	var prefix string
	for _, c := range codes {
		prefix += c
	}
	return prefix + s + Reset
}
