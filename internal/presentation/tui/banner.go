package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"   ___ __ _ ___  ___  __ _  ___ _ __",
	"  / __/ _` / __|/ _ \\/ _` |/ _ \\ '_ \\",
	" | (_| (_| \\__ \\  __/ (_| |  __/ | | |",
	"  \\___\\__,_|___/\\___|\\__, |\\___|_| |_|",
	"                     |___/",
}

var bannerColors = []string{"#34d399", "#2dd4bf", "#22d3ee", "#38bdf8", "#60a5fa"}

// PrintBanner writes the casegen banner to w, colored when the terminal supports it.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(bannerColors[i])))
	}
	fmt.Fprintln(w)
}
