// Package main is the production entry point for the GoVis audio visualizer.
//
// Build:
//
//	go build -o build/govis ./cmd
//
// Run:
//
//	./build/govis --file song.mp3 --style "filled wave" --rainbow
package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/integrii/flaggy"

	"github.com/tejashwikalptaru/govis/internal/app"
	"github.com/tejashwikalptaru/govis/internal/domain"
	"github.com/tejashwikalptaru/govis/internal/logger"
)

type flags struct {
	file      string
	mic       bool
	demo      bool
	silent    bool
	style     string
	color     string
	rainbow   bool
	logLevel  string
	logFormat string
}

func main() {
	log.SetFlags(0)

	config := app.DefaultConfig()
	if doFlags(&config) {
		return
	}

	// Create the application with dependency injection
	application, err := app.NewApplication(config)
	chk(err, "failed to create application")

	// Ensure a graceful shutdown
	defer func() {
		if err := application.Shutdown(); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	// Run application (blocks until the window closed)
	application.Run()
}

// doFlags fills config from the command line. It returns true when the
// invocation only asked for information and the app should not start.
func doFlags(config *app.Config) bool {
	defaults := config.InitialOptions
	f := flags{
		style:     defaults.Style.String(),
		color:     defaults.BaseColorHex,
		logLevel:  config.LogLevel.String(),
		logFormat: config.LogFormat,
	}

	parser := flaggy.NewParser("govis")
	parser.Description = "Real-time audio visualizer"
	parser.Version = app.GetVersionInfo().FullString()

	listStylesCmd := flaggy.Subcommand{
		Name:        "list-styles",
		ShortName:   "ls",
		Description: "list all visualization styles",
	}
	parser.AttachSubcommand(&listStylesCmd, 1)

	parser.String(&f.file, "f", "file", "sound file to visualize (.wav .mp3 .ogg .flac)")
	parser.Bool(&f.mic, "m", "mic", "visualize the default input device")
	parser.Bool(&f.demo, "", "demo", "visualize a generated tone")
	parser.Bool(&f.silent, "q", "silent", "do not play files through the speakers")
	parser.String(&f.style, "s", "style", "bars, wave, filled-wave or oscilloscope")
	parser.String(&f.color, "c", "color", "base color as six hex digits")
	parser.Bool(&f.rainbow, "r", "rainbow", "cycle the color every frame")
	parser.String(&f.logLevel, "", "log-level", "DEBUG, INFO, WARN or ERROR")
	parser.String(&f.logFormat, "", "log-format", "text or json")

	chk(parser.Parse(), "failed to parse arguments")

	if listStylesCmd.Used {
		for _, s := range domain.AllStyles() {
			fmt.Printf("- %s (%s)\n", s, s.Label())
		}
		return true
	}

	chk(apply(f, config), "invalid arguments")
	return false
}

// apply copies parsed flags into config.
func apply(f flags, config *app.Config) error {
	style, err := domain.ParseVisualStyle(f.style)
	if err != nil {
		return err
	}
	color, err := domain.FromHex(f.color)
	if err != nil {
		return err
	}

	config.InitialOptions = domain.DisplayOptions{
		Style:        style,
		BaseColorHex: color.Hex(),
		Rainbow:      f.rainbow,
	}
	config.LogLevel = logger.ParseLevel(f.logLevel, config.LogLevel)
	config.LogFormat = logger.ParseFormat(f.logFormat)
	config.Silent = f.silent

	selected := 0
	for _, on := range []bool{f.file != "", f.mic, f.demo} {
		if on {
			selected++
		}
	}
	if selected > 1 {
		return fmt.Errorf("choose only one of --file, --mic and --demo")
	}

	switch {
	case f.file != "":
		config.Source = app.SourceFile
		config.FilePath = strings.TrimSpace(f.file)
	case f.mic:
		config.Source = app.SourceMicrophone
	case f.demo:
		config.Source = app.SourceDemo
	}
	return nil
}

func chk(err error, wrap string) {
	if err != nil {
		log.Fatalln(wrap+": ", err)
	}
}
