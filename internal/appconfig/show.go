package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		defaults := Defaults()
		cfg = &defaults
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Test File:       %s\n", cfg.TestFile)
	fmt.Fprintf(out, "  Entity Dir:      %s\n", cfg.EntityDir)
	fmt.Fprintf(out, "  Entity Ext:      %s\n", cfg.EntityExtension())
	fmt.Fprintf(out, "  Framework:       %s\n", cfg.Framework)
	fmt.Fprintf(out, "  Language:        %s\n", cfg.LanguageTag)
	fmt.Fprintf(out, "  Output:          %s\n", cfg.OutputPath)
	fmt.Fprintf(out, "  Cases File:      %s\n", cfg.CasesFile)
	fmt.Fprintf(out, "  Word Boundary:   %v\n", cfg.WordBoundary)
	fmt.Fprintf(out, "  Unescape Code:   %v\n", cfg.UnescapeCode)
	fmt.Fprintf(out, "  Dataset Lock:    %v\n", cfg.DatasetLock)
	fmt.Fprintf(out, "  Continue On Err: %v\n", cfg.ContinueOnError)
	fmt.Fprintf(out, "  Cache Size:      %d\n", cfg.CacheEntries())
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  JSON Mode:       %v\n", cfg.JSONMode)
}
