// internal/pipeline/pipeline.go
// Package pipeline chains bundle assembly and dataset appending for one test
// file or for every case of a multi-test file.
package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mwiater/autoworker/internal/appconfig"
	"github.com/mwiater/autoworker/internal/bundle"
	"github.com/mwiater/autoworker/internal/dataset"
	"github.com/mwiater/autoworker/internal/entity"
	"github.com/mwiater/autoworker/internal/keyword"
	"github.com/mwiater/autoworker/internal/lang"
	"github.com/mwiater/autoworker/internal/logging"
	"github.com/mwiater/autoworker/internal/splitter"
	"github.com/mwiater/autoworker/internal/util"
)

// Summary describes one processed test.
type Summary struct {
	Case     int           `json:"case,omitempty"`
	TestFile string        `json:"testFile"`
	Found    []string      `json:"found"`
	Missing  []string      `json:"missing,omitempty"`
	Dropped  []string      `json:"dropped,omitempty"`
	Records  int           `json:"records,omitempty"`
	Output   string        `json:"output,omitempty"`
	Bundle   bundle.Bundle `json:"bundle"`
	Bundled  bool          `json:"bundled"`
	Appended bool          `json:"appended"`
	Error    string        `json:"error,omitempty"`
}

type runner struct {
	cfg       appconfig.Config
	language  lang.Language
	assembler *bundle.Assembler
	keywords  []string
	appender  dataset.Appender
}

func newRunner(cfg appconfig.Config) (*runner, error) {
	language, err := cfg.Language()
	if err != nil {
		return nil, err
	}
	store, err := entity.NewStore(cfg.EntityDir, cfg.EntityExtension(), cfg.CacheEntries())
	if err != nil {
		return nil, err
	}
	keywords, err := store.Keywords()
	if err != nil {
		return nil, err
	}
	return &runner{
		cfg:      cfg,
		language: language,
		assembler: &bundle.Assembler{
			Store:     store,
			Language:  language,
			Framework: cfg.Framework,
			Scan:      keyword.Options{WordBoundary: cfg.WordBoundary},
		},
		keywords: keywords,
		appender: dataset.Appender{Path: cfg.OutputPath, Lock: cfg.DatasetLock},
	}, nil
}

func (r *runner) bundle() (Summary, error) {
	res, err := r.assembler.AssembleFile(r.cfg.TestFile, r.keywords)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		TestFile: r.cfg.TestFile,
		Found:    res.Found,
		Missing:  res.Fetch.Missing,
		Dropped:  res.Dedupe.Dropped,
		Bundle:   res.Bundle,
		Bundled:  true,
	}, nil
}

func (r *runner) run() (Summary, error) {
	sum, err := r.bundle()
	if err != nil {
		return Summary{}, err
	}
	_, count, err := r.appender.AppendDocument(r.cfg.TestFile, r.cfg.UnescapeCode)
	if err != nil {
		return Summary{}, err
	}
	sum.Records = count
	sum.Output = r.cfg.OutputPath
	sum.Appended = true
	return sum, nil
}

// Bundle assembles the configured test file into a three-part document in place.
func Bundle(cfg appconfig.Config) (Summary, error) {
	if err := cfg.Validate(appconfig.OpBundle); err != nil {
		return Summary{}, err
	}
	r, err := newRunner(cfg)
	if err != nil {
		return Summary{}, err
	}
	return r.bundle()
}

// Append adds the three-part document at the configured test file to the dataset.
func Append(cfg appconfig.Config) (Summary, error) {
	if err := cfg.Validate(appconfig.OpAppend); err != nil {
		return Summary{}, err
	}
	appender := dataset.Appender{Path: cfg.OutputPath, Lock: cfg.DatasetLock}
	rec, count, err := appender.AppendDocument(cfg.TestFile, cfg.UnescapeCode)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		TestFile: cfg.TestFile,
		Records:  count,
		Output:   cfg.OutputPath,
		Bundle:   bundle.Bundle{TestCode: rec.Result, EntityCode: rec.Code, Framework: rec.Framework},
		Appended: true,
	}, nil
}

// Run bundles the configured test file and appends the result to the dataset.
func Run(cfg appconfig.Config) (Summary, error) {
	if err := cfg.Validate(appconfig.OpRun); err != nil {
		return Summary{}, err
	}
	r, err := newRunner(cfg)
	if err != nil {
		return Summary{}, err
	}
	return r.run()
}

// RunAll splits the configured cases file and runs every case through the
// test file. Processing stops at the first failing case unless
// cfg.ContinueOnError is set, in which case failed cases get a Summary with
// Error filled in and all case errors are joined into the returned error.
func RunAll(cfg appconfig.Config) ([]Summary, error) {
	if err := cfg.Validate(appconfig.OpRunAll); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(cfg.CasesFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("cases file %q: %w", cfg.CasesFile, entity.ErrNotFound)
		}
		return nil, fmt.Errorf("read cases file %q: %w", cfg.CasesFile, err)
	}

	r, err := newRunner(cfg)
	if err != nil {
		return nil, err
	}

	cases := splitter.Split(string(data), r.language)
	logging.LogStage("split", cfg.CasesFile, map[string]any{"cases": len(cases), "language": r.language.String()})

	summaries := make([]Summary, 0, len(cases))
	var errs []error
	for i, tc := range cases {
		sum, err := r.runCase(tc)
		if err != nil {
			err = fmt.Errorf("case %d (%s): %w", i+1, util.FirstLine(tc), err)
			if !cfg.ContinueOnError {
				return summaries, err
			}
			logging.LogEvent("run-all: %v", err)
			errs = append(errs, err)
			sum = Summary{TestFile: cfg.TestFile, Error: err.Error()}
		}
		sum.Case = i + 1
		summaries = append(summaries, sum)
	}
	return summaries, errors.Join(errs...)
}

func (r *runner) runCase(code string) (Summary, error) {
	if err := util.WriteFile(r.cfg.TestFile, []byte(code)); err != nil {
		return Summary{}, fmt.Errorf("write test file: %w", err)
	}
	return r.run()
}
