// internal/bundle/assembler.go
package bundle

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/mwiater/autoworker/internal/dedupe"
	"github.com/mwiater/autoworker/internal/entity"
	"github.com/mwiater/autoworker/internal/keyword"
	"github.com/mwiater/autoworker/internal/lang"
	"github.com/mwiater/autoworker/internal/logging"
	"github.com/mwiater/autoworker/internal/util"
)

// Assembler builds bundles from test files and an entity store.
type Assembler struct {
	Store     *entity.Store
	Language  lang.Language
	Framework string
	Scan      keyword.Options
}

// Result is an assembled bundle plus what happened while building it.
type Result struct {
	Bundle  Bundle
	Found   []string
	Fetch   entity.FetchResult
	Dedupe  dedupe.Report
	Written string
}

// Assemble reads the test at testPath and collects the code of every name in
// names that the test mentions. A missing test file is an entity.ErrNotFound error.
func (a *Assembler) Assemble(testPath string, names []string) (Result, error) {
	if a.Store == nil {
		return Result{}, fmt.Errorf("assembler has no entity store")
	}
	data, err := os.ReadFile(testPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, fmt.Errorf("test file %q: %w", testPath, entity.ErrNotFound)
		}
		return Result{}, fmt.Errorf("read test file %q: %w", testPath, err)
	}
	return a.AssembleText(string(data), names)
}

// AssembleText is Assemble for test source already in memory.
func (a *Assembler) AssembleText(testCode string, names []string) (Result, error) {
	found := keyword.Scan(testCode, names, a.Scan)

	fetched, err := a.Store.FetchAll(found)
	if err != nil {
		return Result{}, err
	}

	report := dedupe.Eliminate(strings.TrimSpace(fetched.Code), a.Language)

	return Result{
		Bundle: Bundle{
			TestCode:   strings.TrimSpace(testCode),
			EntityCode: report.Output,
			Framework:  a.Framework,
		},
		Found:  found,
		Fetch:  fetched,
		Dedupe: report,
	}, nil
}

// AssembleFile assembles the bundle for testPath and overwrites testPath with
// its three-part document. Nothing is written when assembly fails.
func (a *Assembler) AssembleFile(testPath string, names []string) (Result, error) {
	res, err := a.Assemble(testPath, names)
	if err != nil {
		return Result{}, err
	}
	if err := util.WriteFileAtomic(testPath, []byte(res.Bundle.Document())); err != nil {
		return Result{}, fmt.Errorf("write bundle document: %w", err)
	}
	res.Written = testPath

	logging.LogStage("bundle", testPath, map[string]any{
		"found":       len(res.Found),
		"added":       len(res.Fetch.Added),
		"missing":     len(res.Fetch.Missing),
		"definitions": res.Dedupe.Definitions,
		"dropped":     len(res.Dedupe.Dropped),
		"language":    a.Language.String(),
	})
	return res, nil
}
