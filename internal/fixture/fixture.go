// Package fixture runs table-driven EXIN programs against golden output,
// the way the teacher's vmTestCase/scripts/gen_vm_expects.go pair does:
// a Case names a source module and its expected behavior; Run executes one
// against a fresh exin.Interp, and Regenerate re-derives the golden files
// for a whole table concurrently, the way gen_vm_expects.go piped its
// output through goimports under an errgroup.
package fixture

import (
	"bytes"
	"io"
	"io/ioutil"
	"path/filepath"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/txtar"

	"exin"
)

// Case is one golden-file EXIN test: Source is the module's text, Input
// feeds any `input` statements, WantOutput is the expected `print` output,
// and WantCode is the expected process exit code (spec.md §6).
type Case struct {
	Name       string
	Source     string
	Input      string
	WantOutput string
	WantCode   int
}

// stringOpener serves a single in-memory module body for whatever name is
// opened, matching source.Opener without touching the filesystem.
type stringOpener struct{ body string }

func (o stringOpener) Open(name string) (io.ReadCloser, error) {
	return nopReadCloser{bytes.NewReader([]byte(o.body))}, nil
}

type nopReadCloser struct{ *bytes.Reader }

func (nopReadCloser) Close() error { return nil }

// Run executes c's Source against a fresh interpreter and returns the
// captured stdout and exit code, for comparison against c.WantOutput and
// c.WantCode.
func Run(ctx context.Context, c Case) (output string, code int, err error) {
	var out bytes.Buffer
	it := exin.New(
		exin.WithInput(bytes.NewBufferString(c.Input)),
		exin.WithOutput(&out),
		exin.WithOpener(stringOpener{body: c.Source}),
	)
	defer it.Close()
	res, runErr := it.Run(ctx, "main")
	return out.String(), res.Code, runErr
}

// Golden is one on-disk fixture: a *.exin source file alongside a
// *.exin.golden file holding the expected stdout.
type Golden struct {
	SourcePath string
	GoldenPath string
	Input      string
	WantCode   int
}

// Regenerate runs every Golden concurrently (bounded by ctx) and overwrites
// each GoldenPath with the freshly captured output, mirroring
// gen_vm_expects.go's errgroup-driven regeneration pipeline.
func Regenerate(ctx context.Context, goldens []Golden) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, g := range goldens {
		g := g
		eg.Go(func() error {
			src, err := ioutil.ReadFile(g.SourcePath)
			if err != nil {
				return err
			}
			output, _, err := Run(ctx, Case{
				Name:   filepath.Base(g.SourcePath),
				Source: string(src),
				Input:  g.Input,
			})
			if err != nil {
				return err
			}
			return ioutil.WriteFile(g.GoldenPath, []byte(output), 0644)
		})
	}
	return eg.Wait()
}

// LoadGolden reads path's expected output, or "" if it does not yet exist
// (a fresh fixture awaiting its first Regenerate).
func LoadGolden(path string) string {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

// LoadArchive reads one txtar-bundled Case from path: a "main.exin" file
// holding the source, an optional "input" file feeding `input` statements,
// and an optional "output" file holding the expected stdout. Bundling a
// whole case as one file keeps source and golden output next to each other
// without a pair of loosely-associated sibling files on disk.
func LoadArchive(path string) (Case, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return Case{}, err
	}
	ar := txtar.Parse(data)
	c := Case{Name: filepath.Base(path)}
	for _, f := range ar.Files {
		switch f.Name {
		case "main.exin":
			c.Source = string(f.Data)
		case "input":
			c.Input = string(f.Data)
		case "output":
			c.WantOutput = string(f.Data)
		}
	}
	return c, nil
}
