package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/trochomill/pkg/config"
	"github.com/chazu/trochomill/pkg/diag"
	"github.com/chazu/trochomill/pkg/export"
)

func main() {
	configPath := flag.String("config", "", "Read tool, cut and G-code defaults from this YAML, TOML or JSON file. Settings can also come from TROCHOMILL_* environment variables.")
	gcodePath := flag.String("o", "", "Write G-code to this file instead of stdout.")
	svgPath := flag.String("svg", "", "Write an SVG drawing of the boundary and tool path.")
	svgSlices := flag.Bool("svg-slices", false, "Also draw every slice circle in the SVG.")
	svgMedial := flag.Bool("svg-medial", false, "Also draw the medial-axis tree in the SVG.")
	dxfPath := flag.String("dxf", "", "Write the boundary and flattened tool path as DXF lines.")
	pngPath := flag.String("png", "", "Write a PNG preview of the material the tool removes.")
	pngSize := flag.Int("png-size", 512, "Set the length of the longer PNG side in pixels.")
	jsonOut := flag.Bool("json", false, "Print the evaluation result as JSON instead of G-code.")
	verbose := flag.Bool("v", false, "Log pipeline diagnostics to stderr.")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: trochomill [flags] [job.lisp]\n")
		fmt.Fprintf(os.Stderr, "Reads the job from stdin when no file is given.\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		diag.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	source, err := readSource(flag.Arg(0))
	if err != nil {
		fatal(err)
	}

	v, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	app, err := NewAppFromConfig(v)
	if err != nil {
		fatal(err)
	}

	outputs, result := app.Generate(source)
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w.Message)
	}
	for _, e := range result.Errors {
		if e.Line > 0 {
			fmt.Fprintf(os.Stderr, "error: line %d:%d: %s\n", e.Line, e.Col, e.Message)
		} else {
			fmt.Fprintf(os.Stderr, "error: %s\n", e.Message)
		}
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fatal(err)
		}
	} else if err := writeGCode(*gcodePath, app, outputs); err != nil {
		fatal(err)
	}

	multi := len(outputs) > 1
	for _, out := range outputs {
		if out.Result.Empty() {
			continue
		}
		if *svgPath != "" {
			opts := export.DefaultSVGOptions()
			opts.Slices = *svgSlices
			opts.Medial = *svgMedial
			err := writeFile(jobPath(*svgPath, out.Job.Name, multi), func(w io.Writer) error {
				return export.WriteSVG(w, out.Job, out.Result, opts)
			})
			if err != nil {
				fatal(err)
			}
		}
		if *dxfPath != "" {
			if err := export.WriteDXF(jobPath(*dxfPath, out.Job.Name, multi), out.Job, out.Result, out.Job.Options.Tolerance); err != nil {
				fatal(err)
			}
		}
		if *pngPath != "" {
			opts := export.DefaultPreviewOptions()
			opts.Size = *pngSize
			err := writeFile(jobPath(*pngPath, out.Job.Name, multi), func(w io.Writer) error {
				return export.WritePNG(w, out.Job, out.Result, opts)
			})
			if err != nil {
				fatal(err)
			}
		}
	}

	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "%v\n", err)
	os.Exit(1)
}

func readSource(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read job: %w", err)
	}
	return string(data), nil
}

func writeGCode(path string, app *App, outputs []Output) error {
	programs := make([]export.Program, 0, len(outputs))
	for _, out := range outputs {
		if out.Result.Empty() {
			continue
		}
		programs = append(programs, export.Program{Name: out.Job.Name, Path: out.Result.Path})
	}
	if path == "" {
		return export.WriteGCode(os.Stdout, app.GCode(), programs...)
	}
	return writeFile(path, func(w io.Writer) error {
		return export.WriteGCode(w, app.GCode(), programs...)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// jobPath inserts the job name before the extension when a file holds
// several jobs: out.svg becomes out-name.svg.
func jobPath(path, name string, multi bool) string {
	if !multi {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + name + ext
}
