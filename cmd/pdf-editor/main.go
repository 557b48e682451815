package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sushgiri-7/pdf-editor/editor"
	"github.com/sushgiri-7/pdf-editor/observability"
	"github.com/sushgiri-7/pdf-editor/persist"
	"github.com/sushgiri-7/pdf-editor/raster/poppler"
	"github.com/sushgiri-7/pdf-editor/scripting"
	"github.com/sushgiri-7/pdf-editor/writer"
)

type options struct {
	pdfPath    string
	storeDir   string
	passphrase string
	macroPath  string
	logPath    string
	compress   bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdf-editor: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "pdf-editor: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: pdf-editor [flags] [pdf]\n")
		flag.PrintDefaults()
	}
	flag.StringVar(&opts.storeDir, "store", defaultStoreDir(), "Directory saved sessions are kept in")
	flag.StringVar(&opts.passphrase, "passphrase", "", "Encrypt saved sessions with this passphrase")
	flag.StringVar(&opts.macroPath, "macro", "", "JavaScript macro to run after the document loads")
	flag.StringVar(&opts.logPath, "log", "", "Append structured logs to this file")
	flag.BoolVar(&opts.compress, "compress", true, "Compress content streams in exported PDFs")
	flag.Parse()

	if flag.NArg() > 1 {
		return opts, fmt.Errorf("at most one pdf argument expected")
	}
	opts.pdfPath = flag.Arg(0)
	return opts, nil
}

func defaultStoreDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "pdf-editor")
	}
	return ".pdf-editor"
}

func run(opts options) error {
	log, closeLog, err := openLogger(opts.logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	var store persist.Store = persist.NewFileStore(opts.storeDir)
	if opts.passphrase != "" {
		store = persist.NewSealedStore(store, opts.passphrase)
	}

	drags := newKeyDrags()
	ed := editor.New(&poppler.Rasterizer{}, termFactory{}, drags, store,
		editor.WithLogger(log),
		editor.WithWriterConfig(writer.Config{CompressContent: opts.compress}),
	)

	ctx := context.Background()
	if opts.pdfPath != "" {
		pdf, err := os.ReadFile(opts.pdfPath)
		if err != nil {
			return err
		}
		if err := ed.LoadDocument(ctx, pdf, false); err != nil {
			return err
		}
	}

	if opts.macroPath != "" {
		if err := runMacro(ctx, ed, opts.macroPath); err != nil {
			return fmt.Errorf("macro %s: %w", opts.macroPath, err)
		}
	}

	return runTUI(ed, drags)
}

func runMacro(ctx context.Context, ed *editor.Editor, path string) error {
	script, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	engine := scripting.NewEngine()
	dom := scripting.Bind(ed, func(msg string) {
		fmt.Fprintln(os.Stderr, "macro:", msg)
	})
	if err := engine.RegisterDOM(dom); err != nil {
		return err
	}
	_, err = engine.Execute(ctx, string(script))
	return err
}

func openLogger(path string) (observability.Logger, func(), error) {
	if path == "" {
		return observability.NopLogger{}, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return observability.NewTextLogger(f), func() { f.Close() }, nil
}
