// Command fstinfo prints the structure and properties of an automaton.
//
// The automaton is loaded from the configured store by key, or compiled
// from a text file with -text:
//
//	fstinfo -config lvfst.yaml -key lexicon
//	fstinfo -text g.txt -semiring log -acceptor
//	fstinfo -text g.txt -i
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvfst/config"
	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/store"
	"github.com/katalvlaran/lvfst/weight"
)

func main() {
	var (
		cfgPath     = flag.String("config", "", "Path to YAML configuration (optional)")
		key         = flag.String("key", "", "Store key of the automaton")
		textPath    = flag.String("text", "", "Compile the automaton from a text file instead")
		semiring    = flag.String("semiring", "tropical", "Semiring of -text input (tropical, log, log64)")
		acceptor    = flag.Bool("acceptor", false, "-text input has one label column")
		printText   = flag.Bool("print", false, "Also print the automaton in text form")
		interactive = flag.Bool("i", false, "Interactive state browser")
	)
	flag.Parse()

	if *key == "" && flag.NArg() > 0 {
		*key = flag.Arg(0)
	}
	if *key == "" && *textPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: fstinfo [-config file] -key <key> [-print] [-i]")
		fmt.Fprintln(os.Stderr, "       fstinfo -text <file> [-semiring name] [-acceptor] [-print] [-i]")
		os.Exit(1)
	}

	if err := run(*cfgPath, *key, *textPath, *semiring, *acceptor, *printText, *interactive); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}

func run(cfgPath, key, textPath, semiring string, acceptor, printText, interactive bool) error {
	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			return err
		}
	}
	lg, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()
	config.InstallLogger(lg)
	lg.Debug("configuration loaded", zap.String("config", cfg.Redacted()))

	name, f, err := load(context.Background(), cfg, key, textPath, semiring, acceptor)
	if err != nil {
		return err
	}

	if interactive {
		return runBrowse(name, f)
	}
	fmt.Print(collect(name, f, cfg.Delta).render())
	if printText {
		fmt.Println()
		return fst.WriteText(os.Stdout, f, true)
	}
	return nil
}

func load(ctx context.Context, cfg config.Config, key, textPath, semiring string, acceptor bool) (string, *fst.Fst, error) {
	if textPath != "" {
		f, err := loadText(textPath, semiring, acceptor)
		return textPath, f, err
	}
	st, closeStore, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return "", nil, fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = closeStore() }()

	f, err := st.Load(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, fmt.Errorf("%q: %w", key, err)
	}
	return key, f, err
}

func loadText(path, semiring string, acceptor bool) (*fst.Fst, error) {
	sr, err := weight.ParseSemiring(semiring)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return fst.ReadText(file, sr, acceptor)
}
