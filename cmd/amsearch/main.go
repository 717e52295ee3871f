package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/oarkflow/json"
	"github.com/oarkflow/log"

	"github.com/oarkflow/amsearch"
	"github.com/oarkflow/amsearch/lib"
	"github.com/oarkflow/amsearch/snowball"
	"github.com/oarkflow/amsearch/tokenizer"
	"github.com/oarkflow/amsearch/web"
)

const batchSize = 1000

var errUsage = errors.New("nothing to do")

type options struct {
	text, stem, lang string
	fold, json       bool
	serve, file, key string
	config           string
}

func main() {
	err := run(os.Args[1:], os.Stdout)
	switch {
	case errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	case errors.Is(err, errUsage):
		os.Exit(2)
	case err != nil:
		log.Error().Err(err).Msg("amsearch")
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var opts options
	fs := flag.NewFlagSet("amsearch", flag.ContinueOnError)
	fs.StringVar(&opts.text, "text", "", "Text to analyze")
	fs.StringVar(&opts.stem, "stem", "", "Words to normalize and stem")
	fs.StringVar(&opts.lang, "lang", "am", "Language of the text: am or en")
	fs.BoolVar(&opts.fold, "fold", false, "Fold Amharic syllables to the sixth order")
	fs.BoolVar(&opts.json, "json", false, "Print results as JSON")
	fs.StringVar(&opts.serve, "serve", "", "Address to serve the HTTP API on, e.g. 0.0.0.0:3000")
	fs.StringVar(&opts.file, "file", "", "JSON array of documents to index before serving")
	fs.StringVar(&opts.key, "key", "", "Index key for the documents in -file")
	fs.StringVar(&opts.config, "config", "", "JSON engine configuration for -key")
	if err := fs.Parse(args); err != nil {
		return err
	}

	language, err := tokenizer.ParseLanguage(opts.lang)
	if err != nil {
		return err
	}
	switch {
	case opts.text != "":
		cfg := tokenizer.DefaultConfig()
		cfg.EnableOrderFolding = opts.fold
		terms, err := tokenizer.Analyze(opts.text, language, cfg)
		if err != nil {
			return err
		}
		if err := output(stdout, opts.json, terms, strings.Join(terms, " ")); err != nil {
			return err
		}
	case opts.stem != "":
		words, err := tokenizer.Normalize(opts.stem, language)
		if err != nil {
			return err
		}
		stems := make(map[string]string, len(words))
		lines := make([]string, 0, len(words))
		for _, word := range words {
			stem, err := snowball.Stem(word, string(language), true)
			if err != nil {
				return err
			}
			stems[word] = stem
			lines = append(lines, word+"\t"+stem)
		}
		if err := output(stdout, opts.json, stems, strings.Join(lines, "\n")); err != nil {
			return err
		}
	}
	if opts.file != "" && opts.key != "" {
		if err := load(opts.file, opts.key, opts.config, language); err != nil {
			return err
		}
	}
	if opts.serve != "" {
		web.StartServer(opts.serve)
		return nil
	}
	if opts.text == "" && opts.stem == "" && opts.file == "" {
		fs.Usage()
		return errUsage
	}
	return nil
}

// load streams the documents of file into the engine registered under key,
// inserting them batchSize at a time.
func load(file, key, configFile string, language tokenizer.Language) error {
	cfg := amsearch.GetConfig(key)
	cfg.DefaultLanguage = language
	if configFile != "" {
		fileCfg, err := amsearch.LoadConfig(configFile)
		if err != nil {
			return err
		}
		cfg = amsearch.MergeConfigs(cfg, fileCfg)
	}
	engine, err := amsearch.SetEngine[map[string]any](key, cfg)
	if err != nil {
		return err
	}
	batch := make([]map[string]any, 0, batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		for _, err := range engine.InsertWithPool(batch, runtime.NumCPU(), batchSize) {
			log.Error().Err(err).Str("key", key).Msg("Document rejected")
		}
		batch = batch[:0]
	}
	err = lib.StreamJSONFile(file, func(doc map[string]any) error {
		batch = append(batch, doc)
		if len(batch) == batchSize {
			flush()
		}
		return nil
	})
	if err != nil {
		return err
	}
	flush()
	log.Info().Str("key", key).Int("documents", engine.DocumentLen()).Msg("Indexed")
	return nil
}

func output(w io.Writer, asJSON bool, value any, text string) error {
	if !asJSON {
		_, err := fmt.Fprintln(w, text)
		return err
	}
	return json.NewEncoder(w).Encode(value)
}
