package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/featdup/featdup/internal/config"
	"github.com/featdup/featdup/internal/corpus"
	"github.com/featdup/featdup/internal/intent"
	"github.com/featdup/featdup/internal/lexicon"
	"github.com/featdup/featdup/internal/store"
	"github.com/featdup/featdup/internal/trace"
	"github.com/featdup/featdup/internal/ui"
)

var (
	version     = "1.0.0"
	configPath  string
	dbPath      string
	lexiconPath string
	importPath  string
	backfill    bool
	topK        int
	showVersion bool
)

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	defaultConfigPath := filepath.Join(homeDir, ".featdup", "config.yaml")

	flag.StringVar(&configPath, "config", defaultConfigPath, "Path to configuration file")
	flag.StringVar(&dbPath, "db", "", "Path to catalog database (overrides config)")
	flag.StringVar(&lexiconPath, "lexicon", "", "Path to lexicon YAML (overrides config)")
	flag.StringVar(&importPath, "import", "", "Import corpus records from YAML file")
	flag.BoolVar(&backfill, "backfill", false, "Compute missing intent fields for stored records")
	flag.IntVar(&topK, "top", 0, "Number of ranked results to show (overrides config)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("featdup v%s\n", version)
		fmt.Println("Duplicate checker for feature catalogs")
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if lexiconPath == "" {
		lexiconPath = cfg.LexiconPath
	}
	if topK == 0 {
		topK = cfg.TopK
	}

	lex, err := loadLexicon(lexiconPath)
	if err != nil {
		log.Fatalf("Failed to load lexicon: %v", err)
	}

	engine := intent.NewEngine(lex)
	engine.SetThresholds(cfg.Thresholds.Intent, cfg.Thresholds.Lexical)
	engine.SetTopK(topK)
	trace.Get().SetEnabled(cfg.TraceEnabled)

	st, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	defer st.Close()

	if importPath != "" {
		n, err := corpus.NewLoader(st).Import(importPath)
		if err != nil {
			log.Fatalf("Import failed after %d records: %v", n, err)
		}
		fmt.Printf("Imported %d records from %s\n", n, importPath)
		return
	}

	if backfill {
		if err := runBackfill(st, engine); err != nil {
			log.Fatalf("Backfill failed: %v", err)
		}
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		repl := ui.NewREPL(engine, st)
		if err := repl.Start(); err != nil {
			log.Fatalf("REPL error: %v", err)
		}
		return
	}

	query := strings.Join(args, " ")
	if err := runQuery(st, engine, query); err != nil {
		log.Fatalf("Query failed: %v", err)
	}
}

func loadLexicon(path string) (*lexicon.Lexicon, error) {
	if path == "" {
		return lexicon.Default(), nil
	}
	return lexicon.Load(path)
}

// runBackfill fills the derived intent field of every record that lacks
// one, using the structural variant. The engine computes, the store
// persists.
func runBackfill(st *store.Store, engine *intent.Engine) error {
	missing, err := st.ListMissingIntent()
	if err != nil {
		return err
	}
	for _, rec := range missing {
		skeleton := engine.NormalizeStructural(rec.RawText, rec.Labels)
		if skeleton == "" {
			// Callers fall back to raw text when a skeleton comes up
			// empty; the engine itself never does.
			skeleton = rec.RawText
		}
		if err := st.UpdateIntent(rec.ID, skeleton); err != nil {
			return err
		}
	}
	fmt.Printf("Backfilled %d records\n", len(missing))
	return nil
}

func runQuery(st *store.Store, engine *intent.Engine, query string) error {
	rec := trace.Get()
	rec.Start(query)

	startList := time.Now()
	records, err := st.List()
	if err != nil {
		return err
	}
	rec.AddStep("load", len(records), time.Since(startList))

	startScore := time.Now()
	result, err := engine.ScoreAndRank(query, records)
	if err != nil {
		return err
	}
	rec.AddStep("score", len(result.Ranked), time.Since(startScore))
	rec.End(result)

	ui.PrintResult(os.Stdout, query, result)
	return nil
}
