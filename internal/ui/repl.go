package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/featdup/featdup/internal/intent"
	"github.com/featdup/featdup/internal/store"
	"github.com/featdup/featdup/pkg/models"
)

// REPL is the interactive duplicate-check loop: every line typed is
// scored against the catalog.
type REPL struct {
	engine  *intent.Engine
	st      *store.Store
	history []string
}

// NewREPL creates a REPL over an engine and a catalog store.
func NewREPL(engine *intent.Engine, st *store.Store) *REPL {
	return &REPL{
		engine:  engine,
		st:      st,
		history: []string{},
	}
}

// Start begins the interactive loop.
func (r *REPL) Start() error {
	count, err := r.st.Count()
	if err != nil {
		return err
	}
	fmt.Printf("featdup — feature duplicate checker (%d records loaded)\n", count)
	fmt.Println("Type a feature description to check, 'help' for commands, 'exit' to quit")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		input, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		r.history = append(r.history, input)

		switch input {
		case "exit", "quit":
			fmt.Println("Goodbye!")
			return nil
		case "help":
			r.printHelp()
			continue
		case "history":
			for i, h := range r.history {
				fmt.Printf("%3d  %s\n", i+1, h)
			}
			continue
		}

		if err := r.check(input); err != nil {
			fmt.Printf("Error: %v\n\n", err)
		}
	}
}

func (r *REPL) check(query string) error {
	records, err := r.st.List()
	if err != nil {
		return err
	}

	result, err := r.engine.ScoreAndRank(query, records)
	if err != nil {
		if errors.Is(err, intent.ErrEmptyQuery) {
			return nil
		}
		return err
	}

	PrintResult(os.Stdout, query, result)
	return nil
}

func (r *REPL) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  <text>    check the text against the catalog")
	fmt.Println("  history   show queries from this session")
	fmt.Println("  exit      quit")
	fmt.Println()
}

// PrintResult renders one rank result.
func PrintResult(w io.Writer, query string, result *models.RankResult) {
	fmt.Fprintf(w, "query: %s\n", query)
	fmt.Fprintf(w, "query intent: %q\n", result.QueryIntent)
	if result.HasDuplicate {
		fmt.Fprintf(w, "DUPLICATE — an existing feature covers this (%d records considered)\n", result.TotalConsidered)
	} else {
		fmt.Fprintf(w, "no duplicate found (%d records considered)\n", result.TotalConsidered)
	}
	for i, sr := range result.Ranked {
		mark := " "
		if sr.IsDuplicate {
			mark = "*"
		}
		label := strings.Join(sr.Record.Labels, "/")
		if label != "" {
			label = " [" + label + "]"
		}
		fmt.Fprintf(w, "%s %d. intent=%.2f lexical=%.2f%s %s\n",
			mark, i+1, sr.Scores.Intent, sr.Scores.Lexical, label, sr.Record.RawText)
	}
	fmt.Fprintln(w)
}
