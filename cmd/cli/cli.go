package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tabletalk-dev/tabletalk/internal/chain"
	"github.com/tabletalk-dev/tabletalk/internal/config"
	"github.com/tabletalk-dev/tabletalk/internal/providers"
	"github.com/tabletalk-dev/tabletalk/internal/schema"
)

var (
	configPath = flag.String("config", "tabletalk.yaml", "path to configuration file")
	showHelp   = flag.Bool("help", false, "show help message")
	showVer    = flag.Bool("version", false, "show version")
	showConfig = flag.Bool("show-config", false, "print full configuration")
	tablesOnly = flag.Bool("tables", false, "only decide which tables are relevant, don't generate SQL")
	allTables  = flag.Bool("all-tables", false, "skip the table decider and prompt with the full schema")
)

const version = "0.1.0"

func Execute() error {
	flag.Parse()

	if *showHelp {
		showUsage()
		return nil
	}

	if *showVer {
		fmt.Printf("tabletalk version %s\n", version)
		return nil
	}

	if len(os.Args) > 1 && flag.Arg(0) == "init" {
		return runInit()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if *showConfig {
		return cfg.PrintAsYAML()
	}

	if flag.NArg() == 0 {
		showUsage()
		return fmt.Errorf("no question specified")
	}
	question := strings.Join(flag.Args(), " ")

	tables, err := cfg.LoadTables()
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}
	if len(tables) == 0 {
		return fmt.Errorf("no tables found in configured schema sources")
	}
	log.Info("Loaded schema", "tables", len(tables))

	client, err := providers.NewClient(&providers.Config{
		Provider:    providers.Provider(cfg.Provider),
		Model:       cfg.Model,
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		MaxTokens:   cfg.MaxTokens,
		Temperature: *cfg.Temperature,
	})
	if err != nil {
		return fmt.Errorf("creating model client: %w", err)
	}
	log.Info("Asking model", "provider", client.Name(), "model", cfg.Model, "dialect", cfg.Dialect)

	opts := chain.Options{
		Dialect:   cfg.Dialect,
		TopK:      cfg.TopK,
		MaxTokens: cfg.MaxTokens,
		Timeout:   time.Duration(cfg.Timeout) * time.Second,
	}

	ctx := context.Background()

	if *tablesOnly {
		decider := chain.NewTableDecider(client, opts)
		relevant, _, err := decider.Decide(ctx, question, tables)
		if err != nil {
			return err
		}
		chain.DisplayTables(question, schema.Names(relevant))
		return nil
	}

	var result *chain.Result
	if *allTables {
		result, err = chain.NewSQLChain(client, opts).Run(ctx, question, tables)
	} else {
		result, err = chain.NewSequential(client, opts).Run(ctx, question, tables)
	}
	if err != nil {
		return err
	}

	chain.DisplayResult(result)
	return nil
}

func showUsage() {
	fmt.Printf("Usage: %s [options] <question...>\n", os.Args[0])
	fmt.Printf("       %s init\n\n", os.Args[0])
	fmt.Printf("Tabletalk turns a natural-language question about your database into a SQL query using an LLM.\n\n")
	fmt.Println("Commands:")
	fmt.Println("  init - Interactively create a tabletalk.yaml configuration file")
	fmt.Println("Arguments:")
	fmt.Println("  <question...> - The question to answer, e.g.: tabletalk how many users signed up last week")
	fmt.Println("Options:")
	flag.PrintDefaults()
}
