// Package main provides the TraceLog interactive journaling assistant.
// One user turn is fully processed (analysis call, merge, persist, context
// rebuild) before the next entry is read; there is no overlap between turns.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/tracelog/tracelog/pkg/assistant"
	"github.com/tracelog/tracelog/pkg/config"
	"github.com/tracelog/tracelog/pkg/journal"
	"github.com/tracelog/tracelog/pkg/llm/openai"
	"github.com/tracelog/tracelog/pkg/llm/tokenizer"
	"github.com/tracelog/tracelog/pkg/logging"
	"github.com/tracelog/tracelog/pkg/router"
	"github.com/tracelog/tracelog/pkg/ui"
)

const version = "0.1.0"

// cliConfig holds command-line configuration.
type cliConfig struct {
	ConfigFile  string
	DataDir     string
	Model       string
	ShowVersion bool
}

func main() {
	cli := parseFlags()

	if cli.ShowVersion {
		fmt.Printf("TraceLog v%s\n", version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx, cli); err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render(fmt.Sprintf("[错误] %v", err)))
		os.Exit(1)
	}
}

func parseFlags() *cliConfig {
	cli := &cliConfig{}
	flag.StringVar(&cli.ConfigFile, "config", "", "Path to configuration file (default ~/.tracelog/config.json)")
	flag.StringVar(&cli.DataDir, "data-dir", "", "Profile data directory (default ~/.tracelog/data)")
	flag.StringVar(&cli.Model, "model", "", "Override the configured model")
	flag.BoolVar(&cli.ShowVersion, "version", false, "Show version and exit")
	flag.Parse()
	return cli
}

func run(ctx context.Context, cli *cliConfig) error {
	cfg, err := loadOrCreateConfig(cli.ConfigFile)
	if err != nil {
		return err
	}
	if cli.Model != "" {
		cfg.Model = cli.Model
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.NewLogger("main")
	if err != nil {
		// Fallback logger already reported the problem; keep going.
		log.Warnf("file logging unavailable")
	}
	defer log.Close()

	provider, err := openai.NewProvider(cfg.APIKey,
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return err
	}

	dataDir := cli.DataDir
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".tracelog", "data")
	}
	store, err := journal.NewFileStore(dataDir)
	if err != nil {
		return err
	}

	opts := []assistant.Option{}
	if tok, err := tokenizer.New(); err == nil {
		opts = append(opts, assistant.WithTokenizer(tok))
	} else {
		log.Warnf("tokenizer unavailable, approximating token counts: %v", err)
	}

	a := assistant.New(router.New(provider), store, log, opts...)

	fmt.Println(ui.Banner(provider.GetModel(), provider.GetBaseURL()))
	fmt.Println()

	runLoop(ctx, a)

	if err := a.Flush(); err != nil {
		log.Warnf("final flush failed: %v", err)
	}
	fmt.Println("\n" + ui.Farewell())
	return nil
}

// loadOrCreateConfig loads the config file, running the first-run wizard
// when none exists yet.
func loadOrCreateConfig(path string) (*config.Config, error) {
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg, err = config.RunWizard(os.Stdin, os.Stdout)
	if err != nil {
		return nil, err
	}
	if err := config.Save(path, cfg); err != nil {
		return nil, err
	}
	fmt.Printf("\n配置已保存到 %s 。\n\n", path)
	return cfg, nil
}

// runLoop reads entries until EOF or cancellation. Recoverable turn
// failures print a notice and the loop continues with the next input; the
// user re-submits, there is no automatic retry.
func runLoop(ctx context.Context, a *assistant.Assistant) {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print(ui.PromptStyle.Render("你: "))
		if !scanner.Scan() {
			return
		}
		if ctx.Err() != nil {
			return
		}
		entry := strings.TrimSpace(scanner.Text())
		if entry == "" {
			continue
		}

		fmt.Println("\n" + ui.Thinking() + "\n")

		result, err := a.ProcessEntry(ctx, entry)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			fmt.Println(ui.ErrorStyle.Render(fmt.Sprintf("[错误] 本次记录未保存：%v", err)))
			fmt.Println()
			continue
		}

		fmt.Println(ui.ReplyStyle.Render("TraceLog: " + result.Reply))
		for _, id := range result.DroppedDeletes {
			fmt.Println(ui.WarnStyle.Render(fmt.Sprintf("[提示] 已忽略未知待办 ID %s 的删除请求", id)))
		}
		fmt.Println()
	}
}
