package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/report"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/setup"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(zerolog.WarnLevel)

	prompt := flag.String("prompt", "", "User prompt sent on every call")
	fromStdin := flag.Bool("stdin", false, "Read the prompt from stdin")
	model := flag.String("model", "", "Model id from the catalog (default: catalog default)")
	preset := flag.String("preset", "", "System prompt preset name")
	system := flag.String("system", "", "Explicit system prompt, overrides -preset")
	temperature := flag.Float64("temperature", 0, "Sampling temperature in [0,1]")
	numCalls := flag.Int("n", 0, "Number of identical calls")
	maxTokens := flag.Int("max-tokens", 0, "Maximum tokens per completion")
	asJSON := flag.Bool("json", false, "Print the full result as JSON")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	if *verbose {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	}

	if *fromStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read stdin")
		}
		*prompt = string(data)
	}

	if strings.TrimSpace(*prompt) == "" {
		fmt.Fprintln(os.Stderr, "Usage: sample -prompt '<text>' [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := setup.Wire(ctx, setup.LoadConfig(), &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer deps.Close()

	session := models.SessionRequest{
		Prompt:       *prompt,
		Model:        *model,
		Preset:       *preset,
		SystemPrompt: *system,
	}

	// Only flags given on the command line override catalog defaults.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "temperature":
			session.Temperature = temperature
		case "n":
			session.NumCalls = numCalls
		case "max-tokens":
			session.MaxTokens = maxTokens
		}
	})

	var progress models.ProgressFunc
	if !*asJSON {
		var mu sync.Mutex
		progress = func(p models.Progress) {
			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(os.Stderr, "\rSampling %d/%d", p.Completed, p.Total)
			if p.Completed == p.Total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}

	result, err := deps.Executor.ExecuteSession(ctx, session, progress)
	if err != nil {
		fmt.Fprintln(os.Stderr)
		log.Error().Err(err).Msg("Sampling failed")
		if errors.Is(err, models.ErrInput) {
			os.Exit(2)
		}
		os.Exit(1)
	}

	if *asJSON {
		err = report.RenderJSON(os.Stdout, result)
	} else {
		err = report.Render(os.Stdout, result)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to render report")
	}
}
