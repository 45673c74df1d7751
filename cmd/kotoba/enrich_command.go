package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"kotoba/internal/checkpoint"
	"kotoba/internal/enrich"
	"kotoba/internal/export"
	"kotoba/internal/ingest"
	"kotoba/internal/logging"
	"kotoba/internal/resolve"
	"kotoba/internal/services"
)

func newEnrichCommand(ctx *commandContext) *cobra.Command {
	var (
		outputPath   string
		offline      bool
		delayMS      int
		forceRestart bool
		noEnglish    bool
		noPitch      bool
		noStrokes    bool
		noExamples   bool
		noAudio      bool
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "enrich <vocab.json>",
		Short: "Enrich a vocabulary file and export the study deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.buildLogger(verbose)
			if err != nil {
				return err
			}
			runID := uuid.NewString()
			logger = logger.With(logging.String(logging.FieldRunID, runID))

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			runCtx = services.WithRunID(runCtx, runID)

			// One run at a time per data directory; concurrent runs would
			// race on the cache, checkpoint and deck file.
			lockPath := filepath.Join(cfg.Paths.DataDir, "kotoba.lock")
			lock := flock.New(lockPath)
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another kotoba run is already using %s", cfg.Paths.DataDir)
			}
			defer lock.Unlock()

			inputPath := args[0]
			doc, err := ingest.ReadFile(inputPath)
			if err != nil {
				return err
			}

			store, err := resolve.OpenStore(cfg.CacheDBPath())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			cp := checkpoint.Load(cfg.CheckpointPath(), logger)
			if forceRestart {
				if err := cp.Clear(); err != nil {
					return fmt.Errorf("clear checkpoint: %w", err)
				}
			}
			resumed := cp.Count() > 0

			clients, err := buildServices(cfg)
			if err != nil {
				return err
			}

			delay := time.Duration(cfg.Enrich.RateLimitDelayMS) * time.Millisecond
			if delayMS >= 0 {
				delay = time.Duration(delayMS) * time.Millisecond
			}
			opts := enrich.Options{
				Offline:        cfg.Enrich.Offline || offline,
				RateDelay:      delay,
				English:        cfg.Enrich.English && !noEnglish,
				Pitch:          cfg.Enrich.Pitch && !noPitch,
				StrokeDiagrams: cfg.Enrich.StrokeDiagrams && !noStrokes && clients.Strokes != nil,
				Examples:       cfg.Enrich.Examples && !noExamples && clients.Sentences != nil,
				Audio:          cfg.Enrich.Audio && !noAudio,
				SentenceLimit:  cfg.Sentences.Limit,
				AudioDir:       cfg.AudioDir(),
			}

			enricher, err := enrich.New(store, clients, opts, logger)
			if err != nil {
				return err
			}

			logger.InfoContext(runCtx, "starting enrichment run",
				logging.String("input", inputPath),
				logging.Int("records", doc.Count()),
				logging.Bool("offline", opts.Offline),
				logging.Bool("resumed", resumed))

			records, summary, runErr := enricher.Run(runCtx, doc.Records(), cp, inputPath)

			deckPath := outputPath
			if deckPath == "" {
				deckPath = filepath.Join(cfg.Paths.OutputDir, "deck.tsv")
			}
			if len(records) > 0 {
				if resumed {
					err = export.AppendFile(deckPath, records)
				} else {
					err = export.WriteFile(deckPath, records)
				}
				if err != nil {
					return fmt.Errorf("write deck: %w", err)
				}
			}
			if runErr != nil {
				return runErr
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Enriched %d of %d records (%d live, %d skipped, %d malformed)\n",
				summary.Enriched, summary.Total, summary.Fetched, summary.Skipped, summary.Malformed)
			if len(records) > 0 {
				fmt.Fprintf(out, "Deck written to %s\n", deckPath)
			} else {
				fmt.Fprintln(out, "Nothing new to export")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Deck output path (default <output_dir>/deck.tsv)")
	cmd.Flags().BoolVar(&offline, "offline", false, "Use cached and bundled data only, never the network")
	cmd.Flags().IntVar(&delayMS, "delay", -1, "Milliseconds to pause after each live fetch (default from config)")
	cmd.Flags().BoolVar(&forceRestart, "force-restart", false, "Discard the checkpoint and reprocess every record")
	cmd.Flags().BoolVar(&noEnglish, "no-english", false, "Skip English meaning lookup")
	cmd.Flags().BoolVar(&noPitch, "no-pitch", false, "Skip pitch accent classification and diagrams")
	cmd.Flags().BoolVar(&noStrokes, "no-strokes", false, "Skip stroke-order diagrams")
	cmd.Flags().BoolVar(&noExamples, "no-examples", false, "Skip example sentences")
	cmd.Flags().BoolVar(&noAudio, "no-audio", false, "Skip audio synthesis")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}
