package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kotoba/internal/enrich"
	"kotoba/internal/export"
	"kotoba/internal/resolve"
	"kotoba/internal/vocab"
)

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var offline bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "lookup <word> <reading> [meaning]",
		Short: "Enrich a single word and print every field",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.buildLogger(verbose)
			if err != nil {
				return err
			}

			record := vocab.Record{Word: args[0], Reading: args[1], Meaning: "-"}
			if len(args) == 3 {
				record.Meaning = args[2]
			}
			if err := record.Validate(); err != nil {
				return err
			}

			store, err := resolve.OpenStore(cfg.CacheDBPath())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			clients, err := buildServices(cfg)
			if err != nil {
				return err
			}
			opts := enrich.Options{
				Offline:        cfg.Enrich.Offline || offline,
				English:        cfg.Enrich.English,
				Pitch:          cfg.Enrich.Pitch,
				StrokeDiagrams: false,
				Examples:       cfg.Enrich.Examples && clients.Sentences != nil,
				Audio:          false,
				SentenceLimit:  cfg.Sentences.Limit,
			}
			enricher, err := enrich.New(store, clients, opts, logger)
			if err != nil {
				return err
			}

			enricher.Enrich(cmd.Context(), &record)

			rows := [][]string{
				{"word", record.Word},
				{"reading", record.Reading},
				{"romaji", record.Romaji},
				{"meaning", record.Meaning},
				{"meaning_en", record.MeaningEN},
				{"part_of_speech", record.PartOfSpeech},
				{"pitch_pattern", record.PitchPattern},
				{"furigana", record.Furigana},
				{"jlpt_level", record.JLPTLevel},
				{"radical_info", record.RadicalInfo},
				{"frequency_info", record.FrequencyInfo},
				{"han_viet", record.HanViet},
				{"kanji_kun", record.KanjiKun},
				{"kanji_on", record.KanjiOn},
				{"kanji_meanings", record.KanjiMeanings},
				{"conjugations", record.Conjugations},
				{"synonyms", record.Synonyms},
				{"antonyms", record.Antonyms},
				{"examples", record.Examples},
				{"audio", export.AudioRef(record.AudioFile)},
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Field", "Value"},
				rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Use cached and bundled data only, never the network")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	return cmd
}
