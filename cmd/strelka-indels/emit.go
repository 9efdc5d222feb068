package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/patriciabraguine/strelka/internal/config"
	"github.com/patriciabraguine/strelka/internal/input"
	"github.com/patriciabraguine/strelka/internal/output"
)

func newEmitCmd() *cobra.Command {
	var (
		outputFile string
		contig     string
		strict     bool
		verbose    bool
		noHeader   bool
	)

	cmd := &cobra.Command{
		Use:   "emit <candidate-stream>",
		Short: "Emit annotated somatic indel VCF records from a candidate stream",
		Long: `Read the genotyper's newline-delimited JSON candidate stream (plain or
gzipped, '-' for stdin), buffer candidates per position, and write one VCF
record per candidate once the position's window averages arrive.`,
		Example: `  strelka-indels emit candidates.jsonl > somatic.indels.vcf
  strelka-indels emit --contig chr7 -o somatic.indels.vcf candidates.jsonl.gz
  somatic-genotyper ... | strelka-indels emit -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(args[0], outputFile, contig, strict, verbose, noHeader)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&contig, "contig", "", "contig name for the CHROM column (overrides config)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on window records for positions with no pending candidates")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "suppress the VCF header")

	return cmd
}

// loadConfig merges defaults, the viper config file, and flag overrides.
func loadConfig(contig string) (config.Config, error) {
	cfg := config.Default()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshaling config: %w", err)
	}
	if contig != "" {
		cfg.Contig = contig
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func runEmit(inputPath, outputFile, contig string, strict, verbose, noHeader bool) error {
	cfg, err := loadConfig(contig)
	if err != nil {
		return err
	}

	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	parser, err := input.NewParser(inputPath)
	if err != nil {
		return err
	}
	defer parser.Close()

	out := os.Stdout
	if outputFile != "" {
		out, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer out.Close()
	}

	writer := output.NewWriter(out, cfg)
	writer.SetLogger(logger)

	if !noHeader {
		if err := writer.WriteHeader(); err != nil {
			return err
		}
	}

	var cached, flushed int
	for {
		rec, err := parser.Next()
		if err != nil {
			return err
		}
		if rec == nil {
			break
		}

		switch rec.Type {
		case input.RecordCandidate:
			writer.CacheIndel(rec.Pos, rec.Candidate)
			cached++
		case input.RecordWindow:
			if !writer.HasPending(rec.Pos) {
				if strict {
					return fmt.Errorf("line %d: window record for position %d with no pending candidates",
						parser.LineNumber(), rec.Pos)
				}
				logger.Warn("window record for position with no pending candidates",
					zap.Int64("pos", rec.Pos),
					zap.Int("line", parser.LineNumber()))
				continue
			}
			if err := writer.FlushPosition(rec.Pos, *rec.Normal, *rec.Tumor); err != nil {
				return err
			}
			flushed++
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}

	if n := writer.PendingPositions(); n > 0 {
		logger.Warn("stream ended with unflushed positions", zap.Int("positions", n))
		if strict {
			return fmt.Errorf("stream ended with %d unflushed positions", n)
		}
	}

	logger.Info("emit complete",
		zap.Int("candidates", cached),
		zap.Int("positions_flushed", flushed))

	return nil
}
