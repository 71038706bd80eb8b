package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/trknhr/ghosttext/internal"
	"github.com/trknhr/ghosttext/internal/corpus"
	"github.com/trknhr/ghosttext/internal/logger"
	"github.com/trknhr/ghosttext/internal/model/charlm"
	"github.com/trknhr/ghosttext/internal/store"
)

// DefaultSeed is the seed used in fixed mode unless --seed overrides it.
const DefaultSeed = 20

var ErrInvalidMode = errors.New(`mode must be "fixed" or "random"`)

type globalFlags struct {
	seed     int64
	dbPath   string
	record   bool
	logLevel string
	logFile  string
}

// openRunStore is swapped out in tests.
var openRunStore = func(dbPath string) (store.RunStore, func(), error) {
	db, err := internal.GetDB(dbPath)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return store.NewSQLRunStore(db), func() { db.Close() }, nil
}

func NewRootCmd() *cobra.Command {
	var (
		g    globalFlags
		dump bool
	)

	cmd := &cobra.Command{
		Use:   "ghosttext <windowLength> <initialText> <generatedLength> <fixed|random> <corpus...>",
		Short: "Generate text from a character-level n-gram model",
		Long: `Trains a character n-gram model on the corpus files and extends the
initial text one sampled character at a time.`,
		Example: `
  # Reproducible output from a window of 7 characters
  ghosttext 7 "Once upon" 500 fixed shakespeare.txt

  # Different output on every run, trained on two files
  ghosttext 4 "The " 200 random part1.txt part2.txt

  # Inspect the trained table
  ghosttext 2 ab 0 fixed small.txt --dump`,
		Args:         cobra.MinimumNArgs(5),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(g.logFile, g.logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			windowLength, err := parseWindowLength(args[0])
			if err != nil {
				return err
			}
			initial := args[1]
			length, err := strconv.Atoi(args[2])
			if err != nil || length < 0 {
				return fmt.Errorf("invalid generated length %q: must be a non-negative integer", args[2])
			}

			t, err := train(cmd, &g, windowLength, args[3], args[4:])
			if err != nil {
				return err
			}

			if dump {
				fmt.Fprint(cmd.OutOrStdout(), t.model.String())
				return nil
			}

			gen := t.model.Run(initial, length)
			logger.Debug("generation stopped: %s", gen.Stop)
			fmt.Fprintln(cmd.OutOrStdout(), gen.Text)

			if g.record {
				t.journal(initial, length, gen)
			}
			return nil
		},
	}

	cmd.PersistentFlags().Int64Var(&g.seed, "seed", DefaultSeed, "seed used in fixed mode")
	cmd.PersistentFlags().StringVar(&g.dbPath, "db", "", "path of the run journal database (default: user cache dir)")
	cmd.PersistentFlags().BoolVar(&g.record, "record", false, "journal every generation to the database")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "log level (debug,info,warn,error,none)")
	cmd.PersistentFlags().StringVar(&g.logFile, "log-file", "", "also write logs to this file")
	cmd.Flags().BoolVar(&dump, "dump", false, "print the trained window table instead of generating")

	cmd.AddCommand(newHistoryCmd(&g))
	cmd.AddCommand(newTuiCmd(&g))

	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

func parseWindowLength(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid window length %q: must be a positive integer", s)
	}
	return n, nil
}

// parseMode reports whether sampling should be clock-seeded.
func parseMode(mode string) (bool, error) {
	switch mode {
	case "random":
		return true, nil
	case "fixed":
		return false, nil
	default:
		return false, fmt.Errorf("invalid mode %q: %w", mode, ErrInvalidMode)
	}
}

type trainedModel struct {
	model     *charlm.Model
	seed      *int64
	corpusKey string
	hash      string
	mtime     int64
	dbPath    string
}

func train(cmd *cobra.Command, g *globalFlags, windowLength int, mode string, paths []string) (*trainedModel, error) {
	random, err := parseMode(mode)
	if err != nil {
		return nil, err
	}

	loaders := make([]corpus.Loader, len(paths))
	for i, p := range paths {
		loaders[i] = corpus.NewFileLoader(p)
	}
	text, err := corpus.LoadAll(cmd.Context(), loaders)
	if err != nil {
		return nil, err
	}
	mtime, err := corpus.LatestMtime(loaders)
	if err != nil {
		return nil, err
	}

	var (
		opts []charlm.Option
		seed *int64
	)
	if !random {
		s := g.seed
		seed = &s
		opts = append(opts, charlm.WithSeed(s))
	}

	m, err := charlm.New(windowLength, opts...)
	if err != nil {
		return nil, err
	}
	if err := m.Train(text); err != nil {
		return nil, err
	}
	logger.Info("trained window %d on %s: %d windows", windowLength, corpus.Keys(loaders), len(m.Windows()))

	return &trainedModel{
		model:     m,
		seed:      seed,
		corpusKey: corpus.Keys(loaders),
		hash:      store.Hash(text),
		mtime:     mtime,
		dbPath:    g.dbPath,
	}, nil
}

// journal records a generation. Failures are logged, never returned.
func (t *trainedModel) journal(initial string, length int, gen charlm.Generation) {
	runs, closeFn, err := openRunStore(t.dbPath)
	if err != nil {
		logger.Warn("run not recorded: %v", err)
		return
	}
	defer closeFn()

	id, err := runs.SaveRun(store.Run{
		WindowLength: t.model.WindowLength(),
		Seed:         t.seed,
		InitialText:  initial,
		TargetLength: length,
		Output:       gen.Text,
		StopReason:   gen.Stop.String(),
		CorpusKey:    t.corpusKey,
		CorpusHash:   t.hash,
		CorpusMtime:  t.mtime,
	})
	if err != nil {
		logger.Warn("run not recorded: %v", err)
		return
	}
	logger.Debug("recorded run %d", id)
}
