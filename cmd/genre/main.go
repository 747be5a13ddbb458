package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"genre"
)

type options struct {
	count     int
	seed      int64
	maxRepeat int
	verbose   bool
}

func addFlags(fs *pflag.FlagSet, opts *options) {
	fs.IntVarP(&opts.count, "count", "n", 1, "number of strings to generate")
	fs.Int64Var(&opts.seed, "seed", 0, "random seed (default: time-based)")
	fs.IntVar(&opts.maxRepeat, "max-repeat", genre.DefaultMaxRepeat, "cap for unbounded quantifiers")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")
}

func newRootCommand() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "genre PATTERN",
		Short: "Generate random strings from a distribution-annotated pattern",
		Long: `Generate random strings belonging to an extended regex pattern whose
quantifiers and character classes may carry probability distribution
annotations, e.g. 'a{3~Geo(0.2)}[abc~Cat(1,2,3)]'.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			seed := opts.seed
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			logrus.WithFields(logrus.Fields{
				"seed":       seed,
				"max-repeat": opts.maxRepeat,
			}).Debug("seeding random source")

			pat, err := genre.Compile(args[0])
			if err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(seed))
			genOpts := genre.GenOptions{MaxRepeat: opts.maxRepeat}
			out := cmd.OutOrStdout()
			for i := 0; i < opts.count; i++ {
				fmt.Fprintln(out, pat.GenerateWith(rng, genOpts))
			}
			return nil
		},
	}
	addFlags(cmd.Flags(), &opts)
	return cmd
}

func main() {
	logrus.SetOutput(os.Stderr)
	if err := newRootCommand().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
