package cmd

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gooze.dev/pkg/fuzzmut/internal/domain"
	m "gooze.dev/pkg/fuzzmut/internal/model"
)

var mutateStrategyFlag string
var mutateSeedFlag uint64
var mutateMinSeedIndexFlag int
var mutateOutFlag string
var mutateDiffFlag bool

// mutateCmd represents the mutate command.
var mutateCmd = newMutateCmd()

func newMutateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mutate <file>",
		Short: "Mutate a single test case",
		Long: `Apply one strategy to one file and print the result to stdout, or write it
with --out. With --diff a unified diff against the input is printed instead.
Run "fuzzmut list" to see the available strategies.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := m.Path(args[0])

			result, err := workflow.MutateFile(cmd.Context(), domain.MutateArgs{
				Input:        input,
				Strategy:     m.Strategy(viper.GetString(mutateStrategyKey)),
				Seed:         viper.GetUint64(mutateSeedKey),
				MinSeedIndex: viper.GetInt(mutateMinSeedIndexKey),
			})
			if err != nil {
				return err
			}

			payload := m.Payload(result.Output)

			if mutateDiffFlag {
				text, err := unifiedDiff(string(input), string(result.Strategy), result.Original, payload)
				if err != nil {
					return err
				}

				_, err = fmt.Fprint(cmd.OutOrStdout(), text)

				return err
			}

			if mutateOutFlag != "" {
				if err := fsAdapter.WriteFile(cmd.Context(), m.Path(mutateOutFlag), payload); err != nil {
					return fmt.Errorf("write %s: %w", mutateOutFlag, err)
				}

				return nil
			}

			_, err = cmd.OutOrStdout().Write(payload)

			return err
		},
	}

	configureMutateFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(mutateCmd)
}

func configureMutateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&mutateStrategyFlag, strategyFlagName, "m", viper.GetString(mutateStrategyKey), "mutation strategy to apply")
	bindFlagToConfig(cmd.Flags().Lookup(strategyFlagName), mutateStrategyKey)

	cmd.Flags().Uint64Var(&mutateSeedFlag, seedFlagName, viper.GetUint64(mutateSeedKey), "random seed; the same seed and input give the same output")
	bindFlagToConfig(cmd.Flags().Lookup(seedFlagName), mutateSeedKey)

	cmd.Flags().IntVar(&mutateMinSeedIndexFlag, minSeedIndexFlagName, viper.GetInt(mutateMinSeedIndexKey), "lowest byte index byte strategies may edit")
	bindFlagToConfig(cmd.Flags().Lookup(minSeedIndexFlagName), mutateMinSeedIndexKey)

	cmd.Flags().StringVar(&mutateOutFlag, "out", "", "write the mutated test case to this file instead of stdout")
	cmd.Flags().BoolVar(&mutateDiffFlag, "diff", false, "print a unified diff against the input")
}

func unifiedDiff(name, strategy string, original, mutated []byte) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(mutated)),
		FromFile: name,
		ToFile:   name + " (" + strategy + ")",
		Context:  3,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", name, err)
	}

	return text, nil
}
