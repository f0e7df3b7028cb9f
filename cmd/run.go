package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gooze.dev/pkg/fuzzmut/internal/domain"
	m "gooze.dev/pkg/fuzzmut/internal/model"
)

var runParallelFlag int
var runShardFlag string
var runStrategiesFlag []string
var runCountFlag int
var runSeedFlag uint64
var runMinSeedIndexFlag int

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Generate test cases from a corpus",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			shardIndex, totalShards := parseShardFlag(runShardFlag)

			return workflow.Run(cmd.Context(), domain.RunArgs{
				Paths:           parsePaths(args),
				Exclude:         viper.GetStringSlice(excludeConfigKey),
				Output:          m.Path(viper.GetString(outputFlagName)),
				Strategies:      parseStrategies(viper.GetStringSlice(runStrategiesKey)),
				Count:           viper.GetInt(runCountKey),
				Seed:            viper.GetUint64(runSeedKey),
				Parallel:        viper.GetInt(runParallelConfigKey),
				MinSeedIndex:    viper.GetInt(runMinSeedIndexKey),
				ShardIndex:      shardIndex,
				TotalShardCount: totalShards,
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of parallel workers")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)

	cmd.Flags().StringSliceVarP(&runStrategiesFlag, strategyFlagName, "m", viper.GetStringSlice(runStrategiesKey), "strategies to apply (comma separated or repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(strategyFlagName), runStrategiesKey)

	cmd.Flags().IntVarP(&runCountFlag, countFlagName, "n", viper.GetInt(runCountKey), "test cases to generate per file and strategy")
	bindFlagToConfig(cmd.Flags().Lookup(countFlagName), runCountKey)

	cmd.Flags().Uint64Var(&runSeedFlag, seedFlagName, viper.GetUint64(runSeedKey), "run seed; each job derives its own seed from it")
	bindFlagToConfig(cmd.Flags().Lookup(seedFlagName), runSeedKey)

	cmd.Flags().IntVar(&runMinSeedIndexFlag, minSeedIndexFlagName, viper.GetInt(runMinSeedIndexKey), "lowest byte index byte strategies may edit")
	bindFlagToConfig(cmd.Flags().Lookup(minSeedIndexFlagName), runMinSeedIndexKey)

	cmd.Flags().StringVarP(&runShardFlag, "shard", "s", "", "shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")
}

func parseShardFlag(shard string) (int, int) {
	if shard == "" {
		return 0, 1
	}

	var index, total int

	_, err := fmt.Sscanf(shard, "%d/%d", &index, &total)
	if err != nil || total <= 0 || index < 0 || index >= total {
		return 0, 1
	}

	return index, total
}

func parseStrategies(names []string) []m.Strategy {
	strategies := make([]m.Strategy, 0, len(names))
	for _, name := range names {
		strategies = append(strategies, m.Strategy(name))
	}

	return strategies
}
