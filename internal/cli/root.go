package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	flagOutputDir string
	flagModel     string
	flagEndpoint  string
	flagBatchSize int
	flagDelay     int
	flagTimeout   int
	flagConfig    string
)

var rootCmd = &cobra.Command{
	Use:   "gatekeep <input_file>",
	Short: "LLM-powered comment moderation",
	Long: "Gatekeep batches comments from a .csv or .json file, sends them to a\n" +
		"remote model for offensiveness classification, and writes a moderated\n" +
		"CSV, a text summary report, and an offense-type pie chart.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runModerate(args[0])
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print gatekeep version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "gatekeep version %s\n", version)
	},
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = 0

// log is the operator-facing logger, written as console lines on
// stderr so stdout stays clean.
var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func init() {
	rootCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory path (default: current directory)")
	rootCmd.Flags().StringVar(&flagModel, "model", "", "Classifier model identifier")
	rootCmd.Flags().StringVar(&flagEndpoint, "endpoint", "", "Chat-completions endpoint URL")
	rootCmd.Flags().IntVar(&flagBatchSize, "batch-size", 0, "Comments per remote call")
	rootCmd.Flags().IntVar(&flagDelay, "delay", 0, "Seconds to pause between batches")
	rootCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "Per-call HTTP timeout in seconds")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Config file path (default: gatekeep.yaml if present)")
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return 1
	}
	return exitCode
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagEndpoint != "" {
		m["endpoint"] = flagEndpoint
	}
	if flagBatchSize > 0 {
		m["batchSize"] = fmt.Sprintf("%d", flagBatchSize)
	}
	if flagDelay > 0 {
		m["delaySeconds"] = fmt.Sprintf("%d", flagDelay)
	}
	if flagTimeout > 0 {
		m["timeoutSeconds"] = fmt.Sprintf("%d", flagTimeout)
	}
	if flagOutputDir != "" {
		m["outputDir"] = flagOutputDir
	}
	return m
}
