package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rishi",
	Short: "Quantum Rishi, an exam counsellor for JEE, NEET and Boards students",
	Long: "Quantum Rishi turns a short student profile into a personalised study plan " +
		"and lets the student chat about each module with a calm Hinglish mentor.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to the LLM event log (overrides RISHI_DB; unset disables the log)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Dotenv file to load before reading the environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
