// Package main is the entry point for the raman_fitter CLI. It fits an
// experimental Raman spectrum as a non-negative linear combination of the ten
// SnCl₆₋ₙBrₙ theory spectra and reports goodness-of-fit.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is the shared CLI logger, initialized before any subcommand runs.
var logger *zap.SugaredLogger

// rootCmd is the base command for the raman_fitter CLI.
var rootCmd = &cobra.Command{
	Use:   "raman_fitter",
	Short: "Fit Raman spectra of mixed Sn-halide octahedra",
	Long: `raman_fitter fits an experimental Raman spectrum against calculated theory
spectra for the ten SnCl6-nBrn octahedral species. Theory peaks are broadened
with a shared Lorentzian width and rigid wavenumber shift, then combined with
per-species coefficients, either supplied manually or solved by least
squares. The fit quality is reported along with optional plot and PDF
outputs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zl, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = zl.Sugar()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./raman_fitter.yaml or ~/.config/raman_fitter/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("raman_fitter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "raman_fitter"))
		}
	}

	viper.SetEnvPrefix("RAMAN_FITTER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
