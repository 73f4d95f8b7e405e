package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "vcustomizer",
	Short: "Viewmodel origin customizer for Team Fortress 2",
	Long: `vcustomizer shifts first-person weapon models by injecting $origin
transforms into the SCA animation sources, recompiling them with studiomdl
and packing the result into a vpk in tf/custom/.

Install it in <game>/tf/custom/<folder>/ next to the SCA library.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupApp,
}

func Execute() {
	if err := execute(rootCmd); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// execute runs c with exit cleanup deferred, so a panicking command still
// gives the game back its live folder before the panic propagates.
func execute(c *cobra.Command) error {
	defer shutdownApp()
	return c.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .vcustomizer.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("install-dir", "", "program folder inside tf/custom (default: executable folder)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("install_dir", rootCmd.PersistentFlags().Lookup("install-dir"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".vcustomizer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if dir, err := executableDir(); err == nil {
			viper.AddConfigPath(dir)
		}
	}

	viper.SetEnvPrefix("VCUSTOMIZER")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
