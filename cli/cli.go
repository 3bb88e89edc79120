package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/uvzlabs/launchpad/commerce"
	"github.com/uvzlabs/launchpad/config"
	"github.com/uvzlabs/launchpad/generate"
	"github.com/uvzlabs/launchpad/logger"
	"github.com/uvzlabs/launchpad/publish"
	"github.com/uvzlabs/launchpad/wizard"
)

var rootCmd = &cobra.Command{
	Use:   "launchpad",
	Short: "Launchpad turns your expertise into a published online course",
	Long:  `Launchpad is a five-step wizard that generates course concepts and content from your Unique Value Zone, publishes the course and its product to Whop, and hands you the launch collateral.`,
}

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Run the interactive course launch wizard",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		model, err := newLaunchModel(cfg)
		if err != nil {
			fmt.Printf("Error initializing wizard: %v\n", err)
			os.Exit(1)
		}

		p := tea.NewProgram(model)
		if _, err := p.Run(); err != nil {
			fmt.Printf("Error running program: %v\n", err)
			os.Exit(1)
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the wizard over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.ListenAddr = addr
		}

		if err := runServe(cfg); err != nil {
			fmt.Printf("Error running server: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(launchCmd)
	rootCmd.AddCommand(serveCmd)

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to custom configuration file")
	rootCmd.PersistentFlags().Bool("fake", false, "Use fake collaborators instead of the live AI and commerce APIs")
	rootCmd.PersistentFlags().StringP("mode", "m", "", "Input mode: keywords or uvz")

	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if fake, _ := cmd.Flags().GetBool("fake"); fake {
		os.Setenv("LAUNCHPAD_USE_FAKES", "true")
	}
	if mode, _ := cmd.Flags().GetString("mode"); mode != "" {
		os.Setenv("LAUNCHPAD_INPUT_MODE", mode)
	}
	path, _ := cmd.Flags().GetString("config")
	return config.LoadConfig(path)
}

// buildMachine wires the wizard machine with real or fake
// collaborators, chosen once here at construction time.
func buildMachine(cfg *config.Config, events publish.StepPublisher, log logger.Logger) (*wizard.Machine, error) {
	var generator generate.ContentGenerator
	var publisher commerce.Publisher

	if cfg.UseFakes {
		generator = generate.NewFakeContentGenerator()
		publisher = commerce.NewFakePublisher()
	} else {
		g, err := generate.NewOpenAIGenerator(&generate.Config{
			APIKey:    cfg.OpenAIAPIKey,
			ModelName: cfg.ModelName,
			TellmURL:  cfg.TellmURL,
		}, log)
		if err != nil {
			return nil, err
		}
		generator = g

		c, err := commerce.NewClient(&commerce.ClientConfig{
			BaseURL: cfg.WhopBaseURL,
			APIKey:  cfg.WhopAPIKey,
		}, log)
		if err != nil {
			return nil, err
		}
		publisher = c
	}

	pipeline := publish.NewPipeline(publisher, events, log)
	return wizard.NewMachine(generator, pipeline, cfg.CallTimeout, log), nil
}
