// Package cli implements the salesdojo command line: an interactive roleplay
// trainer and a dual-agent demo conversation generator.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kandasoft/salesdojo/internal/engine"
	"github.com/kandasoft/salesdojo/internal/model"
	"github.com/kandasoft/salesdojo/internal/observability"
	"github.com/kandasoft/salesdojo/internal/persona"
	"github.com/kandasoft/salesdojo/internal/prompt"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "salesdojo",
	Short: "Practice insurance sales against a skeptical AI prospect",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("salesdojo %s\n", Version)
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive training session against the prospect persona",
	RunE:  runChat,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Generate a demo conversation between an AI salesman and the prospect",
	RunE:  runDemo,
}

var (
	flagAge       int
	flagGender    string
	flagMarital   string
	flagName      string
	flagIntensity string
	flagModel     string
	flagVerbose   bool
	flagNoSave    bool
	flagTurns     int
	flagProduct   string
)

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(demoCmd)

	for _, cmd := range []*cobra.Command{chatCmd, demoCmd} {
		cmd.Flags().IntVarP(&flagAge, "age", "a", 38, "Prospect age (18-70)")
		cmd.Flags().StringVarP(&flagGender, "gender", "g", "female", "Prospect gender: male, female")
		cmd.Flags().StringVarP(&flagMarital, "marital", "M", "married", "Prospect marital status: single, married, divorced")
		cmd.Flags().StringVar(&flagName, "name", "", "Override the prospect's name")
		cmd.Flags().StringVarP(&flagIntensity, "intensity", "I", "neutral", "Response strength: subdued, neutral, firm")
		cmd.Flags().StringVarP(&flagModel, "model", "m", "bedrock", "Model backend: bedrock, haiku, sonnet")
		cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable detailed logging")
		cmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not save a transcript")
	}

	demoCmd.Flags().IntVarP(&flagTurns, "turns", "t", 3, "Conversation turns to generate (1-10)")
	demoCmd.Flags().StringVarP(&flagProduct, "product", "p", "cancer", "Insurance product: "+strings.Join(prompt.ProductNames(), ", "))
}

func Execute() error {
	return rootCmd.Execute()
}

// validateSettings checks the shared persona flags and returns the resolved
// settings.
func validateSettings() (persona.Settings, error) {
	if flagAge < 18 || flagAge > 70 {
		return persona.Settings{}, fmt.Errorf("invalid age %d: must be between 18 and 70", flagAge)
	}

	validGenders := map[string]bool{"male": true, "female": true}
	if !validGenders[flagGender] {
		return persona.Settings{}, fmt.Errorf("invalid gender %q: must be male or female", flagGender)
	}

	validMarital := map[string]bool{"single": true, "married": true, "divorced": true}
	if !validMarital[flagMarital] {
		return persona.Settings{}, fmt.Errorf("invalid marital status %q: must be single, married, or divorced", flagMarital)
	}

	if !prompt.IsValidIntensity(flagIntensity) {
		return persona.Settings{}, fmt.Errorf("invalid intensity %q: must be subdued, neutral, or firm", flagIntensity)
	}

	return persona.Settings{
		Age:           flagAge,
		Gender:        persona.Gender(flagGender),
		MaritalStatus: persona.MaritalStatus(flagMarital),
		DisplayName:   flagName,
	}, nil
}

// newOrchestrator builds the model invoker and orchestrator from the flags.
func newOrchestrator(cmd *cobra.Command) (*engine.Orchestrator, error) {
	logger := observability.InitLogger(flagVerbose)

	inv, err := model.NewInvoker(cmd.Context(), flagModel, engine.ConfigFromEnv())
	if err != nil {
		return nil, err
	}

	return engine.NewOrchestrator(inv, logger), nil
}
