package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kandasoft/salesdojo/internal/engine"
	"github.com/kandasoft/salesdojo/internal/persona"
	"github.com/kandasoft/salesdojo/internal/prompt"
)

var (
	salesmanStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	buyerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	turnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

func runDemo(cmd *cobra.Command, args []string) error {
	settings, err := validateSettings()
	if err != nil {
		return err
	}
	if flagTurns < 1 || flagTurns > 10 {
		return fmt.Errorf("invalid turns %d: must be between 1 and 10", flagTurns)
	}
	if !prompt.IsValidProduct(flagProduct) {
		return fmt.Errorf("invalid product %q: must be one of %v", flagProduct, prompt.ProductNames())
	}

	orch, err := newOrchestrator(cmd)
	if err != nil {
		return err
	}
	sim := engine.NewSimulator(orch)

	product := prompt.Product(flagProduct)
	intensity := prompt.Intensity(flagIntensity)

	buyerPersona := persona.Resolve(settings)
	sellerPersona := persona.Salesman()
	sellerContract := prompt.Contract{
		Role:      prompt.RoleSeller,
		Intensity: intensity,
		Product:   product,
		Prospect:  buyerPersona,
	}
	buyerContract := prompt.Contract{
		Role:      prompt.RoleBuyer,
		Intensity: intensity,
	}

	fmt.Printf("見込み客: %s（%d歳・%s・%s） / 商品: %s\n\n",
		buyerPersona.Name, buyerPersona.Age, buyerPersona.GenderLabel, buyerPersona.MaritalLabel,
		prompt.ProductLabel(product))

	var (
		turns      []engine.Turn
		sellerHist []engine.Message
		buyerHist  []engine.Message
	)

	for i := 0; i < flagTurns; i++ {
		turn, newSeller, newBuyer, err := sim.StepTurn(cmd.Context(),
			sellerHist, buyerHist,
			sellerPersona, buyerPersona,
			sellerContract, buyerContract,
		)
		if err != nil {
			return fmt.Errorf("turn %d: %w", i+1, err)
		}
		sellerHist, buyerHist = newSeller, newBuyer
		turns = append(turns, turn)

		fmt.Println(turnStyle.Render(fmt.Sprintf("--- ターン %d ---", i+1)))
		fmt.Printf("%s %s\n\n", salesmanStyle.Render("営業:"), turn.Salesman)
		fmt.Printf("%s %s\n\n", buyerStyle.Render("見込み客:"), turn.Prospect)
	}

	if !flagNoSave {
		path, err := SaveTranscript(&Transcript{
			Mode:      "demo",
			Settings:  settings,
			Intensity: intensity,
			Product:   product,
			Turns:     turns,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Transcript saved to %s\n", path)
	}
	return nil
}
