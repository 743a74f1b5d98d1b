package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kandasoft/salesdojo/internal/engine"
	"github.com/kandasoft/salesdojo/internal/persona"
	"github.com/kandasoft/salesdojo/internal/prompt"
)

func runChat(cmd *cobra.Command, args []string) error {
	settings, err := validateSettings()
	if err != nil {
		return err
	}

	orch, err := newOrchestrator(cmd)
	if err != nil {
		return err
	}

	prospect := persona.Resolve(settings)
	contract := prompt.Contract{
		Role:      prompt.RoleBuyer,
		Intensity: prompt.Intensity(flagIntensity),
	}

	var history []engine.Message
	if isatty.IsTerminal(os.Stdout.Fd()) {
		history, err = runChatTUI(orch, prospect, contract)
	} else {
		history, err = runChatPlain(cmd.Context(), orch, prospect, contract)
	}
	if err != nil {
		return err
	}

	if !flagNoSave && len(history) > 0 {
		path, err := SaveTranscript(&Transcript{
			Mode:      "chat",
			Settings:  settings,
			Intensity: prompt.Intensity(flagIntensity),
			Messages:  history,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Transcript saved to %s\n", path)
	}
	return nil
}

// runChatPlain is the line-based fallback for non-terminal stdout (pipes,
// CI). Reads sales pitches from stdin, one per line.
func runChatPlain(ctx context.Context, orch *engine.Orchestrator, prospect persona.Persona, contract prompt.Contract) ([]engine.Message, error) {
	fmt.Printf("相手: %s（%d歳・%s・%s）\n", prospect.Name, prospect.Age, prospect.GenderLabel, prospect.MaritalLabel)
	fmt.Println(`営業トークを入力してください（"exit" で終了）`)

	var history []engine.Message
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("営業> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		attempt := append(append([]engine.Message(nil), history...), engine.NewMessage(engine.RoleUser, line))
		outcome := orch.GenerateTurn(ctx, attempt, prospect, contract)

		switch outcome.Status {
		case engine.StatusOK:
			history = append(attempt, engine.NewMessage(engine.RoleAssistant, outcome.Text))
			fmt.Printf("%s> %s\n", prospect.Name, outcome.Text)
		case engine.StatusViolation:
			// The turn is discarded; the trainee resends.
			fmt.Printf("⚠ %s\n", outcome.Warning)
		default:
			fmt.Printf("✗ %s\n", outcome.Err)
		}
	}

	if err := scanner.Err(); err != nil {
		return history, fmt.Errorf("read input: %w", err)
	}
	return history, nil
}
