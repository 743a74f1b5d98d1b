package engine

import (
	"context"
	"fmt"

	"github.com/kandasoft/salesdojo/internal/persona"
	"github.com/kandasoft/salesdojo/internal/prompt"
)

// Turn is one simulator step: a seller utterance and the prospect's reply.
type Turn struct {
	Salesman string `json:"salesman"`
	Prospect string `json:"prospect"`
}

// Seed instructions for the seller side. The seller model needs a user turn
// to respond to; the opening seed starts the approach, later seeds keep the
// conversation moving without a repeated greeting.
const (
	openingInstruction  = "営業として会話を開始してください。自然に挨拶し、相手のニーズを引き出してください。"
	continueInstruction = "会話を続けてください。挨拶は省略し、前の話題を掘り下げてください。"
)

// Simulator threads two independent histories to make a seller and a
// prospect persona converse. It holds no state between steps: histories flow
// in as values and updated copies flow out, so steps are replayable.
type Simulator struct {
	Orch *Orchestrator
}

// NewSimulator wraps an orchestrator for dual-agent stepping.
func NewSimulator(orch *Orchestrator) *Simulator {
	return &Simulator{Orch: orch}
}

// StepTurn produces one paired conversation turn. The step is atomic: if
// either generation fails, no turn is returned and the input histories are
// unchanged from the caller's perspective.
//
// Isolation invariant: only the rendered text of a turn crosses between the
// two histories — neither agent's instruction block ever enters the other's
// view.
func (s *Simulator) StepTurn(
	ctx context.Context,
	sellerHist, buyerHist []Message,
	sellerPersona, buyerPersona persona.Persona,
	sellerContract, buyerContract prompt.Contract,
) (Turn, []Message, []Message, error) {
	// Copy-on-write: never mutate the caller's slices.
	seller := append([]Message(nil), sellerHist...)
	buyer := append([]Message(nil), buyerHist...)

	if len(seller) == 0 {
		seller = append(seller, NewMessage(RoleUser, openingInstruction))
	} else {
		seller = append(seller, NewMessage(RoleUser, continueInstruction))
	}

	sellerOut := s.Orch.GenerateTurn(ctx, seller, sellerPersona, sellerContract)
	if !sellerOut.OK() {
		return Turn{}, sellerHist, buyerHist, stepError("seller", sellerOut)
	}

	// Cross-wire: the seller's utterance is the prospect's next user turn.
	seller = append(seller, NewMessage(RoleAssistant, sellerOut.Text))
	buyer = append(buyer, NewMessage(RoleUser, sellerOut.Text))

	buyerOut := s.Orch.GenerateTurn(ctx, buyer, buyerPersona, buyerContract)
	if !buyerOut.OK() {
		return Turn{}, sellerHist, buyerHist, stepError("buyer", buyerOut)
	}

	buyer = append(buyer, NewMessage(RoleAssistant, buyerOut.Text))
	seller = append(seller, NewMessage(RoleUser, buyerOut.Text))

	return Turn{Salesman: sellerOut.Text, Prospect: buyerOut.Text}, seller, buyer, nil
}

// RunConversation drives StepTurn for a full simulated conversation. Turns
// are clamped to 1-10, matching the training UI's bounds.
func (s *Simulator) RunConversation(ctx context.Context, settings persona.Settings, product prompt.Product, intensity prompt.Intensity, turns int) ([]Turn, error) {
	if turns < 1 {
		turns = 1
	}
	if turns > 10 {
		turns = 10
	}

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

	var (
		conversation []Turn
		sellerHist   []Message
		buyerHist    []Message
	)

	for i := 0; i < turns; i++ {
		turn, newSeller, newBuyer, err := s.StepTurn(ctx,
			sellerHist, buyerHist,
			sellerPersona, buyerPersona,
			sellerContract, buyerContract,
		)
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", i+1, err)
		}
		conversation = append(conversation, turn)
		sellerHist, buyerHist = newSeller, newBuyer
	}

	return conversation, nil
}

func stepError(side string, o Outcome) error {
	msg := o.Err
	if msg == "" {
		msg = o.Warning
	}
	return fmt.Errorf("%s generation failed (%s): %s", side, o.Status, msg)
}
