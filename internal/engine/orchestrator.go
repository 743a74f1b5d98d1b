package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/kandasoft/salesdojo/internal/guard"
	"github.com/kandasoft/salesdojo/internal/persona"
	"github.com/kandasoft/salesdojo/internal/prompt"
)

// Invoker is the model-invocation capability the orchestrator drives. A
// returned error should be one of the engine error types (ThrottledError,
// ServerError, ContentUnavailableError, MalformedResponseError) for precise
// classification; anything else is surfaced as a generic communication error.
type Invoker interface {
	Invoke(ctx context.Context, system string, history []Message) (string, error)
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, system string, history []Message) (string, error)

func (f InvokerFunc) Invoke(ctx context.Context, system string, history []Message) (string, error) {
	return f(ctx, system, history)
}

// Localized terminal error messages, matching what the training UI renders.
const (
	msgRateLimited        = "レート制限に達しました。しばらくしてから再試行してください。"
	msgServerError        = "サーバーエラーが発生しました。しばらくしてから再試行してください。"
	msgContentUnavailable = "応答を生成できませんでした。入力内容を確認してください。"
	msgCommunication      = "通信エラー: "
)

// transientBackoff is the fixed wait before the single retry of a throttled
// or 5xx-failed network call.
const transientBackoff = 1 * time.Second

// Orchestrator reconciles model non-determinism with the role contract: one
// corrective re-generation on a guard violation, one backoff retry per
// network call on transient failure. Worst case four network calls per turn.
// Stateless across invocations.
type Orchestrator struct {
	Invoker Invoker
	Logger  *slog.Logger
	Backoff time.Duration // transient retry wait; tests shrink this
}

// NewOrchestrator wires an orchestrator with the production backoff.
func NewOrchestrator(inv Invoker, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{Invoker: inv, Logger: logger, Backoff: transientBackoff}
}

// attempt is the contract-retry state. Keeping it an explicit value (rather
// than nested conditionals) structurally enforces the at-most-one-retry
// invariant.
type attempt int

const (
	attemptFirst attempt = iota
	attemptCorrective
)

// GenerateTurn produces one persona turn for the given history. It never
// returns an error: every terminal condition is encoded in the Outcome.
func (o *Orchestrator) GenerateTurn(ctx context.Context, history []Message, p persona.Persona, c prompt.Contract) Outcome {
	system := prompt.Build(p, c)
	state := attemptFirst

	for {
		text, err := o.invokeWithBackoff(ctx, system, history)
		if err != nil {
			return outcomeFromError(err)
		}

		// The acceptance guard enforces the buyer contract; seller turns
		// have no forbidden-acceptance rule to violate.
		if c.Role != prompt.RoleBuyer {
			return Outcome{Status: StatusOK, Text: text}
		}

		valid, warning := guard.Validate(text)
		if valid {
			return Outcome{Status: StatusOK, Text: text}
		}

		if state == attemptFirst {
			o.Logger.InfoContext(ctx, "contract violation, retrying with corrective prompt",
				"matched", guard.Scan(text).Phrase)
			state = attemptCorrective
			system = prompt.BuildRetry(p, c)
			continue
		}

		o.Logger.WarnContext(ctx, "contract violation after corrective retry",
			"matched", guard.Scan(text).Phrase)
		return Outcome{Status: StatusViolation, Warning: warning}
	}
}

// invokeWithBackoff performs one logical model call: the request itself plus
// at most one retry after a fixed wait when the failure is transient
// (throttling or server-side 5xx). A second consecutive transient failure is
// returned to the caller; nothing is ever retried twice.
func (o *Orchestrator) invokeWithBackoff(ctx context.Context, system string, history []Message) (string, error) {
	text, err := o.Invoker.Invoke(ctx, system, history)
	if err == nil || !isTransient(err) {
		return text, err
	}

	o.Logger.InfoContext(ctx, "transient model failure, backing off", "error", err, "backoff", o.Backoff)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(o.Backoff):
	}

	return o.Invoker.Invoke(ctx, system, history)
}

func isTransient(err error) bool {
	var throttled *ThrottledError
	var server *ServerError
	return errors.As(err, &throttled) || errors.As(err, &server)
}

func outcomeFromError(err error) Outcome {
	var throttled *ThrottledError
	if errors.As(err, &throttled) {
		return Outcome{Status: StatusTransientError, Err: msgRateLimited}
	}

	var server *ServerError
	if errors.As(err, &server) {
		return Outcome{Status: StatusTransientError, Err: msgServerError}
	}

	var unavailable *ContentUnavailableError
	if errors.As(err, &unavailable) {
		return Outcome{Status: StatusFatalError, Err: msgContentUnavailable}
	}

	return Outcome{Status: StatusFatalError, Err: msgCommunication + err.Error()}
}
