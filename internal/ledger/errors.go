package ledger

import (
	"fmt"
	"time"

	"github.com/nekosui/petbot/internal/domain"
)

// ErrOnCooldown is the soft rejection for a rolling-window gate.
type ErrOnCooldown struct {
	Action    string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	minutes := int(e.Remaining.Minutes())
	seconds := int(e.Remaining.Seconds()) % 60

	if minutes > 0 {
		return fmt.Sprintf("action '%s' on cooldown: %dm %ds remaining", e.Action, minutes, seconds)
	}
	return fmt.Sprintf("action '%s' on cooldown: %ds remaining", e.Action, seconds)
}

// Is allows errors.Is() to match both the struct and the domain sentinel.
func (e ErrOnCooldown) Is(target error) bool {
	if _, ok := target.(ErrOnCooldown); ok {
		return true
	}
	return target == domain.ErrOnCooldown
}
