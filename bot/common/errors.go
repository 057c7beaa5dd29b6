package common

import (
	"errors"
	"fmt"

	"economy/service"
)

// UserMessage turns a service error into the text shown to the invoking user
func UserMessage(err error, currency string) string {
	var cooldown *service.CooldownError
	if errors.As(err, &cooldown) {
		return fmt.Sprintf("You already claimed. Try again in %d minutes.", cooldown.RemainingMinutes())
	}

	var funds *service.InsufficientFundsError
	if errors.As(err, &funds) {
		return fmt.Sprintf("Insufficient balance: you have %s and need %s.",
			FormatAmount(funds.Have, currency), FormatAmount(funds.Need, currency))
	}

	switch {
	case errors.Is(err, service.ErrEventNotFound):
		return "That betting event does not exist or was already resolved."
	case errors.Is(err, service.ErrDuelNotFound):
		return "That duel does not exist."
	case errors.Is(err, service.ErrScrimNotFound):
		return "That scrim does not exist or was already resolved."
	case errors.Is(err, service.ErrWrongTarget):
		return "This duel is not yours to act on."
	case errors.Is(err, service.ErrDuelAlreadyAccepted):
		return "This duel was already accepted."
	case errors.Is(err, service.ErrDuelNotAccepted):
		return "This duel has not been accepted yet."
	case errors.Is(err, service.ErrDuelAlreadyResolved):
		return "This duel was already resolved."
	case errors.Is(err, service.ErrDuelCancelled):
		return "This duel was cancelled."
	case errors.Is(err, service.ErrScrimNotWaiting):
		return "This scrim is no longer accepting players."
	case errors.Is(err, service.ErrScrimNotReady):
		return "Both teams must be full before resolving the scrim."
	case errors.Is(err, service.ErrAlreadyJoined):
		return "You are already in this scrim."
	case errors.Is(err, service.ErrTeamFull):
		return "That team is full."
	case errors.Is(err, service.ErrUnauthorized):
		return "You do not have permission to do that."
	case errors.Is(err, service.ErrSelfReference):
		return "You cannot target yourself."
	case errors.Is(err, service.ErrInvalidArgument):
		return "Invalid input: " + err.Error()
	case errors.Is(err, service.ErrNotFound):
		return "Not found."
	case errors.Is(err, service.ErrInvalidState):
		return "That action is not possible right now."
	default:
		return "Something went wrong. Please try again."
	}
}

// ErrorLabel returns a short metric label for err's category
func ErrorLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, service.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, service.ErrCooldown):
		return "cooldown"
	case errors.Is(err, service.ErrNotFound):
		return "not_found"
	case errors.Is(err, service.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, service.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, service.ErrSelfReference):
		return "self_reference"
	case errors.Is(err, service.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, service.ErrStorage):
		return "storage"
	default:
		return "error"
	}
}
