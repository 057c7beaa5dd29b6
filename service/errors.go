package service

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Error categories. Every error returned by a service operation matches at
// most one of these with errors.Is.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrCooldown          = errors.New("claim on cooldown")
	ErrNotFound          = errors.New("not found")
	ErrInvalidState      = errors.New("invalid state")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrSelfReference     = errors.New("cannot target yourself")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrStorage           = errors.New("storage failure")
)

var (
	ErrEventNotFound = fmt.Errorf("wager event %w", ErrNotFound)
	ErrDuelNotFound  = fmt.Errorf("duel %w", ErrNotFound)
	ErrScrimNotFound = fmt.Errorf("scrim %w", ErrNotFound)

	ErrDuelAlreadyAccepted = fmt.Errorf("duel already accepted: %w", ErrInvalidState)
	ErrDuelNotAccepted     = fmt.Errorf("duel not yet accepted: %w", ErrInvalidState)
	ErrDuelAlreadyResolved = fmt.Errorf("duel already resolved: %w", ErrInvalidState)
	ErrDuelCancelled       = fmt.Errorf("duel was cancelled: %w", ErrInvalidState)
	ErrScrimNotWaiting     = fmt.Errorf("scrim is not accepting players: %w", ErrInvalidState)
	ErrScrimNotReady       = fmt.Errorf("scrim teams are not full: %w", ErrInvalidState)
	ErrAlreadyJoined       = fmt.Errorf("already in this scrim: %w", ErrInvalidState)
	ErrTeamFull            = fmt.Errorf("team is full: %w", ErrInvalidState)

	ErrWrongTarget = fmt.Errorf("not the duel target: %w", ErrUnauthorized)
)

// CooldownError reports how long until the next claim is allowed
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("claim on cooldown: %d minutes remaining", e.RemainingMinutes())
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldown
}

// RemainingMinutes rounds the remaining wait up to whole minutes
func (e *CooldownError) RemainingMinutes() int64 {
	return int64(math.Ceil(e.Remaining.Minutes()))
}

// InsufficientFundsError carries the balance that failed the check
type InsufficientFundsError struct {
	Have int64
	Need int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: have %d, need %d", e.Have, e.Need)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// StorageError wraps a failure from the persistence layer
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

// storageErr wraps err as a storage failure unless it already carries a
// domain category.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, category := range []error{
		ErrInsufficientFunds, ErrCooldown, ErrNotFound, ErrInvalidState,
		ErrUnauthorized, ErrSelfReference, ErrInvalidArgument, ErrStorage,
	} {
		if errors.Is(err, category) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return &StorageError{Op: op, Err: err}
}
