package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the game services wraps exactly one of these.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrState      = errors.New("state error")
	ErrOwnership  = errors.New("ownership error")
	ErrStorage    = errors.New("storage error")
)

var (
	ErrGuessLength       = fmt.Errorf("%w: guess must be %d letters", ErrValidation, WordLength)
	ErrGuessAlphabet     = fmt.Errorf("%w: guess must contain only letters A-Z", ErrValidation)
	ErrNotInWordList     = fmt.Errorf("%w: not in word list", ErrValidation)
	ErrUnknownGameMode   = fmt.Errorf("%w: unknown game type", ErrValidation)
	ErrSamePlayer        = fmt.Errorf("%w: cannot play against yourself", ErrValidation)
	ErrWonWithoutCorrect = fmt.Errorf("%w: no correct attempt recorded", ErrValidation)
	ErrAttemptsMismatch  = fmt.Errorf("%w: attempts_used does not match recorded attempts", ErrValidation)
	ErrWordRecentlyUsed  = fmt.Errorf("%w: word was played by this pair recently", ErrValidation)

	ErrGameNotFound   = fmt.Errorf("%w: game not found", ErrNotFound)
	ErrPlayerNotFound = fmt.Errorf("%w: player not found", ErrNotFound)

	ErrGameCompleted     = fmt.Errorf("%w: game already completed", ErrState)
	ErrWordAlreadyChosen = fmt.Errorf("%w: word already chosen for this turn", ErrState)
	ErrAwaitingWord      = fmt.Errorf("%w: word not chosen yet", ErrState)
	ErrAttemptLimit      = fmt.Errorf("%w: no attempts left", ErrState)
	ErrStaleTurn         = fmt.Errorf("%w: turn number is out of date", ErrState)
	ErrStaleAttempt      = fmt.Errorf("%w: attempt number is out of date", ErrState)

	ErrNotYourTurn    = fmt.Errorf("%w: not your turn", ErrOwnership)
	ErrNotParticipant = fmt.Errorf("%w: not a participant of this game", ErrOwnership)
	ErrPlayerMismatch = fmt.Errorf("%w: player_id does not match the authenticated player", ErrOwnership)
)

// StorageError wraps a store failure unless err already carries a known kind.
func StorageError(err error) error {
	if err == nil || Kind(err) != nil {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

// Kind returns the kind sentinel err wraps, or nil.
func Kind(err error) error {
	for _, k := range []error{ErrValidation, ErrNotFound, ErrState, ErrOwnership, ErrStorage} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// KindCode is the short machine-readable name of err's kind.
func KindCode(err error) string {
	switch Kind(err) {
	case ErrValidation:
		return "validation"
	case ErrNotFound:
		return "not_found"
	case ErrState:
		return "state"
	case ErrOwnership:
		return "ownership"
	default:
		return "storage"
	}
}
