package bounce

import "errors"

var (
	// ErrArenaTooSmall is recorded when the configured arena is below the minimum size.
	ErrArenaTooSmall = errors.New("bounce: arena too small")

	// ErrLevelData is recorded when the level source failed to load or parse.
	ErrLevelData = errors.New("bounce: level data unavailable")

	// ErrNoSuchLevel is returned for a level index outside the campaign.
	ErrNoSuchLevel = errors.New("bounce: no such level")

	// ErrNotReady is returned when a game is requested while an error is recorded.
	ErrNotReady = errors.New("bounce: engine not ready")
)
