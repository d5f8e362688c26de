package core

import "fmt"

var (
	// ErrEmptyCorpus is returned by PickRandom when no questions are loaded.
	// Fatal at startup: the bot must refuse to serve, not pose empty questions.
	ErrEmptyCorpus = fmt.Errorf("question corpus is empty")

	// ErrQuestionNotFound is returned when a stored question reference no
	// longer resolves in the repository.
	ErrQuestionNotFound = fmt.Errorf("question not found")

	// ErrSessionStoreUnavailable wraps store-level failures the engine cannot
	// work around. Adapters surface a generic reply and do not advance state.
	ErrSessionStoreUnavailable = fmt.Errorf("session store unavailable")
)
