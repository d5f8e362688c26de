package core

import "context"

// Question is an immutable corpus entry. Answer may carry trailing
// clarifying clauses and parenthetical notes; see Normalize.
type Question struct {
	// Ref is the opaque handle under which the question is stored.
	Ref string `json:"ref"`
	// Text is the question body shown to the user.
	Text string `json:"text"`
	// Answer is the raw correct answer as loaded from the corpus.
	Answer string `json:"answer"`
}

// QuestionRepository exposes read access to the loaded corpus. The corpus is
// populated once by an external loader; the core only reads.
type QuestionRepository interface {
	// PickRandom selects one question uniformly at random over the full
	// corpus. There is no repetition avoidance; a user may see the same
	// question twice in a row. Returns ErrEmptyCorpus when nothing is
	// loaded — callers must treat that as fatal to quiz serving.
	PickRandom(ctx context.Context) (*Question, error)

	// Get resolves a stored question reference. Returns ErrQuestionNotFound
	// when the handle no longer resolves.
	Get(ctx context.Context, ref string) (*Question, error)

	// Count reports the number of loaded questions.
	Count(ctx context.Context) (int, error)
}
