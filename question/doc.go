// Package question houses concrete implementations of the
// core.QuestionRepository. The corpus is loaded once (see package corpus and
// cmd/quiz-load) and only read afterwards; both backends expose the same
// uniform random selection and point lookup by opaque handle.
package question
