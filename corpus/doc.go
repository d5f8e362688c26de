// Package corpus parses quiz question files into question/answer pairs.
//
// The on-disk format is inherited from the historical question archives:
// KOI8-R encoded plain-text files in which records are separated by a blank
// double-newline, the question paragraph starts with the "Вопрос" marker and
// the answer paragraph starts with "Ответ". The marker line itself is
// dropped; the remaining lines of the paragraph form the body. Records
// missing either marker are skipped silently.
package corpus
