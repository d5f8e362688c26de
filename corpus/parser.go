package corpus

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/hupe1980/quizbot/core"
)

// Paragraph markers of the legacy question-file format.
const (
	questionMarker = "Вопрос"
	answerMarker   = "Ответ"

	recordSeparator    = "\n\n\n"
	paragraphSeparator = "\n\n"
)

// UTF8 is a pass-through "encoding" for corpora already stored as UTF-8.
var UTF8 encoding.Encoding = encoding.Nop

// Options configures parsing.
type Options struct {
	// Encoding of the input files. Defaults to KOI8-R, the encoding of the
	// historical archives. Use encoding.Nop for UTF-8 files.
	Encoding encoding.Encoding
}

// Parser turns quiz text files into core.Question values.
type Parser struct {
	opts Options
}

// New creates a Parser with optional overrides.
func New(optFns ...func(o *Options)) *Parser {
	opts := Options{Encoding: charmap.KOI8R}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Parser{opts: opts}
}

// ParseDir parses every .txt file directly inside dir, in directory order,
// concatenating the results. Refs are assigned as 1-based positions over the
// whole run, matching the repository backends' numbering.
func (p *Parser) ParseDir(dir string) ([]core.Question, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir: %w", err)
	}

	var questions []core.Question
	for _, entry := range entries {
		if entry.IsDir() || strings.ToLower(filepath.Ext(entry.Name())) != ".txt" {
			continue
		}
		parsed, err := p.ParseFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		questions = append(questions, parsed...)
	}
	for i := range questions {
		questions[i].Ref = fmt.Sprintf("%d", i+1)
	}
	return questions, nil
}

// ParseFile parses a single quiz file.
func (p *Parser) ParseFile(path string) ([]core.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus file: %w", err)
	}
	defer f.Close()

	questions, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return questions, nil
}

// Parse decodes and parses one file's content. Malformed records (missing
// either marker) are skipped and never surface as errors.
func (p *Parser) Parse(r io.Reader) ([]core.Question, error) {
	decoded, err := io.ReadAll(p.opts.Encoding.NewDecoder().Reader(r))
	if err != nil {
		return nil, fmt.Errorf("decode corpus file: %w", err)
	}

	var questions []core.Question
	text := strings.ReplaceAll(string(decoded), "\r\n", "\n")
	for _, record := range strings.Split(text, recordSeparator) {
		questionText, answerText, ok := parseRecord(record)
		if !ok {
			continue
		}
		questions = append(questions, core.Question{Text: questionText, Answer: answerText})
	}
	return questions, nil
}

// parseRecord extracts the question and answer bodies from one record.
func parseRecord(record string) (questionText, answerText string, ok bool) {
	questionText = paragraphBody(record, questionMarker)
	answerText = paragraphBody(record, answerMarker)
	return questionText, answerText, questionText != "" && answerText != ""
}

// paragraphBody returns the body of the first paragraph starting with the
// given marker: its lines after the marker line, joined back with newlines.
func paragraphBody(record, marker string) string {
	for _, paragraph := range strings.Split(record, paragraphSeparator) {
		paragraph = strings.TrimLeft(paragraph, "\n")
		if !strings.HasPrefix(paragraph, marker) {
			continue
		}
		lines := strings.Split(paragraph, "\n")
		if len(lines) < 2 {
			return ""
		}
		return strings.TrimSpace(strings.Join(lines[1:], "\n"))
	}
	return ""
}
