package bank

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/abhisek/liuk/internal/question"
)

// Column names expected in the header row. Order in the file is free.
const (
	ColID         = "id"
	ColTopic      = "topic"
	ColQuestionEN = "question_en"
	ColQuestionZH = "question_zh"
	ColOptionsEN  = "options_en"
	ColOptionsZH  = "options_zh"
	ColAnswer     = "answer_index"
)

// OptionSeparator splits the option cells.
const OptionSeparator = " | "

// SkippedRow explains why a data row did not become a question.
type SkippedRow struct {
	Line   int // 1-based line number in the input
	Reason string
}

// Result is the outcome of Parse.
type Result struct {
	Questions []question.Question
	Skipped   []SkippedRow

	// Lines holds the input line number of each entry in Questions.
	Lines []int
}

var lineBreak = regexp.MustCompile(`\r\n|\n|\r`)

// Parse turns delimited text into questions. It never fails: malformed rows
// are dropped and listed in Result.Skipped.
//
// Rows without an explicit numeric id get 1 + their 0-based data-row
// position, so default ids are only stable while row order is.
func Parse(raw string) Result {
	var res Result

	text := strings.TrimSpace(raw)
	if text == "" {
		return res
	}
	lead := raw[:strings.Index(raw, text)]
	offset := len(lineBreak.FindAllStringIndex(lead, -1))
	lines := lineBreak.Split(text, -1)

	header := splitLine(lines[0])
	cols := make(map[string]int, len(header))
	for i, h := range header {
		// A repeated header name maps to its last column.
		cols[strings.TrimSpace(h)] = i
	}

	for rowIdx, line := range lines[1:] {
		cells := splitLine(line)
		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(cells) {
				return ""
			}
			return strings.TrimSpace(cells[i])
		}

		id, err := strconv.Atoi(get(ColID))
		if err != nil {
			id = rowIdx + 1
		}
		answer, err := strconv.Atoi(get(ColAnswer))
		if err != nil {
			answer = 0
		}

		q := question.Question{
			ID:    id,
			Topic: get(ColTopic),
			Text: question.Text{
				EN: get(ColQuestionEN),
				ZH: get(ColQuestionZH),
			},
			Options: question.Options{
				EN: splitOptions(get(ColOptionsEN)),
				ZH: splitOptions(get(ColOptionsZH)),
			},
			CorrectIndex: answer,
		}

		lineNo := offset + rowIdx + 2
		switch {
		case q.Text.EN == "":
			res.Skipped = append(res.Skipped, SkippedRow{Line: lineNo, Reason: "missing question_en"})
			continue
		case len(q.Options.EN) == 0:
			res.Skipped = append(res.Skipped, SkippedRow{Line: lineNo, Reason: "no english options"})
			continue
		}
		res.Questions = append(res.Questions, q)
		res.Lines = append(res.Lines, lineNo)
	}

	return res
}

// splitLine splits one line on commas. A double quote toggles quoting, and
// inside quotes a doubled quote is a literal quote.
func splitLine(line string) []string {
	var (
		parts    []string
		cur      strings.Builder
		inQuotes bool
	)
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	return append(parts, cur.String())
}

func splitOptions(cell string) []string {
	if cell == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(cell, OptionSeparator) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
