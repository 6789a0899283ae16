package quizdoc

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"practice-quiz-service/internal/domain"
)

var (
	// Headers: "Question #: 1", "Question 1:", "1."
	questionHeader  = regexp.MustCompile(`\n\s*(?:Question\s*#?\s*(\d+):|Question\s*#?:?\s*(\d+)|(\d+)\.)\s*`)
	optionLine      = regexp.MustCompile(`^([A-Z])[.)]\s*(.+)$`)
	answerLine      = regexp.MustCompile(`(?i)^(?:Answer|Correct(?:\s+Answer)?s?|Hint\s+Answer):\s*([A-Z,\s]+)`)
	explanationLine = regexp.MustCompile(`(?i)^Explanation:\s*(.*)`)
	answerLetter    = regexp.MustCompile(`[A-Z]`)
)

// ParseReport is the outcome of converting a text document.
type ParseReport struct {
	Questions []domain.Question
	Found     int
	Skipped   []int
	Warnings  []string
}

// ParseText converts the plain-text question format into questions.
// Incomplete blocks are skipped and listed in the report rather than failing
// the whole document.
func ParseText(r io.Reader) (ParseReport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ParseReport{}, fmt.Errorf("read questions: %w", err)
	}
	content := "\n" + strings.TrimSpace(strings.ReplaceAll(string(data), "\r\n", "\n"))

	var report ParseReport
	matches := questionHeader.FindAllStringSubmatchIndex(content, -1)
	for i, m := range matches {
		num := headerNumber(content, m)
		end := len(content)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		block := content[m[1]:end]
		if strings.TrimSpace(block) == "" {
			continue
		}
		report.Found++

		q, warning, ok := parseBlock(block, num)
		if warning != "" {
			report.Warnings = append(report.Warnings, warning)
		}
		if !ok {
			report.Skipped = append(report.Skipped, num)
			continue
		}
		report.Questions = append(report.Questions, q)
	}
	return report, nil
}

func headerNumber(content string, m []int) int {
	for g := 1; g <= 3; g++ {
		start, end := m[2*g], m[2*g+1]
		if start >= 0 {
			n, _ := strconv.Atoi(content[start:end])
			return n
		}
	}
	return 0
}

func parseBlock(block string, num int) (domain.Question, string, bool) {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 3 {
		return domain.Question{}, fmt.Sprintf("question %d: insufficient content", num), false
	}

	var (
		text        string
		options     []string
		correct     []int
		explanation string
		section     = "question"
	)
	for _, line := range lines {
		if m := explanationLine.FindStringSubmatch(line); m != nil {
			section = "explanation"
			if m[1] != "" {
				explanation = m[1]
			}
			continue
		}
		if m := answerLine.FindStringSubmatch(line); m != nil {
			correct = correct[:0]
			for _, letter := range answerLetter.FindAllString(m[1], -1) {
				correct = append(correct, int(letter[0]-'A'))
			}
			section = "answer"
			continue
		}
		if m := optionLine.FindStringSubmatch(line); m != nil {
			section = "options"
			options = append(options, m[2])
			continue
		}
		switch section {
		case "question":
			text = joinLine(text, line)
		case "explanation":
			explanation = joinLine(explanation, line)
		}
	}

	if text == "" || len(options) < 2 {
		return domain.Question{}, fmt.Sprintf("question %d: incomplete (%d options)", num, len(options)), false
	}

	warning := ""
	if len(correct) == 0 {
		warning = fmt.Sprintf("question %d: no correct answer specified, defaulting to A", num)
		correct = []int{0}
	}
	correct = dedupeSorted(correct)
	for _, idx := range correct {
		if idx >= len(options) {
			return domain.Question{}, fmt.Sprintf("question %d: answer %s has no matching option", num, domain.OptionLetter(idx)), false
		}
	}

	return domain.Question{
		ID:             num,
		Text:           text,
		Options:        options,
		CorrectAnswers: correct,
		Multiple:       len(correct) > 1,
		Explanation:    strings.TrimSpace(strings.ReplaceAll(explanation, "---", "")),
	}, warning, true
}

func joinLine(acc, line string) string {
	if acc == "" {
		return line
	}
	return acc + " " + line
}

func dedupeSorted(values []int) []int {
	sort.Ints(values)
	out := values[:0]
	for i, v := range values {
		if i > 0 && v == values[i-1] {
			continue
		}
		out = append(out, v)
	}
	return out
}
