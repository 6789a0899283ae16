package quizdoc

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseTextHeaderStyles(t *testing.T) {
	input := "Question #: 1\r\nFirst?\r\nA. yes\r\nB. no\r\nAnswer: A\r\n\r\n" +
		"Question 2:\nSecond?\nA) one\nB) two\nC) three\nHint Answer: C\n\n" +
		"3. Third\nspans two lines\nA. x\nB. y\nCorrect Answer: B\n"

	report, err := ParseText(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if report.Found != 3 || len(report.Questions) != 3 || len(report.Skipped) != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
	q := report.Questions
	if q[0].ID != 1 || q[0].Text != "First?" || !reflect.DeepEqual(q[0].CorrectAnswers, []int{0}) {
		t.Fatalf("unexpected first question %+v", q[0])
	}
	if q[1].ID != 2 || !reflect.DeepEqual(q[1].Options, []string{"one", "two", "three"}) || q[1].CorrectAnswers[0] != 2 {
		t.Fatalf("unexpected second question %+v", q[1])
	}
	if q[2].ID != 3 || q[2].Text != "Third spans two lines" || q[2].CorrectAnswers[0] != 1 {
		t.Fatalf("unexpected third question %+v", q[2])
	}
}

func TestParseTextSkipsAndWarns(t *testing.T) {
	input := `Question 1:
No answer line
A. first
B. second

Question 2:
Only one option
A. lonely
Answer: A

Question 3:
Answer past the options
A. a
B. b
Answer: D

Question 4:
Duplicated answers
A. a
B. b
C. c
Answer: C, A, C
`
	report, err := ParseText(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(report.Skipped, []int{2, 3}) {
		t.Fatalf("expected questions 2 and 3 skipped, got %v", report.Skipped)
	}
	if len(report.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(report.Questions))
	}
	first := report.Questions[0]
	if !reflect.DeepEqual(first.CorrectAnswers, []int{0}) || len(report.Warnings) == 0 {
		t.Fatalf("expected default answer with warning, got %+v %v", first, report.Warnings)
	}
	last := report.Questions[1]
	if !last.Multiple || !reflect.DeepEqual(last.CorrectAnswers, []int{0, 2}) {
		t.Fatalf("expected deduplicated answers, got %+v", last)
	}
}
