// Package quizdoc reads and writes the JSON and plain-text formats quiz sets
// are stored in.
package quizdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"practice-quiz-service/internal/domain"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const questionsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["question", "options", "correctAnswers"],
    "properties": {
      "id": {"type": "integer"},
      "question": {"type": "string", "minLength": 1},
      "options": {
        "type": "array",
        "minItems": 2,
        "items": {"type": "string"}
      },
      "correctAnswers": {
        "type": "array",
        "minItems": 1,
        "items": {"type": "integer", "minimum": 0}
      },
      "multiple": {"type": "boolean"},
      "explanation": {"type": "string"}
    }
  }
}`

var compiledQuestions = jsonschema.MustCompileString("questions.schema.json", questionsSchema)

type rawQuestion struct {
	ID             int      `json:"id"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	CorrectAnswers []int    `json:"correctAnswers"`
	Multiple       *bool    `json:"multiple"`
	Explanation    string   `json:"explanation"`
}

// DecodeQuestions validates a question document and coerces it into the
// strict Question shape. Every failure wraps domain.ErrMalformedData.
func DecodeQuestions(data []byte) ([]domain.Question, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedData, err)
	}
	if err := compiledQuestions.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedData, err)
	}

	var raw []rawQuestion
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedData, err)
	}

	questions := make([]domain.Question, 0, len(raw))
	for i, r := range raw {
		q, err := coerce(r)
		if err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", domain.ErrMalformedData, i+1, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// EncodeQuestions writes the indented document form.
func EncodeQuestions(questions []domain.Question) ([]byte, error) {
	if questions == nil {
		questions = []domain.Question{}
	}
	return json.MarshalIndent(questions, "", "  ")
}

func coerce(r rawQuestion) (domain.Question, error) {
	seen := make(map[int]struct{}, len(r.CorrectAnswers))
	correct := make([]int, 0, len(r.CorrectAnswers))
	for _, idx := range r.CorrectAnswers {
		if idx < 0 || idx >= len(r.Options) {
			return domain.Question{}, fmt.Errorf("answer index %d out of range", idx)
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		correct = append(correct, idx)
	}
	sort.Ints(correct)

	multiple := len(correct) > 1
	if r.Multiple != nil {
		multiple = *r.Multiple
	}
	return domain.Question{
		ID:             r.ID,
		Text:           r.Question,
		Options:        append([]string(nil), r.Options...),
		CorrectAnswers: correct,
		Multiple:       multiple,
		Explanation:    r.Explanation,
	}, nil
}
