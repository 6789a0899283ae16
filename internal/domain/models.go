package domain

import "time"

const (
	// MaxScore is the total number of points a full attempt is worth.
	MaxScore = 1000
	// PassScore is the minimum score for a passing verdict.
	PassScore = 750
)

// Question models a multiple-choice question. Options are addressed by their
// 0-based index; CorrectAnswers holds the indices of every correct option.
type Question struct {
	ID             int      `json:"id,omitempty"`
	Text           string   `json:"question"`
	Options        []string `json:"options"`
	CorrectAnswers []int    `json:"correctAnswers"`
	Multiple       bool     `json:"multiple"` // rendering hint only
	Explanation    string   `json:"explanation,omitempty"`
}

// Clone returns a deep copy so sessions never share slices with a source pool.
func (q Question) Clone() Question {
	out := q
	out.Options = append([]string(nil), q.Options...)
	out.CorrectAnswers = append([]int(nil), q.CorrectAnswers...)
	return out
}

// QuizSet describes one quiz document listed in the catalog.
type QuizSet struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Difficulty    string `json:"difficulty"`
	IsDefault     bool   `json:"default"`
	QuestionCount int    `json:"questionCount"`
	AutoGenerated bool   `json:"autoGenerated,omitempty"`
	CreatedDate   string `json:"createdDate,omitempty"`
	Source        string `json:"source,omitempty"`
}

// Catalog is the ordered listing of available quiz sets.
type Catalog struct {
	Sets        []QuizSet `json:"sets"`
	LastUpdated string    `json:"lastUpdated,omitempty"`
}

// Default returns the first set flagged as default, falling back to the first
// set in catalog order.
func (c Catalog) Default() (QuizSet, bool) {
	for _, set := range c.Sets {
		if set.IsDefault {
			return set, true
		}
	}
	if len(c.Sets) > 0 {
		return c.Sets[0], true
	}
	return QuizSet{}, false
}

// Find looks up a set by id.
func (c Catalog) Find(id string) (QuizSet, bool) {
	for _, set := range c.Sets {
		if set.ID == id {
			return set, true
		}
	}
	return QuizSet{}, false
}

// Upsert replaces the set with the same id or appends it.
func (c *Catalog) Upsert(set QuizSet) {
	for i := range c.Sets {
		if c.Sets[i].ID == set.ID {
			c.Sets[i] = set
			return
		}
	}
	c.Sets = append(c.Sets, set)
}

// Remove deletes the set with the given id and reports whether it existed.
func (c *Catalog) Remove(id string) bool {
	for i := range c.Sets {
		if c.Sets[i].ID == id {
			c.Sets = append(c.Sets[:i], c.Sets[i+1:]...)
			return true
		}
	}
	return false
}

// Result is the aggregate outcome of a completed session.
type Result struct {
	Total          int  `json:"total"`
	CorrectCount   int  `json:"correctCount"`
	SkippedCount   int  `json:"skippedCount"`
	AttemptedCount int  `json:"attemptedCount"`
	Score          int  `json:"score"`
	MaxScore       int  `json:"maxScore"`
	Percentage     int  `json:"percentage"`
	Passed         bool `json:"passed"`
}

// Verdict is the per-question outcome under exact-set matching.
type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
)

// OptionMark classifies one option in a review.
type OptionMark string

const (
	MarkUserCorrect   OptionMark = "user-correct"
	MarkUserIncorrect OptionMark = "user-incorrect"
	MarkMissedCorrect OptionMark = "missed-correct"
	MarkNeutral       OptionMark = "neutral"
)

// ReviewOption is an option annotated for the answer review.
type ReviewOption struct {
	Letter string     `json:"letter"`
	Text   string     `json:"text"`
	Mark   OptionMark `json:"mark"`
}

// ReviewEntry compares the user's selection with the correct answers.
type ReviewEntry struct {
	Index           int            `json:"index"`
	Question        string         `json:"question"`
	UserSelected    []int          `json:"userSelected"`
	CorrectSelected []int          `json:"correctSelected"`
	UserLetters     []string       `json:"userLetters"`
	CorrectLetters  []string       `json:"correctLetters"`
	Skipped         bool           `json:"skipped"`
	Verdict         Verdict        `json:"verdict"`
	Options         []ReviewOption `json:"options"`
	Explanation     string         `json:"explanation,omitempty"`
}

// Progress reports the position within a session.
type Progress struct {
	Index int `json:"index"`
	Total int `json:"total"`
}

// AttemptRecord is a finished attempt kept in the history.
type AttemptRecord struct {
	ID          string    `json:"id"`
	SetID       string    `json:"setId"`
	Result      Result    `json:"result"`
	TimedOut    bool      `json:"timedOut"`
	CompletedAt time.Time `json:"completedAt"`
}
