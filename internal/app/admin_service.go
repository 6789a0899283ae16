package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"practice-quiz-service/internal/domain"
	"practice-quiz-service/internal/quizdoc"
)

// QuizSetStore is the writable store behind the admin page.
type QuizSetStore interface {
	CatalogRepository
	SaveQuizSet(ctx context.Context, set domain.QuizSet, questions []domain.Question) error
	DeleteQuizSet(ctx context.Context, setID string) error
}

// CreateQuizSetRequest carries an uploaded plain-text question file.
type CreateQuizSetRequest struct {
	ID          string
	Name        string
	Description string
	Text        string
}

// CreateQuizSetResult describes the stored set and what the parser skipped.
type CreateQuizSetResult struct {
	Set    domain.QuizSet
	Report quizdoc.ParseReport
}

// AdminService adds and removes quiz sets.
type AdminService struct {
	store QuizSetStore
	pools PoolRepository
	now   func() time.Time
}

func NewAdminService(store QuizSetStore, pools PoolRepository) *AdminService {
	return &AdminService{store: store, pools: pools, now: time.Now}
}

// CreateQuizSet converts the uploaded text and stores it as quiz_<id>.json.
// An existing set with the same id is replaced.
func (a *AdminService) CreateQuizSet(ctx context.Context, req CreateQuizSetRequest) (CreateQuizSetResult, error) {
	req.ID = strings.TrimSpace(req.ID)
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)

	var missing []string
	if req.ID == "" {
		missing = append(missing, "quiz_id")
	}
	if req.Name == "" {
		missing = append(missing, "quiz_name")
	}
	if strings.TrimSpace(req.Text) == "" {
		missing = append(missing, "file_content")
	}
	if len(missing) > 0 {
		return CreateQuizSetResult{}, fmt.Errorf("%w: %s", domain.ErrMissingField, strings.Join(missing, ", "))
	}
	if err := domain.ValidateSetID(req.ID); err != nil {
		return CreateQuizSetResult{}, err
	}

	report, err := quizdoc.ParseText(strings.NewReader(req.Text))
	if err != nil {
		return CreateQuizSetResult{}, err
	}
	if len(report.Questions) == 0 {
		return CreateQuizSetResult{Report: report}, fmt.Errorf("%w: no questions found in data", domain.ErrMalformedData)
	}

	count := len(report.Questions)
	name := nameWithCount(req.Name, count)
	description := req.Description
	if description == "" {
		description = "Practice questions for " + strings.SplitN(name, " (", 2)[0]
	}
	set := domain.QuizSet{
		ID:            domain.DocumentName(req.ID),
		Name:          name,
		Description:   description,
		Difficulty:    "Mixed",
		QuestionCount: count,
		AutoGenerated: true,
		CreatedDate:   a.now().Format("2006-01-02"),
		Source:        "automated_conversion",
	}
	if err := a.store.SaveQuizSet(ctx, set, report.Questions); err != nil {
		return CreateQuizSetResult{}, err
	}
	a.invalidate(ctx, set.ID)
	return CreateQuizSetResult{Set: set, Report: report}, nil
}

// DeleteQuizSet removes a set by its catalog id (the document filename).
func (a *AdminService) DeleteQuizSet(ctx context.Context, setID string) (domain.QuizSet, error) {
	setID = strings.TrimSpace(setID)
	if setID == "" {
		return domain.QuizSet{}, fmt.Errorf("%w: filename", domain.ErrMissingField)
	}
	if err := domain.ValidateSetID(setID); err != nil {
		return domain.QuizSet{}, err
	}

	set := domain.QuizSet{ID: setID, Name: setID}
	if catalog, err := a.store.LoadCatalog(ctx); err == nil {
		if found, ok := catalog.Find(setID); ok {
			set = found
		}
	}
	if err := a.store.DeleteQuizSet(ctx, setID); err != nil {
		return domain.QuizSet{}, err
	}
	a.invalidate(ctx, setID)
	return set, nil
}

func (a *AdminService) invalidate(ctx context.Context, setID string) {
	if a.pools == nil {
		return
	}
	if err := a.pools.Invalidate(ctx, setID); err != nil {
		log.Printf("invalidate cached pool %s: %v", setID, err)
	}
}

// nameWithCount appends the question count unless the name already has one.
func nameWithCount(name string, count int) string {
	if strings.Contains(name, "questions)") || strings.Contains(name, "question)") {
		return name
	}
	if strings.Contains(name, "(") {
		return strings.Replace(name, "(", fmt.Sprintf("(%d questions, ", count), 1)
	}
	return fmt.Sprintf("%s (%d questions)", name, count)
}
