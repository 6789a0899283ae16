package postgres

import (
	"context"
	"errors"
	"fmt"

	"practice-quiz-service/internal/domain"
	"practice-quiz-service/internal/quizdoc"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuizSetStore keeps quiz documents as JSONB rows alongside their catalog
// metadata.
type QuizSetStore struct {
	pool *pgxpool.Pool
}

func NewQuizSetStore(pool *pgxpool.Pool) *QuizSetStore {
	return &QuizSetStore{pool: pool}
}

func (s *QuizSetStore) LoadPool(ctx context.Context, setID string) ([]domain.Question, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM quiz_sets WHERE id=$1`, setID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", setID, domain.ErrQuizSetNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load quiz set: %w", err)
	}
	return quizdoc.DecodeQuestions(raw)
}

func (s *QuizSetStore) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, description, difficulty, is_default, question_count,
		       auto_generated, created_date, source
		FROM quiz_sets
		ORDER BY created_at, id`)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	defer rows.Close()

	var catalog domain.Catalog
	for rows.Next() {
		var set domain.QuizSet
		if err := rows.Scan(&set.ID, &set.Name, &set.Description, &set.Difficulty, &set.IsDefault,
			&set.QuestionCount, &set.AutoGenerated, &set.CreatedDate, &set.Source); err != nil {
			return domain.Catalog{}, fmt.Errorf("scan catalog: %w", err)
		}
		catalog.Sets = append(catalog.Sets, set)
	}
	return catalog, rows.Err()
}

func (s *QuizSetStore) SaveQuizSet(ctx context.Context, set domain.QuizSet, questions []domain.Question) error {
	if err := domain.ValidateSetID(set.ID); err != nil {
		return err
	}
	data, err := quizdoc.EncodeQuestions(questions)
	if err != nil {
		return fmt.Errorf("encode quiz set: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO quiz_sets (id, name, description, difficulty, is_default, question_count,
		                       auto_generated, created_date, source, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb)
		ON CONFLICT (id) DO UPDATE SET
			name=EXCLUDED.name, description=EXCLUDED.description, difficulty=EXCLUDED.difficulty,
			is_default=EXCLUDED.is_default, question_count=EXCLUDED.question_count,
			auto_generated=EXCLUDED.auto_generated, created_date=EXCLUDED.created_date,
			source=EXCLUDED.source, data=EXCLUDED.data`,
		set.ID, set.Name, set.Description, set.Difficulty, set.IsDefault, len(questions),
		set.AutoGenerated, set.CreatedDate, set.Source, string(data))
	if err != nil {
		return fmt.Errorf("save quiz set: %w", err)
	}
	return nil
}

func (s *QuizSetStore) DeleteQuizSet(ctx context.Context, setID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM quiz_sets WHERE id=$1`, setID)
	if err != nil {
		return fmt.Errorf("delete quiz set: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", setID, domain.ErrQuizSetNotFound)
	}
	return nil
}
