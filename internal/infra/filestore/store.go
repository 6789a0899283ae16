// Package filestore keeps quiz sets as JSON documents in a local directory,
// indexed by a quiz-config.json catalog.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"practice-quiz-service/internal/domain"
	"practice-quiz-service/internal/quizdoc"
)

// CatalogFile is the catalog document name inside the data directory.
const CatalogFile = "quiz-config.json"

// Store reads and writes quiz documents under dir.
type Store struct {
	dir   string
	clock func() time.Time

	mu sync.Mutex // serializes catalog read-modify-write
}

func NewStore(dir string) *Store {
	return &Store{dir: dir, clock: time.Now}
}

// LoadPool reads and validates the question document for setID.
func (s *Store) LoadPool(_ context.Context, setID string) ([]domain.Question, error) {
	path, err := s.documentPath(setID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", setID, domain.ErrQuizSetNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", setID, err)
	}
	return quizdoc.DecodeQuestions(data)
}

// LoadCatalog reads quiz-config.json. Without a catalog file every JSON
// document in the directory is listed under a generated name.
func (s *Store) LoadCatalog(_ context.Context) (domain.Catalog, error) {
	doc, err := s.readCatalog()
	if errors.Is(err, fs.ErrNotExist) {
		return s.detectCatalog()
	}
	if err != nil {
		return domain.Catalog{}, err
	}
	return doc.Catalog, nil
}

// SaveQuizSet writes the document and upserts its catalog entry.
func (s *Store) SaveQuizSet(_ context.Context, set domain.QuizSet, questions []domain.Question) error {
	path, err := s.documentPath(set.ID)
	if err != nil {
		return err
	}
	data, err := quizdoc.EncodeQuestions(questions)
	if err != nil {
		return fmt.Errorf("encode %s: %w", set.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("write %s: %w", set.ID, err)
	}

	doc, err := s.readCatalog()
	if errors.Is(err, fs.ErrNotExist) {
		doc = quizdoc.CatalogDocument{Metadata: map[string]interface{}{}}
	} else if err != nil {
		return err
	}
	set.QuestionCount = len(questions)
	doc.Catalog.Upsert(set)
	return s.writeCatalog(doc)
}

// DeleteQuizSet removes the catalog entry and the document.
func (s *Store) DeleteQuizSet(_ context.Context, setID string) error {
	path, err := s.documentPath(setID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", setID, domain.ErrQuizSetNotFound)
	}

	doc, err := s.readCatalog()
	switch {
	case err == nil:
		if doc.Catalog.Remove(setID) {
			if err := s.writeCatalog(doc); err != nil {
				return err
			}
		}
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}
	return os.Remove(path)
}

func (s *Store) documentPath(setID string) (string, error) {
	if err := domain.ValidateSetID(setID); err != nil {
		return "", err
	}
	if setID == CatalogFile || !strings.HasSuffix(setID, ".json") {
		return "", fmt.Errorf("%q: %w", setID, domain.ErrInvalidQuizSetID)
	}
	return filepath.Join(s.dir, setID), nil
}

func (s *Store) readCatalog() (quizdoc.CatalogDocument, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, CatalogFile))
	if err != nil {
		return quizdoc.CatalogDocument{}, err
	}
	return quizdoc.DecodeCatalog(data)
}

func (s *Store) writeCatalog(doc quizdoc.CatalogDocument) error {
	data, err := quizdoc.EncodeCatalog(doc, s.clock())
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(s.dir, CatalogFile), data)
}

func (s *Store) detectCatalog() (domain.Catalog, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Catalog{}, nil
	}
	if err != nil {
		return domain.Catalog{}, err
	}
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == CatalogFile || !strings.HasSuffix(name, ".json") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	catalog := domain.Catalog{}
	for i, name := range names {
		label := fmt.Sprintf("%d", i+1)
		if i < 26 {
			label = domain.OptionLetter(i)
		}
		catalog.Sets = append(catalog.Sets, domain.QuizSet{
			ID:          name,
			Name:        "Question Set " + label,
			Description: "Practice questions - Set " + label,
			Difficulty:  "Mixed",
		})
	}
	return catalog, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
