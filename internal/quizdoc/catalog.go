package quizdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"practice-quiz-service/internal/domain"
)

// CatalogDocument is the decoded quiz-config.json. Metadata keys not managed
// here are carried through unchanged.
type CatalogDocument struct {
	Catalog  domain.Catalog
	Metadata map[string]interface{}
}

type catalogEntry struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Difficulty    string `json:"difficulty"`
	Default       bool   `json:"default,omitempty"`
	QuestionCount int    `json:"question_count,omitempty"`
	AutoGenerated bool   `json:"auto_generated,omitempty"`
	CreatedDate   string `json:"created_date,omitempty"`
	Source        string `json:"source,omitempty"`
}

// orderedSets keeps "quiz-sets" in document order; the first entry is the
// fallback default.
type orderedSets []domain.QuizSet

func (o *orderedSets) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("quiz-sets must be an object")
	}
	var sets []domain.QuizSet
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var entry catalogEntry
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("quiz set %q: %w", key, err)
		}
		sets = append(sets, domain.QuizSet{
			ID:            key,
			Name:          entry.Name,
			Description:   entry.Description,
			Difficulty:    entry.Difficulty,
			IsDefault:     entry.Default,
			QuestionCount: entry.QuestionCount,
			AutoGenerated: entry.AutoGenerated,
			CreatedDate:   entry.CreatedDate,
			Source:        entry.Source,
		})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = sets
	return nil
}

func (o orderedSets) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, set := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(set.ID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(catalogEntry{
			Name:          set.Name,
			Description:   set.Description,
			Difficulty:    set.Difficulty,
			Default:       set.IsDefault,
			QuestionCount: set.QuestionCount,
			AutoGenerated: set.AutoGenerated,
			CreatedDate:   set.CreatedDate,
			Source:        set.Source,
		})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type catalogFile struct {
	QuizSets orderedSets            `json:"quiz-sets"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// DecodeCatalog parses quiz-config.json.
func DecodeCatalog(data []byte) (CatalogDocument, error) {
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return CatalogDocument{}, fmt.Errorf("%w: catalog: %v", domain.ErrMalformedData, err)
	}
	doc := CatalogDocument{
		Catalog:  domain.Catalog{Sets: file.QuizSets},
		Metadata: file.Metadata,
	}
	if last, ok := file.Metadata["last_updated"].(string); ok {
		doc.Catalog.LastUpdated = last
	}
	return doc, nil
}

// EncodeCatalog writes the document back, refreshing the set total and the
// last-updated date.
func EncodeCatalog(doc CatalogDocument, now time.Time) ([]byte, error) {
	meta := make(map[string]interface{}, len(doc.Metadata)+2)
	for k, v := range doc.Metadata {
		meta[k] = v
	}
	meta["total_quiz_sets"] = len(doc.Catalog.Sets)
	meta["last_updated"] = now.Format("2006-01-02")

	return json.MarshalIndent(catalogFile{
		QuizSets: orderedSets(doc.Catalog.Sets),
		Metadata: meta,
	}, "", "  ")
}
