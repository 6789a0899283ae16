package quizdoc

import (
	"strings"
	"testing"
	"time"
)

const catalogJSON = `{
  "quiz-sets": {
    "quiz_zeta.json": {"name": "Zeta", "description": "last alphabetically", "difficulty": "Hard"},
    "quiz1.json": {"name": "Set A", "description": "first set", "difficulty": "Mixed", "default": true},
    "quiz_alpha.json": {"name": "Alpha", "description": "", "difficulty": "Mixed", "question_count": 12, "auto_generated": true, "created_date": "2024-11-02", "source": "automated_conversion"}
  },
  "metadata": {"version": "1.0", "total_quiz_sets": 3, "last_updated": "2024-11-02"}
}`

func TestDecodeCatalogKeepsOrder(t *testing.T) {
	doc, err := DecodeCatalog([]byte(catalogJSON))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var ids []string
	for _, set := range doc.Catalog.Sets {
		ids = append(ids, set.ID)
	}
	if strings.Join(ids, ",") != "quiz_zeta.json,quiz1.json,quiz_alpha.json" {
		t.Fatalf("expected document order, got %v", ids)
	}
	def, ok := doc.Catalog.Default()
	if !ok || def.ID != "quiz1.json" {
		t.Fatalf("expected flagged default, got %+v", def)
	}
	alpha := doc.Catalog.Sets[2]
	if alpha.QuestionCount != 12 || !alpha.AutoGenerated || alpha.Source != "automated_conversion" {
		t.Fatalf("unexpected entry %+v", alpha)
	}
	if doc.Catalog.LastUpdated != "2024-11-02" {
		t.Fatalf("unexpected last updated %q", doc.Catalog.LastUpdated)
	}
}

func TestEncodeCatalogRefreshesMetadata(t *testing.T) {
	doc, err := DecodeCatalog([]byte(catalogJSON))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	doc.Catalog.Remove("quiz1.json")

	data, err := EncodeCatalog(doc, time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	again, err := DecodeCatalog(data)
	if err != nil {
		t.Fatalf("decode again: %v", err)
	}
	if len(again.Catalog.Sets) != 2 || again.Catalog.Sets[0].ID != "quiz_zeta.json" {
		t.Fatalf("unexpected sets %+v", again.Catalog.Sets)
	}
	if again.Metadata["version"] != "1.0" || again.Catalog.LastUpdated != "2025-03-04" {
		t.Fatalf("unexpected metadata %+v", again.Metadata)
	}
	if total, _ := again.Metadata["total_quiz_sets"].(float64); total != 2 {
		t.Fatalf("expected total 2, got %v", again.Metadata["total_quiz_sets"])
	}
	def, _ := again.Catalog.Default()
	if def.ID != "quiz_zeta.json" {
		t.Fatalf("expected first set as fallback default, got %s", def.ID)
	}
}
