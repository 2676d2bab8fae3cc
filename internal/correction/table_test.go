package correction

import (
	"strings"
	"testing"

	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/model"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestApply_NoRow(t *testing.T) {
	table := NewTable([]model.Correction{
		{DossierID: "HGB_1_014_003"},
	})

	in := model.ParsedOldHousenumber{
		Numbers:    []string{"48"},
		Supplement: strPtr("Hinterhaus"),
		IsPartOf:   boolPtr(false),
	}

	got, err := table.Apply("HGB_1_999_001", in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.IsCorrected {
		t.Error("Expected IsCorrected=false for a dossier without a row")
	}
	if len(got.Numbers) != 1 || got.Numbers[0] != "48" ||
		*got.Supplement != "Hinterhaus" || *got.IsPartOf != false {
		t.Errorf("Expected fields unchanged, got %+v", got)
	}
}

func TestApply_Overrides(t *testing.T) {
	table := NewTable([]model.Correction{
		{
			DossierID:          "HGB_1_014_003",
			Numbers:            strPtr("['746 A', '747']"),
			IsPartOf:           boolPtr(true),
			NeighbouringNumber: strPtr("748"),
		},
	})

	in := model.ParsedOldHousenumber{
		Numbers:  []string{"746"},
		IsPartOf: boolPtr(false),
	}

	got, err := table.Apply("HGB_1_014_003", in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !got.IsCorrected {
		t.Error("Expected IsCorrected=true")
	}
	if len(got.Numbers) != 2 || got.Numbers[0] != "746 A" || got.Numbers[1] != "747" {
		t.Errorf("Numbers = %v, want [746 A 747]", got.Numbers)
	}
	if got.IsPartOf == nil || !*got.IsPartOf {
		t.Error("Expected IsPartOf override to true")
	}
	if got.NeighbouringNumber == nil || *got.NeighbouringNumber != "748" {
		t.Errorf("NeighbouringNumber = %v, want 748", got.NeighbouringNumber)
	}
}

func TestApply_SupplementAddition(t *testing.T) {
	table := NewTable([]model.Correction{
		{DossierID: "a", SupplementAddition: strPtr("Eckhaus")},
	})

	// Empty supplement gets the fixed prefix.
	got, err := table.Apply("a", model.ParsedOldHousenumber{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.Supplement == nil || *got.Supplement != "manuell erfasste Bemerkung: Eckhaus" {
		t.Errorf("Supplement = %v", got.Supplement)
	}

	// Existing supplement is complemented, not replaced.
	got, err = table.Apply("a", model.ParsedOldHousenumber{Supplement: strPtr("neben")})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := "neben , zusätzliche manuell erfasste Bemerkung: Eckhaus"
	if got.Supplement == nil || *got.Supplement != want {
		t.Errorf("Supplement = %v, want %q", got.Supplement, want)
	}
}

func TestApply_Idempotent(t *testing.T) {
	table := NewTable([]model.Correction{
		{
			DossierID:          "a",
			Numbers:            strPtr("['12']"),
			SupplementAddition: strPtr("Eckhaus"),
		},
	})

	once, err := table.Apply("a", model.ParsedOldHousenumber{Numbers: []string{"11"}})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	twice, err := table.Apply("a", once)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if *once.Supplement != *twice.Supplement {
		t.Errorf("Supplement changed on reapply: %q vs %q", *once.Supplement, *twice.Supplement)
	}
	if len(twice.Numbers) != 1 || twice.Numbers[0] != "12" {
		t.Errorf("Numbers = %v, want [12]", twice.Numbers)
	}
}

func TestApply_MalformedNumberList(t *testing.T) {
	table := NewTable([]model.Correction{
		{
			DossierID: "a",
			Numbers:   strPtr("746 A"), // Missing brackets
			IsPartOf:  boolPtr(true),
		},
	})

	in := model.ParsedOldHousenumber{Numbers: []string{"746"}}
	got, err := table.Apply("a", in)
	if err == nil {
		t.Fatal("Expected data-quality error for malformed number list")
	}
	if !strings.Contains(err.Error(), "dossier a") {
		t.Errorf("Error should name the dossier id, got %v", err)
	}
	// The parsed numbers stay untouched, the remaining overrides still apply.
	if len(got.Numbers) != 1 || got.Numbers[0] != "746" {
		t.Errorf("Numbers = %v, want [746]", got.Numbers)
	}
	if got.IsPartOf == nil || !*got.IsPartOf {
		t.Error("Expected IsPartOf override despite the numbers fault")
	}
	if !got.IsCorrected {
		t.Error("Expected IsCorrected=true: the row was found")
	}
}

func TestRead_HeaderValidation(t *testing.T) {
	csvData := "dossierId,wrongColumn,oldHousenumberIsPartOfCorr,oldHousenumberNeighbouringNumberCorr,oldHousenumberSupplementAddition\n"
	if _, err := Read(strings.NewReader(csvData)); err == nil {
		t.Fatal("Expected error for unexpected header")
	}
}

func TestRead_Rows(t *testing.T) {
	csvData := "dossierId,oldHouseNumberNumberCorr,oldHousenumberIsPartOfCorr,oldHousenumberNeighbouringNumberCorr,oldHousenumberSupplementAddition\n" +
		"HGB_1_014_003,\"['746 A', '747']\",True,748,\n" +
		"HGB_1_014_004,,,,Eckhaus\n"

	rows, err := Read(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].Numbers == nil || *rows[0].Numbers != "['746 A', '747']" {
		t.Errorf("Numbers = %v", rows[0].Numbers)
	}
	if rows[0].IsPartOf == nil || !*rows[0].IsPartOf {
		t.Error("Expected IsPartOf=true")
	}
	if rows[1].Numbers != nil || rows[1].IsPartOf != nil || rows[1].NeighbouringNumber != nil {
		t.Errorf("Expected empty overrides in second row, got %+v", rows[1])
	}
	if rows[1].SupplementAddition == nil || *rows[1].SupplementAddition != "Eckhaus" {
		t.Errorf("SupplementAddition = %v", rows[1].SupplementAddition)
	}
}
