package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mandalnilabja/tokencost/internal/pricing"
	"github.com/mandalnilabja/tokencost/internal/storage/models"
	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) (*Storage, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "tokencost-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	storage, err := New(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to create storage: %v", err)
	}

	cleanup := func() {
		storage.Close()
		os.RemoveAll(tmpDir)
	}

	return storage, cleanup
}

func newCustomModel(name string) *models.CustomModel {
	return &models.CustomModel{
		ModelCatalogEntry: pricing.ModelCatalogEntry{
			Name:                  name,
			Provider:              "acme",
			InputPricePerMillion:  decimal.RequireFromString("0.25"),
			OutputPricePerMillion: decimal.RequireFromString("1.25"),
			ContextWindow:         64000,
			Features:              []string{"tools", "json"},
			IsVisionEnabled:       true,
		},
	}
}

func TestModelCRUD(t *testing.T) {
	storage, cleanup := setupTestDB(t)
	defer cleanup()

	model := newCustomModel("Acme Small")
	if err := storage.CreateModel(model); err != nil {
		t.Fatalf("CreateModel failed: %v", err)
	}
	if model.ID == "" {
		t.Error("expected ID to be generated")
	}
	if model.Currency != "USD" {
		t.Errorf("expected default currency USD, got %q", model.Currency)
	}

	got, err := storage.GetModel(model.ID)
	if err != nil {
		t.Fatalf("GetModel failed: %v", err)
	}
	if got.Name != model.Name {
		t.Errorf("expected name %q, got %q", model.Name, got.Name)
	}
	if !got.InputPricePerMillion.Equal(model.InputPricePerMillion) {
		t.Errorf("expected input price %s, got %s", model.InputPricePerMillion, got.InputPricePerMillion)
	}
	if !got.OutputPricePerMillion.Equal(model.OutputPricePerMillion) {
		t.Errorf("expected output price %s, got %s", model.OutputPricePerMillion, got.OutputPricePerMillion)
	}
	if len(got.Features) != 2 || got.Features[0] != "tools" {
		t.Errorf("expected features round trip, got %v", got.Features)
	}
	if !got.IsVisionEnabled || got.IsAudioEnabled {
		t.Errorf("unexpected capability flags: %+v", got)
	}

	got.Name = "Acme Small v2"
	got.InputPricePerMillion = decimal.RequireFromString("0.2")
	if err := storage.UpdateModel(got); err != nil {
		t.Fatalf("UpdateModel failed: %v", err)
	}

	updated, err := storage.GetModel(model.ID)
	if err != nil {
		t.Fatalf("GetModel after update failed: %v", err)
	}
	if updated.Name != "Acme Small v2" {
		t.Errorf("expected updated name, got %q", updated.Name)
	}
	if !updated.InputPricePerMillion.Equal(decimal.RequireFromString("0.2")) {
		t.Errorf("expected updated price 0.2, got %s", updated.InputPricePerMillion)
	}

	if err := storage.DeleteModel(model.ID); err != nil {
		t.Fatalf("DeleteModel failed: %v", err)
	}
	if _, err := storage.GetModel(model.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestModelErrors(t *testing.T) {
	storage, cleanup := setupTestDB(t)
	defer cleanup()

	if err := storage.CreateModel(&models.CustomModel{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty model, got %v", err)
	}

	model := newCustomModel("Dup")
	model.ID = "custom_fixed"
	if err := storage.CreateModel(model); err != nil {
		t.Fatalf("CreateModel failed: %v", err)
	}
	again := newCustomModel("Dup")
	again.ID = "custom_fixed"
	if err := storage.CreateModel(again); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}

	missing := newCustomModel("Missing")
	missing.ID = "custom_missing"
	if err := storage.UpdateModel(missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on update, got %v", err)
	}
	if err := storage.DeleteModel("custom_missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestListModels(t *testing.T) {
	storage, cleanup := setupTestDB(t)
	defer cleanup()

	for _, name := range []string{"Zeta", "Alpha"} {
		if err := storage.CreateModel(newCustomModel(name)); err != nil {
			t.Fatalf("CreateModel failed: %v", err)
		}
	}
	other := newCustomModel("Other")
	other.Provider = "globex"
	if err := storage.CreateModel(other); err != nil {
		t.Fatalf("CreateModel failed: %v", err)
	}

	all, err := storage.ListModels(models.ModelFilter{})
	if err != nil {
		t.Fatalf("ListModels failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 models, got %d", len(all))
	}
	if all[0].Name != "Alpha" || all[1].Name != "Zeta" {
		t.Errorf("expected provider/name ordering, got %s, %s", all[0].Name, all[1].Name)
	}

	filtered, err := storage.ListModels(models.ModelFilter{Provider: "globex"})
	if err != nil {
		t.Fatalf("ListModels failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Name != "Other" {
		t.Errorf("expected only globex model, got %d", len(filtered))
	}
}

func savedComparison(t *testing.T, name string, entries ...pricing.ModelCatalogEntry) *models.SavedComparison {
	t.Helper()

	set := pricing.NewComparisonSet()
	for _, m := range entries {
		set.Add(pricing.Calculate(m, 100_000, 20_000))
	}
	calcs := set.Calculations()
	analysis, err := pricing.Analyze(calcs)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	ids := make([]string, len(calcs))
	for i, c := range calcs {
		ids[i] = c.Model.ID
	}

	return &models.SavedComparison{
		Name:            name,
		ModelIDs:        ids,
		MinCost:         analysis.MinCost,
		MaxCost:         analysis.MaxCost,
		Calculations:    calcs,
		Analysis:        &analysis,
		Recommendations: pricing.Recommend(analysis, calcs, pricing.DefaultRecommendOptions()),
	}
}

func entry(id, input, output string) pricing.ModelCatalogEntry {
	return pricing.ModelCatalogEntry{
		ID:                    id,
		Name:                  id,
		Provider:              "test",
		InputPricePerMillion:  decimal.RequireFromString(input),
		OutputPricePerMillion: decimal.RequireFromString(output),
		ContextWindow:         128000,
	}
}

func TestComparisonHistory(t *testing.T) {
	storage, cleanup := setupTestDB(t)
	defer cleanup()

	cmp := savedComparison(t, "chat workload", entry("a", "0.15", "0.6"), entry("b", "2.5", "10"))
	if err := storage.SaveComparison(cmp); err != nil {
		t.Fatalf("SaveComparison failed: %v", err)
	}
	if cmp.ID == "" {
		t.Fatal("expected ID to be generated")
	}

	got, err := storage.GetComparison(cmp.ID)
	if err != nil {
		t.Fatalf("GetComparison failed: %v", err)
	}
	if got.Name != "chat workload" {
		t.Errorf("expected name round trip, got %q", got.Name)
	}
	if len(got.Calculations) != 2 {
		t.Fatalf("expected 2 calculations, got %d", len(got.Calculations))
	}
	if !got.Calculations[1].TotalCost.Equal(cmp.Calculations[1].TotalCost) {
		t.Errorf("expected total %s, got %s", cmp.Calculations[1].TotalCost, got.Calculations[1].TotalCost)
	}
	if got.Analysis == nil || got.Analysis.Cheapest.Model.ID != "a" {
		t.Errorf("expected analysis with cheapest a, got %+v", got.Analysis)
	}
	if len(got.Recommendations) == 0 || got.Recommendations[0].Category != pricing.CategoryBestValue {
		t.Errorf("expected best-value recommendation first, got %+v", got.Recommendations)
	}
	if !got.MinCost.Equal(cmp.MinCost) || !got.MaxCost.Equal(cmp.MaxCost) {
		t.Errorf("expected min/max %s/%s, got %s/%s", cmp.MinCost, cmp.MaxCost, got.MinCost, got.MaxCost)
	}

	if err := storage.DeleteComparison(cmp.ID); err != nil {
		t.Fatalf("DeleteComparison failed: %v", err)
	}
	if _, err := storage.GetComparison(cmp.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestListComparisons(t *testing.T) {
	storage, cleanup := setupTestDB(t)
	defer cleanup()

	older := savedComparison(t, "older", entry("a", "1", "1"), entry("b", "2", "2"))
	older.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
	newer := savedComparison(t, "newer", entry("c", "1", "1"))

	for _, c := range []*models.SavedComparison{older, newer} {
		if err := storage.SaveComparison(c); err != nil {
			t.Fatalf("SaveComparison failed: %v", err)
		}
	}

	list, err := storage.ListComparisons(models.ComparisonFilter{})
	if err != nil {
		t.Fatalf("ListComparisons failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 comparisons, got %d", len(list))
	}
	if list[0].Name != "newer" {
		t.Errorf("expected newest first, got %q", list[0].Name)
	}
	if list[1].ModelCount != 2 {
		t.Errorf("expected model count 2, got %d", list[1].ModelCount)
	}

	byModel, err := storage.ListComparisons(models.ComparisonFilter{ModelID: "b"})
	if err != nil {
		t.Fatalf("ListComparisons by model failed: %v", err)
	}
	if len(byModel) != 1 || byModel[0].Name != "older" {
		t.Errorf("expected only older comparison for model b, got %d", len(byModel))
	}

	limited, err := storage.ListComparisons(models.ComparisonFilter{Limit: 1})
	if err != nil {
		t.Fatalf("ListComparisons with limit failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected 1 comparison with limit, got %d", len(limited))
	}

	cutoff := time.Now().UTC().Add(-24 * time.Hour).Format("2006-01-02")
	deleted, err := storage.DeleteComparisonsBefore(cutoff)
	if err != nil {
		t.Fatalf("DeleteComparisonsBefore failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted comparison, got %d", deleted)
	}
}

func TestSaveComparisonRequiresCalculations(t *testing.T) {
	storage, cleanup := setupTestDB(t)
	defer cleanup()

	err := storage.SaveComparison(&models.SavedComparison{Name: "empty"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestClosedStorage(t *testing.T) {
	storage, cleanup := setupTestDB(t)
	defer cleanup()

	if err := storage.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := storage.ListModels(models.ModelFilter{}); !errors.Is(err, ErrStorageClosed) {
		t.Errorf("expected ErrStorageClosed, got %v", err)
	}
	if err := storage.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
}
