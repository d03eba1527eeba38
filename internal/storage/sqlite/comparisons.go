package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mandalnilabja/tokencost/internal/storage/models"
)

// comparisonPayload is the JSON body stored alongside the indexed columns.
type comparisonPayload struct {
	Calculations    json.RawMessage `json:"calculations"`
	Analysis        json.RawMessage `json:"analysis,omitempty"`
	Recommendations json.RawMessage `json:"recommendations,omitempty"`
}

// SaveComparison stores a comparison in history.
func (s *Storage) SaveComparison(cmp *models.SavedComparison) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	if cmp.Name == "" || len(cmp.Calculations) == 0 {
		return ErrInvalidInput
	}

	if cmp.ID == "" {
		cmp.ID = generateID("cmp")
	}
	if cmp.CreatedAt.IsZero() {
		cmp.CreatedAt = time.Now().UTC()
	}

	modelIDs, err := encodeStrings(cmp.ModelIDs)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	payload, err := encodePayload(cmp)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO comparisons (id, name, model_ids, model_count, min_cost, max_cost, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, cmp.ID, cmp.Name, modelIDs, len(cmp.ModelIDs),
		cmp.MinCost.String(), cmp.MaxCost.String(), payload, cmp.CreatedAt)

	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	return err
}

// GetComparison retrieves a saved comparison with its full payload.
func (s *Storage) GetComparison(id string) (*models.SavedComparison, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStorageClosed
	}

	var cmp models.SavedComparison
	var modelIDs, payload string
	var modelCount int

	err := s.db.QueryRow(`
		SELECT id, name, model_ids, model_count, min_cost, max_cost, payload, created_at
		FROM comparisons WHERE id = ?
	`, id).Scan(&cmp.ID, &cmp.Name, &modelIDs, &modelCount,
		&cmp.MinCost, &cmp.MaxCost, &payload, &cmp.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if cmp.ModelIDs, err = decodeStrings(modelIDs); err != nil {
		return nil, fmt.Errorf("decode model ids for %s: %w", id, err)
	}
	if err := decodePayload(payload, &cmp); err != nil {
		return nil, fmt.Errorf("decode payload for %s: %w", id, err)
	}

	return &cmp, nil
}

// ListComparisons retrieves comparison summaries, newest first.
func (s *Storage) ListComparisons(filter models.ComparisonFilter) ([]*models.ComparisonSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStorageClosed
	}

	query := `SELECT id, name, model_ids, model_count, min_cost, max_cost, created_at
		FROM comparisons WHERE 1=1`

	var args []interface{}

	if filter.ModelID != "" {
		query += " AND EXISTS (SELECT 1 FROM json_each(comparisons.model_ids) WHERE json_each.value = ?)"
		args = append(args, filter.ModelID)
	}
	if filter.StartDate != nil {
		query += " AND created_at >= ?"
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += " AND created_at <= ?"
		args = append(args, *filter.EndDate)
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.ComparisonSummary
	for rows.Next() {
		var sum models.ComparisonSummary
		var modelIDs string

		err := rows.Scan(&sum.ID, &sum.Name, &modelIDs, &sum.ModelCount,
			&sum.MinCost, &sum.MaxCost, &sum.CreatedAt)
		if err != nil {
			return nil, err
		}
		if sum.ModelIDs, err = decodeStrings(modelIDs); err != nil {
			return nil, fmt.Errorf("decode model ids for %s: %w", sum.ID, err)
		}
		list = append(list, &sum)
	}

	return list, rows.Err()
}

// DeleteComparison removes a saved comparison by ID.
func (s *Storage) DeleteComparison(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	result, err := s.db.Exec("DELETE FROM comparisons WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteComparisonsBefore removes comparisons saved before the given date (YYYY-MM-DD).
func (s *Storage) DeleteComparisonsBefore(date string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrStorageClosed
	}

	result, err := s.db.Exec("DELETE FROM comparisons WHERE DATE(created_at) < ?", date)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func encodePayload(cmp *models.SavedComparison) (string, error) {
	var p comparisonPayload
	var err error

	if p.Calculations, err = json.Marshal(cmp.Calculations); err != nil {
		return "", err
	}
	if cmp.Analysis != nil {
		if p.Analysis, err = json.Marshal(cmp.Analysis); err != nil {
			return "", err
		}
	}
	if len(cmp.Recommendations) > 0 {
		if p.Recommendations, err = json.Marshal(cmp.Recommendations); err != nil {
			return "", err
		}
	}

	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodePayload(data string, cmp *models.SavedComparison) error {
	var p comparisonPayload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return err
	}

	if err := json.Unmarshal(p.Calculations, &cmp.Calculations); err != nil {
		return err
	}
	if len(p.Analysis) > 0 {
		if err := json.Unmarshal(p.Analysis, &cmp.Analysis); err != nil {
			return err
		}
	}
	if len(p.Recommendations) > 0 {
		if err := json.Unmarshal(p.Recommendations, &cmp.Recommendations); err != nil {
			return err
		}
	}
	return nil
}
