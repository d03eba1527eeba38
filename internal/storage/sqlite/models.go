package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mandalnilabja/tokencost/internal/storage/models"
)

const modelColumns = `id, name, provider, input_price, output_price, context_window,
	currency, features, is_multimodal, is_vision, is_audio, created_at, updated_at`

// CreateModel stores a new custom model.
func (s *Storage) CreateModel(model *models.CustomModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	if model.Name == "" || model.Provider == "" {
		return ErrInvalidInput
	}

	// Generate ID if not provided
	if model.ID == "" {
		model.ID = generateID("custom")
	}
	if model.Currency == "" {
		model.Currency = "USD"
	}

	features, err := encodeStrings(model.Features)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := time.Now().UTC()
	model.CreatedAt = now
	model.UpdatedAt = now

	_, err = s.db.Exec(`
		INSERT INTO models (`+modelColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, model.ID, model.Name, model.Provider,
		model.InputPricePerMillion.String(), model.OutputPricePerMillion.String(),
		model.ContextWindow, model.Currency, features,
		boolToInt(model.IsMultiModal), boolToInt(model.IsVisionEnabled), boolToInt(model.IsAudioEnabled),
		model.CreatedAt, model.UpdatedAt)

	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	return err
}

// GetModel retrieves a custom model by ID.
func (s *Storage) GetModel(id string) (*models.CustomModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStorageClosed
	}

	row := s.db.QueryRow(`SELECT `+modelColumns+` FROM models WHERE id = ?`, id)
	model, err := scanModel(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model, nil
}

// ListModels retrieves custom models ordered by provider and name.
func (s *Storage) ListModels(filter models.ModelFilter) ([]*models.CustomModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStorageClosed
	}

	query := `SELECT ` + modelColumns + ` FROM models WHERE 1=1`
	var args []interface{}

	if filter.Provider != "" {
		query += " AND provider = ?"
		args = append(args, filter.Provider)
	}
	query += " ORDER BY provider ASC, name ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.CustomModel
	for rows.Next() {
		model, err := scanModel(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, model)
	}

	return list, rows.Err()
}

// UpdateModel updates an existing custom model.
func (s *Storage) UpdateModel(model *models.CustomModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	if model.ID == "" || model.Name == "" || model.Provider == "" {
		return ErrInvalidInput
	}
	if model.Currency == "" {
		model.Currency = "USD"
	}

	features, err := encodeStrings(model.Features)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	model.UpdatedAt = time.Now().UTC()

	result, err := s.db.Exec(`
		UPDATE models SET name = ?, provider = ?, input_price = ?, output_price = ?,
			context_window = ?, currency = ?, features = ?, is_multimodal = ?,
			is_vision = ?, is_audio = ?, updated_at = ?
		WHERE id = ?
	`, model.Name, model.Provider,
		model.InputPricePerMillion.String(), model.OutputPricePerMillion.String(),
		model.ContextWindow, model.Currency, features,
		boolToInt(model.IsMultiModal), boolToInt(model.IsVisionEnabled), boolToInt(model.IsAudioEnabled),
		model.UpdatedAt, model.ID)
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

// DeleteModel removes a custom model by ID.
func (s *Storage) DeleteModel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	result, err := s.db.Exec("DELETE FROM models WHERE id = ?", id)
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

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanModel(row rowScanner) (*models.CustomModel, error) {
	var m models.CustomModel
	var features string
	var multimodal, vision, audio int

	err := row.Scan(&m.ID, &m.Name, &m.Provider,
		&m.InputPricePerMillion, &m.OutputPricePerMillion,
		&m.ContextWindow, &m.Currency, &features,
		&multimodal, &vision, &audio, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}

	m.Features, err = decodeStrings(features)
	if err != nil {
		return nil, fmt.Errorf("decode features for %s: %w", m.ID, err)
	}
	m.IsMultiModal = multimodal == 1
	m.IsVisionEnabled = vision == 1
	m.IsAudioEnabled = audio == 1

	return &m, nil
}
