package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/serenecare/internal/models"
)

// ErrLogNotFound возвращается, когда запись дневника отсутствует
// или принадлежит другому пользователю.
var ErrLogNotFound = errors.New("daily log not found")

const dailyLogColumns = `id, user_id, pain_level, sleep_quality, mood, symptoms,
			      triggers, diet_meals, physical_activity, medications,
			      additional_notes, created_at, updated_at`

func scanDailyLog(row interface{ Scan(dest ...any) error }) (*models.DailyLog, error) {
	d := &models.DailyLog{}
	var symptoms, triggers, dietMeals, physicalActivity, medications, additionalNotes sql.NullString
	if err := row.Scan(&d.ID, &d.UserID, &d.PainLevel, &d.SleepQuality, &d.Mood,
		&symptoms, &triggers, &dietMeals, &physicalActivity, &medications,
		&additionalNotes, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	d.Symptoms = symptoms.String
	d.Triggers = triggers.String
	d.DietMeals = dietMeals.String
	d.PhysicalActivity = physicalActivity.String
	d.Medications = medications.String
	d.AdditionalNotes = additionalNotes.String
	return d, nil
}

// CreateDailyLog добавляет новую запись дневника и возвращает её ID.
func (s *Storage) CreateDailyLog(ctx context.Context, entry models.DailyLog) (int64, error) {
	const op = "storage.CreateDailyLog"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO daily_logs (user_id, pain_level, sleep_quality, mood, symptoms,
			      triggers, diet_meals, physical_activity, medications, additional_notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		entry.UserID, entry.PainLevel, entry.SleepQuality, entry.Mood, entry.Symptoms,
		entry.Triggers, entry.DietMeals, entry.PhysicalActivity, entry.Medications,
		entry.AdditionalNotes).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadDailyLog возвращает запись дневника по ID в пределах владельца.
func (s *Storage) ReadDailyLog(ctx context.Context, id, userID int64) (*models.DailyLog, error) {
	const op = "storage.ReadDailyLog"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + dailyLogColumns + `
			  FROM daily_logs
			  WHERE id = $1 AND user_id = $2`
	d, err := scanDailyLog(s.DB.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrLogNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}

// ListDailyLogs возвращает записи пользователя от новых к старым с пагинацией.
func (s *Storage) ListDailyLogs(ctx context.Context, userID int64, limit, offset int) ([]*models.DailyLog, error) {
	const op = "storage.ListDailyLogs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + dailyLogColumns + `
			  FROM daily_logs
			  WHERE user_id = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.DailyLog
	for rows.Next() {
		d, err := scanDailyLog(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateDailyLog частично обновляет запись в пределах владельца и возвращает
// количество обновленных строк. NULL-аргумент оставляет поле без изменений.
func (s *Storage) UpdateDailyLog(ctx context.Context, id, userID int64, patch models.DailyLogPatch) (int64, error) {
	const op = "storage.UpdateDailyLog"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE daily_logs
			  SET pain_level = COALESCE($1, pain_level),
			      sleep_quality = COALESCE($2, sleep_quality),
			      mood = COALESCE($3, mood),
			      symptoms = COALESCE($4, symptoms),
			      triggers = COALESCE($5, triggers),
			      diet_meals = COALESCE($6, diet_meals),
			      physical_activity = COALESCE($7, physical_activity),
			      medications = COALESCE($8, medications),
			      additional_notes = COALESCE($9, additional_notes),
			      updated_at = NOW()
			  WHERE id = $10 AND user_id = $11`
	res, err := s.DB.ExecContext(ctx, query,
		patch.PainLevel, patch.SleepQuality, patch.Mood, patch.Symptoms,
		patch.Triggers, patch.DietMeals, patch.PhysicalActivity,
		patch.Medications, patch.AdditionalNotes, id, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// RemoveDailyLog удаляет запись в пределах владельца и возвращает
// количество удалённых строк.
func (s *Storage) RemoveDailyLog(ctx context.Context, id, userID int64) (int64, error) {
	const op = "storage.RemoveDailyLog"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM daily_logs
			  WHERE id = $1 AND user_id = $2`
	res, err := s.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
