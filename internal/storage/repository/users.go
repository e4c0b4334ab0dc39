package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/serenecare/internal/models"
)

// ErrUserNotFound возвращается, когда пользователь отсутствует в базе.
var ErrUserNotFound = errors.New("user not found")

const userColumns = `id, username, email, password_hash, full_name, role,
			      specialization, license_number, experience_years, bio, location,
			      rating, review_count, created_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	u := &models.User{}
	var specialization, licenseNumber, bio, location sql.NullString
	var experienceYears, reviewCount sql.NullInt64
	var rating sql.NullFloat64
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName,
		&u.Role, &specialization, &licenseNumber, &experienceYears, &bio, &location,
		&rating, &reviewCount, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Specialization = specialization.String
	u.LicenseNumber = licenseNumber.String
	u.ExperienceYears = int(experienceYears.Int64)
	u.Bio = bio.String
	u.Location = location.String
	u.Rating = rating.Float64
	u.ReviewCount = int(reviewCount.Int64)
	return u, nil
}

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его ID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (int64, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO users (username, email, password_hash, full_name, role,
			      specialization, license_number, experience_years, bio, location)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.FullName, user.Role,
		user.Specialization, user.LicenseNumber, user.ExperienceYears,
		user.Bio, user.Location).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE username = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по его email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его ID.
func (s *Storage) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateProfile обновляет отображаемые поля профиля и возвращает свежую запись.
func (s *Storage) UpdateProfile(ctx context.Context, userID int64, fullName, bio, location string) (*models.User, error) {
	const op = "storage.UpdateProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET full_name = $1, bio = $2, location = $3
			  WHERE id = $4`
	res, err := s.DB.ExecContext(ctx, query, fullName, bio, location, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return s.GetUser(ctx, userID)
}

// ListDoctors возвращает публичные профили врачей с пагинацией.
func (s *Storage) ListDoctors(ctx context.Context, limit, offset int) ([]*models.DoctorProfile, error) {
	const op = "storage.ListDoctors"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, full_name, specialization, license_number,
			      experience_years, bio, location, rating, review_count
			  FROM users
			  WHERE role = 'DOCTOR'
			  ORDER BY full_name
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.DoctorProfile
	for rows.Next() {
		var d models.DoctorProfile
		var specialization, licenseNumber, bio, location sql.NullString
		var experienceYears, reviewCount sql.NullInt64
		var rating sql.NullFloat64
		if err = rows.Scan(&d.ID, &d.FullName, &specialization, &licenseNumber,
			&experienceYears, &bio, &location, &rating, &reviewCount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		d.Specialization = specialization.String
		d.LicenseNumber = licenseNumber.String
		d.ExperienceYears = int(experienceYears.Int64)
		d.Bio = bio.String
		d.Location = location.String
		d.Rating = rating.Float64
		d.ReviewCount = int(reviewCount.Int64)
		result = append(result, &d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListSpecializations возвращает список различных специализаций врачей.
func (s *Storage) ListSpecializations(ctx context.Context) ([]string, error) {
	const op = "storage.ListSpecializations"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT DISTINCT specialization
			  FROM users
			  WHERE role = 'DOCTOR' AND specialization IS NOT NULL AND specialization <> ''
			  ORDER BY specialization`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []string
	for rows.Next() {
		var spec string
		if err = rows.Scan(&spec); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, spec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindPatientsWithoutLogToday находит пациентов, не заполнивших дневник за сегодня.
func (s *Storage) FindPatientsWithoutLogToday(ctx context.Context) ([]*models.ReminderInfo, error) {
	const op = "storage.FindPatientsWithoutLogToday"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.email, u.username, u.full_name
			  FROM users u
			  WHERE u.role = 'PATIENT'
			    AND NOT EXISTS (
			        SELECT 1 FROM daily_logs d
			        WHERE d.user_id = u.id AND d.created_at::DATE = CURRENT_DATE
			    );`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ReminderInfo
	for rows.Next() {
		var info models.ReminderInfo
		var fullName sql.NullString
		if err = rows.Scan(&info.Email, &info.Username, &fullName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		info.FullName = fullName.String
		result = append(result, &info)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
