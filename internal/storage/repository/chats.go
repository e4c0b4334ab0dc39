package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/serenecare/internal/models"
)

// ErrChatNotFound возвращается, когда чат отсутствует в базе.
var ErrChatNotFound = errors.New("chat not found")

// FindChat возвращает чат между пациентом и врачом, если он уже существует.
func (s *Storage) FindChat(ctx context.Context, patientID, doctorID int64) (*models.Chat, error) {
	const op = "storage.FindChat"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, patient_id, doctor_id, title, updated_at
			  FROM chats
			  WHERE patient_id = $1 AND doctor_id = $2`
	c := &models.Chat{}
	err := s.DB.QueryRowContext(ctx, query, patientID, doctorID).
		Scan(&c.ID, &c.PatientID, &c.DoctorID, &c.Title, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrChatNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// GetChat возвращает чат по ID.
func (s *Storage) GetChat(ctx context.Context, chatID int64) (*models.Chat, error) {
	const op = "storage.GetChat"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, patient_id, doctor_id, title, updated_at
			  FROM chats
			  WHERE id = $1`
	c := &models.Chat{}
	err := s.DB.QueryRowContext(ctx, query, chatID).
		Scan(&c.ID, &c.PatientID, &c.DoctorID, &c.Title, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrChatNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// CreateChat создает чат и возвращает его ID.
func (s *Storage) CreateChat(ctx context.Context, chat models.Chat) (int64, error) {
	const op = "storage.CreateChat"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO chats (patient_id, doctor_id, title)
			  VALUES ($1, $2, $3)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		chat.PatientID, chat.DoctorID, chat.Title).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListChats возвращает чаты пользователя в заданной роли, от свежих к старым,
// с именами участников и последней репликой.
func (s *Storage) ListChats(ctx context.Context, userID int64, role models.Role) ([]*models.ChatSummary, error) {
	const op = "storage.ListChats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	column := "patient_id"
	if role == models.RoleDoctor {
		column = "doctor_id"
	}
	query := `SELECT c.id, c.patient_id, c.doctor_id, c.title, c.updated_at,
			      p.full_name, d.full_name, d.specialization,
			      COALESCE((SELECT m.content FROM messages m
			                WHERE m.chat_id = c.id
			                ORDER BY m.created_at DESC LIMIT 1), '')
			  FROM chats c
			  JOIN users p ON p.id = c.patient_id
			  JOIN users d ON d.id = c.doctor_id
			  WHERE c.` + column + ` = $1
			  ORDER BY c.updated_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ChatSummary
	for rows.Next() {
		var c models.ChatSummary
		var specialization sql.NullString
		if err = rows.Scan(&c.ID, &c.PatientID, &c.DoctorID, &c.Title, &c.UpdatedAt,
			&c.PatientName, &c.DoctorName, &specialization, &c.LastMessage); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		c.DoctorSpecialization = specialization.String
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateMessage сохраняет сообщение и поднимает чат в списке.
func (s *Storage) CreateMessage(ctx context.Context, msg models.Message) (int64, error) {
	const op = "storage.CreateMessage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO messages (chat_id, sender_id, sender_role, content)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		msg.ChatID, msg.SenderID, msg.SenderRole, msg.Content).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	touch := `UPDATE chats SET updated_at = NOW() WHERE id = $1`
	if _, err := s.DB.ExecContext(ctx, touch, msg.ChatID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListMessages возвращает сообщения чата от старых к новым с именами отправителей.
func (s *Storage) ListMessages(ctx context.Context, chatID int64) ([]*models.Message, error) {
	const op = "storage.ListMessages"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT m.id, m.chat_id, m.sender_id, m.sender_role, u.full_name,
			      m.content, m.created_at
			  FROM messages m
			  JOIN users u ON u.id = m.sender_id
			  WHERE m.chat_id = $1
			  ORDER BY m.created_at ASC`
	rows, err := s.DB.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Message
	for rows.Next() {
		var m models.Message
		if err = rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.SenderRole,
			&m.SenderName, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveChat удаляет чат вместе с сообщениями и возвращает
// количество удалённых чатов.
func (s *Storage) RemoveChat(ctx context.Context, chatID int64) (int64, error) {
	const op = "storage.RemoveChat"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM messages WHERE chat_id = $1`, chatID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.DB.ExecContext(ctx, `DELETE FROM chats WHERE id = $1`, chatID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
