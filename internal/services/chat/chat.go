// Package services содержит бизнес-логику чатов между пациентами и врачами.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/serenecare/internal/models"
	"github.com/magabrotheeeer/serenecare/internal/storage/repository"
)

// Ошибки бизнес-логики чатов.
var (
	// ErrChatNotFound чат не существует.
	ErrChatNotFound = errors.New("chat not found")
	// ErrForbidden пользователь не является участником чата.
	ErrForbidden = errors.New("user is not a participant of this chat")
	// ErrNotDoctor собеседник не является врачом.
	ErrNotDoctor = errors.New("selected user is not a doctor")
	// ErrNotPatient начать чат может только пациент.
	ErrNotPatient = errors.New("only a patient can start a chat")
)

// ChatRepository определяет методы для работы с чатами и сообщениями в хранилище.
type ChatRepository interface {
	FindChat(ctx context.Context, patientID, doctorID int64) (*models.Chat, error)
	GetChat(ctx context.Context, chatID int64) (*models.Chat, error)
	CreateChat(ctx context.Context, chat models.Chat) (int64, error)
	ListChats(ctx context.Context, userID int64, role models.Role) ([]*models.ChatSummary, error)
	CreateMessage(ctx context.Context, msg models.Message) (int64, error)
	ListMessages(ctx context.Context, chatID int64) ([]*models.Message, error)
	RemoveChat(ctx context.Context, chatID int64) (int64, error)
	GetUser(ctx context.Context, userID int64) (*models.User, error)
}

// ChatService реализует бизнес-логику чатов.
type ChatService struct {
	repo ChatRepository
	log  *slog.Logger
}

// NewChatService создает новый экземпляр ChatService.
func NewChatService(repo ChatRepository, log *slog.Logger) *ChatService {
	return &ChatService{repo: repo, log: log}
}

// Start открывает чат пациента с врачом. Повторный вызов для той же пары
// возвращает уже существующий чат.
func (s *ChatService) Start(ctx context.Context, patientID int64, patientRole models.Role, doctorID int64) (*models.Chat, error) {
	if patientRole != models.RolePatient {
		return nil, ErrNotPatient
	}

	doctor, err := s.repo.GetUser(ctx, doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotDoctor
		}
		return nil, err
	}
	if doctor.Role != models.RoleDoctor {
		return nil, ErrNotDoctor
	}

	existing, err := s.repo.FindChat(ctx, patientID, doctorID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrChatNotFound) {
		return nil, err
	}

	chat := models.Chat{
		PatientID: patientID,
		DoctorID:  doctorID,
		Title:     fmt.Sprintf("Chat with Dr. %s", doctor.FullName),
	}
	id, err := s.repo.CreateChat(ctx, chat)
	if err != nil {
		return nil, err
	}
	chat.ID = id
	s.log.Info("started new chat",
		slog.Int64("chat_id", id),
		slog.Int64("patient_id", patientID),
		slog.Int64("doctor_id", doctorID))
	return &chat, nil
}

// List возвращает чаты пользователя в его роли, от свежих к старым.
func (s *ChatService) List(ctx context.Context, userID int64, role models.Role) ([]*models.ChatSummary, error) {
	return s.repo.ListChats(ctx, userID, role)
}

// Messages возвращает историю сообщений чата. Доступна только участникам.
func (s *ChatService) Messages(ctx context.Context, chatID, userID int64) ([]*models.Message, error) {
	if _, err := s.authorize(ctx, chatID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListMessages(ctx, chatID)
}

// Send отправляет сообщение в чат от имени участника.
func (s *ChatService) Send(ctx context.Context, chatID, senderID int64, senderRole models.Role, content string) (int64, error) {
	if _, err := s.authorize(ctx, chatID, senderID); err != nil {
		return 0, err
	}

	msg := models.Message{
		ChatID:     chatID,
		SenderID:   senderID,
		SenderRole: senderRole,
		Content:    content,
	}
	id, err := s.repo.CreateMessage(ctx, msg)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Remove удаляет чат вместе с историей. Доступно только участникам.
func (s *ChatService) Remove(ctx context.Context, chatID, userID int64) error {
	if _, err := s.authorize(ctx, chatID, userID); err != nil {
		return err
	}

	count, err := s.repo.RemoveChat(ctx, chatID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrChatNotFound
	}
	s.log.Info("removed chat", slog.Int64("chat_id", chatID))
	return nil
}

func (s *ChatService) authorize(ctx context.Context, chatID, userID int64) (*models.Chat, error) {
	chat, err := s.repo.GetChat(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	if chat.PatientID != userID && chat.DoctorID != userID {
		return nil, ErrForbidden
	}
	return chat, nil
}
