package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/serenecare/internal/models"
)

func TestStorage_FindChat(t *testing.T) {
	tests := []struct {
		name    string
		wantErr error
		setup   func(t *testing.T, factory *TestDataFactory) (patientID, doctorID int64)
	}{
		{
			name:    "successful find existing chat",
			wantErr: nil,
			setup: func(t *testing.T, factory *TestDataFactory) (int64, int64) {
				patientID := factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
				doctorID := factory.CreateDoctor(t, "drhouse", "house@example.com", "Gregory House", "Diagnostics", "LIC-001", 20)
				factory.CreateChat(t, patientID, doctorID, "Chat with Dr. Gregory House")
				return patientID, doctorID
			},
		},
		{
			name:    "find non-existing chat",
			wantErr: ErrChatNotFound,
			setup: func(t *testing.T, factory *TestDataFactory) (int64, int64) {
				patientID := factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
				doctorID := factory.CreateDoctor(t, "drhouse", "house@example.com", "Gregory House", "Diagnostics", "LIC-001", 20)
				return patientID, doctorID
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			patientID, doctorID := tt.setup(t, factory)

			got, err := storage.FindChat(context.Background(), patientID, doctorID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, patientID, got.PatientID)
				assert.Equal(t, doctorID, got.DoctorID)
				assert.Equal(t, "Chat with Dr. Gregory House", got.Title)
			}
		})
	}
}

func TestStorage_CreateChat(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	patientID := factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
	doctorID := factory.CreateDoctor(t, "drhouse", "house@example.com", "Gregory House", "Diagnostics", "LIC-001", 20)

	gotID, err := storage.CreateChat(context.Background(), models.Chat{
		PatientID: patientID,
		DoctorID:  doctorID,
		Title:     "Chat with Dr. Gregory House",
	})
	require.NoError(t, err)
	assert.Greater(t, gotID, int64(0))

	// Пара пациент-врач уникальна
	_, err = storage.CreateChat(context.Background(), models.Chat{
		PatientID: patientID,
		DoctorID:  doctorID,
		Title:     "Duplicate",
	})
	require.Error(t, err)
}

func TestStorage_GetChat(t *testing.T) {
	tests := []struct {
		name    string
		wantErr error
		setup   func(t *testing.T, factory *TestDataFactory) int64
	}{
		{
			name:    "successful get chat by ID",
			wantErr: nil,
			setup: func(t *testing.T, factory *TestDataFactory) int64 {
				patientID := factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
				doctorID := factory.CreateDoctor(t, "drhouse", "house@example.com", "Gregory House", "Diagnostics", "LIC-001", 20)
				return factory.CreateChat(t, patientID, doctorID, "Chat with Dr. Gregory House")
			},
		},
		{
			name:    "get non-existing chat",
			wantErr: ErrChatNotFound,
			setup:   func(_ *testing.T, _ *TestDataFactory) int64 { return 9999 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			chatID := tt.setup(t, factory)

			got, err := storage.GetChat(context.Background(), chatID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, chatID, got.ID)
			}
		})
	}
}

func TestStorage_ListChats(t *testing.T) {
	type args struct {
		role models.Role
	}

	tests := []struct {
		name      string
		args      args
		wantCount int
		setup     func(t *testing.T, factory *TestDataFactory) int64
	}{
		{
			name:      "patient sees own chats only",
			args:      args{role: models.RolePatient},
			wantCount: 1,
			setup: func(t *testing.T, factory *TestDataFactory) int64 {
				patientID := factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
				otherID := factory.CreateUser(t, "patient2", "patient2@example.com", "hashedpassword", "Patient Two", "PATIENT")
				doctorID := factory.CreateDoctor(t, "drhouse", "house@example.com", "Gregory House", "Diagnostics", "LIC-001", 20)
				factory.CreateChat(t, patientID, doctorID, "Chat with Dr. Gregory House")
				factory.CreateChat(t, otherID, doctorID, "Chat with Dr. Gregory House")
				return patientID
			},
		},
		{
			name:      "doctor sees chats with all patients",
			args:      args{role: models.RoleDoctor},
			wantCount: 2,
			setup: func(t *testing.T, factory *TestDataFactory) int64 {
				patient1ID := factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
				patient2ID := factory.CreateUser(t, "patient2", "patient2@example.com", "hashedpassword", "Patient Two", "PATIENT")
				doctorID := factory.CreateDoctor(t, "drhouse", "house@example.com", "Gregory House", "Diagnostics", "LIC-001", 20)
				factory.CreateChat(t, patient1ID, doctorID, "Chat with Dr. Gregory House")
				factory.CreateChat(t, patient2ID, doctorID, "Chat with Dr. Gregory House")
				return doctorID
			},
		},
		{
			name:      "no chats",
			args:      args{role: models.RolePatient},
			wantCount: 0,
			setup: func(t *testing.T, factory *TestDataFactory) int64 {
				return factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			userID := tt.setup(t, factory)

			got, err := storage.ListChats(context.Background(), userID, tt.args.role)

			require.NoError(t, err)
			assert.Len(t, got, tt.wantCount)
		})
	}
}

func TestStorage_ListChatsSummary(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	patientID := factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
	doctorID := factory.CreateDoctor(t, "drhouse", "house@example.com", "Gregory House", "Diagnostics", "LIC-001", 20)
	chatID := factory.CreateChat(t, patientID, doctorID, "Chat with Dr. Gregory House")
	factory.CreateMessage(t, chatID, patientID, "PATIENT", "Hello, doctor")
	factory.CreateMessage(t, chatID, doctorID, "DOCTOR", "Hello, how do you feel?")

	got, err := storage.ListChats(context.Background(), patientID, models.RolePatient)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "Patient One", got[0].PatientName)
	assert.Equal(t, "Gregory House", got[0].DoctorName)
	assert.Equal(t, "Diagnostics", got[0].DoctorSpecialization)
	assert.Equal(t, "Hello, how do you feel?", got[0].LastMessage)
}

func TestStorage_CreateMessage(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	patientID := factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
	doctorID := factory.CreateDoctor(t, "drhouse", "house@example.com", "Gregory House", "Diagnostics", "LIC-001", 20)
	chatID := factory.CreateChat(t, patientID, doctorID, "Chat with Dr. Gregory House")

	var before, after int
	err := storage.DB.QueryRow("SELECT COUNT(*) FROM messages WHERE chat_id = $1", chatID).Scan(&before)
	require.NoError(t, err)

	gotID, err := storage.CreateMessage(context.Background(), models.Message{
		ChatID:     chatID,
		SenderID:   patientID,
		SenderRole: models.RolePatient,
		Content:    "Hello, doctor",
	})
	require.NoError(t, err)
	assert.Greater(t, gotID, int64(0))

	err = storage.DB.QueryRow("SELECT COUNT(*) FROM messages WHERE chat_id = $1", chatID).Scan(&after)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)
}

func TestStorage_ListMessages(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	patientID := factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
	doctorID := factory.CreateDoctor(t, "drhouse", "house@example.com", "Gregory House", "Diagnostics", "LIC-001", 20)
	chatID := factory.CreateChat(t, patientID, doctorID, "Chat with Dr. Gregory House")
	factory.CreateMessage(t, chatID, patientID, "PATIENT", "Hello, doctor")
	factory.CreateMessage(t, chatID, doctorID, "DOCTOR", "Hello, how do you feel?")

	got, err := storage.ListMessages(context.Background(), chatID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Сообщения идут от старых к новым
	assert.Equal(t, "Hello, doctor", got[0].Content)
	assert.Equal(t, "Patient One", got[0].SenderName)
	assert.Equal(t, models.RolePatient, got[0].SenderRole)
	assert.Equal(t, "Hello, how do you feel?", got[1].Content)
	assert.Equal(t, "Gregory House", got[1].SenderName)
}

func TestStorage_RemoveChat(t *testing.T) {
	tests := []struct {
		name             string
		wantRowsAffected int64
		setup            func(t *testing.T, factory *TestDataFactory) int64
	}{
		{
			name:             "successful remove chat with messages",
			wantRowsAffected: 1,
			setup: func(t *testing.T, factory *TestDataFactory) int64 {
				patientID := factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
				doctorID := factory.CreateDoctor(t, "drhouse", "house@example.com", "Gregory House", "Diagnostics", "LIC-001", 20)
				chatID := factory.CreateChat(t, patientID, doctorID, "Chat with Dr. Gregory House")
				factory.CreateMessage(t, chatID, patientID, "PATIENT", "Hello, doctor")
				return chatID
			},
		},
		{
			name:             "remove non-existing chat",
			wantRowsAffected: 0,
			setup:            func(_ *testing.T, _ *TestDataFactory) int64 { return 9999 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			chatID := tt.setup(t, factory)

			gotRowsAffected, err := storage.RemoveChat(context.Background(), chatID)

			require.NoError(t, err)
			assert.Equal(t, tt.wantRowsAffected, gotRowsAffected)

			if tt.wantRowsAffected == 1 {
				verification := NewTestVerification(storage)
				verification.VerifyChatDeleted(t, chatID)
			}
		})
	}
}
