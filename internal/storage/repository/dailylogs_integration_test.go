package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/serenecare/internal/models"
)

func TestStorage_CreateDailyLog(t *testing.T) {
	tests := []struct {
		name  string
		entry models.DailyLog
	}{
		{
			name: "successful create daily log",
			entry: models.DailyLog{
				PainLevel:        3,
				SleepQuality:     7,
				Mood:             6,
				Symptoms:         "mild headache",
				Triggers:         "stress",
				DietMeals:        "breakfast, lunch",
				PhysicalActivity: "walk 30 min",
				Medications:      "ibuprofen",
				AdditionalNotes:  "felt better in the evening",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			userID := factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
			tt.entry.UserID = userID

			gotID, err := storage.CreateDailyLog(context.Background(), tt.entry)
			require.NoError(t, err)
			assert.Greater(t, gotID, int64(0))

			verification := NewTestVerification(storage)
			verification.VerifyDailyLogExists(t, gotID)
		})
	}
}

func TestStorage_ReadDailyLog(t *testing.T) {
	tests := []struct {
		name    string
		wantErr error
		setup   func(t *testing.T, factory *TestDataFactory) (logID, userID int64)
	}{
		{
			name:    "successful read own log",
			wantErr: nil,
			setup: func(t *testing.T, factory *TestDataFactory) (int64, int64) {
				userID := factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
				logID := factory.CreateDailyLog(t, userID, 4, 8, 7, "headache")
				return logID, userID
			},
		},
		{
			name:    "read log of another user",
			wantErr: ErrLogNotFound,
			setup: func(t *testing.T, factory *TestDataFactory) (int64, int64) {
				ownerID := factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
				otherID := factory.CreateUser(t, "patient2", "patient2@example.com", "hashedpassword", "Patient Two", "PATIENT")
				logID := factory.CreateDailyLog(t, ownerID, 4, 8, 7, "headache")
				return logID, otherID
			},
		},
		{
			name:    "read non-existing log",
			wantErr: ErrLogNotFound,
			setup: func(t *testing.T, factory *TestDataFactory) (int64, int64) {
				userID := factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
				return 9999, userID
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			logID, userID := tt.setup(t, factory)

			got, err := storage.ReadDailyLog(context.Background(), logID, userID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, logID, got.ID)
				assert.Equal(t, userID, got.UserID)
				assert.Equal(t, 4, got.PainLevel)
				assert.Equal(t, "headache", got.Symptoms)
			}
		})
	}
}

func TestStorage_ListDailyLogs(t *testing.T) {
	type args struct {
		limit  int
		offset int
	}

	tests := []struct {
		name      string
		args      args
		wantCount int
		setup     func(t *testing.T, factory *TestDataFactory) int64
	}{
		{
			name:      "lists only own logs",
			args:      args{limit: 10, offset: 0},
			wantCount: 2,
			setup: func(t *testing.T, factory *TestDataFactory) int64 {
				userID := factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
				otherID := factory.CreateUser(t, "patient2", "patient2@example.com", "hashedpassword", "Patient Two", "PATIENT")
				factory.CreateDailyLog(t, userID, 4, 8, 7, "headache")
				factory.CreateDailyLog(t, userID, 5, 6, 5, "fatigue")
				factory.CreateDailyLog(t, otherID, 2, 9, 8, "")
				return userID
			},
		},
		{
			name:      "pagination",
			args:      args{limit: 2, offset: 2},
			wantCount: 1,
			setup: func(t *testing.T, factory *TestDataFactory) int64 {
				userID := factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
				factory.CreateDailyLog(t, userID, 4, 8, 7, "headache")
				factory.CreateDailyLog(t, userID, 5, 6, 5, "fatigue")
				factory.CreateDailyLog(t, userID, 3, 7, 6, "")
				return userID
			},
		},
		{
			name:      "no logs",
			args:      args{limit: 10, offset: 0},
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

			got, err := storage.ListDailyLogs(context.Background(), userID, tt.args.limit, tt.args.offset)

			require.NoError(t, err)
			assert.Len(t, got, tt.wantCount)
		})
	}
}

func TestStorage_ListDailyLogsOrder(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userID := factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
	oldID := factory.CreateDailyLogOn(t, userID, time.Now().AddDate(0, 0, -2))
	freshID := factory.CreateDailyLogOn(t, userID, time.Now().AddDate(0, 0, -1))

	got, err := storage.ListDailyLogs(context.Background(), userID, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Свежие записи идут первыми
	assert.Equal(t, freshID, got[0].ID)
	assert.Equal(t, oldID, got[1].ID)
}

func TestStorage_UpdateDailyLog(t *testing.T) {
	intPtr := func(v int) *int { return &v }
	strPtr := func(v string) *string { return &v }

	tests := []struct {
		name             string
		patch            models.DailyLogPatch
		wantRowsAffected int64
		setup            func(t *testing.T, factory *TestDataFactory) (logID, userID int64)
	}{
		{
			name: "partial update leaves other fields intact",
			patch: models.DailyLogPatch{
				PainLevel: intPtr(9),
				Symptoms:  strPtr("migraine"),
			},
			wantRowsAffected: 1,
			setup: func(t *testing.T, factory *TestDataFactory) (int64, int64) {
				userID := factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
				logID := factory.CreateDailyLog(t, userID, 4, 8, 7, "headache")
				return logID, userID
			},
		},
		{
			name: "update log of another user changes nothing",
			patch: models.DailyLogPatch{
				PainLevel: intPtr(9),
			},
			wantRowsAffected: 0,
			setup: func(t *testing.T, factory *TestDataFactory) (int64, int64) {
				ownerID := factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
				otherID := factory.CreateUser(t, "patient2", "patient2@example.com", "hashedpassword", "Patient Two", "PATIENT")
				logID := factory.CreateDailyLog(t, ownerID, 4, 8, 7, "headache")
				return logID, otherID
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			logID, userID := tt.setup(t, factory)

			gotRowsAffected, err := storage.UpdateDailyLog(context.Background(), logID, userID, tt.patch)

			require.NoError(t, err)
			assert.Equal(t, tt.wantRowsAffected, gotRowsAffected)

			if tt.wantRowsAffected == 1 {
				var painLevel, sleepQuality int
				var symptoms string
				err = storage.DB.QueryRow("SELECT pain_level, sleep_quality, symptoms FROM daily_logs WHERE id = $1", logID).
					Scan(&painLevel, &sleepQuality, &symptoms)
				require.NoError(t, err)
				assert.Equal(t, 9, painLevel)
				assert.Equal(t, 8, sleepQuality)
				assert.Equal(t, "migraine", symptoms)
			}
		})
	}
}

func TestStorage_RemoveDailyLog(t *testing.T) {
	tests := []struct {
		name             string
		wantRowsAffected int64
		setup            func(t *testing.T, factory *TestDataFactory) (logID, userID int64)
	}{
		{
			name:             "successful remove own log",
			wantRowsAffected: 1,
			setup: func(t *testing.T, factory *TestDataFactory) (int64, int64) {
				userID := factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
				logID := factory.CreateDailyLog(t, userID, 4, 8, 7, "headache")
				return logID, userID
			},
		},
		{
			name:             "remove log of another user changes nothing",
			wantRowsAffected: 0,
			setup: func(t *testing.T, factory *TestDataFactory) (int64, int64) {
				ownerID := factory.CreateUser(t, "patient1", "patient1@example.com", "hashedpassword", "Patient One", "PATIENT")
				otherID := factory.CreateUser(t, "patient2", "patient2@example.com", "hashedpassword", "Patient Two", "PATIENT")
				logID := factory.CreateDailyLog(t, ownerID, 4, 8, 7, "headache")
				return logID, otherID
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			logID, userID := tt.setup(t, factory)

			gotRowsAffected, err := storage.RemoveDailyLog(context.Background(), logID, userID)

			require.NoError(t, err)
			assert.Equal(t, tt.wantRowsAffected, gotRowsAffected)

			if tt.wantRowsAffected == 1 {
				verification := NewTestVerification(storage)
				verification.VerifyDailyLogDeleted(t, logID)
			}
		})
	}
}
