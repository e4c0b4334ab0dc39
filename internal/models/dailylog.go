package models

import "time"

// DailyLog ежедневная запись самочувствия пациента,
// используется в бизнес-логике и хранилище.
type DailyLog struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	PainLevel        int       `json:"pain_level"`        // Уровень боли, 1-10
	SleepQuality     int       `json:"sleep_quality"`     // Качество сна, 1-10
	Mood             int       `json:"mood"`              // Настроение, 1-10
	Symptoms         string    `json:"symptoms"`          // Симптомы за день
	Triggers         string    `json:"triggers"`          // Возможные триггеры
	DietMeals        string    `json:"diet_meals"`        // Питание
	PhysicalActivity string    `json:"physical_activity"` // Физическая активность
	Medications      string    `json:"medications"`       // Принятые лекарства
	AdditionalNotes  string    `json:"additional_notes"`  // Свободные заметки
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DummyDailyLog используется для приёма данных из JSON-запроса на создание записи,
// прежде чем конвертировать их в DailyLog.
type DummyDailyLog struct {
	PainLevel        int    `json:"pain_level" validate:"required,min=1,max=10"`
	SleepQuality     int    `json:"sleep_quality" validate:"required,min=1,max=10"`
	Mood             int    `json:"mood" validate:"required,min=1,max=10"`
	Symptoms         string `json:"symptoms"`
	Triggers         string `json:"triggers"`
	DietMeals        string `json:"diet_meals"`
	PhysicalActivity string `json:"physical_activity"`
	Medications      string `json:"medications"`
	AdditionalNotes  string `json:"additional_notes"`
}

// DailyLogPatch частичное обновление записи: поля со значением nil не меняются.
type DailyLogPatch struct {
	PainLevel        *int    `json:"pain_level" validate:"omitempty,min=1,max=10"`
	SleepQuality     *int    `json:"sleep_quality" validate:"omitempty,min=1,max=10"`
	Mood             *int    `json:"mood" validate:"omitempty,min=1,max=10"`
	Symptoms         *string `json:"symptoms"`
	Triggers         *string `json:"triggers"`
	DietMeals        *string `json:"diet_meals"`
	PhysicalActivity *string `json:"physical_activity"`
	Medications      *string `json:"medications"`
	AdditionalNotes  *string `json:"additional_notes"`
}
