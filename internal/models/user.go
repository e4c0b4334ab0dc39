// Package models содержит доменные структуры SereneCare: пользователей,
// ежедневные записи самочувствия, чаты и сообщения.
package models

import "time"

// Role роль пользователя в системе. Единственное место, где определено
// множество ролей: все проверки "пациент или врач" идут через эти константы.
type Role string

const (
	// RolePatient — пациент, ведет дневник самочувствия и пишет врачам
	RolePatient Role = "PATIENT"
	// RoleDoctor — врач, отвечает пациентам в чатах
	RoleDoctor Role = "DOCTOR"
)

// Valid сообщает, принадлежит ли роль известному множеству.
func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor
}

// User представляет зарегистрированного пользователя системы.
// Поля Specialization, LicenseNumber и далее заполняются только для врачей.
type User struct {
	ID              int64     // Уникальный идентификатор пользователя
	Username        string    // Имя пользователя (уникальное)
	Email           string    // Электронная почта (уникальная)
	PasswordHash    string    // Хэш пароля пользователя
	FullName        string    // Отображаемое имя
	Role            Role      // Роль пользователя, PATIENT или DOCTOR
	Specialization  string    // Специализация врача
	LicenseNumber   string    // Номер лицензии врача
	ExperienceYears int       // Стаж врача в годах
	Bio             string    // Короткое описание
	Location        string    // Город или клиника
	Rating          float64   // Средняя оценка врача
	ReviewCount     int       // Количество отзывов
	CreatedAt       time.Time // Дата регистрации
}

// DoctorProfile публичная проекция врача для страниц поиска.
// Пароль и служебные поля наружу не отдаются.
type DoctorProfile struct {
	ID              int64   `json:"id"`
	FullName        string  `json:"full_name"`
	Specialization  string  `json:"specialization"`
	LicenseNumber   string  `json:"license_number"`
	ExperienceYears int     `json:"experience_years"`
	Bio             string  `json:"bio"`
	Location        string  `json:"location"`
	Rating          float64 `json:"rating"`
	ReviewCount     int     `json:"review_count"`
}

// ReminderInfo данные для письма-напоминания пациенту, не заполнившему дневник.
type ReminderInfo struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}
