package models

import "time"

// Chat диалог между пациентом и врачом. На пару пациент-врач существует
// не больше одного чата.
type Chat struct {
	ID        int64     `json:"id"`
	PatientID int64     `json:"patient_id"`
	DoctorID  int64     `json:"doctor_id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatSummary элемент списка чатов, обогащенный именами участников
// и текстом последней реплики.
type ChatSummary struct {
	ID                   int64     `json:"id"`
	PatientID            int64     `json:"patient_id"`
	DoctorID             int64     `json:"doctor_id"`
	Title                string    `json:"title"`
	PatientName          string    `json:"patient_name"`
	DoctorName           string    `json:"doctor_name"`
	DoctorSpecialization string    `json:"doctor_specialization"`
	LastMessage          string    `json:"last_message"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Message одно сообщение в чате.
type Message struct {
	ID         int64     `json:"id"`
	ChatID     int64     `json:"chat_id"`
	SenderID   int64     `json:"sender_id"`
	SenderRole Role      `json:"sender_role"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
