// Package session хранит клиентские сессии SereneCare.
//
// Session — пять полей идентичности, которые выдаются при логине и нужны
// каждому защищенному запросу. Store — единственная точка записи и чтения
// сессий: записи создаются только при успешном логине, удаляются при логауте
// или при обнаружении протухшего токена. Обойти Store и тронуть отдельное
// поле сессии нельзя: запись хранится одним JSON-значением под одним ключом,
// поэтому смесь "новый токен, старая роль" не наблюдаема.
package session

import "github.com/magabrotheeeer/serenecare/internal/models"

// Session клиентская сессия: токен и идентичность его владельца.
// Нулевое значение означает анонимного посетителя.
type Session struct {
	Token    string      `json:"token"`
	UserID   int64       `json:"user_id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
}

// IsAuthenticated сообщает, аутентифицирована ли сессия.
// Истинно тогда и только тогда, когда токен непустой; остальные поля
// не влияют: роль имеет смысл только при наличии токена.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}
