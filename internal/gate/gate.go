// Package gate принимает решение о допуске к защищенным страницам.
//
// Guard — чистая синхронная функция над уже прочитанной сессией: никакого
// ввода-вывода и обращений к хранилищу. Токен, который бэкенд успел отозвать,
// здесь не распознается — это обнаружится позже, когда запрос с ним получит 401.
// RoleVisible решает, показывать ли ролевые элементы навигации; это удобство
// для клиента, а не граница безопасности — обработчики проверяют роль сами.
package gate

import (
	"github.com/magabrotheeeer/serenecare/internal/models"
	"github.com/magabrotheeeer/serenecare/internal/session"
)

// LoginRoute маршрут, на который отправляются неаутентифицированные посетители.
const LoginRoute = "/login"

// Decision результат проверки: либо рендерить запрошенную страницу,
// либо редирект на страницу логина. Исходный маршрут при редиректе
// не сохраняется.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Guard решает, допустить ли сессию к защищенной странице.
func Guard(sess session.Session) Decision {
	if !sess.IsAuthenticated() {
		return Decision{RedirectTo: LoginRoute}
	}
	return Decision{Allow: true}
}

// RoleVisible сообщает, видна ли сессии ролевая часть интерфейса.
// Истинно только для аутентифицированной сессии с точно совпадающей ролью,
// поэтому для сессии с определенной ролью ровно одна из проверок
// PATIENT/DOCTOR истинна.
func RoleVisible(sess session.Session, role models.Role) bool {
	if !sess.IsAuthenticated() {
		return false
	}
	return sess.Role == role
}
