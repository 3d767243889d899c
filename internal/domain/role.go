package domain

// Role роль аутентифицированного пользователя
// Передается шлюзом в заголовке X-User-Role
type Role string

const (
	RoleUser  Role = "user"
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
)

// ParseRole валидирует строку роли, пустая строка трактуется как обычный пользователь
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleOwner, RoleAdmin:
		return Role(s), true
	case "":
		return RoleUser, true
	default:
		return "", false
	}
}
