package entity

import "time"

// Roles válidos para User. El rol es inmutable después del registro.
const (
	RoleCliente = 1 // escanea productos y acumula puntos en entornos ajenos
	RoleCompany = 2 // crea entornos, registra productos y consulta estadísticas
)

// User representa una cuenta del sistema. Un Cliente se une a entornos;
// una Company es dueña de los suyos.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         int    // RoleCliente | RoleCompany
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsCliente indica si la cuenta tiene rol de cliente.
func (u *User) IsCliente() bool { return u.Role == RoleCliente }

// IsCompany indica si la cuenta tiene rol de company.
func (u *User) IsCompany() bool { return u.Role == RoleCompany }
