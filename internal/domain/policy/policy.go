// Package policy define la tabla de capacidades por rol. Es la única fuente
// de verdad para decisiones de autorización: la lógica de negocio consulta
// esta tabla y nunca compara nombres de rol directamente.
package policy

import "github.com/jhoicas/reservas-api/internal/domain/entity"

// Capability es un permiso con nombre, otorgado por rol.
type Capability string

const (
	CanChangeRole       Capability = "canChangeRole"
	CanDeleteAnyBooking Capability = "canDeleteAnyBooking"
	CanResetData        Capability = "canResetData"
	CanManageRooms      Capability = "canManageRooms"
)

// Capabilities es el conjunto de permisos de un rol.
type Capabilities struct {
	ChangeRole       bool
	DeleteAnyBooking bool
	ResetData        bool
	ManageRooms      bool
}

// Allows indica si el conjunto otorga la capacidad pedida.
func (c Capabilities) Allows(cap Capability) bool {
	switch cap {
	case CanChangeRole:
		return c.ChangeRole
	case CanDeleteAnyBooking:
		return c.DeleteAnyBooking
	case CanResetData:
		return c.ResetData
	case CanManageRooms:
		return c.ManageRooms
	default:
		return false
	}
}

// table mapea nombre de rol -> capacidades. Los roles son un conjunto abierto:
// un rol que no aparece aquí no tiene capacidades administrativas.
var table = map[string]Capabilities{
	entity.RoleUser: {},
	entity.RoleManager: {
		DeleteAnyBooking: true,
		ManageRooms:      true,
	},
	entity.RoleAdmin: {
		ChangeRole:       true,
		DeleteAnyBooking: true,
		ResetData:        true,
		ManageRooms:      true,
	},
}

// ForRole devuelve las capacidades del rol. Un rol desconocido recibe el
// conjunto vacío (se permite crear roles nuevos sin recompilar).
func ForRole(roleName string) Capabilities {
	return table[roleName]
}

// Actor es la identidad autenticada que ejecuta una operación (tomada de los
// claims del token). Las decisiones de autorización pasan por Can, nunca por
// comparación directa del nombre de rol.
type Actor struct {
	ID   string
	Role string
}

// Can consulta la tabla de capacidades para el rol del actor.
func (a Actor) Can(cap Capability) bool {
	return ForRole(a.Role).Allows(cap)
}
