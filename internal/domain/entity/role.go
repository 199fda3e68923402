package entity

// Nombres de los roles sembrados. El conjunto es abierto: pueden crearse
// roles nuevos en la tabla sin recompilar; estos son los que siembra el Seeder.
const (
	RoleUser    = "user"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// Role representa un rol de usuario (conjunto abierto, almacenado como dato).
type Role struct {
	ID          int
	Name        string // único
	Description string
}
