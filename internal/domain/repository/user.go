package repository

// Roles válidos para un usuario.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User representa una cuenta del sistema.
// El ID es nativo del backend: hex de ObjectID en Mongo, entero serial en Postgres.
// Password se guarda y compara en texto plano (comportamiento heredado, documentado;
// no "arreglar" en silencio).
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

// CreateUserInput contiene los datos para crear un usuario.
// El rol NO es seteable por el caller: add-user siempre fuerza "user",
// el bootstrap siempre fuerza "admin".
type CreateUserInput struct {
	Name       string
	Email      string
	Phone      string
	Department string
	Password   string
}

// UpdateUserInput contiene los únicos campos editables vía edit-user.
// Rol y password quedan fuera a propósito (password sólo via reset-password).
type UpdateUserInput struct {
	Name       string
	Email      string
	Phone      string
	Department string
}
