package dto

// RegisterRequest entrada para registro: la app envía name, email, password
// y el rol elegido (1 = Cliente, 2 = Company).
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	IDRole   int    `json:"id_role" validate:"required,oneof=1 2"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UsuarioResponse salida de un usuario (sin password). El campo se llama
// "nombre" en el wire porque así lo consume la app.
type UsuarioResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Role   int    `json:"role"`
}

// AuthResponse salida de login/registro con token JWT.
type AuthResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}
