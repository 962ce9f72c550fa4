package dto

// ErrorResponse cuerpo de error HTTP. Message es lo que la app móvil
// muestra tal cual al usuario.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}
