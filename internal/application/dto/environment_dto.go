package dto

// CreateEnvironmentRequest entrada para crear un entorno (solo Company).
type CreateEnvironmentRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// EnvironmentResponse salida básica de un entorno.
type EnvironmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EnvironmentWithCompanyResponse entorno con el nombre de la company dueña
// (listado público para que un cliente elija a cuál unirse).
type EnvironmentWithCompanyResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
}

// JoinedEnvironmentResponse entorno unido con los puntos de la membresía.
type JoinedEnvironmentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
	Points      int    `json:"points"`
}

// JoinedEnvironmentsResponse envoltorio que espera la app: {environments:[...]}.
type JoinedEnvironmentsResponse struct {
	Environments []JoinedEnvironmentResponse `json:"environments"`
}

// JoinEnvironmentRequest entrada para unirse a un entorno.
type JoinEnvironmentRequest struct {
	EnvironmentID string `json:"environmentId" validate:"required,uuid"`
}
