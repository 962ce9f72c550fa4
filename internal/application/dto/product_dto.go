package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para registrar un producto en un entorno.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Price         decimal.Decimal `json:"price" validate:"required"`
	Barcode       string          `json:"barcode" validate:"required,min=1,max=64"`
	EnvironmentID string          `json:"environmentId" validate:"required,uuid"`
}

// UpdateProductRequest entrada para editar nombre y precio. Editar el precio
// no altera las fotos históricas de los registros ya creados.
type UpdateProductRequest struct {
	Name  *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Price *decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Barcode       string          `json:"barcode"`
	EnvironmentID string          `json:"environmentId"`
}

// ScannedProductResponse producto resuelto por escaneo, con el nombre del
// entorno para que el cliente pueda distinguir coincidencias.
type ScannedProductResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Barcode         string          `json:"barcode"`
	EnvironmentID   string          `json:"environmentId"`
	EnvironmentName string          `json:"environmentName"`
}

// MultipleProductsResponse respuesta cuando el barcode existe en más de un
// entorno unido: la app muestra el selector y el cliente desambigua.
type MultipleProductsResponse struct {
	Multiple bool                     `json:"multiple"`
	Products []ScannedProductResponse `json:"products"`
}
