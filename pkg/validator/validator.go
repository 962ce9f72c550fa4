package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// instancia compartida: validator cachea la metadata de structs, crear una por request es caro.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate aplica las reglas declaradas en los tags `validate` del struct.
// Devuelve un error legible con el primer campo inválido, pensado para
// propagarse tal cual al cliente en una respuesta 400.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}
	fe := errs[0]
	if fe.Param() != "" {
		return fmt.Errorf("campo %s no cumple la regla %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Errorf("campo %s no cumple la regla %s", fe.Field(), fe.Tag())
}
