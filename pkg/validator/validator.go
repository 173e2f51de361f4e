package validator

import (
	"github.com/go-playground/validator/v10"
)

// FieldError describe un campo que no pasó la validación estructural.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct valida los tags `validate` de un DTO y devuelve la lista de
// campos fallidos (vacía si todo es válido). La validación semántica de
// negocio (stock, estados, unicidad por empresa) vive en los casos de uso;
// aquí solo se verifica forma: requeridos, rangos, enumeraciones.
func ValidateStruct(data interface{}) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "body", Tag: "invalid"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field: fe.StructNamespace(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}
