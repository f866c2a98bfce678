package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrValidation           = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrCategoryInUse        = errors.New("la categoría tiene medicamentos asociados")
	ErrRemoteSync           = errors.New("fallo de sincronización con el almacén remoto")
	ErrAuditWrite           = errors.New("fallo al registrar la auditoría")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConfirmationRequired = errors.New("la operación requiere confirmación explícita")
	ErrOutOfStock           = errors.New("medicamento sin stock")
	ErrEmptyCart            = errors.New("el carrito está vacío")
	ErrCommitInProgress     = errors.New("la venta ya se está procesando")
	ErrCommitFailed         = errors.New("no se pudo vender ninguna línea del carrito")
)

// ValidationError indica el campo que no pasó la validación en el borde de la mutación.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid construye un ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// CategoryInUseError bloquea el borrado de una categoría referenciada por medicamentos.
type CategoryInUseError struct {
	Category string
	Count    int
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("la categoría %q tiene %d medicamento(s) asociados", e.Category, e.Count)
}

func (e *CategoryInUseError) Unwrap() error { return ErrCategoryInUse }

// RemoteSyncError describe una escritura al espejo remoto que falló. La mutación local ya quedó aplicada.
type RemoteSyncError struct {
	Collection string
	Op         string
	ID         string
	Err        error
}

func (e *RemoteSyncError) Error() string {
	return fmt.Sprintf("sync %s %s/%s: %v", e.Op, e.Collection, e.ID, e.Err)
}

func (e *RemoteSyncError) Unwrap() []error { return []error{ErrRemoteSync, e.Err} }
