package postgres

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isInvalidText verifica si PostgreSQL rechazó el literal de un parámetro (22P02),
// p. ej. un id que no es UUID.
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22P02" // invalid_text_representation
	}
	return false
}

// validID indica si id puede compararse con una columna UUID. Un id que no
// lo es no identifica ninguna fila.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// nullableText convierte "" en NULL para columnas opcionales.
func nullableText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// textOrEmpty convierte NULL en "".
func textOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
