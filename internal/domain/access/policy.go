// Package access define la identidad del llamante y la política de acceso por local.
//
// Un usuario no administrador solo puede operar sobre las entradas del local que
// tiene asignado. La política no trata de forma especial al administrador: sus
// privilegios (alta de locales y productos, localizaciones sin filtro) se
// verifican en otros puntos.
package access

import (
	"strings"

	"github.com/jhoicas/location-manager/internal/domain/entity"
)

// Identity datos del usuario autenticado que necesita la política.
type Identity struct {
	UserID         string
	Username       string
	Role           string
	AssignedShopID string // vacío = sin local asignado
}

// IsAdministrator único predicado de privilegio.
func (i Identity) IsAdministrator() bool {
	return strings.EqualFold(i.Role, entity.RoleAdmin)
}

// AssignedShop devuelve el local asignado, si existe.
func (i Identity) AssignedShop() (string, bool) {
	if i.AssignedShopID == "" {
		return "", false
	}
	return i.AssignedShopID, true
}

// Caller es el llamante de una operación: anónimo o autenticado.
// El valor cero es anónimo.
type Caller struct {
	identity *Identity
}

// Anonymous llamante sin autenticar.
func Anonymous() Caller {
	return Caller{}
}

// Authenticated llamante con identidad.
func Authenticated(id Identity) Caller {
	return Caller{identity: &id}
}

// FromUser construye el llamante a partir de un usuario persistido.
func FromUser(u *entity.User) Caller {
	if u == nil {
		return Anonymous()
	}
	return Authenticated(Identity{
		UserID:         u.ID,
		Username:       u.Username,
		Role:           u.Role,
		AssignedShopID: u.AssignedShopID,
	})
}

// Identity devuelve la identidad y false si el llamante es anónimo.
func (c Caller) Identity() (Identity, bool) {
	if c.identity == nil {
		return Identity{}, false
	}
	return *c.identity, true
}

// IsAnonymous indica si no hay identidad.
func (c Caller) IsAnonymous() bool {
	return c.identity == nil
}

// CanAccessShop decide si el llamante puede operar sobre el local shopID.
// Falso para anónimos y para usuarios sin local asignado; verdadero solo si el
// local asignado coincide con shopID.
func CanAccessShop(c Caller, shopID string) bool {
	id, ok := c.Identity()
	if !ok {
		return false
	}
	assigned, ok := id.AssignedShop()
	if !ok {
		return false
	}
	return assigned == shopID
}
