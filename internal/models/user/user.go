package user

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type Role string

const RoleFinanzas Role = "finanzas"
const RoleTecnico Role = "tecnico"
const RoleOperario Role = "operario"
const RoleDesarrollo Role = "desarrollo"
const RoleAdmin Role = "admin"

// User is a namespace key for one person's sheet plus their role.
// There is no password: login is name-based role-play, the role only
// selects which welcome screen the client renders.
type User struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

func (r Role) Valid() bool {
	switch r {
	case RoleFinanzas, RoleTecnico, RoleOperario, RoleDesarrollo, RoleAdmin:
		return true
	}
	return false
}

// FormatName keeps the first word only, capitalized: "juan CARLOS"
// becomes "Juan". Capitalization is rune-aware, the name is a storage
// key and must stay valid UTF-8 for accented names. Empty input stays
// empty.
func FormatName(name string) string {
	first := strings.Fields(strings.TrimSpace(name))
	if len(first) == 0 {
		return ""
	}
	lower := strings.ToLower(first[0])
	r, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(r)) + lower[size:]
}
