package valueobjects

type Role string

const (
	RoleUser       Role = "usuario"
	RoleTechnician Role = "tecnico"
)

var Roles = []Role{RoleUser, RoleTechnician}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleTechnician
}

func (r Role) IsTechnician() bool {
	return r == RoleTechnician
}
