package user

type Role string

const (
	RoleViewer   Role = "viewer"
	RoleOperator Role = "operator"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleViewer, RoleOperator, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Action is a capability the API can gate on. Authorization is expressed as
// Role.Can(Action) instead of scattered role comparisons.
type Action string

const (
	ActionViewSchedules   Action = "schedules:view"
	ActionManageSchedules Action = "schedules:manage"
	ActionViewEquipment   Action = "equipment:view"
	ActionManageEquipment Action = "equipment:manage"
	ActionManageUsers     Action = "users:manage"
)

var capabilities = map[Role]map[Action]bool{
	RoleViewer: {
		ActionViewSchedules: true,
		ActionViewEquipment: true,
	},
	RoleOperator: {
		ActionViewSchedules:   true,
		ActionViewEquipment:   true,
		ActionManageSchedules: true,
	},
	RoleManager: {
		ActionViewSchedules:   true,
		ActionViewEquipment:   true,
		ActionManageSchedules: true,
		ActionManageEquipment: true,
	},
	RoleAdmin: {
		ActionViewSchedules:   true,
		ActionViewEquipment:   true,
		ActionManageSchedules: true,
		ActionManageEquipment: true,
		ActionManageUsers:     true,
	},
}

func (r Role) Can(action Action) bool {
	return capabilities[r][action]
}
