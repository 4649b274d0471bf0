package session

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type Permission string

const (
	PermBroadcast      Permission = "broadcast"
	PermSendDirect     Permission = "send_direct"
	PermRunSweeps      Permission = "run_sweeps"
	PermManageVouchers Permission = "manage_vouchers"
	PermReceiveAlerts  Permission = "receive_alerts"
)

var rolePermissions = map[Role]map[Permission]bool{
	RoleAdmin: {
		PermBroadcast:      true,
		PermSendDirect:     true,
		PermRunSweeps:      true,
		PermManageVouchers: true,
		PermReceiveAlerts:  true,
	},
	RoleCustomer: {},
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := rolePermissions[r]
	return ok
}

func (r Role) Can(p Permission) bool {
	return rolePermissions[r][p]
}

func NewRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// RoleResolver maps an external identity to its role.
type RoleResolver interface {
	RoleFor(telegramID int64) Role
}

// StaticRoles grants RoleAdmin to a fixed identity set, everyone else is a customer.
type StaticRoles struct {
	admins map[int64]struct{}
	order  []int64
}

func NewStaticRoles(adminIDs []int64) *StaticRoles {
	r := &StaticRoles{admins: make(map[int64]struct{}, len(adminIDs))}
	for _, id := range adminIDs {
		if _, dup := r.admins[id]; dup {
			continue
		}
		r.admins[id] = struct{}{}
		r.order = append(r.order, id)
	}
	return r
}

func (r *StaticRoles) RoleFor(telegramID int64) Role {
	if _, ok := r.admins[telegramID]; ok {
		return RoleAdmin
	}
	return RoleCustomer
}

// Admins returns the privileged identities in configuration order.
func (r *StaticRoles) Admins() []int64 {
	out := make([]int64, len(r.order))
	copy(out, r.order)
	return out
}
