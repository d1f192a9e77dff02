package access

type Action string

const (
	ViewTables        Action = "view_tables"
	ViewAvailability  Action = "view_availability"
	CreateReservation Action = "create_reservation"
	CancelOwn         Action = "cancel_own_reservation"
	ViewProfile       Action = "view_profile"

	UpdateTableState    Action = "update_table_state"
	ViewAllReservations Action = "view_all_reservations"
	BookForOthers       Action = "book_for_others"

	CancelAny     Action = "cancel_any_reservation"
	ViewCustomers Action = "view_customers"

	ManageTables      Action = "manage_tables"
	DeleteReservation Action = "delete_reservation"
	RunSweep          Action = "run_sweep"
	ManageUsers       Action = "manage_users"
	ViewAuditLogs     Action = "view_audit_logs"
)

var everyone = []Role{RoleAdmin, RoleCashier, RoleWaiter, RoleClient}

var matrix = map[Action][]Role{
	ViewTables:        everyone,
	ViewAvailability:  everyone,
	CreateReservation: everyone,
	CancelOwn:         everyone,
	ViewProfile:       everyone,

	UpdateTableState:    {RoleAdmin, RoleCashier, RoleWaiter},
	ViewAllReservations: {RoleAdmin, RoleCashier, RoleWaiter},
	BookForOthers:       {RoleAdmin, RoleCashier, RoleWaiter},

	CancelAny:     {RoleAdmin, RoleCashier},
	ViewCustomers: {RoleAdmin, RoleCashier},

	ManageTables:      {RoleAdmin},
	DeleteReservation: {RoleAdmin},
	RunSweep:          {RoleAdmin},
	ManageUsers:       {RoleAdmin},
	ViewAuditLogs:     {RoleAdmin},
}

// Authorize reports whether role may perform action. Unknown roles and
// actions are denied.
func Authorize(role Role, action Action) bool {
	for _, r := range matrix[action] {
		if r == role {
			return true
		}
	}
	return false
}
