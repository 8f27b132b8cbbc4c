package rbac

// Roles known to the system.
const (
	RoleAdmin = "ADMIN" // administrator, full access
	RoleHR    = "RH"    // human resources
	RoleSG    = "SG"    // secretary general
)

// Resources guarded by the policy.
const (
	ResourceUser         = "user"
	ResourceEmployee     = "employee"
	ResourceAttestation  = "attestation"
	ResourceMission      = "mission"
	ResourceNotification = "notification"
	ResourceActivity     = "activity"
	ResourceDashboard    = "dashboard"
)

// Actions a role may be granted on a resource.
const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

type rule struct {
	Role     string
	Resource string
	Action   string
}

// staticPolicy is the whole authorization table. ADMIN is not listed:
// the casbin matcher grants it every action on every resource. There is
// no dynamic policy composition; this list is loaded once at startup.
var staticPolicy = []rule{
	// RH manages employees and both document types, and can read the
	// dashboard and the activity log.
	{RoleHR, ResourceEmployee, ActionCreate},
	{RoleHR, ResourceEmployee, ActionRead},
	{RoleHR, ResourceEmployee, ActionUpdate},
	{RoleHR, ResourceEmployee, ActionDelete},
	{RoleHR, ResourceAttestation, ActionCreate},
	{RoleHR, ResourceAttestation, ActionRead},
	{RoleHR, ResourceAttestation, ActionUpdate},
	{RoleHR, ResourceAttestation, ActionDelete},
	{RoleHR, ResourceMission, ActionCreate},
	{RoleHR, ResourceMission, ActionRead},
	{RoleHR, ResourceMission, ActionUpdate},
	{RoleHR, ResourceMission, ActionDelete},
	{RoleHR, ResourceDashboard, ActionRead},
	{RoleHR, ResourceActivity, ActionRead},

	// SG may read and generate documents, nothing else.
	{RoleSG, ResourceAttestation, ActionCreate},
	{RoleSG, ResourceAttestation, ActionRead},
	{RoleSG, ResourceMission, ActionCreate},
	{RoleSG, ResourceMission, ActionRead},

	// Every role sees and updates its own notifications; ownership is
	// enforced by the notification handlers, not by the policy.
	{RoleHR, ResourceNotification, ActionRead},
	{RoleHR, ResourceNotification, ActionUpdate},
	{RoleSG, ResourceNotification, ActionRead},
	{RoleSG, ResourceNotification, ActionUpdate},
}
