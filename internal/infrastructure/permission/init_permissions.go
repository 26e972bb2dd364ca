package permission

import (
	"fmt"

	vo "helpdesk/internal/domain/permission/value_objects"
	uvo "helpdesk/internal/domain/user/valueobjects"
	"helpdesk/internal/shared/logger"
)

type policy struct {
	role     uvo.Role
	resource vo.Resource
	action   vo.Action
}

// defaultPolicies: technicians may do everything; customer-users read
// everything, open and edit tickets, comment and resolve.
func defaultPolicies() []policy {
	all := []vo.Resource{
		vo.ResourceTicket,
		vo.ResourceComment,
		vo.ResourceCategory,
		vo.ResourceClient,
		vo.ResourceAddress,
		vo.ResourceContract,
		vo.ResourceServiceOrder,
		vo.ResourceUser,
		vo.ResourceMail,
		vo.ResourceDashboard,
	}

	policies := make([]policy, 0, 2*len(all)+4)
	for _, r := range all {
		policies = append(policies, policy{uvo.RoleTechnician, r, "*"})
		policies = append(policies, policy{uvo.RoleUser, r, vo.ActionRead})
	}

	policies = append(policies,
		policy{uvo.RoleUser, vo.ResourceTicket, vo.ActionCreate},
		policy{uvo.RoleUser, vo.ResourceTicket, vo.ActionUpdate},
		policy{uvo.RoleUser, vo.ResourceTicket, vo.ActionResolve},
		policy{uvo.RoleUser, vo.ResourceComment, vo.ActionComment},
		policy{uvo.RoleUser, vo.ResourceContract, vo.ActionExport},
		policy{uvo.RoleUser, vo.ResourceServiceOrder, vo.ActionExport},
	)
	return policies
}

// InitDefaultPolicies seeds the default policies the first time the policy
// store is empty. Existing policies are left alone.
func InitDefaultPolicies(e *Enforcer, log logger.Interface) error {
	empty, err := e.isEmpty()
	if err != nil {
		return fmt.Errorf("failed to inspect policy store: %w", err)
	}
	if !empty {
		return nil
	}

	for _, p := range defaultPolicies() {
		if err := e.AddPolicy(p.role.String(), p.resource, p.action); err != nil {
			log.Errorw("failed to add default policy",
				"error", err,
				"role", p.role,
				"resource", p.resource,
				"action", p.action)
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				p.role, p.resource, p.action, err)
		}
	}

	log.Info("default permissions initialized")
	return nil
}
