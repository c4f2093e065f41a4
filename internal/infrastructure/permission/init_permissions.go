package permission

import (
	"fmt"

	"github.com/casbin/casbin/v2"

	"github.com/autocrm/autocrm/internal/domain/permission"
	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/shared/logger"
)

// roleHierarchy lists (member, inherited role) pairs.
var roleHierarchy = [][]string{
	{user.RoleAdmin.String(), user.RoleAgent.String()},
	{user.RoleAgent.String(), user.RoleCustomer.String()},
}

func policy(role user.Role, object permission.Object, action permission.Action) []string {
	return []string{role.String(), string(object), string(action)}
}

// DefaultPolicies is what each role is granted directly; inherited grants
// come from roleHierarchy.
func DefaultPolicies() [][]string {
	return [][]string{
		// Customers work their own tickets and the public thread
		policy(user.RoleCustomer, permission.ObjectTicket, permission.ActionRead),
		policy(user.RoleCustomer, permission.ObjectTicket, permission.ActionCreate),
		policy(user.RoleCustomer, permission.ObjectPublicMessage, permission.ActionRead),
		policy(user.RoleCustomer, permission.ObjectPublicMessage, permission.ActionCreate),
		policy(user.RoleCustomer, permission.ObjectTicketFile, permission.ActionRead),
		policy(user.RoleCustomer, permission.ObjectTicketFile, permission.ActionCreate),

		// Agents triage
		policy(user.RoleAgent, permission.ObjectTicket, permission.ActionUpdate),
		policy(user.RoleAgent, permission.ObjectTicket, permission.ActionAssign),
		policy(user.RoleAgent, permission.ObjectAgentOnlyMessage, permission.ActionRead),
		policy(user.RoleAgent, permission.ObjectAgentOnlyMessage, permission.ActionCreate),
		policy(user.RoleAgent, permission.ObjectTicketFile, permission.ActionDelete),
		policy(user.RoleAgent, permission.ObjectQueue, permission.ActionRead),
		policy(user.RoleAgent, permission.ObjectUserQueue, permission.ActionRead),
		policy(user.RoleAgent, permission.ObjectUser, permission.ActionRead),

		// Admins manage queues and who works them
		policy(user.RoleAdmin, permission.ObjectQueue, permission.ActionManage),
		policy(user.RoleAdmin, permission.ObjectUserQueue, permission.ActionManage),
		policy(user.RoleAdmin, permission.ObjectUser, permission.ActionUpdate),
	}
}

// InitDefaultPermissions adds the default grants and role hierarchy.
// Grants already present are left alone.
func InitDefaultPermissions(enforcer *casbin.Enforcer, log logger.Interface) error {
	for _, p := range DefaultPolicies() {
		if _, err := enforcer.AddPolicy(p); err != nil {
			log.Errorw("failed to add permission policy",
				"error", err,
				"role", p[0],
				"resource", p[1],
				"action", p[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w", p[0], p[1], p[2], err)
		}
	}

	for _, g := range roleHierarchy {
		if _, err := enforcer.AddGroupingPolicy(g); err != nil {
			return fmt.Errorf("failed to add role inheritance %s -> %s: %w", g[0], g[1], err)
		}
	}

	log.Infow("default permissions initialized", "policies", len(DefaultPolicies()))
	return nil
}
