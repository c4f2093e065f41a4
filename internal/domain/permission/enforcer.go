// Package permission names what each role may see and do.
package permission

import "github.com/autocrm/autocrm/internal/domain/user"

type Object string

const (
	ObjectTicket           Object = "ticket"
	ObjectPublicMessage    Object = "message:public"
	ObjectAgentOnlyMessage Object = "message:agent_only"
	ObjectQueue            Object = "queue"
	ObjectUserQueue        Object = "user_queue"
	ObjectTicketFile       Object = "ticket_file"
	ObjectUser             Object = "user"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionAssign Action = "assign"
	ActionDelete Action = "delete"
	ActionManage Action = "manage"
)

// Enforcer answers role visibility questions. It gates presentation only.
type Enforcer interface {
	Can(role user.Role, object Object, action Action) (bool, error)
}
