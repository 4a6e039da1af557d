package game

// ActionType names one of the seven legal actions.
type ActionType string

const (
	ActionIncome      ActionType = "INCOME"
	ActionForeignAid  ActionType = "FOREIGN_AID"
	ActionCoup        ActionType = "COUP"
	ActionTax         ActionType = "TAX"
	ActionAssassinate ActionType = "ASSASSINATE"
	ActionSteal       ActionType = "STEAL"
	ActionExchange    ActionType = "EXCHANGE"
)

// ActionDef is the static rule metadata for one action type.
type ActionDef struct {
	Cost          int
	Blockable     bool
	Challengeable bool
	// Role is the claim implied by taking the action; empty when the
	// action is not challengeable.
	Role Role
	// BlockedBy lists the roles a blocker may claim against this action.
	BlockedBy []Role
	// NeedsTarget marks actions that must name another living player.
	NeedsTarget bool
}

// Actions is the full catalog. Cost is deducted when the action is
// declared, not when it resolves, so a failed challenge can refund it.
var Actions = map[ActionType]ActionDef{
	ActionIncome:     {},
	ActionForeignAid: {Blockable: true, BlockedBy: []Role{RoleDuke}},
	ActionCoup:       {Cost: 7, NeedsTarget: true},
	ActionTax:        {Challengeable: true, Role: RoleDuke},
	ActionAssassinate: {
		Cost:          3,
		Blockable:     true,
		Challengeable: true,
		Role:          RoleAssassin,
		BlockedBy:     []Role{RoleContessa},
		NeedsTarget:   true,
	},
	ActionSteal: {
		Blockable:     true,
		Challengeable: true,
		Role:          RoleCaptain,
		BlockedBy:     []Role{RoleCaptain, RoleAmbassador},
		NeedsTarget:   true,
	},
	ActionExchange: {Challengeable: true, Role: RoleAmbassador},
}

func (d ActionDef) canBlockWith(r Role) bool {
	for _, b := range d.BlockedBy {
		if b == r {
			return true
		}
	}
	return false
}
