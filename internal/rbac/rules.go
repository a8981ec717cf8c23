package rbac

// RolePermissions is the default policy.
var RolePermissions = map[string][]string{
	// guest may browse the bank and play saved sets, never curate them
	"guest": {
		"bank:view",
		"session:play",
	},
	"player": {
		"bank:view",
		"quizset:view",
		"quizset:create",
		"quizset:delete",
		"session:play",
	},
	"teacher": {
		"bank:*",
		"quizset:*",
		"session:play",
		"events:view",
	},
	"admin": {
		"*", // everything
	},
}
