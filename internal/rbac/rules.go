package rbac

// Default role policy. Learners sit evaluations and see their own history;
// authors manage content and read everyone's results.
var RolePermissions = map[string][]string{
	"learner": {
		"evaluation:start",
		"evaluation:answer",
		"evaluation:submit",
		"result:view-own",
	},
	"author": {
		"program:write",
		"exercise:write",
		"evaluation:start",
		"evaluation:answer",
		"evaluation:submit",
		"result:view-own",
		"result:view-all",
	},
	"admin": {
		"*", // everything
	},
}
