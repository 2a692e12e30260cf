package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"course:view",
		"grade:view",
		"grade:whatif",
		"announcement:triage",
	},
	"teacher": {
		"course:view",
		"course:create",
		"course:sync",
		"grade:view",
		"grade:whatif",
		"setup:*",
		"announcement:triage",
		"users:bulk_upsert",
		"users:list",
	},
	"admin": {
		"*", // everything
	},
}
