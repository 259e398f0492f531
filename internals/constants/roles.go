package constants

import "fmt"

const (
	RoleParent  = "parent"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
	RoleOwner   = "owner"
)

// Role error message templates
const (
	ErrOnlyTeachersCanAccess = "Only teachers, admins, or owners may access %s."
	ErrOnlyAdminsCanAccess   = "Only admins or owners may access %s."
	ErrOnlyOwnersCanAccess   = "Only owners may access %s."
)

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorOwner(feature string) string {
	return fmt.Sprintf(ErrOnlyOwnersCanAccess, feature)
}

// ==========================
// Grouped role slices
// ==========================
var (
	AllRoles = []string{
		RoleParent,
		RoleTeacher,
		RoleAdmin,
		RoleOwner,
	}

	StaffRoles = []string{
		RoleTeacher,
		RoleAdmin,
		RoleOwner,
	}

	AdminRoles = []string{
		RoleAdmin,
		RoleOwner,
	}
)
