package constants

import "fmt"

const (
	RoleAdmin     = "admin"
	RoleBendahara = "bendahara"
	RoleEditor    = "editor"
	RolePengajar  = "pengajar"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess    = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyTreasurerCanAccess = "❌ Hanya admin atau bendahara yang boleh mengakses fitur %s."
	ErrOnlyEditorsCanAccess   = "❌ Hanya admin atau editor yang boleh mengakses fitur %s."
	ErrOnlyTeachersCanAccess  = "❌ Hanya admin atau pengajar yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorTreasurer(feature string) string {
	return fmt.Sprintf(ErrOnlyTreasurerCanAccess, feature)
}

func RoleErrorEditor(feature string) string {
	return fmt.Sprintf(ErrOnlyEditorsCanAccess, feature)
}

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleBendahara,
		RoleEditor,
		RolePengajar,
	}

	FinanceRoles = []string{
		RoleAdmin,
		RoleBendahara,
	}

	ContentRoles = []string{
		RoleAdmin,
		RoleEditor,
	}

	TPARoles = []string{
		RoleAdmin,
		RolePengajar,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
