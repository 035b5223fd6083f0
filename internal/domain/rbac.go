package domain

type Role string

const (
	RoleAdmin         Role = "ADMIN"
	RoleDoctor        Role = "DOCTOR"
	RolePharmacy      Role = "PHARMACY"
	RoleLab           Role = "LAB"
	RoleHospitalAdmin Role = "HOSPITAL_ADMIN"

	// RolePatient is carried in patient tokens. It grants nothing.
	RolePatient Role = "PATIENT"
)

type Permission string

const (
	PermPatientRead Permission = "patient.read"
	PermOtpManage   Permission = "otp.manage"
)

const permAll Permission = "*"

var rolePermissions = map[Role][]Permission{
	RoleAdmin:         {permAll},
	RoleDoctor:        {PermPatientRead},
	RolePharmacy:      {PermPatientRead},
	RoleLab:           {PermPatientRead},
	RoleHospitalAdmin: {PermPatientRead},
}

// Can reports whether r grants p. Unknown roles grant nothing.
func (r Role) Can(p Permission) bool {
	for _, granted := range rolePermissions[r] {
		if granted == permAll || granted == p {
			return true
		}
	}
	return false
}
