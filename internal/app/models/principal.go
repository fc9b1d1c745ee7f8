package models

// RoleUser is the single role every student carries. The role model is a
// fixed constant, not per-student data.
const RoleUser = "USER"

// Principal is the authenticated-identity record handed to the
// authentication layer: login username, stored credential hash and the role
// set. The credential is always the stored hash, never a plaintext.
type Principal struct {
	Username     string
	PasswordHash string
	Roles        []string
}
