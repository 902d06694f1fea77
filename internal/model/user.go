package model

import "time"

// Role names stored in users.role and carried in the JWT "role" claim.
const (
    RoleAdmin          = "ADMIN"
    RoleChiefOrganizer = "CHIEF_ORGANIZER"
    RoleOrganizer      = "ORGANIZER"
    RoleTicketing      = "TICKETING"
)

// User represents an application user record as stored in the
// `users` table.  Organizers are users whose role is ORGANIZER or
// CHIEF_ORGANIZER; their name and contact fields are copied onto
// their personal entry pass.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – name of the role.
//  FullName     – display name printed on tickets.
//  DNI          – national id number.
//  Phone        – contact phone.
//  IsActive     – whether the account is active.
type User struct {
    ID           uint64    // users.id
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    Role         string    // users.role
    FullName     string    // users.full_name
    DNI          string    // users.dni
    Phone        string    // users.phone
    IsActive     bool      // users.is_active
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// IsOrganizer reports whether the user may be attached to an event.
func (u User) IsOrganizer() bool {
    return u.Role == RoleOrganizer || u.Role == RoleChiefOrganizer
}

// Principal is the authenticated caller passed explicitly into every
// mutating engine entry point.
type Principal struct {
    UserID uint64
    Role   string
}

// CanManageEvents reports whether p may create or update events and resize
// organizer allowances.
func (p Principal) CanManageEvents() bool {
    return p.Role == RoleAdmin || p.Role == RoleChiefOrganizer
}

// CanScan reports whether p may mark tickets as scanned at the door.
func (p Principal) CanScan() bool {
    switch p.Role {
    case RoleAdmin, RoleChiefOrganizer, RoleOrganizer, RoleTicketing:
        return true
    }
    return false
}
