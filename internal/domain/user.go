package domain

import "time"

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleCoach   Role = "coach"
	RoleStudent Role = "student"
)

// Status describes the account lifecycle. New accounts start pending and
// must be activated by the super-admin before they are fully functional.
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

// SuperAdminName is the reserved login handle of the permanent super-admin.
// The account with this name is the admin regardless of its role or status.
const SuperAdminName = "iisa"

// User represents a user in the system (either a Coach or a Student).
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name"` // Unique login handle
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role      `bson:"role" json:"role"`
	Status       Status    `bson:"status" json:"status"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`

	// --- Student-specific ---
	// ID of the coach this student is assigned to. Empty until the
	// super-admin links the student to a coach.
	CoachID string `bson:"coachId,omitempty" json:"coachId,omitempty"`

	// Achievement IDs (system or coach-defined) the student pinned for
	// display. At most three; enforced in the achievement service.
	SelectedBadgeIDs []string `bson:"selectedBadgeIds,omitempty" json:"selectedBadgeIds,omitempty"`

	// --- Coach-specific ---
	// Free-form badges a coach hands out manually.
	CustomBadges []Badge `bson:"customBadges,omitempty" json:"customBadges,omitempty"`

	// Achievements authored by this coach, evaluated against the coach's
	// own students only. Stored on the coach record itself.
	DefinedAchievements []Achievement `bson:"definedAchievements,omitempty" json:"definedAchievements,omitempty"`
}

// Badge is a decorative award a coach can grant outside the achievement
// evaluator.
type Badge struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Icon  string `bson:"icon,omitempty" json:"icon,omitempty"`
	Color string `bson:"color,omitempty" json:"color,omitempty"`
}

func (u *User) IsCoach() bool {
	return u.Role == RoleCoach
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// IsSuperAdmin reports whether this is the permanent admin account.
func (u *User) IsSuperAdmin() bool {
	return u.Name == SuperAdminName
}

// IsOperational reports whether a student can use the full app: the account
// is active and linked to a coach who is not disabled. Callers supply the
// coach record (nil if the coach does not exist).
func (u *User) IsOperational(coach *User) bool {
	if !u.IsStudent() || u.Status != StatusActive || u.CoachID == "" {
		return false
	}
	return coach != nil && coach.Status != StatusDisabled
}
