package auth

import (
	"github.com/dawitf/ece-backend/internal/app/models"
	pkgauth "github.com/dawitf/ece-backend/internal/pkg/auth"
)

// ActingIdentity is the authenticated caller: decoded role and scope,
// passed explicitly into every service call. Services apply their own
// scope narrowing from it instead of leaving that to handlers.
type ActingIdentity struct {
	UserID     int64
	Role       models.Role
	BatchIDs   []int64
	StreamID   *int64
	SemesterID *int64
	Courses    []pkgauth.CourseClaim
}

// FromClaims builds an ActingIdentity from verified token claims.
func FromClaims(claims *pkgauth.Claims) ActingIdentity {
	return ActingIdentity{
		UserID:     claims.UserID,
		Role:       claims.Role,
		BatchIDs:   claims.BatchIDs,
		StreamID:   claims.StreamID,
		SemesterID: claims.SemesterID,
		Courses:    claims.Courses,
	}
}

// HomeBatch returns the identity's primary batch. Representatives and
// students carry exactly one batch; staff may carry several, in which
// case the first membership is the home batch.
func (id ActingIdentity) HomeBatch() (int64, bool) {
	if len(id.BatchIDs) == 0 {
		return 0, false
	}
	return id.BatchIDs[0], true
}

// BatchScoped reports whether the identity's visibility is pinned to
// its own batch: students and representatives never see outside their
// cohort.
func (id ActingIdentity) BatchScoped() bool {
	return id.Role == models.RoleStudent || id.Role == models.RoleRepresentative
}

// CanAssignRoles reports whether the identity may choose the role of a
// user it creates. Representatives and department admins can only mint
// staff; the target role is coerced for them.
func (id ActingIdentity) CanAssignRoles() bool {
	return id.Role != models.RoleRepresentative && id.Role != models.RoleDepartmentAdmin
}
