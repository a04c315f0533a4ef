package access

import (
	"errors"

	"github.com/perditionlabs/recruitd/internal/models"
)

// ErrDenied is the single error every failed check yields. It deliberately
// carries no detail: a caller must not be able to tell a missing resource or
// membership apart from an insufficient admin level.
var ErrDenied = errors.New("access denied")

// Check is the resolved permission state of one (resource, user) pair,
// together with any requirements applied so far. It is a small immutable
// value: every combinator returns a new Check, so a resolved Check can be
// reused for several independent decisions within a request.
type Check struct {
	resolved  bool
	superuser bool
	level     models.AdminLevel

	required   bool
	satisfied  bool
	overridden bool
}

// Denied is the zero Check: nothing resolved, every requirement fails.
func Denied() Check {
	return Check{}
}

// Resolved builds a Check from a membership admin level.
func Resolved(level models.AdminLevel, superuser bool) Check {
	return Check{resolved: true, superuser: superuser, level: level}
}

// AtLeast requires the resolved level to be at or above level. Superusers
// pass regardless. Multiple requirements on one Check are conjunctive.
func (c Check) AtLeast(level models.AdminLevel) Check {
	pass := c.resolved && (c.superuser || c.level.AtLeast(level))
	if c.required {
		c.satisfied = c.satisfied && pass
	} else {
		c.required = true
		c.satisfied = pass
	}
	return c
}

// IsAdmin requires the Admin level.
func (c Check) IsAdmin() Check {
	return c.AtLeast(models.AdminLevelAdmin)
}

// IsDirectorOrAbove requires Director or Admin.
func (c Check) IsDirectorOrAbove() Check {
	return c.AtLeast(models.AdminLevelDirector)
}

// Or marks the check authorized when cond holds, regardless of membership.
// Used for reads that are public once the owning campaign is published.
func (c Check) Or(cond bool) Check {
	if cond {
		c.overridden = true
	}
	return c
}

// Authorize is the terminal operation. It returns nil when the check passed
// and ErrDenied otherwise. A Check with no requirement applied passes on
// bare membership (or superuser).
func (c Check) Authorize() error {
	if c.overridden {
		return nil
	}
	if c.required {
		if c.satisfied {
			return nil
		}
		return ErrDenied
	}
	if c.resolved {
		return nil
	}
	return ErrDenied
}

// Level returns the resolved admin level and whether a membership was found.
// Superusers report Admin.
func (c Check) Level() (models.AdminLevel, bool) {
	if !c.resolved {
		return "", false
	}
	if c.superuser {
		return models.AdminLevelAdmin, true
	}
	return c.level, true
}

// Superuser reports whether the check resolved through the superuser bypass.
func (c Check) Superuser() bool {
	return c.resolved && c.superuser
}
