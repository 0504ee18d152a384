// Package permissions decides whether a principal may perform an action on a
// resource. It has no knowledge of HTTP: callers translate the returned errors.
package permissions

import (
	"errors"
	"moviereviews/proj/internal/domain/models"
)

type Action int

const (
	ActionCreate Action = iota + 1
	ActionRead
	ActionList
	ActionUpdate
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionRead:
		return "read"
	case ActionList:
		return "list"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	}
	return "unknown"
}

type Resource int

const (
	ResourceMovie Resource = iota + 1
	ResourceGenre
	ResourceReview
	ResourceUser
)

func (r Resource) String() string {
	switch r {
	case ResourceMovie:
		return "movie"
	case ResourceGenre:
		return "genre"
	case ResourceReview:
		return "review"
	case ResourceUser:
		return "user"
	}
	return "unknown"
}

var (
	ErrUnauthenticated = errors.New("authentication credentials were not provided")
	ErrInvalidToken    = errors.New("invalid token")
	ErrForbidden       = errors.New("permission denied")
	// ErrSilentlyRefused means the action must be skipped without reporting an
	// error to the client. Only review deletion by a foreign critic produces it.
	ErrSilentlyRefused = errors.New("action refused silently")
)

// Principal is the identity a request acts as.
type Principal struct {
	User         *models.User
	invalidToken bool
}

func Anonymous() Principal {
	return Principal{}
}

func Authenticated(user *models.User) Principal {
	return Principal{User: user}
}

// InvalidToken is the principal of a request that presented a token which
// did not resolve to any user.
func InvalidToken() Principal {
	return Principal{invalidToken: true}
}

func (p Principal) IsAuthenticated() bool {
	return p.User != nil
}

func (p Principal) IsAdmin() bool {
	return p.User != nil && p.User.IsSuperuser
}

func (p Principal) HasInvalidToken() bool {
	return p.invalidToken
}

type rule int

const (
	ruleDenied rule = iota
	rulePublic
	ruleAuthenticated
	ruleAdmin
	ruleOwnerOrAdmin
)

var rules = map[Resource]map[Action]rule{
	ResourceMovie: {
		ActionCreate: ruleAdmin,
		ActionRead:   rulePublic,
		ActionList:   rulePublic,
		ActionUpdate: ruleAdmin,
		ActionDelete: ruleAdmin,
	},
	ResourceGenre: {
		ActionCreate: ruleAdmin,
		ActionRead:   rulePublic,
		ActionList:   rulePublic,
	},
	ResourceReview: {
		ActionCreate: ruleAuthenticated,
		ActionRead:   rulePublic,
		ActionList:   rulePublic,
		ActionDelete: ruleOwnerOrAdmin,
	},
	ResourceUser: {
		ActionCreate: rulePublic,
		ActionRead:   ruleAdmin,
		ActionList:   ruleAdmin,
	},
}

// Check returns nil when p may perform action on resource. ownerID is the id of
// the user owning the resource and is only consulted by ownership rules.
func Check(p Principal, action Action, resource Resource, ownerID int64) error {
	if p.invalidToken {
		return ErrInvalidToken
	}
	r := rules[resource][action]
	if r == rulePublic {
		return nil
	}
	if !p.IsAuthenticated() {
		return ErrUnauthenticated
	}
	switch r {
	case ruleAuthenticated:
		return nil
	case ruleAdmin:
		if p.IsAdmin() {
			return nil
		}
	case ruleOwnerOrAdmin:
		if p.IsAdmin() || p.User.ID == ownerID {
			return nil
		}
		return ErrSilentlyRefused
	}
	return ErrForbidden
}
