package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Resource is a Wise API resource that tools act on.
type Resource string

// Permission is an action that may be granted on a Resource.
type Permission string

const (
	ResourceTransfers  Resource = "transfers"
	ResourceProfiles   Resource = "profiles"
	ResourceQuotes     Resource = "quotes"
	ResourceRecipients Resource = "recipients"
	ResourceBalances   Resource = "balances"
)

const (
	PermissionCreate Permission = "create"
	PermissionRead   Permission = "read"
	PermissionUpdate Permission = "update"
)

// resourcePermissions enumerates the valid permission matrix.
var resourcePermissions = map[Resource][]Permission{
	ResourceTransfers:  {PermissionCreate, PermissionRead, PermissionUpdate},
	ResourceProfiles:   {PermissionCreate, PermissionRead, PermissionUpdate},
	ResourceQuotes:     {PermissionCreate, PermissionRead, PermissionUpdate},
	ResourceRecipients: {PermissionCreate, PermissionRead, PermissionUpdate},
	ResourceBalances:   {PermissionRead},
}

// Resources returns all known resources in a stable order.
func Resources() []Resource {
	return slices.Sorted(maps.Keys(resourcePermissions))
}

// Grants maps a permission to whether it is granted.
type Grants map[Permission]bool

// Actions is the permission matrix of a Configuration.
type Actions map[Resource]Grants

// Allows reports whether permission is granted on resource.
func (a Actions) Allows(resource Resource, permission Permission) bool {
	grants, ok := a[resource]
	if !ok {
		return false
	}
	return grants[permission]
}

// Validate rejects unknown resources and permissions.
func (a Actions) Validate() error {
	for resource, grants := range a {
		valid, ok := resourcePermissions[resource]
		if !ok {
			return fmt.Errorf("unknown resource %q (valid resources: %s)", resource, joinResources(Resources()))
		}
		for permission := range grants {
			if !slices.Contains(valid, permission) {
				return fmt.Errorf("permission %q is not valid for resource %q (valid permissions: %s)",
					permission, resource, joinPermissions(valid))
			}
		}
	}
	return nil
}

// Clone returns a deep copy of a.
func (a Actions) Clone() Actions {
	if a == nil {
		return nil
	}
	out := make(Actions, len(a))
	for resource, grants := range a {
		out[resource] = maps.Clone(grants)
	}
	return out
}

// AllActions grants every valid permission on every resource.
func AllActions() Actions {
	a := make(Actions, len(resourcePermissions))
	for resource, permissions := range resourcePermissions {
		grants := make(Grants, len(permissions))
		for _, p := range permissions {
			grants[p] = true
		}
		a[resource] = grants
	}
	return a
}

// ParseActions parses "all", "none" or a comma-separated list of
// resource.permission pairs such as "transfers.create,quotes.read".
func ParseActions(value string) (Actions, error) {
	value = strings.TrimSpace(value)

	switch strings.ToLower(value) {
	case "all":
		return AllActions(), nil
	case "none", "":
		return Actions{}, nil
	}

	a := Actions{}
	for pair := range strings.SplitSeq(value, ",") {
		pair = strings.TrimSpace(strings.ToLower(pair))
		if pair == "" {
			continue
		}

		resource, permission, ok := strings.Cut(pair, ".")
		if !ok || resource == "" || permission == "" {
			return nil, fmt.Errorf("invalid action %q: expected resource.permission", pair)
		}

		if a[Resource(resource)] == nil {
			a[Resource(resource)] = Grants{}
		}
		a[Resource(resource)][Permission(permission)] = true
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// IsToolAllowed reports whether every permission in required is granted by cfg.
// A resource missing from cfg grants nothing.
func IsToolAllowed(required map[Resource][]Permission, cfg Configuration) bool {
	for resource, permissions := range required {
		grants, ok := cfg.Actions[resource]
		if !ok {
			return false
		}
		for _, permission := range permissions {
			if !grants[permission] {
				return false
			}
		}
	}
	return true
}

func joinResources(resources []Resource) string {
	names := make([]string, len(resources))
	for i, r := range resources {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

func joinPermissions(permissions []Permission) string {
	names := make([]string, len(permissions))
	for i, p := range permissions {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
