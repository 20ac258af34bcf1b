// Package permissions checks granted permissions against required ones,
// with support for wildcards.
//
// Permission Format:
//   - "*" - Full access (all permissions)
//   - "resource.*" - All actions on a resource (e.g., "inventory.*")
//   - "resource.action" - Specific action (e.g., "inventory.export")
package permissions

import (
	"strings"
)

// Inventory permissions. Grants are decided upstream; the service only checks them.
const (
	InventoryRead   = "inventory.read"
	InventoryAdjust = "inventory.adjust"
	InventoryExport = "inventory.export"
	InventoryAll    = "inventory.*"
)

// Known lists the permissions this service understands
var Known = []string{
	InventoryRead,
	InventoryAdjust,
	InventoryExport,
	InventoryAll,
	"*",
}

// HasPermission checks if the user's permissions include the required permission.
// Supports wildcard matching:
//   - "*" matches everything
//   - "inventory.*" matches "inventory.read", "inventory.export", etc.
//   - Exact match for specific permissions
func HasPermission(userPerms []string, required string) bool {
	if required == "" {
		return true // No permission required
	}

	for _, p := range userPerms {
		if p == "*" {
			return true
		}
		if p == required {
			return true
		}
		if strings.HasSuffix(p, ".*") {
			prefix := strings.TrimSuffix(p, ".*")
			if strings.HasPrefix(required, prefix+".") {
				return true
			}
		}
	}
	return false
}

// HasAnyPermission checks if the user has any of the required permissions.
func HasAnyPermission(userPerms []string, required []string) bool {
	for _, req := range required {
		if HasPermission(userPerms, req) {
			return true
		}
	}
	return false
}

// HasAllPermissions checks if the user has all of the required permissions.
func HasAllPermissions(userPerms []string, required []string) bool {
	for _, req := range required {
		if !HasPermission(userPerms, req) {
			return false
		}
	}
	return true
}

// Parse splits a comma-separated permission header, dropping blanks and duplicates.
func Parse(header string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, p := range strings.Split(header, ",") {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		result = append(result, p)
	}
	return result
}
