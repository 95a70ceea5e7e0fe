package snipeit

import (
	"github.com/snipeit-community/snipeit-mcp-server/pkg/toolsets"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/translations"
)

// AllTools returns every tool provided by the server, grouped by toolset.
// Descriptors are static; handlers pull their dependencies from the request
// context, so this list can be built before any client exists.
func AllTools(t translations.TranslationHelperFunc) []toolsets.ServerTool {
	return []toolsets.ServerTool{
		// Assets
		ManageAssets(t),
		AssetOperations(t),
		AssetRequests(t),
		AssetMaintenance(t),
		AssetLicenses(t),
		AssetLabels(t),
		AssetFiles(t),

		// Inventory
		ManageConsumables(t),
		ManageComponents(t),
		ComponentOperations(t),
		ManageAccessories(t),
		AccessoryOperations(t),

		// Licensing
		ManageLicenses(t),
		LicenseSeats(t),
		LicenseFiles(t),

		// Users and organization
		ManageUsers(t),
		UserAssets(t),
		UserTwoFactor(t),
		ManageCompanies(t),
		ManageDepartments(t),
		ManageGroups(t),

		// Settings
		ManageCategories(t),
		ManageManufacturers(t),
		ManageModels(t),
		ModelFiles(t),
		ManageStatusLabels(t),
		ManageLocations(t),
		ManageSuppliers(t),
		ManageDepreciations(t),

		// Custom fields
		ManageFields(t),
		ManageFieldsets(t),

		// Reports
		ActivityReports(t),
		StatusSummary(t),
		AuditTracking(t),

		// Administration
		SystemInfo(t),
		ManageBackups(t),
		LdapOperations(t),
		ManageImports(t),
	}
}

// NewToolsets creates a Builder preloaded with every tool and resource
// template. Callers chain filters (read-only, enabled toolsets, a tool
// allow-list) and Build() the immutable set to register.
func NewToolsets(t translations.TranslationHelperFunc) *toolsets.Builder {
	return toolsets.NewBuilder().
		SetTools(AllTools(t)).
		SetResources(AllResources(t))
}
