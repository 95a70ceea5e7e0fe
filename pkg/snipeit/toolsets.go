package snipeit

import "github.com/snipeit-community/snipeit-mcp-server/pkg/toolsets"

// Toolset metadata for every toolset in this server. Tools reference these
// directly so each tool is self-describing.
var (
	ToolsetMetadataAssets = toolsets.ToolsetMetadata{
		ID:          "assets",
		Description: "Asset CRUD, lifecycle operations (checkout, checkin, audit, restore), files, labels, maintenance and checkout requests",
		Default:     true,
	}
	ToolsetMetadataInventory = toolsets.ToolsetMetadata{
		ID:          "inventory",
		Description: "Consumables, components and accessories, including checkout and checkin",
		Default:     true,
	}
	ToolsetMetadataLicensing = toolsets.ToolsetMetadata{
		ID:          "licensing",
		Description: "Software licenses, seat assignments and license files",
		Default:     true,
	}
	ToolsetMetadataUsers = toolsets.ToolsetMetadata{
		ID:          "users",
		Description: "Users, their checked-out items, companies, departments and permission groups",
		Default:     true,
	}
	ToolsetMetadataSettings = toolsets.ToolsetMetadata{
		ID:          "settings",
		Description: "Categories, manufacturers, models, status labels, locations, suppliers and depreciations",
		Default:     true,
	}
	ToolsetMetadataFields = toolsets.ToolsetMetadata{
		ID:          "fields",
		Description: "Custom fields and fieldsets",
		Default:     false,
	}
	ToolsetMetadataReports = toolsets.ToolsetMetadata{
		ID:          "reports",
		Description: "Activity reports, status summaries and audit tracking",
		Default:     true,
	}
	ToolsetMetadataAdmin = toolsets.ToolsetMetadata{
		ID:          "admin",
		Description: "System information, backups, LDAP operations and CSV imports",
		Default:     false,
	}
)
