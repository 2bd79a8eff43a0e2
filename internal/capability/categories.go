// Package capability defines the categories this host recognizes and the
// contract each category's entries satisfy.
//
// The registry itself accepts any Entry. These interfaces are what consumers
// assert to when they read a category, so a producer that registers a value
// of the wrong shape is caught at lookup (registry.ErrWrongType) instead of
// deep inside a consumer.
package capability

import "github.com/moasq/capreg/internal/registry"

// Categories used by the core product and the enterprise edition.
const (
	CategoryPlugin                registry.Category = "plugin"
	CategoryPermissionManager     registry.Category = "permissionManager"
	CategoryAdmin                 registry.Category = "admin"
	CategoryAuthProvider          registry.Category = "authProvider"
	CategoryMembersPagePlugin     registry.Category = "membersPagePlugins"
	CategoryWorkspaceSettingsPage registry.Category = "workspaceSettingsPage"
	CategoryLicense               registry.Category = "license"
	CategoryUserSource            registry.Category = "userSource"
	CategoryAppAuthProvider       registry.Category = "appAuthProvider"
	CategoryRole                  registry.Category = "role"
	CategoryElement               registry.Category = "element"
	CategoryDataSync              registry.Category = "dataSync"
	CategoryNotification          registry.Category = "notification"
	CategoryConfigureDataSync     registry.Category = "configureDataSync"
	CategoryWebhookEvent          registry.Category = "webhookEvent"
	CategoryPaidFeature           registry.Category = "paidFeature"
	CategoryBuilderPageDecorator  registry.Category = "builderPageDecorator"
	CategoryFieldContextItem      registry.Category = "fieldContextItem"
	CategoryBuilderSettings       registry.Category = "builderSettings"
	CategoryBuilderDataProvider   registry.Category = "builderDataProvider"
)

// CategoryInfo describes a known category for listings.
type CategoryInfo struct {
	Category    registry.Category
	Description string
	// Ordered is true when consumers treat registration order as priority.
	Ordered bool
}

// Known lists every category the host expects, in display order.
var Known = []CategoryInfo{
	{CategoryPlugin, "Top-level product plugins", false},
	{CategoryPermissionManager, "Permission managers consulted in order", true},
	{CategoryAdmin, "Admin area pages", true},
	{CategoryAuthProvider, "Login methods for the product", true},
	{CategoryMembersPagePlugin, "Workspace members page extensions", false},
	{CategoryWorkspaceSettingsPage, "Workspace settings pages", true},
	{CategoryLicense, "License tiers", true},
	{CategoryUserSource, "Application builder user sources", false},
	{CategoryAppAuthProvider, "Login methods for published applications", true},
	{CategoryRole, "Workspace roles, highest priority first", true},
	{CategoryElement, "Application builder elements", true},
	{CategoryDataSync, "Data sync connectors", true},
	{CategoryNotification, "Notification types", false},
	{CategoryConfigureDataSync, "Data sync configuration panels", true},
	{CategoryWebhookEvent, "Webhook event types", true},
	{CategoryPaidFeature, "Paid features", true},
	{CategoryBuilderPageDecorator, "Published page decorators", true},
	{CategoryFieldContextItem, "Field context menu items", true},
	{CategoryBuilderSettings, "Application builder settings panels", true},
	{CategoryBuilderDataProvider, "Formula data providers for the application builder", false},
}

// Describe returns the CategoryInfo for cat.
func Describe(cat registry.Category) (CategoryInfo, bool) {
	for _, info := range Known {
		if info.Category == cat {
			return info, true
		}
	}
	return CategoryInfo{}, false
}
