package enterprise

import (
	"github.com/moasq/capreg/internal/capability"
	"github.com/moasq/capreg/internal/registry"
)

// Paid feature ids.
const (
	FeatureSSO                   = "sso"
	FeatureAuditLog              = "audit_log"
	FeatureRBAC                  = "rbac"
	FeatureDataSync              = "data_sync"
	FeatureCoBranding            = "co_branding"
	FeatureAdvancedWebhooks      = "advanced_webhooks"
	FeatureFieldLevelPermissions = "field_level_permissions"
	FeatureSupport               = "support"
	FeatureBuilderBranding       = "builder_branding"
	FeatureBuilderCustomCode     = "builder_custom_code"
	FeatureBuilderFileInput      = "builder_file_input"
)

func paidFeatures() []registry.Entry {
	return []registry.Entry{
		named(FeatureSSO, "Single sign-on", "SAML, OpenID Connect and OAuth login"),
		named(FeatureAuditLog, "Audit log", ""),
		named(FeatureRBAC, "Role based access control", ""),
		named(FeatureDataSync, "Data sync", ""),
		named(FeatureCoBranding, "Co-branding", "Custom logo in the product"),
		named(FeatureAdvancedWebhooks, "Advanced webhooks", ""),
		named(FeatureFieldLevelPermissions, "Field level permissions", ""),
		named(FeatureSupport, "Direct support", ""),
		named(FeatureBuilderBranding, "Builder branding", "Remove the badge from published applications"),
		named(FeatureBuilderCustomCode, "Builder custom code", ""),
		named(FeatureBuilderFileInput, "Builder file input", ""),
	}
}

// Role ids, highest priority first.
const (
	RoleAdmin             = "ADMIN"
	RoleMember            = "MEMBER"
	RoleBuilder           = "BUILDER"
	RoleEditor            = "EDITOR"
	RoleCommenter         = "COMMENTER"
	RoleViewer            = "VIEWER"
	RoleNoAccess          = "NO_ACCESS"
	RoleNoRoleLowPriority = "NO_ROLE_LOW_PRIORITY"
)

// roles must keep this order: consumers resolve conflicting role assignments
// by taking the earliest registered role.
func roles() []registry.Entry {
	return []registry.Entry{
		named(RoleAdmin, "Admin", "Full control of the workspace"),
		named(RoleMember, "Member", "Create and edit databases and applications"),
		named(RoleBuilder, "Builder", "Edit structure of existing databases and applications"),
		named(RoleEditor, "Editor", "Edit data"),
		named(RoleCommenter, "Commenter", "Read data and comment on rows"),
		named(RoleViewer, "Viewer", "Read data"),
		named(RoleNoAccess, "No access", "Explicitly denied access"),
		named(RoleNoRoleLowPriority, "No role", "Placeholder when no role is assigned"),
	}
}

var advancedFeatures = []string{
	FeatureSSO,
	FeatureAuditLog,
	FeatureRBAC,
	FeatureDataSync,
	FeatureCoBranding,
	FeatureAdvancedWebhooks,
	FeatureFieldLevelPermissions,
	FeatureBuilderBranding,
	FeatureBuilderCustomCode,
	FeatureBuilderFileInput,
}

func licenses() []registry.Entry {
	withSupport := append(append([]string{}, advancedFeatures...), FeatureSupport)
	return []registry.Entry{
		&capability.LicenseType{
			Descriptor: capability.Descriptor{Key: "advanced", Title: "Advanced"},
			Rank:       50,
			Includes:   advancedFeatures,
		},
		&capability.LicenseType{
			Descriptor: capability.Descriptor{Key: "enterprise_without_support", Title: "Enterprise (no support)"},
			Rank:       99,
			Includes:   advancedFeatures,
		},
		&capability.LicenseType{
			Descriptor: capability.Descriptor{Key: "enterprise", Title: "Enterprise"},
			Rank:       100,
			Includes:   withSupport,
		},
	}
}

func dataSyncs() []registry.Entry {
	sync := func(id, title string, fields ...string) registry.Entry {
		return &capability.DataSyncType{
			Descriptor:   capability.Descriptor{Key: id, Title: title, Feature: FeatureDataSync},
			SyncedFields: fields,
		}
	}
	return []registry.Entry{
		sync("local_table", "Local table", "*"),
		sync("jira_issues", "Jira issues", "jira_id", "summary", "description", "assignee", "reporter", "labels", "created", "updated", "resolved", "due", "status", "project", "url"),
		sync("github_issues", "GitHub issues", "id", "title", "body", "user", "assignee", "assignees", "labels", "state", "created_at", "updated_at", "closed_at", "closed_by", "milestone", "url"),
		sync("gitlab_issues", "GitLab issues", "id", "iid", "project_id", "title", "description", "state", "created_at", "updated_at", "closed_at", "closed_by", "assignees", "author", "labels", "url"),
		sync("hubspot_contacts", "HubSpot contacts", "id", "email", "first_name", "last_name", "created_at", "updated_at"),
	}
}
