// Package enterprise registers the enterprise edition on top of the core
// product. It replaces the core password provider with its own and adds
// SSO providers, roles, license tiers, data sync connectors and builder
// extensions.
package enterprise

import (
	"fmt"

	"github.com/moasq/capreg/internal/capability"
	"github.com/moasq/capreg/internal/producers/core"
	"github.com/moasq/capreg/internal/registry"
)

// Module is the enterprise edition producer.
type Module struct{}

// New returns the enterprise producer.
func New() *Module { return &Module{} }

func (m *Module) Name() string { return "enterprise" }

// Register must run after the core module; it expects the core password
// provider to be present and fails with registry.ErrNotFound otherwise.
func (m *Module) Register(r *registry.Registry) error {
	if err := r.Register(capability.CategoryPlugin, plugin()); err != nil {
		return err
	}
	if err := r.RegisterEach(capability.CategoryPermissionManager,
		named("role", "Role based", "Grants operations from the user's workspace and team roles"),
		named("write_field_values", "Write field values", "Restricts writes to fields with field level permissions"),
	); err != nil {
		return err
	}

	if err := r.Register(capability.CategoryAdmin, named("auth_providers", "Authentication", "Configure login methods")); err != nil {
		return err
	}
	if err := m.registerAuthProviders(r); err != nil {
		return err
	}
	if err := r.Register(capability.CategoryAdmin, gated("audit_log", "Audit log", "Track user actions", FeatureAuditLog)); err != nil {
		return err
	}

	steps := []struct {
		cat     registry.Category
		entries []registry.Entry
	}{
		{capability.CategoryMembersPagePlugin, []registry.Entry{
			gated("enterprise_members", "Member roles", "Role and team columns on the members page", FeatureRBAC),
		}},
		{capability.CategoryWorkspaceSettingsPage, []registry.Entry{
			gated("teams", "Teams", "Manage workspace teams", FeatureRBAC),
		}},
		{capability.CategoryLicense, licenses()},
		{capability.CategoryUserSource, []registry.Entry{
			named("local_table", "Local table", "Application users stored in a table of the workspace"),
		}},
		{capability.CategoryAppAuthProvider, appAuthProviders()},
		{capability.CategoryRole, roles()},
		{capability.CategoryElement, []registry.Entry{
			named("auth_form", "Login form", "Login form for application users"),
			gated("input_file", "File input", "Upload files from a published application", FeatureBuilderFileInput),
		}},
		{capability.CategoryDataSync, dataSyncs()},
		{capability.CategoryNotification, []registry.Entry{
			named("periodic_data_sync_deactivated", "Periodic sync deactivated", "A periodic data sync was disabled after repeated failures"),
		}},
		{capability.CategoryConfigureDataSync, []registry.Entry{
			gated("periodic_interval", "Periodic interval", "Run a data sync on a schedule", FeatureDataSync),
		}},
		{capability.CategoryWebhookEvent, []registry.Entry{
			&capability.WebhookEventType{
				Descriptor: capability.Descriptor{Key: "view.rows_entered", Title: "Rows enter view", Feature: FeatureAdvancedWebhooks},
				Event:      "view.rows_entered",
			},
		}},
		{capability.CategoryPaidFeature, paidFeatures()},
		{capability.CategoryBuilderPageDecorator, []registry.Entry{
			gated("made_with_branding", "Made with badge", "Badge shown on published pages without co-branding", FeatureBuilderBranding),
		}},
		{capability.CategoryFieldContextItem, []registry.Entry{
			gated("field_permissions", "Field permissions", "Edit who may write to a field", FeatureFieldLevelPermissions),
		}},
		{capability.CategoryBuilderSettings, []registry.Entry{
			gated("custom_code", "Custom code", "Inject custom CSS and JavaScript", FeatureBuilderCustomCode),
		}},
	}
	for _, s := range steps {
		if err := r.RegisterEach(s.cat, s.entries...); err != nil {
			return err
		}
	}
	return nil
}

// registerAuthProviders supersedes the core password provider, then adds the
// SSO providers in the order the login page lists them.
func (m *Module) registerAuthProviders(r *registry.Registry) error {
	if err := r.Supersede(capability.CategoryAuthProvider, core.PasswordAuthProviderID, passwordProvider()); err != nil {
		return fmt.Errorf("supersede core password provider: %w", err)
	}
	return r.RegisterEach(capability.CategoryAuthProvider, ssoProviders()...)
}

func plugin() *capability.Descriptor {
	return named("enterprise", "Enterprise", "Enterprise edition")
}

func named(id, title, summary string) *capability.Descriptor {
	return &capability.Descriptor{Key: id, Title: title, Summary: summary}
}

func gated(id, title, summary, feature string) *capability.Descriptor {
	return &capability.Descriptor{Key: id, Title: title, Summary: summary, Feature: feature}
}
