// Package core registers the base product's default capabilities.
package core

import (
	"github.com/moasq/capreg/internal/capability"
	"github.com/moasq/capreg/internal/registry"
)

// Module is the core product producer.
type Module struct{}

// New returns the core producer.
func New() *Module { return &Module{} }

func (m *Module) Name() string { return "core" }

// PasswordAuthProviderID is the id of the default login method. Editions
// that ship their own password provider supersede this entry.
const PasswordAuthProviderID = "password"

// Register adds every core entry. It must run before any edition module.
func (m *Module) Register(r *registry.Registry) error {
	steps := []struct {
		cat     registry.Category
		entries []registry.Entry
	}{
		{capability.CategoryPlugin, []registry.Entry{
			named("core", "Core", "Base product"),
		}},
		{capability.CategoryPermissionManager, []registry.Entry{
			named("core", "Core", "Operations every authenticated user may perform"),
			named("staff", "Staff", "Instance administrators"),
			named("member", "Workspace member", "Membership check for workspace operations"),
			named("basic", "Basic", "Admin or member based workspace permissions"),
		}},
		{capability.CategoryAdmin, []registry.Entry{
			named("settings", "Settings", "Instance settings"),
			named("health", "Health", "Instance health checks"),
		}},
		{capability.CategoryAuthProvider, []registry.Entry{
			PasswordAuthProvider(),
		}},
		{capability.CategoryElement, elements()},
		{capability.CategoryWebhookEvent, webhookEvents()},
		{capability.CategoryDataSync, []registry.Entry{
			&capability.DataSyncType{
				Descriptor:   capability.Descriptor{Key: "ical_calendar", Title: "iCal calendar", Summary: "Events from a public iCal feed"},
				SyncedFields: []string{"uid", "dtstart", "dtend", "summary"},
			},
			&capability.DataSyncType{
				Descriptor:   capability.Descriptor{Key: "postgresql", Title: "PostgreSQL table", Summary: "Rows from an external PostgreSQL table"},
				SyncedFields: []string{"*"},
			},
		}},
		{capability.CategoryNotification, []registry.Entry{
			named("collaborator_added_to_row", "Collaborator added", "A user was added to a collaborator field"),
			named("workspace_invitation_accepted", "Invitation accepted", "A workspace invitation was accepted"),
		}},
		{capability.CategoryBuilderDataProvider, dataProviders()},
	}

	for _, s := range steps {
		if err := r.RegisterEach(s.cat, s.entries...); err != nil {
			return err
		}
	}
	return nil
}

// PasswordAuthProvider returns the core email/password login method.
func PasswordAuthProvider() *capability.AuthProviderType {
	return &capability.AuthProviderType{
		Descriptor: capability.Descriptor{
			Key:     PasswordAuthProviderID,
			Title:   "Email and password",
			Summary: "Built-in email and password login",
		},
	}
}

func named(id, title, summary string) *capability.Descriptor {
	return &capability.Descriptor{Key: id, Title: title, Summary: summary}
}

func elements() []registry.Entry {
	return []registry.Entry{
		named("heading", "Heading", ""),
		named("text", "Text", ""),
		named("link", "Link", ""),
		named("image", "Image", ""),
		named("input_text", "Text input", ""),
		named("button", "Button", ""),
		named("table", "Table", ""),
		named("form_container", "Form", ""),
		named("choice", "Choice", ""),
		named("checkbox", "Checkbox", ""),
		named("iframe", "IFrame", ""),
		named("columns", "Columns", ""),
	}
}

func webhookEvents() []registry.Entry {
	var out []registry.Entry
	for _, ev := range []struct{ id, title string }{
		{"rows.created", "Rows created"},
		{"rows.updated", "Rows updated"},
		{"rows.deleted", "Rows deleted"},
		{"field.created", "Field created"},
		{"field.updated", "Field updated"},
		{"field.deleted", "Field deleted"},
		{"view.created", "View created"},
		{"view.updated", "View updated"},
		{"view.deleted", "View deleted"},
	} {
		out = append(out, &capability.WebhookEventType{
			Descriptor: capability.Descriptor{Key: ev.id, Title: ev.title},
			Event:      ev.id,
		})
	}
	return out
}

// dataProviders are the formula data sources a published page can read from.
func dataProviders() []registry.Entry {
	return []registry.Entry{
		named("page_parameter", "Page parameter", "Values of the current page's path and query parameters"),
		named("form_data", "Form data", "Values entered in form elements on the page"),
		named("current_record", "Current record", "The record of the enclosing repeat or table element"),
		named("data_source", "Data source", "Results of page and shared data sources"),
		named("data_source_context", "Data source context", "Metadata of data sources, such as select options"),
		named("previous_action", "Previous action", "Results of earlier actions in the same workflow"),
		named("user", "User", "The logged-in application user"),
	}
}
