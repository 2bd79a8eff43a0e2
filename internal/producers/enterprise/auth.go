package enterprise

import (
	"github.com/moasq/capreg/internal/capability"
	"github.com/moasq/capreg/internal/producers/core"
	"github.com/moasq/capreg/internal/registry"
)

// passwordProvider keeps the core id so existing references stay valid,
// but can be disabled by an admin once an SSO provider is configured.
func passwordProvider() *capability.AuthProviderType {
	return &capability.AuthProviderType{
		Descriptor: capability.Descriptor{
			Key:     core.PasswordAuthProviderID,
			Title:   "Email and password",
			Summary: "Email and password login, can be disabled when SSO is enforced",
		},
	}
}

func oauthFields(extra ...capability.SettingsField) []capability.SettingsField {
	fields := []capability.SettingsField{
		{Key: "client_id", Label: "Client ID", Required: true},
		{Key: "secret", Label: "Client secret", Required: true, Secret: true},
	}
	return append(fields, extra...)
}

func ssoProviders() []registry.Entry {
	return []registry.Entry{
		&capability.AuthProviderType{
			Descriptor: capability.Descriptor{Key: "saml", Title: "SAML SSO", Summary: "Login through a SAML 2.0 identity provider", Feature: FeatureSSO},
			Multiple:   true,
			Settings: []capability.SettingsField{
				{Key: "domain", Label: "Domain", Required: true},
				{Key: "metadata", Label: "Identity provider metadata", Required: true},
				{Key: "email_attr_key", Label: "Email attribute"},
				{Key: "first_name_attr_key", Label: "First name attribute"},
			},
		},
		&capability.AuthProviderType{
			Descriptor: capability.Descriptor{Key: "google", Title: "Google", Summary: "Login with a Google account", Feature: FeatureSSO},
			Settings:   oauthFields(),
		},
		&capability.AuthProviderType{
			Descriptor: capability.Descriptor{Key: "facebook", Title: "Facebook", Summary: "Login with a Facebook account", Feature: FeatureSSO},
			Settings:   oauthFields(),
		},
		&capability.AuthProviderType{
			Descriptor: capability.Descriptor{Key: "github", Title: "GitHub", Summary: "Login with a GitHub account", Feature: FeatureSSO},
			Settings:   oauthFields(),
		},
		&capability.AuthProviderType{
			Descriptor: capability.Descriptor{Key: "gitlab", Title: "GitLab", Summary: "Login with a GitLab account", Feature: FeatureSSO},
			Multiple:   true,
			Settings:   oauthFields(capability.SettingsField{Key: "base_url", Label: "GitLab URL", Required: true}),
		},
		&capability.AuthProviderType{
			Descriptor: capability.Descriptor{Key: "openid_connect", Title: "OpenID Connect", Summary: "Login through any OpenID Connect provider", Feature: FeatureSSO},
			Multiple:   true,
			Settings: oauthFields(
				capability.SettingsField{Key: "name", Label: "Display name", Required: true},
				capability.SettingsField{Key: "base_url", Label: "Issuer URL", Required: true},
			),
		},
	}
}

func appAuthProviders() []registry.Entry {
	return []registry.Entry{
		&capability.AuthProviderType{
			Descriptor: capability.Descriptor{Key: "local_password", Title: "Email and password", Summary: "Password stored in the user source table"},
		},
		&capability.AuthProviderType{
			Descriptor: capability.Descriptor{Key: "saml", Title: "SAML SSO", Summary: "Application login through a SAML identity provider", Feature: FeatureSSO},
			Multiple:   true,
		},
		&capability.AuthProviderType{
			Descriptor: capability.Descriptor{Key: "openid_connect", Title: "OpenID Connect", Summary: "Application login through an OpenID Connect provider", Feature: FeatureSSO},
			Multiple:   true,
		},
	}
}
