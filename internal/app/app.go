// Package app wires configuration, registries, stores and the reconciliation
// engine into the components the commands act on.
package app

import (
	"github.com/plugmanager/plugmanager/internal/config"
	"github.com/plugmanager/plugmanager/internal/prompt"
)

// PluginApp encapsulates all components needed to run a plugmanager command
type PluginApp struct {
	config     *config.Config
	components *AppComponents
	prompter   prompt.Prompter
}

// GetConfig returns the application configuration
func (app *PluginApp) GetConfig() *config.Config {
	return app.config
}

// Components returns the wired components
func (app *PluginApp) Components() *AppComponents {
	return app.components
}

// Prompter returns the interactive input used for linking and confirmations.
// It is nil when the app was built without one.
func (app *PluginApp) Prompter() prompt.Prompter {
	return app.prompter
}

// PluginsDir returns the plugins folder a command acts on
func (app *PluginApp) PluginsDir(override string) (string, error) {
	return app.config.PluginsDir(override)
}
