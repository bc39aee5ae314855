package docker

import (
	"strings"

	"github.com/portico-home/portico/internal/domain"
	"github.com/portico-home/portico/internal/logger"
)

// appLabelPrefix is the namespace for external-app declarations on the
// control entity: portico.app.<name>.<attribute>.
const appLabelPrefix = LabelPrefix + "app."

// ExternalApps parses manual dashboard declarations from the control
// entity's labels. The control entity is found by exact name, then by name
// containment, then by presence of declaration labels.
func (c *Collector) ExternalApps(entities []Entity) map[string]domain.ExternalApp {
	control, ok := c.findControl(entities)
	if !ok {
		c.log.Debug("no control entity found, no external apps declared")
		return map[string]domain.ExternalApp{}
	}

	apps := make(map[string]domain.ExternalApp)
	for _, key := range sortedLabelKeys(control.Labels) {
		if !strings.HasPrefix(key, appLabelPrefix) {
			continue
		}
		rest := key[len(appLabelPrefix):]
		dot := strings.IndexByte(rest, '.')
		if dot <= 0 || dot == len(rest)-1 {
			c.log.Debug("malformed external app label, skipping",
				logger.String("label", key))
			continue
		}
		name, attr := rest[:dot], rest[dot+1:]
		value := control.Labels[key]

		app := apps[name]
		app.Name = name
		applyAppAttr(&app, attr, value)
		apps[name] = app
	}

	c.log.Info("parsed external app declarations",
		logger.String("control", control.Name),
		logger.Int("count", len(apps)))
	return apps
}

// findControl prefers the configured exact name, then a name containing it,
// then any entity that carries declaration labels at all.
func (c *Collector) findControl(entities []Entity) (Entity, bool) {
	for _, e := range entities {
		if e.Name == c.control {
			return e, true
		}
	}
	for _, e := range entities {
		if strings.Contains(e.Name, c.control) {
			return e, true
		}
	}
	for _, e := range entities {
		for key := range e.Labels {
			if strings.HasPrefix(key, appLabelPrefix) {
				return e, true
			}
		}
	}
	return Entity{}, false
}

func applyAppAttr(app *domain.ExternalApp, attr, value string) {
	switch attr {
	case "enable":
		app.Enabled = strings.EqualFold(value, "true")
	case "alias":
		app.Alias = value
	case "icon":
		app.Icon = value
	case "url":
		// A comma-separated value declares several explicit targets.
		for _, u := range strings.Split(value, ",") {
			if u = strings.TrimSpace(u); u != "" {
				app.URLs = append(app.URLs, u)
			}
		}
	case "router":
		app.Router = value
	case "admin":
		app.Admin = strings.EqualFold(value, "true")
	case "category":
		app.Category = value
	case "description":
		app.Description = value
	}
}
