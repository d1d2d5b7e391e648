package cli

import (
	"context"

	"github.com/nuxt/nuxt-eslint/internal/config"
	"github.com/nuxt/nuxt-eslint/internal/devtools"
	"github.com/nuxt/nuxt-eslint/internal/hook"
)

// devtoolsSession is the inspector plus the tab registry it reports to.
type devtoolsSession struct {
	Inspector *devtools.Inspector
	Tabs      *devtools.Registry
}

// newDevtoolsSession registers the inspector tab on devtools:customTabs and
// refreshes the registry whenever devtools:customTabs:refresh fires. The
// inspector subprocess lives until ctx is done.
func newDevtoolsSession(ctx context.Context, d *Dependencies, cfg *config.Config) *devtoolsSession {
	s := &devtoolsSession{}
	s.Tabs = devtools.NewRegistry(func(ctx context.Context) ([]devtools.Tab, error) {
		payload := &hook.Payload{}
		if err := d.Hooks.Dispatch(ctx, hook.EventCustomTabs, payload); err != nil {
			return nil, err
		}
		return payload.Tabs, nil
	})
	s.Inspector = devtools.NewInspector(ctx, devtools.InspectorOptions{
		RootDir:  cfg.RootDir,
		Config:   cfg.DevTools.Inspector,
		Resolver: d.Resolver,
		Starter:  &devtools.ExecStarter{},
		Refresh: func(ctx context.Context) error {
			return d.Hooks.Dispatch(ctx, hook.EventCustomTabsRefresh, &hook.Payload{})
		},
		Logger: d.Logger,
	})

	d.Hooks.Register(hook.On(hook.EventCustomTabs, func(_ context.Context, p *hook.Payload) error {
		p.Tabs = append(p.Tabs, s.Inspector.Tab())
		return nil
	}))
	d.Hooks.Register(hook.On(hook.EventCustomTabsRefresh, func(ctx context.Context, _ *hook.Payload) error {
		return s.Tabs.Refresh(ctx)
	}))
	if err := s.Tabs.Refresh(ctx); err != nil {
		d.Logger.Warn("devtools tabs not collected", "error", err)
	}
	return s
}
