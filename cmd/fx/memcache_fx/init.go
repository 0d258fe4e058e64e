package memcache_fx

import (
	"go.uber.org/fx"

	mem "smilecare/pkg/memcache"
)

var Module = fx.Provide(provideResetTokenStore)

func provideResetTokenStore() mem.ResetTokenStore {
	return mem.NewResetTokens()
}
