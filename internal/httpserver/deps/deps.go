package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/portico-home/portico/internal/generator"
	"github.com/portico-home/portico/internal/index"
	"github.com/portico-home/portico/internal/logger"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	AllowedHosts  []string             // Host headers allowed to access the server
	AllowedCIDRS  []string             // IPs allowed to access operator endpoints
	TrustProxy    bool                 // true if running behind a trusted reverse proxy
	RedisClient   *redis.Client        // nil when the snapshot cache is disabled
	Snapshot      *index.Snapshot      // entries from the last generation pass
	Page          generator.PageConfig // client rendering hints served in apps.json
	ReloadTrigger chan struct{}        // channel to trigger a manual generation pass
}
