package activity

import (
	"context"
	"fmt"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type monitoredRoute struct {
	pattern    *regexp.Regexp
	actionType string
	entityType string
}

// Routes whose successful responses are logged automatically. Mutations
// are recorded by the services themselves (inside their transaction), so
// only reads and logins belong here.
var monitoredRoutes = []monitoredRoute{
	{regexp.MustCompile(`^/api/v1/auth/login$`), ActionLogin, EntitySystem},
	{regexp.MustCompile(`^/api/v1/auth/logout$`), ActionLogout, EntitySystem},
	{regexp.MustCompile(`^/api/v1/employees/([0-9a-f-]{36})$`), ActionView, EntityEmployee},
	{regexp.MustCompile(`^/api/v1/attestations/([0-9a-f-]{36})$`), ActionView, EntityAttestation},
	{regexp.MustCompile(`^/api/v1/missions/([0-9a-f-]{36})$`), ActionView, EntityMission},
}

// AutoLog appends a log entry after successful responses on monitored
// routes. It runs after the handler and never fails the request.
func AutoLog(recorder Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodPost {
			return
		}

		path := c.Request.URL.Path
		for _, route := range monitoredRoutes {
			m := route.pattern.FindStringSubmatch(path)
			if m == nil {
				continue
			}

			entityID := ""
			if len(m) > 1 {
				entityID = m[1]
			}

			description := fmt.Sprintf("%s %s", route.actionType, route.entityType)
			if entityID != "" {
				description += " " + entityID
			}

			entry := Entry{
				UserID:      c.GetString("user_id"),
				UserEmail:   c.GetString("email"),
				ActionType:  route.actionType,
				EntityType:  route.entityType,
				EntityID:    entityID,
				Description: description,
				IPAddress:   c.ClientIP(),
				UserAgent:   c.Request.UserAgent(),
			}

			// The response is already written; use a fresh context so a
			// cancelled request cannot drop the entry.
			if err := recorder.Record(context.WithoutCancel(c.Request.Context()), entry); err != nil {
				zap.L().Named("activity.autolog").Warn("auto log failed", zap.Error(err))
			}
			return
		}
	}
}
