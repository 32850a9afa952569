// Package gate implements the per-request role-based access decision: every
// request to a protected zone is resolved against the caller's session and
// either passed through or answered with a single deterministic redirect.
package gate

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/medimart/storefront-gateway/internal/metrics"
	"github.com/medimart/storefront-gateway/internal/models"
)

// Redirect targets. The customer dashboard root is outside every restricted
// zone, so bouncing cross-role traffic there cannot loop.
const (
	LoginPath             = "/login"
	DispatchPath          = "/dashboard"
	CustomerDashboardRoot = "/customer-dashboard"
	AdminHome             = "/admin-dashboard/profile"
	SellerHome            = "/seller-dashboard/profile"
	CustomerHome          = "/customer-dashboard/profile"
)

// Zone classifies a request path. Classification is a pure function of the
// path string and never consults the session.
type Zone int

const (
	ZoneNeutral Zone = iota
	ZoneCustomer
	ZoneSeller
	ZoneAdmin
	ZoneDispatch
)

func (z Zone) String() string {
	switch z {
	case ZoneCustomer:
		return "customer"
	case ZoneSeller:
		return "seller"
	case ZoneAdmin:
		return "admin"
	case ZoneDispatch:
		return "dispatch"
	default:
		return "neutral"
	}
}

// pathHasPrefix matches whole path segments: /cart and /cart/items match the
// /cart prefix, /cartoons does not.
func pathHasPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Classify maps a path onto its access zone.
func Classify(path string) Zone {
	switch {
	case pathHasPrefix(path, "/cart"), pathHasPrefix(path, "/order"):
		return ZoneCustomer
	case pathHasPrefix(path, "/seller-dashboard"):
		return ZoneSeller
	case pathHasPrefix(path, "/admin-dashboard"):
		return ZoneAdmin
	case pathHasPrefix(path, DispatchPath):
		return ZoneDispatch
	default:
		return ZoneNeutral
	}
}

// Decision is the gate's verdict for one request.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func allow() Decision             { return Decision{Allow: true} }
func redirect(to string) Decision { return Decision{RedirectTo: to} }

// Decide evaluates the access rules in fixed order; the first applicable rule
// wins. The session must already be fail-closed: a lookup failure is an
// unauthenticated session, never an error here.
func Decide(path string, session models.Session) Decision {
	zone := Classify(path)
	if zone == ZoneNeutral {
		return allow()
	}
	if !session.Authenticated {
		return redirect(LoginPath)
	}
	if zone == ZoneCustomer && session.Role != models.RoleCustomer {
		return redirect(LoginPath)
	}
	if zone == ZoneDispatch {
		switch session.Role {
		case models.RoleAdmin:
			return redirect(AdminHome)
		case models.RoleSeller:
			return redirect(SellerHome)
		case models.RoleCustomer:
			return redirect(CustomerHome)
		default:
			return redirect(LoginPath)
		}
	}
	if zone == ZoneSeller && session.Role != models.RoleSeller {
		return redirect(CustomerDashboardRoot)
	}
	if zone == ZoneAdmin && session.Role != models.RoleAdmin {
		return redirect(CustomerDashboardRoot)
	}
	return allow()
}

// SessionSource resolves the caller's session from the auth provider using
// the inbound request's cookies.
type SessionSource interface {
	GetSession(ctx context.Context, cookie string) (models.Session, error)
}

const sessionKey = "gateway.session"

// SessionFrom returns the session the gate middleware attached to the
// request. Handlers on neutral paths may see an anonymous session.
func SessionFrom(c *gin.Context) models.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(models.Session); ok {
			return s
		}
	}
	return models.Anonymous()
}

// Middleware resolves the session once per request and enforces Decide.
// Session lookup failures are fail-closed: the caller is treated as
// unauthenticated so a provider outage never exposes protected content.
func Middleware(sessions SessionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		session, err := sessions.GetSession(c.Request.Context(), c.GetHeader("Cookie"))
		if err != nil {
			log.WithFields(log.Fields{
				"path": path,
			}).Warn("Session lookup failed, treating request as unauthenticated: ", err)
			session = models.Anonymous()
		}
		c.Set(sessionKey, session)

		decision := Decide(path, session)
		if decision.Allow {
			c.Next()
			return
		}

		metrics.GateRedirectsTotal.WithLabelValues(Classify(path).String(), session.Role.String()).Inc()
		log.WithFields(log.Fields{
			"path":     path,
			"role":     session.Role.String(),
			"redirect": decision.RedirectTo,
		}).Info("Access gate redirect")
		c.Redirect(http.StatusFound, decision.RedirectTo)
		c.Abort()
	}
}
