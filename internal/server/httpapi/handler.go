package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/maaz2022/ourtracker/internal/common"
	"github.com/maaz2022/ourtracker/internal/server/auth"
	"github.com/maaz2022/ourtracker/internal/server/services"
)

// statusFor maps an action error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrAuthFieldsRequired), errors.Is(err, services.ErrFieldsRequired):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthenticated), errors.Is(err, services.ErrWrongCredentials),
		errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrSessionExpired):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrCredentialsExist):
		return http.StatusConflict
	case errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAuthFailed), errors.Is(err, common.ErrorInternal):
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func formBool(c *gin.Context, key string) bool {
	b, err := strconv.ParseBool(c.PostForm(key))
	return err == nil && b
}

// form parses the body, url-encoded or multipart, and returns its fields.
func form(c *gin.Context) services.Form {
	_ = c.Request.ParseMultipartForm(32 << 20)
	return c.Request.PostForm
}

func (s *HTTPServer) setSessionCookies(c *gin.Context, p *auth.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.SessionCookieName, p.AccessToken, int(s.sessionTTL.Seconds()), "/", "", false, true)
	c.SetCookie(common.RefreshCookieName, p.RefreshToken, 0, "/actions/session", "", false, true)
}

func (s *HTTPServer) loginSignup(isLogin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := s.actions.Auth.LoginSignup(c.Request.Context(), form(c), isLogin)
		if err != nil {
			out := gin.H{"error": err.Error()}
			if res != nil && res.ErrorKind != "" {
				out["kind"] = res.ErrorKind
			}
			c.JSON(statusFor(err), out)
			return
		}

		s.setSessionCookies(c, res.Session)
		c.Redirect(http.StatusSeeOther, res.Destination)
	}
}

func refreshToken(c *gin.Context) string {
	if v := c.PostForm("refreshToken"); v != "" {
		return v
	}
	v, _ := c.Cookie(common.RefreshCookieName)
	return v
}

func (s *HTTPServer) refreshSession(c *gin.Context) {
	pair, err := s.actions.Auth.Refresh(c.Request.Context(), refreshToken(c))
	if err != nil {
		writeError(c, err)
		return
	}
	s.setSessionCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{"accessToken": pair.AccessToken, "refreshToken": pair.RefreshToken})
}

func (s *HTTPServer) signOut(c *gin.Context) {
	if err := s.actions.Auth.SignOut(c.Request.Context(), refreshToken(c)); err != nil {
		writeError(c, err)
		return
	}
	c.SetCookie(common.SessionCookieName, "", -1, "/", "", false, true)
	c.SetCookie(common.RefreshCookieName, "", -1, "/actions/session", "", false, true)
	c.Status(http.StatusNoContent)
}

func (s *HTTPServer) upsertInventory(c *gin.Context) {
	inv, err := s.actions.Inventories.Upsert(c.Request.Context(), form(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (s *HTTPServer) transferInventory(c *gin.Context) {
	res, err := s.actions.Inventories.Transfer(c.Request.Context(), c.Param("id"), c.PostForm("userId"), formBool(c, "isAdmin"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *HTTPServer) deleteInventory(c *gin.Context) {
	if err := s.actions.Inventories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *HTTPServer) updateUserRole(c *gin.Context) {
	user, err := s.actions.Users.UpdateRole(c.Request.Context(), form(c), formBool(c, "isAdmin"), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *HTTPServer) deleteUser(c *gin.Context) {
	if err := s.actions.Users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *HTTPServer) deleteTrackOrder(c *gin.Context) {
	if err := s.actions.TrackOrders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *HTTPServer) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
