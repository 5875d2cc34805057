package handlers

import (
	"crypto/subtle"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	apperrors "altrion/internal/errors"
	"altrion/internal/logger"
	"altrion/internal/models"
	"altrion/internal/oauth"
	"altrion/internal/services"
)

const stateCookieMaxAge = 600

// OAuthHandler handles the Google and GitHub sign-in redirects.
type OAuthHandler struct {
	providers    oauth.Registry
	userService  services.UserServicer
	auditService services.AuditServicer
	frontendURL  string
	secureCookie bool
}

// NewOAuthHandler creates a new OAuthHandler. Tokens are handed to the
// frontend at frontendURL/auth/callback.
func NewOAuthHandler(providers oauth.Registry, userService services.UserServicer, auditService services.AuditServicer, frontendURL string, secureCookie bool) *OAuthHandler {
	return &OAuthHandler{
		providers:    providers,
		userService:  userService,
		auditService: auditService,
		frontendURL:  frontendURL,
		secureCookie: secureCookie,
	}
}

func (h *OAuthHandler) provider(c *gin.Context) (*oauth.Provider, error) {
	p, ok := h.providers.Lookup(models.AuthProvider(c.Param("provider")))
	if !ok {
		return nil, apperrors.ErrOAuthDisabled
	}
	return p, nil
}

// Begin redirects to the provider's consent page
// @Summary     Start OAuth sign-in
// @Description Redirect to Google or GitHub. Sets a short-lived state cookie.
// @Tags        auth
// @Param       provider path string true "Provider" Enums(google, github)
// @Success     307 "Redirect to provider"
// @Failure     404 {object} ErrorResponse "Provider not configured"
// @Router      /auth/{provider} [get]
func (h *OAuthHandler) Begin(c *gin.Context) {
	p, err := h.provider(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	state, err := oauth.NewState()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauth.StateCookieName, state, stateCookieMaxAge, "/", "", h.secureCookie, true)
	c.Redirect(http.StatusTemporaryRedirect, p.AuthCodeURL(state))
}

// Callback completes the sign-in and redirects to the frontend with tokens
// @Summary     OAuth callback
// @Description Exchange the code, find or create the user, and redirect to the frontend with access and refresh tokens
// @Tags        auth
// @Param       provider path  string true "Provider" Enums(google, github)
// @Param       code     query string true "Authorization code"
// @Param       state    query string true "State"
// @Success     307 "Redirect to frontend"
// @Failure     404 {object} ErrorResponse "Provider not configured"
// @Router      /auth/{provider}/callback [get]
func (h *OAuthHandler) Callback(c *gin.Context) {
	p, err := h.provider(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cookieState, _ := c.Cookie(oauth.StateCookieName)
	c.SetCookie(oauth.StateCookieName, "", -1, "/", "", h.secureCookie, true)

	state := c.Query("state")
	if state == "" || subtle.ConstantTimeCompare([]byte(state), []byte(cookieState)) != 1 {
		h.fail(c, p, oauth.ErrStateMismatch)
		return
	}

	identity, err := p.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.fail(c, p, err)
		return
	}

	user, err := h.userService.FindOrCreateOAuthUser(identity)
	if err != nil {
		h.fail(c, p, err)
		return
	}

	accessToken, refreshToken, err := issueTokens(h.userService, user)
	if err != nil {
		h.fail(c, p, err)
		return
	}

	h.auditService.Log(user.ID, services.ActionOAuthSignin, "user", user.ID, c.ClientIP(),
		map[string]any{"provider": string(p.Name())})

	q := url.Values{}
	q.Set("accessToken", accessToken)
	q.Set("refreshToken", refreshToken)
	c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/auth/callback?"+q.Encode())
}

// Failure redirects to the frontend sign-in page with an error
// @Summary     OAuth failure
// @Tags        auth
// @Success     307 "Redirect to frontend"
// @Router      /auth/oauth/failure [get]
func (h *OAuthHandler) Failure(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, h.failureURL())
}

func (h *OAuthHandler) fail(c *gin.Context, p *oauth.Provider, err error) {
	logger.Get().Warnw("oauth sign-in failed", "provider", p.Name(), "error", err)
	c.Redirect(http.StatusTemporaryRedirect, h.failureURL())
}

func (h *OAuthHandler) failureURL() string {
	return h.frontendURL + "/signin?error=oauth_failed"
}
