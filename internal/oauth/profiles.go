package oauth

import (
	"context"
	"net/http"
	"strconv"

	"altrion/internal/services"
)

type googleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func googleProfile(userInfoURL string) profileFetcher {
	return func(ctx context.Context, client *http.Client) (services.OAuthIdentity, error) {
		var info googleUserInfo
		if err := getJSON(ctx, client, userInfoURL, &info); err != nil {
			return services.OAuthIdentity{}, err
		}
		if info.Email == "" {
			return services.OAuthIdentity{}, ErrNoEmail
		}
		return services.OAuthIdentity{
			ProviderID:    info.Sub,
			Email:         info.Email,
			EmailVerified: info.EmailVerified,
			Name:          info.Name,
			Avatar:        info.Picture,
		}, nil
	}
}

type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// githubProfile reads /user and, because the public email is often empty,
// falls back to the primary verified address from /user/emails.
func githubProfile(apiBase string) profileFetcher {
	return func(ctx context.Context, client *http.Client) (services.OAuthIdentity, error) {
		var user githubUser
		if err := getJSON(ctx, client, apiBase+"/user", &user); err != nil {
			return services.OAuthIdentity{}, err
		}

		var emails []githubEmail
		if err := getJSON(ctx, client, apiBase+"/user/emails", &emails); err != nil {
			return services.OAuthIdentity{}, err
		}

		email, verified := user.Email, false
		for _, e := range emails {
			if e.Primary && e.Verified {
				email, verified = e.Email, true
				break
			}
		}
		if email == "" {
			return services.OAuthIdentity{}, ErrNoEmail
		}

		name := user.Name
		if name == "" {
			name = user.Login
		}
		return services.OAuthIdentity{
			ProviderID:    strconv.FormatInt(user.ID, 10),
			Email:         email,
			EmailVerified: verified,
			Name:          name,
			Avatar:        user.AvatarURL,
		}, nil
	}
}
