package routes

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/osint-hub/backend/internal/server/middleware"
	"github.com/osint-hub/backend/pkg/common"
	pgdb "github.com/osint-hub/backend/pkg/db/pgx"
	pgstore "github.com/osint-hub/backend/pkg/store/pgx"
)

type socialAccountBody struct {
	Platform       *string `json:"platform"`
	Username       *string `json:"username"`
	UserIDPlatform *string `json:"user_id_platform"`
	DisplayName    *string `json:"display_name"`
	ProfileURL     *string `json:"profile_url" validate:"omitempty,url"`
	AvatarURL      *string `json:"avatar_url" validate:"omitempty,url"`
	Notes          *string `json:"notes"`
}

func bindSocialAccount(c echo.Context) (*socialAccountBody, error) {
	body := new(socialAccountBody)
	if err := c.Bind(body); err != nil {
		return nil, common.NewValidationError("invalid_body", "Invalid request body")
	}
	if err := c.Validate(body); err != nil {
		return nil, common.NewValidationError("invalid_body", "Invalid request body")
	}
	return body, nil
}

// apply lays the fields present in the body over current. Absent fields
// keep their value, empty strings clear them.
func (b socialAccountBody) apply(current pgdb.SocialAccount) (pgdb.SocialAccount, error) {
	next := current
	if b.Platform != nil {
		next.Platform = strings.ToLower(strings.TrimSpace(*b.Platform))
	}
	if !common.SocialPlatform(next.Platform).Valid() {
		return current, common.ErrInvalidPlatform
	}

	next.Username = patchString(current.Username, b.Username)
	next.UserIDPlatform = patchString(current.UserIDPlatform, b.UserIDPlatform)
	next.DisplayName = patchString(current.DisplayName, b.DisplayName)
	next.ProfileUrl = patchString(current.ProfileUrl, b.ProfileURL)
	next.AvatarUrl = patchString(current.AvatarUrl, b.AvatarURL)
	next.Notes = patchString(current.Notes, b.Notes)
	return next, nil
}

func GetSocialAccountsHandler(c echo.Context) error {
	entity := middleware.OwnedEntity(c)
	accounts, err := pgdb.New(appContext(c).App.DBConn).ListSocialAccounts(c.Request().Context(), entity.ID)
	if err != nil {
		return respondError(c, remote("list social accounts", err))
	}
	return c.JSON(http.StatusOK, pgstore.SocialAccountsFromDB(accounts))
}

func CreateSocialAccountHandler(c echo.Context) error {
	entity := middleware.OwnedEntity(c)
	body, err := bindSocialAccount(c)
	if err != nil {
		return respondError(c, err)
	}
	a, err := body.apply(pgdb.SocialAccount{})
	if err != nil {
		return respondError(c, err)
	}

	account, err := pgdb.New(appContext(c).App.DBConn).CreateSocialAccount(c.Request().Context(), pgdb.CreateSocialAccountParams{
		EntityID:       entity.ID,
		Platform:       a.Platform,
		Username:       a.Username,
		UserIDPlatform: a.UserIDPlatform,
		DisplayName:    a.DisplayName,
		ProfileUrl:     a.ProfileUrl,
		AvatarUrl:      a.AvatarUrl,
		Notes:          a.Notes,
	})
	if err != nil {
		return respondError(c, remote("create social account", err))
	}
	return c.JSON(http.StatusCreated, pgstore.SocialAccountFromDB(account))
}

// UpdateSocialAccountHandler applies the fields present in the body and
// keeps the others.
func UpdateSocialAccountHandler(c echo.Context) error {
	entity := middleware.OwnedEntity(c)
	accountID, err := pathID(c, "account_id")
	if err != nil {
		return respondError(c, err)
	}
	body, err := bindSocialAccount(c)
	if err != nil {
		return respondError(c, err)
	}

	q := pgdb.New(appContext(c).App.DBConn)
	ctx := c.Request().Context()
	current, err := q.GetSocialAccount(ctx, pgdb.GetSocialAccountParams{ID: accountID, EntityID: entity.ID})
	if err != nil {
		return respondError(c, remote("get social account", err))
	}
	a, err := body.apply(current)
	if err != nil {
		return respondError(c, err)
	}

	account, err := q.UpdateSocialAccount(ctx, pgdb.UpdateSocialAccountParams{
		ID:             current.ID,
		EntityID:       current.EntityID,
		Platform:       a.Platform,
		Username:       a.Username,
		UserIDPlatform: a.UserIDPlatform,
		DisplayName:    a.DisplayName,
		ProfileUrl:     a.ProfileUrl,
		AvatarUrl:      a.AvatarUrl,
		Notes:          a.Notes,
	})
	if err != nil {
		return respondError(c, remote("update social account", err))
	}
	return c.JSON(http.StatusOK, pgstore.SocialAccountFromDB(account))
}

func DeleteSocialAccountHandler(c echo.Context) error {
	entity := middleware.OwnedEntity(c)
	accountID, err := pathID(c, "account_id")
	if err != nil {
		return respondError(c, err)
	}

	n, err := pgdb.New(appContext(c).App.DBConn).DeleteSocialAccount(c.Request().Context(), pgdb.DeleteSocialAccountParams{
		ID:       accountID,
		EntityID: entity.ID,
	})
	if err != nil {
		return respondError(c, remote("delete social account", err))
	}
	if n == 0 {
		return respondError(c, common.ErrNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}
