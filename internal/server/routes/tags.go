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

// DefaultTagColor is used for tags created without a colour.
const DefaultTagColor = "#8B5CF6"

type tagBody struct {
	Name  *string `json:"name"`
	Color *string `json:"color" validate:"omitempty,hexcolor"`
}

var errInvalidTag = common.NewValidationError("invalid_tag", "tag name is required and color must be a hex color")

func bindTag(c echo.Context) (*tagBody, error) {
	body := new(tagBody)
	if err := c.Bind(body); err != nil {
		return nil, common.NewValidationError("invalid_body", "Invalid request body")
	}
	if body.Color != nil {
		color := strings.TrimSpace(*body.Color)
		body.Color = &color
	}
	if err := c.Validate(body); err != nil {
		return nil, errInvalidTag
	}
	return body, nil
}

// apply lays the fields present in the body over current. An empty color
// resets it to DefaultTagColor.
func (b tagBody) apply(current pgdb.Tag) (pgdb.Tag, error) {
	next := current
	if b.Name != nil {
		next.Name = strings.TrimSpace(*b.Name)
	}
	if next.Name == "" {
		return current, errInvalidTag
	}
	if b.Color != nil {
		next.Color = *b.Color
	}
	if next.Color == "" {
		next.Color = DefaultTagColor
	}
	return next, nil
}

func GetTagsHandler(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	tags, err := pgdb.New(appContext(c).App.DBConn).ListTags(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, remote("list tags", err))
	}
	return c.JSON(http.StatusOK, pgstore.TagsFromDB(tags))
}

func CreateTagHandler(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	body, err := bindTag(c)
	if err != nil {
		return respondError(c, err)
	}
	t, err := body.apply(pgdb.Tag{})
	if err != nil {
		return respondError(c, err)
	}

	tag, err := pgdb.New(appContext(c).App.DBConn).CreateTag(c.Request().Context(), pgdb.CreateTagParams{
		UserID: userID,
		Name:   t.Name,
		Color:  t.Color,
	})
	if err != nil {
		return respondError(c, remote("create tag", err))
	}
	return c.JSON(http.StatusCreated, pgstore.TagFromDB(tag))
}

func UpdateTagHandler(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	tagID, err := pathID(c, "tag_id")
	if err != nil {
		return respondError(c, err)
	}
	body, err := bindTag(c)
	if err != nil {
		return respondError(c, err)
	}

	q := pgdb.New(appContext(c).App.DBConn)
	ctx := c.Request().Context()
	current, err := q.GetTag(ctx, pgdb.GetTagParams{ID: tagID, UserID: userID})
	if err != nil {
		return respondError(c, remote("get tag", err))
	}
	t, err := body.apply(current)
	if err != nil {
		return respondError(c, err)
	}

	tag, err := q.UpdateTag(ctx, pgdb.UpdateTagParams{
		ID:     current.ID,
		UserID: current.UserID,
		Name:   t.Name,
		Color:  t.Color,
	})
	if err != nil {
		return respondError(c, remote("update tag", err))
	}
	return c.JSON(http.StatusOK, pgstore.TagFromDB(tag))
}

func DeleteTagHandler(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	tagID, err := pathID(c, "tag_id")
	if err != nil {
		return respondError(c, err)
	}

	n, err := pgdb.New(appContext(c).App.DBConn).DeleteTag(c.Request().Context(), pgdb.DeleteTagParams{
		ID:     tagID,
		UserID: userID,
	})
	if err != nil {
		return respondError(c, remote("delete tag", err))
	}
	if n == 0 {
		return respondError(c, common.ErrNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

func GetEntityTagsHandler(c echo.Context) error {
	entity := middleware.OwnedEntity(c)
	tags, err := pgdb.New(appContext(c).App.DBConn).ListEntityTags(c.Request().Context(), entity.ID)
	if err != nil {
		return respondError(c, remote("list entity tags", err))
	}
	return c.JSON(http.StatusOK, pgstore.TagsFromDB(tags))
}

// AttachTagHandler links one of the user's tags to the entity. Attaching a
// tag twice is a no-op.
func AttachTagHandler(c echo.Context) error {
	type attachTagBody struct {
		TagID string `json:"tag_id" validate:"required,uuid"`
	}

	entity := middleware.OwnedEntity(c)
	body := new(attachTagBody)
	if err := c.Bind(body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	tagID, err := pgstore.ParseID(body.TagID)
	if err != nil {
		return respondError(c, err)
	}

	ctx := c.Request().Context()
	q := pgdb.New(appContext(c).App.DBConn)
	tag, err := q.GetTag(ctx, pgdb.GetTagParams{ID: tagID, UserID: entity.UserID})
	if err != nil {
		return respondError(c, remote("get tag", err))
	}
	if err := q.AttachTag(ctx, pgdb.AttachTagParams{EntityID: entity.ID, TagID: tag.ID}); err != nil {
		return respondError(c, remote("attach tag", err))
	}
	return c.JSON(http.StatusOK, pgstore.TagFromDB(tag))
}

func DetachTagHandler(c echo.Context) error {
	entity := middleware.OwnedEntity(c)
	tagID, err := pathID(c, "tag_id")
	if err != nil {
		return respondError(c, err)
	}

	n, err := pgdb.New(appContext(c).App.DBConn).DetachTag(c.Request().Context(), pgdb.DetachTagParams{
		EntityID: entity.ID,
		TagID:    tagID,
	})
	if err != nil {
		return respondError(c, remote("detach tag", err))
	}
	if n == 0 {
		return respondError(c, common.ErrNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}
