package routes

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/osint-hub/backend/internal/server/middleware"
	pgdb "github.com/osint-hub/backend/pkg/db/pgx"
	"github.com/osint-hub/backend/pkg/export"
	pgstore "github.com/osint-hub/backend/pkg/store/pgx"
)

const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// loadExport reads everything the user owns concurrently.
func loadExport(ctx context.Context, conn middleware.DBConn, userID uuid.UUID) (export.Source, error) {
	q := pgdb.New(conn)
	var src export.Source

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := q.ListEntities(ctx, pgdb.ListEntitiesParams{UserID: userID})
		src.Entities = pgstore.EntitiesFromDB(rows)
		return remote("list entities", err)
	})
	g.Go(func() error {
		rows, err := q.ListRelationships(ctx, userID)
		src.Relationships = pgstore.RelationshipsFromDB(rows)
		return remote("list relationships", err)
	})
	g.Go(func() error {
		rows, err := q.ListSocialAccountsForUser(ctx, userID)
		src.SocialAccounts = pgstore.SocialAccountsFromDB(rows)
		return remote("list social accounts", err)
	})
	g.Go(func() error {
		rows, err := q.ListTags(ctx, userID)
		src.Tags = pgstore.TagsFromDB(rows)
		return remote("list tags", err)
	})
	g.Go(func() error {
		rows, err := q.ListEntityTagLinks(ctx, userID)
		src.TagLinks = make([]export.TagLink, len(rows))
		for i, r := range rows {
			src.TagLinks[i] = export.TagLink{EntityID: r.EntityID.String(), TagID: r.TagID.String()}
		}
		return remote("list tag links", err)
	})
	g.Go(func() error {
		rows, err := q.ListEntityImagesForUser(ctx, userID)
		src.Images = pgstore.EntityImagesFromDB(rows)
		return remote("list images", err)
	})
	g.Go(func() error {
		rows, err := q.ListEntityDocumentsForUser(ctx, userID)
		src.Documents = pgstore.EntityDocumentsFromDB(rows)
		return remote("list documents", err)
	})

	if err := g.Wait(); err != nil {
		return export.Source{}, err
	}
	return src, nil
}

func buildDossier(c echo.Context) (export.Dossier, error) {
	userID, err := currentUser(c)
	if err != nil {
		return export.Dossier{}, err
	}
	src, err := loadExport(c.Request().Context(), appContext(c).App.DBConn, userID)
	if err != nil {
		return export.Dossier{}, err
	}
	return export.BuildDossier(src, time.Now()), nil
}

func attachment(c echo.Context, ext string) {
	name := fmt.Sprintf("osint-export-%s.%s", time.Now().UTC().Format("2006-01-02"), ext)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
}

// ExportJSONHandler returns the full dossier as JSON.
func ExportJSONHandler(c echo.Context) error {
	d, err := buildDossier(c)
	if err != nil {
		return respondError(c, err)
	}
	attachment(c, "json")
	return c.JSON(http.StatusOK, d)
}

// ExportXLSXHandler returns the dossier as a spreadsheet.
func ExportXLSXHandler(c echo.Context) error {
	d, err := buildDossier(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := export.WriteXLSX(d)
	if err != nil {
		return respondError(c, err)
	}
	attachment(c, "xlsx")
	return c.Blob(http.StatusOK, xlsxMime, out)
}
