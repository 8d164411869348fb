package routes

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/osint-hub/backend/pkg/common"
	"github.com/osint-hub/backend/pkg/graph"
	"github.com/osint-hub/backend/pkg/render"
)

// ClientIDHeader names the client profile whose node positions are used.
const ClientIDHeader = "X-Client-ID"

func graphScope(c echo.Context) (graph.Scope, error) {
	user := appContext(c).User
	if user == nil {
		return graph.Scope{}, common.ErrUnauthenticated
	}
	return graph.Scope{
		UserID:   user.UserID,
		ClientID: strings.TrimSpace(c.Request().Header.Get(ClientIDHeader)),
	}, nil
}

func newSession(c echo.Context) (*graph.Session, error) {
	scope, err := graphScope(c)
	if err != nil {
		return nil, err
	}
	app := appContext(c).App
	return graph.NewSession(app.Graph, app.Positions, scope)
}

func loadGraph(c echo.Context) (*graph.Session, graph.Graph, error) {
	session, err := newSession(c)
	if err != nil {
		return nil, graph.Graph{}, err
	}
	g, err := session.Load(c.Request().Context())
	if err != nil {
		return nil, graph.Graph{}, err
	}
	appContext(c).App.Metrics.GraphBuilt()
	return session, g, nil
}

// GetGraphHandler returns the nodes and edges of the user's catalogue.
func GetGraphHandler(c echo.Context) error {
	_, g, err := loadGraph(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, g)
}

// GetGraphSnapshotHandler renders the graph as a PNG.
func GetGraphSnapshotHandler(c echo.Context) error {
	_, g, err := loadGraph(c)
	if err != nil {
		return respondError(c, err)
	}
	png, err := render.Snapshot(g)
	if err != nil {
		return respondError(c, err)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

// ProposeConnectionHandler validates a connection gesture and returns the
// draft relationship to be completed by the user. Nothing is written.
func ProposeConnectionHandler(c echo.Context) error {
	type proposeBody struct {
		Source string `json:"source"`
		Target string `json:"target"`
	}

	body := new(proposeBody)
	if err := c.Bind(body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if body.Source == "" || body.Target == "" {
		return respondError(c, common.ErrMissingEndpoint)
	}

	session, err := newSession(c)
	if err != nil {
		return respondError(c, err)
	}
	draft, err := session.ProposeConnection(body.Source, body.Target)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, draft)
}

func GetRelationshipsHandler(c echo.Context) error {
	scope, err := graphScope(c)
	if err != nil {
		return respondError(c, err)
	}
	_, relationships, err := appContext(c).App.Graph.LoadGraph(c.Request().Context(), scope.UserID)
	if err != nil {
		return respondError(c, err)
	}
	if relationships == nil {
		relationships = []common.Relationship{}
	}
	return c.JSON(http.StatusOK, relationships)
}

// CreateRelationshipHandler commits a relationship and returns the reloaded
// graph.
func CreateRelationshipHandler(c echo.Context) error {
	body := new(graph.Draft)
	if err := c.Bind(body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	session, err := newSession(c)
	if err != nil {
		return respondError(c, err)
	}
	g, err := session.CommitRelationship(c.Request().Context(), body.EntityAID, body.EntityBID, body.RelationshipType, body.Notes)
	if !common.IsValidation(err) {
		appContext(c).App.Metrics.Mutation("create", err)
	}
	if err != nil {
		return respondError(c, err)
	}
	appContext(c).App.Metrics.GraphBuilt()
	return c.JSON(http.StatusCreated, g)
}

// DeleteRelationshipHandler removes a relationship and returns the
// reloaded graph.
func DeleteRelationshipHandler(c echo.Context) error {
	session, err := newSession(c)
	if err != nil {
		return respondError(c, err)
	}
	session.SelectEdge(c.Param("id"))

	g, err := session.RemoveSelected(c.Request().Context())
	if !common.IsValidation(err) {
		appContext(c).App.Metrics.Mutation("delete", err)
	}
	if err != nil {
		return respondError(c, err)
	}
	appContext(c).App.Metrics.GraphBuilt()
	return c.JSON(http.StatusOK, g)
}

// GetPositionsHandler returns the saved node positions of the scope.
func GetPositionsHandler(c echo.Context) error {
	scope, err := graphScope(c)
	if err != nil {
		return respondError(c, err)
	}
	positions := appContext(c).App.Positions.LoadPositions(c.Request().Context(), scope)
	return c.JSON(http.StatusOK, positions)
}

// PutPositionsHandler persists the final coordinates of dragged nodes
// together with the current positions of every other node.
func PutPositionsHandler(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badRequest(c, "Invalid request body")
	}
	moved, err := graph.ParsePositions(raw)
	if err != nil {
		return respondError(c, common.ErrInvalidPositions)
	}

	session, _, err := loadGraph(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := session.DragEnd(c.Request().Context(), moved); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, session.Graph())
}
