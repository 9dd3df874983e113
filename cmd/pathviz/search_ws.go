package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/pathviz/pathviz-server/internal/grid"
	"github.com/pathviz/pathviz-server/internal/search"
)

type wsCommand string

const (
	wsStep  wsCommand = "s"
	wsMulti wsCommand = "n"
	wsRun   wsCommand = "r"
	wsStats wsCommand = "g"
	wsStop  wsCommand = "x"
)

type wsEvent struct {
	Type     string         `json:"type"`
	Explored int            `json:"explored"`
	State    string         `json:"state"`
	Result   *search.Result `json:"result,omitempty"`
}

func stepEvent(step search.Step, state search.State) wsEvent {
	ev := wsEvent{
		Type:     "progress",
		Explored: step.Explored,
		State:    state.String(),
	}
	if step.Kind == search.Terminal {
		ev.Type = "result"
		ev.Result = step.Result
	}
	return ev
}

type searchExecutor struct {
	*application
	session *search.Session
}

func (ex searchExecutor) step() wsEvent {
	step := ex.session.Step()
	return stepEvent(step, ex.session.State())
}

func (ex searchExecutor) stepMany(args []string) (wsEvent, error) {
	count, err := parseCount(args)
	if err != nil {
		return wsEvent{}, err
	}
	var step search.Step
	for range count {
		step = ex.session.Step()
		if step.Kind == search.Terminal {
			break
		}
	}
	return stepEvent(step, ex.session.State()), nil
}

func (ex searchExecutor) run() wsEvent {
	for {
		step := ex.session.Step()
		if step.Kind == search.Terminal {
			return stepEvent(step, ex.session.State())
		}
	}
}

func (ex searchExecutor) stats() wsEvent {
	explored, pathLength, state := ex.session.Stats()
	ev := wsEvent{
		Type:     "stats",
		Explored: explored,
		State:    state.String(),
	}
	if state == search.Found {
		ev.Result = &search.Result{
			Success:       true,
			NodesExplored: explored,
			PathLength:    pathLength,
		}
	}
	return ev
}

func (ex searchExecutor) execute(query string) (wsEvent, error) {
	tokens := strings.Split(query, " ")
	cmd, args := wsCommand(tokens[0]), tokens[1:]
	switch cmd {
	case wsStep:
		return ex.step(), nil
	case wsMulti:
		return ex.stepMany(args)
	case wsRun:
		return ex.run(), nil
	case wsStats:
		return ex.stats(), nil
	case wsStop:
		ex.session.Stop()
		return ex.step(), nil
	default:
		return wsEvent{}, fmt.Errorf("unknown command")
	}
}

func (ex searchExecutor) wsRunSearchLoop(conn *websocket.Conn) error {
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		message := strings.TrimSpace(string(buf))
		for _, line := range strings.Split(message, "\n") {
			ev, err := ex.execute(strings.TrimSpace(line))
			if err != nil {
				ev = wsEvent{Type: "error", State: err.Error()}
			}
			if err := conn.WriteJSON(ev); err != nil {
				return fmt.Errorf("unable to write json: %w", err)
			}
		}
	}
}

// wsConnect streams a step-by-step search over a stored layout. The
// algorithm comes from the query string and the session lives only as
// long as the connection.
func (app *application) wsConnect(w http.ResponseWriter, r *http.Request) {
	layout := app.fetchAccessibleLayout(w, r)
	if layout == nil {
		return
	}

	dto, err := decodeSolve(r.URL.Query())
	if err != nil {
		app.badRequest(w)
		return
	}
	algo, err := search.ParseAlgorithm(dto.Algorithm)
	if err != nil {
		app.badRequest(w)
		return
	}

	rec, err := layout.Record()
	if err != nil {
		app.internalError(w, "failed to decode stored layout", "error", err)
		return
	}
	g, err := grid.FromRecord(rec)
	if err != nil {
		app.internalError(w, "stored layout failed validation", "error", err)
		return
	}

	session, err := search.New(g, algo)
	if err != nil {
		app.badRequest(w)
		return
	}

	conn, err := app.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		app.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()

	app.logger.Debug("established WS connection", "layout", layout.PublicId)

	ex := searchExecutor{app, session}
	if err := ex.wsRunSearchLoop(conn); err != nil {
		if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
			app.logger.Warn("error in ws loop", slog.Any("error", err))
		}
	}
}

func parseCount(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("invalid args")
	}
	count, err := strconv.Atoi(args[0])
	if err != nil || count < 1 {
		return 0, fmt.Errorf("argument must be a positive int")
	}
	return count, nil
}
